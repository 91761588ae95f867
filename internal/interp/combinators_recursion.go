package interp

import "github.com/cwbudde/go-joy/internal/value"

func init() {
	registerPrims(map[string]Primitive{
		"linrec":      primLinrec,
		"tailrec":     primTailrec,
		"binrec":      primBinrec,
		"primrec":     primPrimrec,
		"genrec":      primGenrec,
		"condlinrec":  primCondlinrec,
		"condnestrec": primCondnestrec,
	})
}

// primLinrec: [P] [T] [R1] [R2] -> ….
// While P is false, R1 runs and one R2 invocation is put on account;
// when P holds, T runs and the accounted R2 invocations unwind. The
// explicit counter keeps the recursion depth off the host stack, so
// space is bounded by the operand stack alone.
func primLinrec(i *Interp) error {
	r2, err := i.popQuote("linrec")
	if err != nil {
		return err
	}
	r1, err := i.popQuote("linrec")
	if err != nil {
		return err
	}
	t, err := i.popQuote("linrec")
	if err != nil {
		return err
	}
	p, err := i.popQuote("linrec")
	if err != nil {
		return err
	}

	pending := 0
	for {
		done, err := i.probe("linrec", p)
		if err != nil {
			return err
		}
		if done {
			break
		}
		if err := i.executeSequence(r1); err != nil {
			return err
		}
		pending++
	}
	if err := i.executeSequence(t); err != nil {
		return err
	}
	for ; pending > 0; pending-- {
		if err := i.executeSequence(r2); err != nil {
			return err
		}
	}
	return nil
}

// primTailrec: [P] [T] [R1] -> …, linrec with an empty R2: a pure
// loop.
func primTailrec(i *Interp) error {
	r1, err := i.popQuote("tailrec")
	if err != nil {
		return err
	}
	t, err := i.popQuote("tailrec")
	if err != nil {
		return err
	}
	p, err := i.popQuote("tailrec")
	if err != nil {
		return err
	}
	for {
		done, err := i.probe("tailrec", p)
		if err != nil {
			return err
		}
		if done {
			return i.executeSequence(t)
		}
		if err := i.executeSequence(r1); err != nil {
			return err
		}
	}
}

// primBinrec: [P] [T] [R1] [R2] -> ….
// When P fails, R1 leaves two values; the recursion runs once for
// each (holding the second aside while the first unwinds), then R2
// combines the two results. The recursion runs on the host stack and
// its depth follows the shape of the division: logarithmic for an
// even halving, linear for a split such as [pred dup pred].
func primBinrec(i *Interp) error {
	r2, err := i.popQuote("binrec")
	if err != nil {
		return err
	}
	r1, err := i.popQuote("binrec")
	if err != nil {
		return err
	}
	t, err := i.popQuote("binrec")
	if err != nil {
		return err
	}
	p, err := i.popQuote("binrec")
	if err != nil {
		return err
	}

	var recurse func() error
	recurse = func() error {
		done, err := i.probe("binrec", p)
		if err != nil {
			return err
		}
		if done {
			return i.executeSequence(t)
		}
		if err := i.executeSequence(r1); err != nil {
			return err
		}
		second, err := i.pop("binrec")
		if err != nil {
			return err
		}
		if err := recurse(); err != nil {
			return err
		}
		i.push(second)
		// The first result is below the pushed second value; swap so
		// the second recursion consumes the held value.
		if err := primSwap(i); err != nil {
			return err
		}
		first, err := i.pop("binrec")
		if err != nil {
			return err
		}
		if err := recurse(); err != nil {
			return err
		}
		i.push(first)
		if err := primSwap(i); err != nil {
			return err
		}
		return i.executeSequence(r2)
	}
	return recurse()
}

// primPrimrec: X [I] [C] -> ….
// I seeds the result. The members of X (1..n for an integer n, the
// elements for a list, the characters for a string) are then combined
// one at a time: each is pushed and C runs.
func primPrimrec(i *Interp) error {
	c, err := i.popQuote("primrec")
	if err != nil {
		return err
	}
	seed, err := i.popQuote("primrec")
	if err != nil {
		return err
	}
	x, err := i.pop("primrec")
	if err != nil {
		return err
	}

	var members []value.Value
	switch x := x.(type) {
	case *value.IntegerValue:
		for n := int64(1); n <= x.Value; n++ {
			members = append(members, &value.IntegerValue{Value: n})
		}
	default:
		members, err = aggregateElements("primrec", x)
		if err != nil {
			return err
		}
	}

	if err := i.executeSequence(seed); err != nil {
		return err
	}
	for _, m := range members {
		i.push(m)
		if err := i.executeSequence(c); err != nil {
			return err
		}
	}
	return nil
}

// primGenrec: [P] [T] [R1] [R2] -> ….
// When P fails, R1 runs and the reified quotation
// [[P] [T] [R1] [R2] genrec] is pushed before R2, so R2 itself
// decides when, and whether, to recurse.
func primGenrec(i *Interp) error {
	r2, err := i.popQuote("genrec")
	if err != nil {
		return err
	}
	r1, err := i.popQuote("genrec")
	if err != nil {
		return err
	}
	t, err := i.popQuote("genrec")
	if err != nil {
		return err
	}
	p, err := i.popQuote("genrec")
	if err != nil {
		return err
	}

	done, err := i.probe("genrec", p)
	if err != nil {
		return err
	}
	if done {
		return i.executeSequence(t)
	}
	if err := i.executeSequence(r1); err != nil {
		return err
	}
	i.push(value.NewQuotation(
		value.NewQuotation(p...),
		value.NewQuotation(t...),
		value.NewQuotation(r1...),
		value.NewQuotation(r2...),
		&value.SymbolValue{Name: "genrec"},
	))
	return i.executeSequence(r2)
}

// primCondlinrec and primCondnestrec share one implementation. The
// clause list is borrowed immutably by every recursive frame; only
// the stack varies across frames.
func primCondlinrec(i *Interp) error {
	return i.condrec("condlinrec")
}

func primCondnestrec(i *Interp) error {
	return i.condrec("condnestrec")
}

// condrec: [[C1] [C2] … [D]] -> ….
// Each non-final clause is [[B] R1 R2 …]; the final clause [R1 R2 …]
// is the default. The first clause whose B holds (tested under
// snapshot/restore) is selected; its first part runs, and each
// remaining part runs after one recursion on the same clause list.
func (i *Interp) condrec(op string) error {
	clauses, err := i.popQuote(op)
	if err != nil {
		return err
	}
	if len(clauses) == 0 {
		return domainErr(op, "empty clause list")
	}

	var recurse func() error
	recurse = func() error {
		var parts []value.Value
		selected := false
		for k, cv := range clauses {
			clause, ok := cv.(*value.ListValue)
			if !ok {
				return typeErr(op, "clause list", cv)
			}
			if k == len(clauses)-1 {
				parts = clause.Elements
				selected = true
				break
			}
			if len(clause.Elements) == 0 {
				return domainErr(op, "empty clause")
			}
			pred, ok := clause.Elements[0].(*value.ListValue)
			if !ok {
				return typeErr(op, "predicate quotation", clause.Elements[0])
			}
			t, err := i.probe(op, pred.Elements)
			if err != nil {
				return err
			}
			if t {
				parts = clause.Elements[1:]
				selected = true
				break
			}
		}
		if !selected || len(parts) == 0 {
			return nil
		}

		if err := i.executePart(op, parts[0]); err != nil {
			return err
		}
		for _, part := range parts[1:] {
			if err := recurse(); err != nil {
				return err
			}
			if err := i.executePart(op, part); err != nil {
				return err
			}
		}
		return nil
	}
	return recurse()
}

// executePart runs one clause part: a quotation executes as a term
// sequence, anything else executes as a single term.
func (i *Interp) executePart(op string, part value.Value) error {
	if l, ok := part.(*value.ListValue); ok {
		return i.executeSequence(l.Elements)
	}
	return i.executeTerm(part)
}
