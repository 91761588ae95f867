package interp

import "github.com/cwbudde/go-joy/internal/value"

func init() {
	registerPrims(map[string]Primitive{
		"i":     primI,
		"x":     primX,
		"dip":   primDip,
		"dipd":  saveN("dipd", 2),
		"dipdd": saveN("dipdd", 3),

		"ifte":   primIfte,
		"branch": primBranch,
		"cond":   primCond,

		"iflist":    kindBranch("iflist", value.KindList),
		"ifinteger": kindBranch("ifinteger", value.KindInteger),
		"ifchar":    kindBranch("ifchar", value.KindChar),
		"iflogical": kindBranch("iflogical", value.KindBoolean),
		"ifset":     kindBranch("ifset", value.KindSet),
		"ifstring":  kindBranch("ifstring", value.KindString),
		"iffloat":   kindBranch("iffloat", value.KindFloat),
		"iffile":    kindBranch("iffile", value.KindFile),

		"times": primTimes,
		"while": primWhile,
		"loop":  primLoop,

		"case":   primCase,
		"opcase": primOpcase,
	})
}

// primI: [Q] -> …, executes the terms of Q.
func primI(i *Interp) error {
	q, err := i.popQuote("i")
	if err != nil {
		return err
	}
	return i.executeSequence(q)
}

// primX: executes a copy of TOS without popping it.
func primX(i *Interp) error {
	v, err := i.peek("x")
	if err != nil {
		return err
	}
	q, ok := v.(*value.ListValue)
	if !ok {
		return typeErr("x", "quotation", v)
	}
	return i.executeSequence(q.Elements)
}

// primDip: X [Q] -> …, runs Q with X set aside, then restores X.
func primDip(i *Interp) error {
	q, err := i.popQuote("dip")
	if err != nil {
		return err
	}
	x, err := i.pop("dip")
	if err != nil {
		return err
	}
	if err := i.executeSequence(q); err != nil {
		return err
	}
	i.push(x)
	return nil
}

// saveN builds dipd/dipdd: pop the quotation, set n values aside, run,
// restore them in order.
func saveN(op string, n int) Primitive {
	return func(i *Interp) error {
		q, err := i.popQuote(op)
		if err != nil {
			return err
		}
		if err := i.need(op, n); err != nil {
			return err
		}
		saved := make([]value.Value, n)
		for k := n - 1; k >= 0; k-- {
			saved[k], _ = i.pop(op)
		}
		if err := i.executeSequence(q); err != nil {
			return err
		}
		for _, v := range saved {
			i.push(v)
		}
		return nil
	}
}

// probe runs a predicate quotation on a deep snapshot of the stack and
// reports the truth of the value it leaves on top. The stack is
// restored from the snapshot regardless of what the predicate did, so
// predicate scratch can never leak.
func (i *Interp) probe(op string, pred []value.Value) (bool, error) {
	saved := i.saveStack()
	if err := i.executeSequence(pred); err != nil {
		return false, err
	}
	result := false
	if len(i.stack) > 0 {
		result = value.Truthy(i.stack[len(i.stack)-1])
	}
	i.restoreStack(saved)
	return result, nil
}

// primIfte: [C] [T] [F] -> …. C runs on a snapshot; the snapshot is
// restored before T or F runs on the original stack.
func primIfte(i *Interp) error {
	f, err := i.popQuote("ifte")
	if err != nil {
		return err
	}
	t, err := i.popQuote("ifte")
	if err != nil {
		return err
	}
	c, err := i.popQuote("ifte")
	if err != nil {
		return err
	}
	cond, err := i.probe("ifte", c)
	if err != nil {
		return err
	}
	if cond {
		return i.executeSequence(t)
	}
	return i.executeSequence(f)
}

// primBranch: B [T] [F] -> …. B is a prior-computed value, so no
// snapshot is involved.
func primBranch(i *Interp) error {
	f, err := i.popQuote("branch")
	if err != nil {
		return err
	}
	t, err := i.popQuote("branch")
	if err != nil {
		return err
	}
	b, err := i.pop("branch")
	if err != nil {
		return err
	}
	if value.Truthy(b) {
		return i.executeSequence(t)
	}
	return i.executeSequence(f)
}

// primCond: [[ [P1] T1… ] [ [P2] T2… ] … [ D… ]] -> ….
// Each predicate runs under snapshot/restore; the first truthy
// clause's body runs on the original stack. The last clause is the
// default, executed whole.
func primCond(i *Interp) error {
	clauses, err := i.popQuote("cond")
	if err != nil {
		return err
	}
	if len(clauses) == 0 {
		return domainErr("cond", "empty clause list")
	}
	for k, cv := range clauses {
		clause, ok := cv.(*value.ListValue)
		if !ok {
			return typeErr("cond", "clause list", cv)
		}
		if k == len(clauses)-1 {
			// Default clause: the whole clause is the body.
			return i.executeSequence(clause.Elements)
		}
		if len(clause.Elements) == 0 {
			return domainErr("cond", "empty clause")
		}
		pred, ok := clause.Elements[0].(*value.ListValue)
		if !ok {
			return typeErr("cond", "predicate quotation", clause.Elements[0])
		}
		t, err := i.probe("cond", pred.Elements)
		if err != nil {
			return err
		}
		if t {
			return i.executeSequence(clause.Elements[1:])
		}
	}
	return nil
}

// kindBranch builds the ifinteger/ifchar/… family: X [T] [F] -> ….
// X stays on the stack; T runs when X has the kind, F otherwise.
func kindBranch(op string, kind value.Kind) Primitive {
	return func(i *Interp) error {
		f, err := i.popQuote(op)
		if err != nil {
			return err
		}
		t, err := i.popQuote(op)
		if err != nil {
			return err
		}
		x, err := i.peek(op)
		if err != nil {
			return err
		}
		match := x.Kind() == kind
		// iflist accepts both bracket variants.
		if kind == value.KindList && x.Kind() == value.KindQuotation {
			match = true
		}
		if match {
			return i.executeSequence(t)
		}
		return i.executeSequence(f)
	}
}

// primTimes: N [Q] -> …, executes Q exactly N times.
func primTimes(i *Interp) error {
	q, err := i.popQuote("times")
	if err != nil {
		return err
	}
	n, err := i.popInt("times")
	if err != nil {
		return err
	}
	for ; n > 0; n-- {
		if err := i.executeSequence(q); err != nil {
			return err
		}
	}
	return nil
}

// primWhile: [C] [B] -> …, repeats B while C (run under
// snapshot/restore) is truthy.
func primWhile(i *Interp) error {
	b, err := i.popQuote("while")
	if err != nil {
		return err
	}
	c, err := i.popQuote("while")
	if err != nil {
		return err
	}
	for {
		t, err := i.probe("while", c)
		if err != nil {
			return err
		}
		if !t {
			return nil
		}
		if err := i.executeSequence(b); err != nil {
			return err
		}
	}
}

// primLoop: [B] -> …, repeats B as long as it leaves a truthy value
// on top, consuming that value each round.
func primLoop(i *Interp) error {
	b, err := i.popQuote("loop")
	if err != nil {
		return err
	}
	for {
		if err := i.executeSequence(b); err != nil {
			return err
		}
		t, err := i.pop("loop")
		if err != nil {
			return err
		}
		if !value.Truthy(t) {
			return nil
		}
	}
}

// primCase: X [[K1 B1…] [K2 B2…] … [D…]] -> ….
// X is matched structurally against each clause's key; the matching
// clause's body runs with X popped. The last clause is the default.
func primCase(i *Interp) error {
	clauses, err := i.popQuote("case")
	if err != nil {
		return err
	}
	if len(clauses) == 0 {
		return domainErr("case", "empty clause list")
	}
	x, err := i.pop("case")
	if err != nil {
		return err
	}
	for k, cv := range clauses {
		clause, ok := cv.(*value.ListValue)
		if !ok {
			return typeErr("case", "clause list", cv)
		}
		if k == len(clauses)-1 {
			return i.executeSequence(clause.Elements)
		}
		if len(clause.Elements) == 0 {
			return domainErr("case", "empty clause")
		}
		if value.Equal(clause.Elements[0], x) {
			return i.executeSequence(clause.Elements[1:])
		}
	}
	return nil
}

// primOpcase: X [[K1 B1…] … [D…]] -> X [Bi…].
// Like case, but X stays and the matching clause's body is pushed as
// a quotation instead of being executed.
func primOpcase(i *Interp) error {
	clauses, err := i.popQuote("opcase")
	if err != nil {
		return err
	}
	if len(clauses) == 0 {
		return domainErr("opcase", "empty clause list")
	}
	x, err := i.peek("opcase")
	if err != nil {
		return err
	}
	for k, cv := range clauses {
		clause, ok := cv.(*value.ListValue)
		if !ok {
			return typeErr("opcase", "clause list", cv)
		}
		if k == len(clauses)-1 {
			i.push(value.NewQuotation(clause.Elements...))
			return nil
		}
		if len(clause.Elements) == 0 {
			return domainErr("opcase", "empty clause")
		}
		if value.Equal(clause.Elements[0], x) {
			i.push(value.NewQuotation(clause.Elements[1:]...))
			return nil
		}
	}
	return nil
}
