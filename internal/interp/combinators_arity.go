package interp

import "github.com/cwbudde/go-joy/internal/value"

func init() {
	registerPrims(map[string]Primitive{
		"nullary": arity("nullary", 0),
		"unary":   arity("unary", 1),
		"binary":  arity("binary", 2),
		"ternary": arity("ternary", 3),

		"unary2": spread("unary2", 2),
		"unary3": spread("unary3", 3),
		"unary4": spread("unary4", 4),

		"app1": arity("app1", 1),
		"app2": spread("app2", 2),
		"app3": spread("app3", 3),
		"app4": spread("app4", 4),

		"app11": arity("app11", 2),
		"app12": primApp12,

		"cleave":    primCleave,
		"construct": primConstruct,
		"infra":     primInfra,
	})
}

// runIsolated executes terms on the given stack and returns the value
// left on top. The live stack is saved and restored around the run.
func (i *Interp) runIsolated(op string, stack []value.Value, terms []value.Value) (value.Value, error) {
	outer := i.stack
	i.stack = append([]value.Value(nil), stack...)
	err := i.executeSequence(terms)
	if err != nil {
		i.stack = outer
		return nil, err
	}
	if len(i.stack) == 0 {
		i.stack = outer
		return nil, domainErr(op, "quotation left no result")
	}
	result := i.stack[len(i.stack)-1]
	i.stack = outer
	return result, nil
}

// arity builds nullary/unary/binary/ternary: the quotation runs on a
// saved copy of the stack and may consume at most n operands; exactly
// one result is pushed onto the stack with the n operands removed.
func arity(op string, n int) Primitive {
	return func(i *Interp) error {
		q, err := i.popQuote(op)
		if err != nil {
			return err
		}
		if err := i.need(op, n); err != nil {
			return err
		}
		result, err := i.runIsolated(op, i.stack, q)
		if err != nil {
			return err
		}
		i.stack = i.stack[:len(i.stack)-n]
		i.push(result)
		return nil
	}
}

// spread builds unary2/3/4: the quotation is applied to each of the
// top n values independently, yielding n results in order.
func spread(op string, n int) Primitive {
	return func(i *Interp) error {
		q, err := i.popQuote(op)
		if err != nil {
			return err
		}
		if err := i.need(op, n); err != nil {
			return err
		}
		args := make([]value.Value, n)
		for k := n - 1; k >= 0; k-- {
			args[k], _ = i.pop(op)
		}
		base := i.saveStack()
		results := make([]value.Value, n)
		for k, arg := range args {
			r, err := i.runIsolated(op, append(base[:len(base):len(base)], arg), q)
			if err != nil {
				return err
			}
			results[k] = r
		}
		for _, r := range results {
			i.push(r)
		}
		return nil
	}
}

// primApp12: X Y1 Y2 [P] -> R1 R2. P is applied to X Y1 and to X Y2,
// with X shared between the two applications.
func primApp12(i *Interp) error {
	q, err := i.popQuote("app12")
	if err != nil {
		return err
	}
	if err := i.need("app12", 3); err != nil {
		return err
	}
	y2, _ := i.pop("app12")
	y1, _ := i.pop("app12")
	x, _ := i.pop("app12")
	base := i.saveStack()
	r1, err := i.runIsolated("app12", append(base[:len(base):len(base)], x, y1), q)
	if err != nil {
		return err
	}
	r2, err := i.runIsolated("app12", append(base[:len(base):len(base)], x, y2), q)
	if err != nil {
		return err
	}
	i.push(r1)
	i.push(r2)
	return nil
}

// primCleave: X [P1] [P2] -> R1 R2. Each quotation is applied to X
// independently.
func primCleave(i *Interp) error {
	p2, err := i.popQuote("cleave")
	if err != nil {
		return err
	}
	p1, err := i.popQuote("cleave")
	if err != nil {
		return err
	}
	if err := i.need("cleave", 1); err != nil {
		return err
	}
	base := i.saveStack()
	r1, err := i.runIsolated("cleave", base, p1)
	if err != nil {
		return err
	}
	r2, err := i.runIsolated("cleave", base, p2)
	if err != nil {
		return err
	}
	i.stack = i.stack[:len(i.stack)-1]
	i.push(r1)
	i.push(r2)
	return nil
}

// primConstruct: [P] [[P1] [P2] …] -> R1 R2 ….
// P runs once to establish a shared context; every Pi then runs on a
// copy of that context and contributes one result.
func primConstruct(i *Interp) error {
	subs, err := i.popQuote("construct")
	if err != nil {
		return err
	}
	p, err := i.popQuote("construct")
	if err != nil {
		return err
	}

	saved := i.saveStack()
	if err := i.executeSequence(p); err != nil {
		return err
	}
	context := i.saveStack()

	results := make([]value.Value, 0, len(subs))
	for _, sv := range subs {
		sub, ok := sv.(*value.ListValue)
		if !ok {
			return typeErr("construct", "quotation", sv)
		}
		r, err := i.runIsolated("construct", context, sub.Elements)
		if err != nil {
			return err
		}
		results = append(results, r)
	}

	i.restoreStack(saved)
	for _, r := range results {
		i.push(r)
	}
	return nil
}

// primInfra: L [Q] -> L'. The contents of L become the stack (first
// element on top), Q runs, and the resulting stack becomes L' in the
// same top-first order, with the original stack restored below.
func primInfra(i *Interp) error {
	q, err := i.popQuote("infra")
	if err != nil {
		return err
	}
	l, err := i.popList("infra")
	if err != nil {
		return err
	}

	saved := i.saveStack()
	n := len(l.Elements)
	inner := make([]value.Value, n)
	for k := 0; k < n; k++ {
		inner[k] = l.Elements[n-1-k]
	}
	i.stack = inner
	if err := i.executeSequence(q); err != nil {
		return err
	}

	m := len(i.stack)
	out := make([]value.Value, m)
	for k := 0; k < m; k++ {
		out[k] = i.stack[m-1-k]
	}
	i.restoreStack(saved)
	i.push(value.NewList(out...))
	return nil
}
