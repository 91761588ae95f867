package interp

import "github.com/cwbudde/go-joy/internal/value"

func init() {
	registerPrims(map[string]Primitive{
		"map":    primMap,
		"filter": primFilter,
		"split":  primSplit,
		"step":   primStep,
		"fold":   primFold,
		"some":   primSome,
		"all":    primAll,

		"treestep":   primTreestep,
		"treerec":    primTreerec,
		"treegenrec": primTreegenrec,
	})
}

// aggregateElements views an aggregate as a sequence of element
// values: characters for a string, members in ascending order for a
// set, the elements themselves for a list.
func aggregateElements(op string, a value.Value) ([]value.Value, error) {
	switch a := a.(type) {
	case *value.ListValue:
		return a.Elements, nil
	case *value.StringValue:
		out := make([]value.Value, len(a.Value))
		for k := 0; k < len(a.Value); k++ {
			out[k] = &value.CharValue{Value: a.Value[k]}
		}
		return out, nil
	case *value.SetValue:
		members := a.Members()
		out := make([]value.Value, len(members))
		for k, m := range members {
			out[k] = &value.IntegerValue{Value: m}
		}
		return out, nil
	}
	return nil, typeErr(op, "aggregate", a)
}

// rebuildLike collects results into an aggregate matching the outer
// kind of the input: a string when the input was a string and every
// result is a character, a set when the input was a set and every
// result is a valid member, the input's list variant otherwise.
func rebuildLike(input value.Value, results []value.Value) value.Value {
	switch input := input.(type) {
	case *value.StringValue:
		b := make([]byte, 0, len(results))
		for _, r := range results {
			c, ok := r.(*value.CharValue)
			if !ok {
				return value.NewList(results...)
			}
			b = append(b, c.Value)
		}
		return &value.StringValue{Value: string(b)}
	case *value.SetValue:
		var bits uint64
		for _, r := range results {
			var m int64
			switch r := r.(type) {
			case *value.IntegerValue:
				m = r.Value
			case *value.CharValue:
				m = int64(r.Value)
			default:
				return value.NewList(results...)
			}
			if m < 0 || m > 63 {
				return value.NewList(results...)
			}
			bits |= 1 << uint64(m)
		}
		return &value.SetValue{Bits: bits}
	case *value.ListValue:
		return &value.ListValue{Elements: results, Quoted: input.Quoted}
	}
	return value.NewList(results...)
}

// primMap: A [Q] -> B. Q runs once per element, left to right, on an
// isolated copy of the underlying stack; the value it leaves on top
// becomes the element's image.
func primMap(i *Interp) error {
	q, err := i.popQuote("map")
	if err != nil {
		return err
	}
	a, err := i.pop("map")
	if err != nil {
		return err
	}
	elements, err := aggregateElements("map", a)
	if err != nil {
		return err
	}

	saved := i.saveStack()
	results := make([]value.Value, 0, len(elements))
	for _, el := range elements {
		i.restoreStack(saved)
		i.push(el)
		if err := i.executeSequence(q); err != nil {
			return err
		}
		if len(i.stack) == 0 {
			return domainErr("map", "quotation left no result")
		}
		results = append(results, i.stack[len(i.stack)-1])
	}
	i.restoreStack(saved)
	i.push(rebuildLike(a, results))
	return nil
}

// primFilter: A [Q] -> B, keeping the elements for which Q leaves a
// truthy result. The output kind always matches the input kind since
// kept elements come from the input unchanged.
func primFilter(i *Interp) error {
	keep, _, err := i.partition("filter")
	if err != nil {
		return err
	}
	i.push(keep)
	return nil
}

// primSplit: A [Q] -> B C, the keepers and the rejects.
func primSplit(i *Interp) error {
	keep, reject, err := i.partition("split")
	if err != nil {
		return err
	}
	i.push(keep)
	i.push(reject)
	return nil
}

func (i *Interp) partition(op string) (keep, reject value.Value, err error) {
	q, err := i.popQuote(op)
	if err != nil {
		return nil, nil, err
	}
	a, err := i.pop(op)
	if err != nil {
		return nil, nil, err
	}
	elements, err := aggregateElements(op, a)
	if err != nil {
		return nil, nil, err
	}

	saved := i.saveStack()
	var keeps, rejects []value.Value
	for _, el := range elements {
		i.restoreStack(saved)
		i.push(el)
		if err := i.executeSequence(q); err != nil {
			return nil, nil, err
		}
		truthy := len(i.stack) > 0 && value.Truthy(i.stack[len(i.stack)-1])
		if truthy {
			keeps = append(keeps, el)
		} else {
			rejects = append(rejects, el)
		}
	}
	i.restoreStack(saved)
	return rebuildLike(a, keeps), rebuildLike(a, rejects), nil
}

// primStep: A [Q] -> …, executes Q for each element with the element
// pushed; purely for effect, nothing is collected.
func primStep(i *Interp) error {
	q, err := i.popQuote("step")
	if err != nil {
		return err
	}
	a, err := i.pop("step")
	if err != nil {
		return err
	}
	elements, err := aggregateElements("step", a)
	if err != nil {
		return err
	}
	for _, el := range elements {
		i.push(el)
		if err := i.executeSequence(q); err != nil {
			return err
		}
	}
	return nil
}

// primFold: A I [Q] -> R. Pushes the seed I, then for each element of
// A pushes the element and runs Q.
func primFold(i *Interp) error {
	q, err := i.popQuote("fold")
	if err != nil {
		return err
	}
	seed, err := i.pop("fold")
	if err != nil {
		return err
	}
	a, err := i.pop("fold")
	if err != nil {
		return err
	}
	elements, err := aggregateElements("fold", a)
	if err != nil {
		return err
	}
	i.push(seed)
	for _, el := range elements {
		i.push(el)
		if err := i.executeSequence(q); err != nil {
			return err
		}
	}
	return nil
}

// shortCircuit implements some/all: existential when stopOn is true,
// universal when stopOn is false. The empty aggregate yields !stopOn.
func (i *Interp) shortCircuit(op string, stopOn bool) error {
	q, err := i.popQuote(op)
	if err != nil {
		return err
	}
	a, err := i.pop(op)
	if err != nil {
		return err
	}
	elements, err := aggregateElements(op, a)
	if err != nil {
		return err
	}

	saved := i.saveStack()
	result := !stopOn
	for _, el := range elements {
		i.restoreStack(saved)
		i.push(el)
		if err := i.executeSequence(q); err != nil {
			return err
		}
		truthy := len(i.stack) > 0 && value.Truthy(i.stack[len(i.stack)-1])
		if truthy == stopOn {
			result = stopOn
			break
		}
	}
	i.restoreStack(saved)
	i.push(value.Bool(result))
	return nil
}

func primSome(i *Interp) error {
	return i.shortCircuit("some", true)
}

func primAll(i *Interp) error {
	return i.shortCircuit("all", false)
}

// primTreestep: T [Q] -> …. Descends the tree T; Q runs on every
// leaf, left to right.
func primTreestep(i *Interp) error {
	q, err := i.popQuote("treestep")
	if err != nil {
		return err
	}
	t, err := i.pop("treestep")
	if err != nil {
		return err
	}
	var walk func(node value.Value) error
	walk = func(node value.Value) error {
		if l, ok := node.(*value.ListValue); ok {
			for _, child := range l.Elements {
				if err := walk(child); err != nil {
					return err
				}
			}
			return nil
		}
		i.push(node)
		return i.executeSequence(q)
	}
	return walk(t)
}

// primTreerec: T [O] [C] -> ….
// On a leaf, runs O. On a branch, pushes the branch and the reified
// quotation [[O] [C] treerec], then runs C, which decides how to
// recurse into the children.
func primTreerec(i *Interp) error {
	c, err := i.popQuote("treerec")
	if err != nil {
		return err
	}
	o, err := i.popQuote("treerec")
	if err != nil {
		return err
	}
	t, err := i.pop("treerec")
	if err != nil {
		return err
	}
	if _, ok := t.(*value.ListValue); !ok {
		i.push(t)
		return i.executeSequence(o)
	}
	i.push(t)
	i.push(value.NewQuotation(
		value.NewQuotation(o...),
		value.NewQuotation(c...),
		&value.SymbolValue{Name: "treerec"},
	))
	return i.executeSequence(c)
}

// primTreegenrec: T [O1] [O2] [C] -> ….
// On a leaf, runs O1. On a branch, runs O2 with the branch pushed,
// then pushes [[O1] [O2] [C] treegenrec] and runs C.
func primTreegenrec(i *Interp) error {
	c, err := i.popQuote("treegenrec")
	if err != nil {
		return err
	}
	o2, err := i.popQuote("treegenrec")
	if err != nil {
		return err
	}
	o1, err := i.popQuote("treegenrec")
	if err != nil {
		return err
	}
	t, err := i.pop("treegenrec")
	if err != nil {
		return err
	}
	if _, ok := t.(*value.ListValue); !ok {
		i.push(t)
		return i.executeSequence(o1)
	}
	i.push(t)
	if err := i.executeSequence(o2); err != nil {
		return err
	}
	i.push(value.NewQuotation(
		value.NewQuotation(o1...),
		value.NewQuotation(o2...),
		value.NewQuotation(c...),
		&value.SymbolValue{Name: "treegenrec"},
	))
	return i.executeSequence(c)
}
