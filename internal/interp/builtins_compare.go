package interp

import "github.com/cwbudde/go-joy/internal/value"

func init() {
	registerPrims(map[string]Primitive{
		"=":       primEq,
		"!=":      primNeq,
		"<":       comparison("<", func(c int) bool { return c < 0 }),
		"<=":      comparison("<=", func(c int) bool { return c <= 0 }),
		">":       comparison(">", func(c int) bool { return c > 0 }),
		">=":      comparison(">=", func(c int) bool { return c >= 0 }),
		"equal":   primEq,
		"compare": primCompare,
		"and":     primAnd,
		"or":      primOr,
		"xor":     primXor,
		"not":     primNot,
		"null":    primNull,
		"small":   primSmall,
		"integer": kindTest("integer", value.KindInteger),
		"float":   kindTest("float", value.KindFloat),
		"logical": kindTest("logical", value.KindBoolean),
		"char":    kindTest("char", value.KindChar),
		"string":  kindTest("string", value.KindString),
		"set":     kindTest("set", value.KindSet),
		"file":    kindTest("file", value.KindFile),
		"list":    primIsList,
		"leaf":    primIsLeaf,
	})
}

func primEq(i *Interp) error {
	if err := i.need("=", 2); err != nil {
		return err
	}
	b, _ := i.pop("=")
	a, _ := i.pop("=")
	i.push(value.Bool(value.Equal(a, b)))
	return nil
}

func primNeq(i *Interp) error {
	if err := i.need("!=", 2); err != nil {
		return err
	}
	b, _ := i.pop("!=")
	a, _ := i.pop("!=")
	i.push(value.Bool(!value.Equal(a, b)))
	return nil
}

func comparison(op string, test func(c int) bool) Primitive {
	return func(i *Interp) error {
		if err := i.need(op, 2); err != nil {
			return err
		}
		b, _ := i.pop(op)
		a, _ := i.pop(op)
		i.push(value.Bool(test(value.Compare(a, b))))
		return nil
	}
}

// primCompare: X Y -> I with I in {-1, 0, 1}.
func primCompare(i *Interp) error {
	if err := i.need("compare", 2); err != nil {
		return err
	}
	b, _ := i.pop("compare")
	a, _ := i.pop("compare")
	i.push(&value.IntegerValue{Value: int64(value.Compare(a, b))})
	return nil
}

// binaryLogic applies the set operation when both operands are sets,
// and the boolean operation on truthiness otherwise.
func binaryLogic(i *Interp, op string,
	setFn func(a, b uint64) uint64,
	boolFn func(a, b bool) bool,
) error {
	if err := i.need(op, 2); err != nil {
		return err
	}
	bv, _ := i.pop(op)
	av, _ := i.pop(op)

	if as, ok := av.(*value.SetValue); ok {
		if bs, ok := bv.(*value.SetValue); ok {
			i.push(&value.SetValue{Bits: setFn(as.Bits, bs.Bits)})
			return nil
		}
	}
	i.push(value.Bool(boolFn(value.Truthy(av), value.Truthy(bv))))
	return nil
}

func primAnd(i *Interp) error {
	return binaryLogic(i, "and",
		func(a, b uint64) uint64 { return a & b },
		func(a, b bool) bool { return a && b })
}

func primOr(i *Interp) error {
	return binaryLogic(i, "or",
		func(a, b uint64) uint64 { return a | b },
		func(a, b bool) bool { return a || b })
}

func primXor(i *Interp) error {
	return binaryLogic(i, "xor",
		func(a, b uint64) uint64 { return a ^ b },
		func(a, b bool) bool { return a != b })
}

// primNot complements a set and negates anything else by truthiness.
func primNot(i *Interp) error {
	v, err := i.pop("not")
	if err != nil {
		return err
	}
	if s, ok := v.(*value.SetValue); ok {
		i.push(&value.SetValue{Bits: ^s.Bits})
		return nil
	}
	i.push(value.Bool(!value.Truthy(v)))
	return nil
}

// primNull treats the empty aggregate, 0, 0.0, false and the empty
// set all as null.
func primNull(i *Interp) error {
	v, err := i.pop("null")
	if err != nil {
		return err
	}
	i.push(value.Bool(!value.Truthy(v)))
	return nil
}

// primSmall: aggregates with at most one element, and the numbers 0
// and 1, are small.
func primSmall(i *Interp) error {
	v, err := i.pop("small")
	if err != nil {
		return err
	}
	switch v := v.(type) {
	case *value.IntegerValue:
		i.push(value.Bool(v.Value == 0 || v.Value == 1))
	case *value.FloatValue:
		i.push(value.Bool(v.Value == 0 || v.Value == 1))
	case *value.StringValue:
		i.push(value.Bool(len(v.Value) <= 1))
	case *value.ListValue:
		i.push(value.Bool(len(v.Elements) <= 1))
	case *value.SetValue:
		i.push(value.Bool(v.Bits == 0 || v.Bits&(v.Bits-1) == 0))
	default:
		return typeErr("small", "aggregate or number", v)
	}
	return nil
}

// kindTest builds the X -> X B type predicates. The inspected value
// stays on the stack.
func kindTest(op string, kind value.Kind) Primitive {
	return func(i *Interp) error {
		v, err := i.peek(op)
		if err != nil {
			return err
		}
		i.push(value.Bool(v.Kind() == kind))
		return nil
	}
}

// primIsList accepts both the LIST and QUOTATION variants.
func primIsList(i *Interp) error {
	v, err := i.peek("list")
	if err != nil {
		return err
	}
	_, ok := v.(*value.ListValue)
	i.push(value.Bool(ok))
	return nil
}

// primIsLeaf: anything that is not a list is a leaf.
func primIsLeaf(i *Interp) error {
	v, err := i.peek("leaf")
	if err != nil {
		return err
	}
	_, ok := v.(*value.ListValue)
	i.push(value.Bool(!ok))
	return nil
}
