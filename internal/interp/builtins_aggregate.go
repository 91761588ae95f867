package interp

import (
	"math/bits"
	"strings"

	"github.com/cwbudde/go-joy/internal/value"
)

func init() {
	registerPrims(map[string]Primitive{
		"first":    primFirst,
		"rest":     primRest,
		"cons":     primCons,
		"uncons":   primUncons,
		"swons":    primSwons,
		"unswons":  primUnswons,
		"concat":   primConcat,
		"swoncat":  primSwoncat,
		"enconcat": primEnconcat,
		"size":     primSize,
		"at":       primAt,
		"of":       primOf,
		"take":     primTake,
		"drop":     primDrop,
		"in":       primIn,
		"has":      primHas,
		"reverse":  primReverse,
	})
}

// setFirst returns the smallest member of a non-empty set.
func setFirst(s *value.SetValue) int64 {
	return int64(bits.TrailingZeros64(s.Bits))
}

func primFirst(i *Interp) error {
	v, err := i.pop("first")
	if err != nil {
		return err
	}
	switch v := v.(type) {
	case *value.ListValue:
		if len(v.Elements) == 0 {
			return domainErr("first", "empty aggregate")
		}
		i.push(v.Elements[0])
	case *value.StringValue:
		if len(v.Value) == 0 {
			return domainErr("first", "empty aggregate")
		}
		i.push(&value.CharValue{Value: v.Value[0]})
	case *value.SetValue:
		if v.Bits == 0 {
			return domainErr("first", "empty aggregate")
		}
		i.push(&value.IntegerValue{Value: setFirst(v)})
	default:
		return typeErr("first", "aggregate", v)
	}
	return nil
}

func primRest(i *Interp) error {
	v, err := i.pop("rest")
	if err != nil {
		return err
	}
	switch v := v.(type) {
	case *value.ListValue:
		if len(v.Elements) == 0 {
			return domainErr("rest", "empty aggregate")
		}
		i.push(value.NewList(v.Elements[1:]...))
	case *value.StringValue:
		if len(v.Value) == 0 {
			return domainErr("rest", "empty aggregate")
		}
		i.push(&value.StringValue{Value: v.Value[1:]})
	case *value.SetValue:
		if v.Bits == 0 {
			return domainErr("rest", "empty aggregate")
		}
		i.push(&value.SetValue{Bits: v.Bits &^ (1 << uint64(setFirst(v)))})
	default:
		return typeErr("rest", "aggregate", v)
	}
	return nil
}

// consOnto prepends x onto aggregate a.
func consOnto(op string, x, a value.Value) (value.Value, error) {
	switch a := a.(type) {
	case *value.ListValue:
		elements := make([]value.Value, 0, len(a.Elements)+1)
		elements = append(elements, x)
		elements = append(elements, a.Elements...)
		return &value.ListValue{Elements: elements, Quoted: a.Quoted}, nil
	case *value.StringValue:
		c, ok := x.(*value.CharValue)
		if !ok {
			return nil, typeErr(op, "char", x)
		}
		return &value.StringValue{Value: string(c.Value) + a.Value}, nil
	case *value.SetValue:
		var m int64
		switch x := x.(type) {
		case *value.IntegerValue:
			m = x.Value
		case *value.CharValue:
			m = int64(x.Value)
		default:
			return nil, typeErr(op, "small integer", x)
		}
		if m < 0 || m > 63 {
			return nil, domainErr(op, "set member %d out of range 0..63", m)
		}
		return &value.SetValue{Bits: a.Bits | 1<<uint64(m)}, nil
	}
	return nil, typeErr(op, "aggregate", a)
}

// cons: X A -> B
func primCons(i *Interp) error {
	if err := i.need("cons", 2); err != nil {
		return err
	}
	a, _ := i.pop("cons")
	x, _ := i.pop("cons")
	b, err := consOnto("cons", x, a)
	if err != nil {
		return err
	}
	i.push(b)
	return nil
}

// swons: A X -> B
func primSwons(i *Interp) error {
	if err := i.need("swons", 2); err != nil {
		return err
	}
	x, _ := i.pop("swons")
	a, _ := i.pop("swons")
	b, err := consOnto("swons", x, a)
	if err != nil {
		return err
	}
	i.push(b)
	return nil
}

// uncons: A -> First Rest
func primUncons(i *Interp) error {
	v, err := i.pop("uncons")
	if err != nil {
		return err
	}
	switch v := v.(type) {
	case *value.ListValue:
		if len(v.Elements) == 0 {
			return domainErr("uncons", "empty aggregate")
		}
		i.push(v.Elements[0])
		i.push(value.NewList(v.Elements[1:]...))
	case *value.StringValue:
		if len(v.Value) == 0 {
			return domainErr("uncons", "empty aggregate")
		}
		i.push(&value.CharValue{Value: v.Value[0]})
		i.push(&value.StringValue{Value: v.Value[1:]})
	case *value.SetValue:
		if v.Bits == 0 {
			return domainErr("uncons", "empty aggregate")
		}
		m := setFirst(v)
		i.push(&value.IntegerValue{Value: m})
		i.push(&value.SetValue{Bits: v.Bits &^ (1 << uint64(m))})
	default:
		return typeErr("uncons", "aggregate", v)
	}
	return nil
}

// unswons: A -> Rest First
func primUnswons(i *Interp) error {
	if err := primUncons(i); err != nil {
		if re, ok := err.(*RuntimeError); ok {
			re.Op = "unswons"
		}
		return err
	}
	return primSwap(i)
}

// concatValues joins two aggregates of the same kind.
func concatValues(op string, s, t value.Value) (value.Value, error) {
	switch s := s.(type) {
	case *value.ListValue:
		tl, ok := t.(*value.ListValue)
		if !ok {
			return nil, domainErr(op, "aggregate kinds differ: %s and %s", s.Kind(), t.Kind())
		}
		elements := make([]value.Value, 0, len(s.Elements)+len(tl.Elements))
		elements = append(elements, s.Elements...)
		elements = append(elements, tl.Elements...)
		return &value.ListValue{Elements: elements, Quoted: s.Quoted && tl.Quoted}, nil
	case *value.StringValue:
		ts, ok := t.(*value.StringValue)
		if !ok {
			return nil, domainErr(op, "aggregate kinds differ: %s and %s", s.Kind(), t.Kind())
		}
		return &value.StringValue{Value: s.Value + ts.Value}, nil
	case *value.SetValue:
		tv, ok := t.(*value.SetValue)
		if !ok {
			return nil, domainErr(op, "aggregate kinds differ: %s and %s", s.Kind(), t.Kind())
		}
		return &value.SetValue{Bits: s.Bits | tv.Bits}, nil
	}
	return nil, typeErr(op, "aggregate", s)
}

// concat: S T -> U
func primConcat(i *Interp) error {
	if err := i.need("concat", 2); err != nil {
		return err
	}
	t, _ := i.pop("concat")
	s, _ := i.pop("concat")
	u, err := concatValues("concat", s, t)
	if err != nil {
		return err
	}
	i.push(u)
	return nil
}

// swoncat: S T -> U with U = T ++ S
func primSwoncat(i *Interp) error {
	if err := primSwap(i); err != nil {
		return underflowErr("swoncat", 2, len(i.stack))
	}
	if err := primConcat(i); err != nil {
		if re, ok := err.(*RuntimeError); ok {
			re.Op = "swoncat"
		}
		return err
	}
	return nil
}

// enconcat: X S T -> U, the concatenation of S and T with X inserted
// between them.
func primEnconcat(i *Interp) error {
	if err := i.need("enconcat", 3); err != nil {
		return err
	}
	t, _ := i.pop("enconcat")
	s, _ := i.pop("enconcat")
	x, _ := i.pop("enconcat")
	mid, err := consOnto("enconcat", x, emptyLike(t))
	if err != nil {
		return err
	}
	left, err := concatValues("enconcat", s, mid)
	if err != nil {
		return err
	}
	u, err := concatValues("enconcat", left, t)
	if err != nil {
		return err
	}
	i.push(u)
	return nil
}

// emptyLike returns an empty aggregate of the same kind as v, or an
// empty list when v is not an aggregate (the concat that follows will
// report the kind mismatch).
func emptyLike(v value.Value) value.Value {
	switch v := v.(type) {
	case *value.ListValue:
		return &value.ListValue{Quoted: v.Quoted}
	case *value.StringValue:
		return &value.StringValue{}
	case *value.SetValue:
		return &value.SetValue{}
	}
	return &value.ListValue{}
}

func primSize(i *Interp) error {
	v, err := i.pop("size")
	if err != nil {
		return err
	}
	switch v := v.(type) {
	case *value.ListValue:
		i.push(&value.IntegerValue{Value: int64(len(v.Elements))})
	case *value.StringValue:
		i.push(&value.IntegerValue{Value: int64(len(v.Value))})
	case *value.SetValue:
		i.push(&value.IntegerValue{Value: int64(bits.OnesCount64(v.Bits))})
	default:
		return typeErr("size", "aggregate", v)
	}
	return nil
}

// indexInto returns element n of aggregate a.
func indexInto(op string, a value.Value, n int64) (value.Value, error) {
	switch a := a.(type) {
	case *value.ListValue:
		if n < 0 || n >= int64(len(a.Elements)) {
			return nil, domainErr(op, "index %d out of bounds for size %d", n, len(a.Elements))
		}
		return a.Elements[n], nil
	case *value.StringValue:
		if n < 0 || n >= int64(len(a.Value)) {
			return nil, domainErr(op, "index %d out of bounds for size %d", n, len(a.Value))
		}
		return &value.CharValue{Value: a.Value[n]}, nil
	case *value.SetValue:
		members := a.Members()
		if n < 0 || n >= int64(len(members)) {
			return nil, domainErr(op, "index %d out of bounds for size %d", n, len(members))
		}
		return &value.IntegerValue{Value: members[n]}, nil
	}
	return nil, typeErr(op, "aggregate", a)
}

// at: A I -> X
func primAt(i *Interp) error {
	if err := i.need("at", 2); err != nil {
		return err
	}
	n, err := i.popInt("at")
	if err != nil {
		return err
	}
	a, _ := i.pop("at")
	x, err := indexInto("at", a, n)
	if err != nil {
		return err
	}
	i.push(x)
	return nil
}

// of: I A -> X
func primOf(i *Interp) error {
	if err := i.need("of", 2); err != nil {
		return err
	}
	a, _ := i.pop("of")
	n, err := i.popInt("of")
	if err != nil {
		return err
	}
	x, err := indexInto("of", a, n)
	if err != nil {
		return err
	}
	i.push(x)
	return nil
}

// take: A N -> B, the first N elements of A.
func primTake(i *Interp) error {
	if err := i.need("take", 2); err != nil {
		return err
	}
	n, err := i.popInt("take")
	if err != nil {
		return err
	}
	a, _ := i.pop("take")
	if n < 0 {
		n = 0
	}
	switch a := a.(type) {
	case *value.ListValue:
		if n > int64(len(a.Elements)) {
			n = int64(len(a.Elements))
		}
		i.push(value.NewList(a.Elements[:n]...))
	case *value.StringValue:
		if n > int64(len(a.Value)) {
			n = int64(len(a.Value))
		}
		i.push(&value.StringValue{Value: a.Value[:n]})
	case *value.SetValue:
		var bitsOut uint64
		for _, m := range a.Members() {
			if n == 0 {
				break
			}
			bitsOut |= 1 << uint64(m)
			n--
		}
		i.push(&value.SetValue{Bits: bitsOut})
	default:
		return typeErr("take", "aggregate", a)
	}
	return nil
}

// drop: A N -> B, A without its first N elements.
func primDrop(i *Interp) error {
	if err := i.need("drop", 2); err != nil {
		return err
	}
	n, err := i.popInt("drop")
	if err != nil {
		return err
	}
	a, _ := i.pop("drop")
	if n < 0 {
		n = 0
	}
	switch a := a.(type) {
	case *value.ListValue:
		if n > int64(len(a.Elements)) {
			n = int64(len(a.Elements))
		}
		i.push(value.NewList(a.Elements[n:]...))
	case *value.StringValue:
		if n > int64(len(a.Value)) {
			n = int64(len(a.Value))
		}
		i.push(&value.StringValue{Value: a.Value[n:]})
	case *value.SetValue:
		bitsOut := a.Bits
		for _, m := range a.Members() {
			if n == 0 {
				break
			}
			bitsOut &^= 1 << uint64(m)
			n--
		}
		i.push(&value.SetValue{Bits: bitsOut})
	default:
		return typeErr("drop", "aggregate", a)
	}
	return nil
}

// contains reports membership of x in aggregate a.
func contains(op string, a, x value.Value) (bool, error) {
	switch a := a.(type) {
	case *value.ListValue:
		for _, el := range a.Elements {
			if value.Equal(el, x) {
				return true, nil
			}
		}
		return false, nil
	case *value.StringValue:
		c, ok := x.(*value.CharValue)
		if !ok {
			return false, nil
		}
		return strings.IndexByte(a.Value, c.Value) >= 0, nil
	case *value.SetValue:
		var m int64
		switch x := x.(type) {
		case *value.IntegerValue:
			m = x.Value
		case *value.CharValue:
			m = int64(x.Value)
		default:
			return false, nil
		}
		if m < 0 || m > 63 {
			return false, nil
		}
		return a.Bits&(1<<uint64(m)) != 0, nil
	}
	return false, typeErr(op, "aggregate", a)
}

// in: X A -> B
func primIn(i *Interp) error {
	if err := i.need("in", 2); err != nil {
		return err
	}
	a, _ := i.pop("in")
	x, _ := i.pop("in")
	b, err := contains("in", a, x)
	if err != nil {
		return err
	}
	i.push(value.Bool(b))
	return nil
}

// has: A X -> B
func primHas(i *Interp) error {
	if err := i.need("has", 2); err != nil {
		return err
	}
	x, _ := i.pop("has")
	a, _ := i.pop("has")
	b, err := contains("has", a, x)
	if err != nil {
		return err
	}
	i.push(value.Bool(b))
	return nil
}

func primReverse(i *Interp) error {
	v, err := i.pop("reverse")
	if err != nil {
		return err
	}
	switch v := v.(type) {
	case *value.ListValue:
		n := len(v.Elements)
		elements := make([]value.Value, n)
		for k := 0; k < n; k++ {
			elements[k] = v.Elements[n-1-k]
		}
		i.push(value.NewList(elements...))
	case *value.StringValue:
		b := []byte(v.Value)
		for l, r := 0, len(b)-1; l < r; l, r = l+1, r-1 {
			b[l], b[r] = b[r], b[l]
		}
		i.push(&value.StringValue{Value: string(b)})
	case *value.SetValue:
		// Sets are unordered; reversing is the identity.
		i.push(v)
	default:
		return typeErr("reverse", "aggregate", v)
	}
	return nil
}
