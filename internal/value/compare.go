package value

import "strings"

// numeric returns the value as a float64 when the value belongs to
// the numeric group (integer, float, char).
func numeric(v Value) (float64, bool) {
	switch v := v.(type) {
	case *IntegerValue:
		return float64(v.Value), true
	case *FloatValue:
		return v.Value, true
	case *CharValue:
		return float64(v.Value), true
	}
	return 0, false
}

// Equal reports structural equality between two values.
//
// Equality is permissive across the numeric kinds (an integer equals a
// float when they are mathematically equal) and across LIST/QUOTATION
// (equal when the element sequences are equal under the same rule).
// A SET compared with an INTEGER compares by bitmask. Heterogeneous
// comparisons are false.
func Equal(a, b Value) bool {
	if na, ok := numeric(a); ok {
		if nb, ok := numeric(b); ok {
			return na == nb
		}
		return false
	}

	switch a := a.(type) {
	case *BooleanValue:
		if b, ok := b.(*BooleanValue); ok {
			return a.Value == b.Value
		}
	case *StringValue:
		if b, ok := b.(*StringValue); ok {
			return a.Value == b.Value
		}
	case *SymbolValue:
		if b, ok := b.(*SymbolValue); ok {
			return a.Name == b.Name
		}
	case *ListValue:
		if b, ok := b.(*ListValue); ok {
			if len(a.Elements) != len(b.Elements) {
				return false
			}
			for i := range a.Elements {
				if !Equal(a.Elements[i], b.Elements[i]) {
					return false
				}
			}
			return true
		}
	case *SetValue:
		switch b := b.(type) {
		case *SetValue:
			return a.Bits == b.Bits
		case *IntegerValue:
			return a.Bits == uint64(b.Value)
		}
	case *FileValue:
		if b, ok := b.(*FileValue); ok {
			return a.Handle == b.Handle
		}
	}
	return false
}

// rank collapses kinds into the fixed tag order used when comparing
// values of unrelated kinds, so that Compare is total. The numeric
// kinds share a rank, as do LIST and QUOTATION.
func rank(v Value) int {
	switch v.Kind() {
	case KindBoolean:
		return 0
	case KindInteger, KindFloat, KindChar:
		return 1
	case KindSet:
		return 2
	case KindString:
		return 3
	case KindSymbol:
		return 4
	case KindList, KindQuotation:
		return 5
	case KindFile:
		return 6
	}
	return 7
}

// Compare returns -1, 0 or 1 ordering a before, equal to, or after b.
//
// Same-rank comparison uses the natural order on numbers, byte order
// on strings and symbols, elementwise recursive order on lists, and
// bitmask order on sets. Values of unrelated kinds order by a fixed
// tag order so that the ordering is total.
func Compare(a, b Value) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		// A SET still compares against an INTEGER by bitmask.
		if sa, ok := a.(*SetValue); ok {
			if ib, ok := b.(*IntegerValue); ok {
				return compareUint64(sa.Bits, uint64(ib.Value))
			}
		}
		if ia, ok := a.(*IntegerValue); ok {
			if sb, ok := b.(*SetValue); ok {
				return compareUint64(uint64(ia.Value), sb.Bits)
			}
		}
		if ra < rb {
			return -1
		}
		return 1
	}

	switch ra {
	case 0:
		ab := a.(*BooleanValue).Value
		bb := b.(*BooleanValue).Value
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		default:
			return 1
		}
	case 1:
		na, _ := numeric(a)
		nb, _ := numeric(b)
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	case 2:
		return compareUint64(a.(*SetValue).Bits, b.(*SetValue).Bits)
	case 3:
		return strings.Compare(a.(*StringValue).Value, b.(*StringValue).Value)
	case 4:
		return strings.Compare(a.(*SymbolValue).Name, b.(*SymbolValue).Name)
	case 5:
		as := a.(*ListValue).Elements
		bs := b.(*ListValue).Elements
		for i := 0; i < len(as) && i < len(bs); i++ {
			if c := Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
		switch {
		case len(as) < len(bs):
			return -1
		case len(as) > len(bs):
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Truthy reports the truth value of v: booleans by value, numbers by
// comparison with zero, aggregates by non-emptiness, sets by a
// non-zero bitmask. Symbols and files are always true.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case *BooleanValue:
		return v.Value
	case *IntegerValue:
		return v.Value != 0
	case *FloatValue:
		return v.Value != 0
	case *CharValue:
		return v.Value != 0
	case *StringValue:
		return len(v.Value) != 0
	case *ListValue:
		return len(v.Elements) != 0
	case *SetValue:
		return v.Bits != 0
	}
	return true
}

// Clone returns a deep copy of v. List elements are copied
// recursively; string and symbol payloads are immutable Go strings and
// are shared. File handles are borrowed, never duplicated.
func Clone(v Value) Value {
	switch v := v.(type) {
	case *IntegerValue:
		return &IntegerValue{Value: v.Value}
	case *FloatValue:
		return &FloatValue{Value: v.Value}
	case *BooleanValue:
		return Bool(v.Value)
	case *CharValue:
		return &CharValue{Value: v.Value}
	case *StringValue:
		return &StringValue{Value: v.Value}
	case *SymbolValue:
		return &SymbolValue{Name: v.Name}
	case *ListValue:
		elements := make([]Value, len(v.Elements))
		for i, el := range v.Elements {
			elements[i] = Clone(el)
		}
		return &ListValue{Elements: elements, Quoted: v.Quoted}
	case *SetValue:
		return &SetValue{Bits: v.Bits}
	case *FileValue:
		return &FileValue{Handle: v.Handle, Name: v.Name}
	}
	return v
}
