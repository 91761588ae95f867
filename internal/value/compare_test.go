package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func intv(n int64) *IntegerValue    { return &IntegerValue{Value: n} }
func floatv(f float64) *FloatValue  { return &FloatValue{Value: f} }
func strv(s string) *StringValue    { return &StringValue{Value: s} }
func symv(s string) *SymbolValue    { return &SymbolValue{Name: s} }
func charv(c byte) *CharValue       { return &CharValue{Value: c} }

func TestEqualNumericKinds(t *testing.T) {
	require.True(t, Equal(intv(3), intv(3)))
	require.True(t, Equal(intv(3), floatv(3.0)))
	require.True(t, Equal(floatv(3.0), intv(3)))
	require.True(t, Equal(charv('a'), intv(97)))
	require.False(t, Equal(intv(3), floatv(3.5)))
	require.False(t, Equal(intv(3), strv("3")))
}

func TestEqualListQuotation(t *testing.T) {
	l := NewList(intv(1), intv(2))
	q := NewQuotation(intv(1), floatv(2))
	require.True(t, Equal(l, q))
	require.False(t, Equal(l, NewList(intv(1))))
	require.True(t, Equal(NewList(), NewQuotation()))
}

func TestEqualSetInteger(t *testing.T) {
	require.True(t, Equal(&SetValue{Bits: 5}, intv(5)))
	require.False(t, Equal(&SetValue{Bits: 5}, intv(4)))
	require.True(t, Equal(&SetValue{Bits: 5}, &SetValue{Bits: 5}))
}

func TestEqualHeterogeneousIsFalse(t *testing.T) {
	require.False(t, Equal(strv("a"), symv("a")))
	require.False(t, Equal(True, intv(1)))
	require.False(t, Equal(NewList(), strv("")))
}

func TestCompareSameKind(t *testing.T) {
	require.Equal(t, -1, Compare(intv(1), intv(2)))
	require.Equal(t, 0, Compare(intv(2), floatv(2)))
	require.Equal(t, 1, Compare(floatv(2.5), intv(2)))
	require.Equal(t, -1, Compare(strv("abc"), strv("abd")))
	require.Equal(t, 0, Compare(symv("dup"), symv("dup")))
	require.Equal(t, -1, Compare(&SetValue{Bits: 3}, &SetValue{Bits: 4}))
	require.Equal(t, -1, Compare(False, True))
}

func TestCompareListsRecursively(t *testing.T) {
	require.Equal(t, -1, Compare(NewList(intv(1), intv(2)), NewList(intv(1), intv(3))))
	require.Equal(t, -1, Compare(NewList(intv(1)), NewList(intv(1), intv(0))))
	require.Equal(t, 0, Compare(NewList(intv(1)), NewQuotation(floatv(1))))
}

// Cross-kind comparison falls back to a fixed tag order, so the
// ordering is total: any two values compare consistently.
func TestCompareIsTotal(t *testing.T) {
	values := []Value{
		True, intv(5), floatv(2.5), charv('x'), &SetValue{Bits: 9},
		strv("s"), symv("w"), NewList(intv(1)), &FileValue{},
	}
	for _, a := range values {
		for _, b := range values {
			ab := Compare(a, b)
			ba := Compare(b, a)
			require.Equal(t, -ab, ba, "Compare(%s, %s) not antisymmetric", a, b)
		}
	}
}

func TestTruthiness(t *testing.T) {
	truthy := []Value{
		True, intv(1), intv(-1), floatv(0.5), charv('a'),
		strv("x"), NewList(intv(0)), &SetValue{Bits: 1},
		symv("anything"), &FileValue{},
	}
	for _, v := range truthy {
		require.True(t, Truthy(v), "expected %s to be truthy", v)
	}

	falsy := []Value{
		False, intv(0), floatv(0), charv(0), strv(""), NewList(), &SetValue{},
	}
	for _, v := range falsy {
		require.False(t, Truthy(v), "expected %s to be falsy", v)
	}
}
