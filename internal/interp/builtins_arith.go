package interp

import (
	"math"

	"github.com/cwbudde/go-joy/internal/value"
)

func init() {
	registerPrims(map[string]Primitive{
		"+":      primAdd,
		"-":      primSub,
		"*":      primMul,
		"/":      primDiv,
		"div":    primDivmod,
		"rem":    primRem,
		"neg":    primNeg,
		"abs":    primAbs,
		"sign":   primSign,
		"succ":   primSucc,
		"pred":   primPred,
		"min":    primMin,
		"max":    primMax,
		"maxint":  primMaxint,
		"setsize": primSetsize,
	})
}

// asNumber views a value as a number for arithmetic: integers and
// chars as int64, floats as float64.
func asNumber(v value.Value) (iv int64, fv float64, isFloat, ok bool) {
	switch v := v.(type) {
	case *value.IntegerValue:
		return v.Value, 0, false, true
	case *value.CharValue:
		return int64(v.Value), 0, false, true
	case *value.FloatValue:
		return 0, v.Value, true, true
	}
	return 0, 0, false, false
}

// binaryArith pops two numeric operands and applies the integer or
// float variant of the operation. An integer is promoted to float
// when the other operand is a float.
func binaryArith(i *Interp, op string,
	intFn func(a, b int64) (int64, error),
	floatFn func(a, b float64) (float64, error),
) error {
	if err := i.need(op, 2); err != nil {
		return err
	}
	bv, _ := i.pop(op)
	av, _ := i.pop(op)

	ai, af, aFloat, ok := asNumber(av)
	if !ok {
		return typeErr(op, "number", av)
	}
	bi, bf, bFloat, ok := asNumber(bv)
	if !ok {
		return typeErr(op, "number", bv)
	}

	if aFloat || bFloat {
		if !aFloat {
			af = float64(ai)
		}
		if !bFloat {
			bf = float64(bi)
		}
		r, err := floatFn(af, bf)
		if err != nil {
			return err
		}
		i.push(&value.FloatValue{Value: r})
		return nil
	}

	r, err := intFn(ai, bi)
	if err != nil {
		return err
	}
	i.push(&value.IntegerValue{Value: r})
	return nil
}

func primAdd(i *Interp) error {
	return binaryArith(i, "+",
		func(a, b int64) (int64, error) { return a + b, nil },
		func(a, b float64) (float64, error) { return a + b, nil })
}

func primSub(i *Interp) error {
	return binaryArith(i, "-",
		func(a, b int64) (int64, error) { return a - b, nil },
		func(a, b float64) (float64, error) { return a - b, nil })
}

func primMul(i *Interp) error {
	return binaryArith(i, "*",
		func(a, b int64) (int64, error) { return a * b, nil },
		func(a, b float64) (float64, error) { return a * b, nil })
}

// primDiv is true division for floats and truncating division for two
// integers. Integer division by zero is a domain error.
func primDiv(i *Interp) error {
	return binaryArith(i, "/",
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, domainErr("/", "division by zero")
			}
			return a / b, nil
		},
		func(a, b float64) (float64, error) { return a / b, nil })
}

// primDivmod: I J -> K L, integer quotient and remainder.
func primDivmod(i *Interp) error {
	if err := i.need("div", 2); err != nil {
		return err
	}
	b, err := i.popInt("div")
	if err != nil {
		return err
	}
	a, err := i.popInt("div")
	if err != nil {
		return err
	}
	if b == 0 {
		return domainErr("div", "division by zero")
	}
	i.push(&value.IntegerValue{Value: a / b})
	i.push(&value.IntegerValue{Value: a % b})
	return nil
}

// primRem is integer remainder only.
func primRem(i *Interp) error {
	if err := i.need("rem", 2); err != nil {
		return err
	}
	b, err := i.popInt("rem")
	if err != nil {
		return err
	}
	a, err := i.popInt("rem")
	if err != nil {
		return err
	}
	if b == 0 {
		return domainErr("rem", "division by zero")
	}
	i.push(&value.IntegerValue{Value: a % b})
	return nil
}

func primNeg(i *Interp) error {
	v, err := i.pop("neg")
	if err != nil {
		return err
	}
	switch v := v.(type) {
	case *value.IntegerValue:
		i.push(&value.IntegerValue{Value: -v.Value})
	case *value.FloatValue:
		i.push(&value.FloatValue{Value: -v.Value})
	default:
		return typeErr("neg", "number", v)
	}
	return nil
}

func primAbs(i *Interp) error {
	v, err := i.pop("abs")
	if err != nil {
		return err
	}
	switch v := v.(type) {
	case *value.IntegerValue:
		n := v.Value
		if n < 0 {
			n = -n
		}
		i.push(&value.IntegerValue{Value: n})
	case *value.FloatValue:
		i.push(&value.FloatValue{Value: math.Abs(v.Value)})
	default:
		return typeErr("abs", "number", v)
	}
	return nil
}

func primSign(i *Interp) error {
	v, err := i.pop("sign")
	if err != nil {
		return err
	}
	switch v := v.(type) {
	case *value.IntegerValue:
		var s int64
		switch {
		case v.Value > 0:
			s = 1
		case v.Value < 0:
			s = -1
		}
		i.push(&value.IntegerValue{Value: s})
	case *value.FloatValue:
		var s float64
		switch {
		case v.Value > 0:
			s = 1
		case v.Value < 0:
			s = -1
		}
		i.push(&value.FloatValue{Value: s})
	default:
		return typeErr("sign", "number", v)
	}
	return nil
}

// primSucc preserves the operand kind: the successor of a char is the
// next char, of an integer the next integer.
func primSucc(i *Interp) error {
	v, err := i.pop("succ")
	if err != nil {
		return err
	}
	switch v := v.(type) {
	case *value.IntegerValue:
		i.push(&value.IntegerValue{Value: v.Value + 1})
	case *value.CharValue:
		i.push(&value.CharValue{Value: v.Value + 1})
	case *value.FloatValue:
		i.push(&value.FloatValue{Value: v.Value + 1})
	default:
		return typeErr("succ", "number", v)
	}
	return nil
}

func primPred(i *Interp) error {
	v, err := i.pop("pred")
	if err != nil {
		return err
	}
	switch v := v.(type) {
	case *value.IntegerValue:
		i.push(&value.IntegerValue{Value: v.Value - 1})
	case *value.CharValue:
		i.push(&value.CharValue{Value: v.Value - 1})
	case *value.FloatValue:
		i.push(&value.FloatValue{Value: v.Value - 1})
	default:
		return typeErr("pred", "number", v)
	}
	return nil
}

func primMin(i *Interp) error {
	if err := i.need("min", 2); err != nil {
		return err
	}
	b, _ := i.pop("min")
	a, _ := i.pop("min")
	if value.Compare(a, b) <= 0 {
		i.push(a)
	} else {
		i.push(b)
	}
	return nil
}

func primMax(i *Interp) error {
	if err := i.need("max", 2); err != nil {
		return err
	}
	b, _ := i.pop("max")
	a, _ := i.pop("max")
	if value.Compare(a, b) >= 0 {
		i.push(a)
	} else {
		i.push(b)
	}
	return nil
}

func primMaxint(i *Interp) error {
	i.push(&value.IntegerValue{Value: math.MaxInt64})
	return nil
}

// primSetsize pushes the number of representable set members.
func primSetsize(i *Interp) error {
	i.push(&value.IntegerValue{Value: 64})
	return nil
}
