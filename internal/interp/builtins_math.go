package interp

import (
	"math"

	"github.com/cwbudde/go-joy/internal/value"
)

func init() {
	registerPrims(map[string]Primitive{
		"sin":   unaryMath("sin", math.Sin),
		"cos":   unaryMath("cos", math.Cos),
		"tan":   unaryMath("tan", math.Tan),
		"asin":  unaryMath("asin", math.Asin),
		"acos":  unaryMath("acos", math.Acos),
		"atan":  unaryMath("atan", math.Atan),
		"sinh":  unaryMath("sinh", math.Sinh),
		"cosh":  unaryMath("cosh", math.Cosh),
		"tanh":  unaryMath("tanh", math.Tanh),
		"exp":   unaryMath("exp", math.Exp),
		"log":   unaryMath("log", math.Log),
		"log10": unaryMath("log10", math.Log10),
		"sqrt":  unaryMath("sqrt", math.Sqrt),
		"floor": unaryMath("floor", math.Floor),
		"ceil":  unaryMath("ceil", math.Ceil),

		"atan2": primAtan2,
		"pow":   primPow,
		"trunc": primTrunc,
		"frexp": primFrexp,
		"ldexp": primLdexp,
		"modf":  primModf,
	})
}

func unaryMath(op string, fn func(float64) float64) Primitive {
	return func(i *Interp) error {
		f, err := i.popFloat(op)
		if err != nil {
			return err
		}
		i.push(&value.FloatValue{Value: fn(f)})
		return nil
	}
}

func primAtan2(i *Interp) error {
	x, err := i.popFloat("atan2")
	if err != nil {
		return err
	}
	y, err := i.popFloat("atan2")
	if err != nil {
		return err
	}
	i.push(&value.FloatValue{Value: math.Atan2(y, x)})
	return nil
}

func primPow(i *Interp) error {
	exp, err := i.popFloat("pow")
	if err != nil {
		return err
	}
	base, err := i.popFloat("pow")
	if err != nil {
		return err
	}
	i.push(&value.FloatValue{Value: math.Pow(base, exp)})
	return nil
}

// primTrunc: F -> I, the integer part of F.
func primTrunc(i *Interp) error {
	f, err := i.popFloat("trunc")
	if err != nil {
		return err
	}
	i.push(&value.IntegerValue{Value: int64(math.Trunc(f))})
	return nil
}

// primFrexp: F -> G I, mantissa in [0.5, 1) and binary exponent.
func primFrexp(i *Interp) error {
	f, err := i.popFloat("frexp")
	if err != nil {
		return err
	}
	frac, exp := math.Frexp(f)
	i.push(&value.FloatValue{Value: frac})
	i.push(&value.IntegerValue{Value: int64(exp)})
	return nil
}

// primLdexp: F I -> G, F * 2^I.
func primLdexp(i *Interp) error {
	exp, err := i.popInt("ldexp")
	if err != nil {
		return err
	}
	f, err := i.popFloat("ldexp")
	if err != nil {
		return err
	}
	i.push(&value.FloatValue{Value: math.Ldexp(f, int(exp))})
	return nil
}

// primModf: F -> G H, the fractional and integral parts of F, both
// floats with the sign of F.
func primModf(i *Interp) error {
	f, err := i.popFloat("modf")
	if err != nil {
		return err
	}
	intPart, fracPart := math.Modf(f)
	i.push(&value.FloatValue{Value: fracPart})
	i.push(&value.FloatValue{Value: intPart})
	return nil
}
