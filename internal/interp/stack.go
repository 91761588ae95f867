package interp

import "github.com/cwbudde/go-joy/internal/value"

// Primitive is an action on the evaluator state. Primitives check
// their own arity and input kinds and return RuntimeError on
// violation.
type Primitive func(i *Interp) error

// primTable maps primitive names to their actions. Category files
// fill it from their init functions.
var primTable = map[string]Primitive{}

func registerPrims(prims map[string]Primitive) {
	for name, fn := range prims {
		primTable[name] = fn
	}
}

// PrimitiveNames returns the names of all built-in primitives; the
// code generator uses this to distinguish primitive calls from user
// word calls.
func PrimitiveNames() map[string]bool {
	out := make(map[string]bool, len(primTable))
	for name := range primTable {
		out[name] = true
	}
	return out
}

// IsPrimitive reports whether name is a built-in primitive.
func IsPrimitive(name string) bool {
	_, ok := primTable[name]
	return ok
}

func (i *Interp) push(v value.Value) {
	i.stack = append(i.stack, v)
}

// need checks the arity contract of a primitive.
func (i *Interp) need(op string, n int) error {
	if len(i.stack) < n {
		return underflowErr(op, n, len(i.stack))
	}
	return nil
}

func (i *Interp) pop(op string) (value.Value, error) {
	if len(i.stack) == 0 {
		return nil, underflowErr(op, 1, 0)
	}
	v := i.stack[len(i.stack)-1]
	i.stack = i.stack[:len(i.stack)-1]
	return v, nil
}

func (i *Interp) peek(op string) (value.Value, error) {
	if len(i.stack) == 0 {
		return nil, underflowErr(op, 1, 0)
	}
	return i.stack[len(i.stack)-1], nil
}

func (i *Interp) popInt(op string) (int64, error) {
	v, err := i.pop(op)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case *value.IntegerValue:
		return v.Value, nil
	case *value.CharValue:
		return int64(v.Value), nil
	case *value.BooleanValue:
		if v.Value {
			return 1, nil
		}
		return 0, nil
	}
	return 0, typeErr(op, "integer", v)
}

func (i *Interp) popFloat(op string) (float64, error) {
	v, err := i.pop(op)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case *value.FloatValue:
		return v.Value, nil
	case *value.IntegerValue:
		return float64(v.Value), nil
	case *value.CharValue:
		return float64(v.Value), nil
	}
	return 0, typeErr(op, "float", v)
}

func (i *Interp) popString(op string) (string, error) {
	v, err := i.pop(op)
	if err != nil {
		return "", err
	}
	s, ok := v.(*value.StringValue)
	if !ok {
		return "", typeErr(op, "string", v)
	}
	return s.Value, nil
}

func (i *Interp) popChar(op string) (byte, error) {
	v, err := i.pop(op)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case *value.CharValue:
		return v.Value, nil
	case *value.IntegerValue:
		return byte(v.Value), nil
	}
	return 0, typeErr(op, "char", v)
}

func (i *Interp) popFile(op string) (*value.FileValue, error) {
	v, err := i.pop(op)
	if err != nil {
		return nil, err
	}
	f, ok := v.(*value.FileValue)
	if !ok {
		return nil, typeErr(op, "file", v)
	}
	return f, nil
}

// popQuote pops a quotation operand. LIST and QUOTATION are accepted
// interchangeably: a bracketed group is code or data depending on the
// operation that consumes it.
func (i *Interp) popQuote(op string) ([]value.Value, error) {
	v, err := i.pop(op)
	if err != nil {
		return nil, err
	}
	l, ok := v.(*value.ListValue)
	if !ok {
		return nil, typeErr(op, "quotation", v)
	}
	return l.Elements, nil
}

func (i *Interp) popList(op string) (*value.ListValue, error) {
	v, err := i.pop(op)
	if err != nil {
		return nil, err
	}
	l, ok := v.(*value.ListValue)
	if !ok {
		return nil, typeErr(op, "list", v)
	}
	return l, nil
}

// saveStack takes a snapshot of the operand stack. Values are
// immutable, so copying the slice of references is as deep a copy as
// the snapshot discipline needs.
func (i *Interp) saveStack() []value.Value {
	return append([]value.Value(nil), i.stack...)
}

// restoreStack reinstates a snapshot. The live stack becomes a fresh
// copy so that popping below the snapshot depth and pushing again can
// never clobber the snapshot's backing storage, which combinators
// reuse across iterations.
func (i *Interp) restoreStack(saved []value.Value) {
	i.stack = append([]value.Value(nil), saved...)
}
