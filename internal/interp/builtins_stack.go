package interp

import "github.com/cwbudde/go-joy/internal/value"

func init() {
	registerPrims(map[string]Primitive{
		"id":        primID,
		"dup":       primDup,
		"pop":       primPop,
		"swap":      primSwap,
		"over":      primOver,
		"dup2":      primDup2,
		"dupd":      primDupd,
		"popd":      primPopd,
		"swapd":     primSwapd,
		"rollup":    primRollup,
		"rolldown":  primRolldown,
		"rotate":    primRotate,
		"rollupd":   dipped("rollupd", primRollup),
		"rolldownd": dipped("rolldownd", primRolldown),
		"rotated":   dipped("rotated", primRotate),
		"stack":     primStack,
		"unstack":   primUnstack,
		"choice":    primChoice,
	})
}

func primID(i *Interp) error {
	return nil
}

func primDup(i *Interp) error {
	v, err := i.peek("dup")
	if err != nil {
		return err
	}
	i.push(v)
	return nil
}

func primPop(i *Interp) error {
	_, err := i.pop("pop")
	return err
}

func primSwap(i *Interp) error {
	if err := i.need("swap", 2); err != nil {
		return err
	}
	n := len(i.stack)
	i.stack[n-1], i.stack[n-2] = i.stack[n-2], i.stack[n-1]
	return nil
}

// over: X Y -> X Y X
func primOver(i *Interp) error {
	if err := i.need("over", 2); err != nil {
		return err
	}
	i.push(i.stack[len(i.stack)-2])
	return nil
}

// dup2: X Y -> X Y X Y
func primDup2(i *Interp) error {
	if err := i.need("dup2", 2); err != nil {
		return err
	}
	n := len(i.stack)
	x, y := i.stack[n-2], i.stack[n-1]
	i.push(x)
	i.push(y)
	return nil
}

// rollup: X Y Z -> Z X Y
func primRollup(i *Interp) error {
	if err := i.need("rollup", 3); err != nil {
		return err
	}
	n := len(i.stack)
	x, y, z := i.stack[n-3], i.stack[n-2], i.stack[n-1]
	i.stack[n-3], i.stack[n-2], i.stack[n-1] = z, x, y
	return nil
}

// rolldown: X Y Z -> Y Z X
func primRolldown(i *Interp) error {
	if err := i.need("rolldown", 3); err != nil {
		return err
	}
	n := len(i.stack)
	x, y, z := i.stack[n-3], i.stack[n-2], i.stack[n-1]
	i.stack[n-3], i.stack[n-2], i.stack[n-1] = y, z, x
	return nil
}

// rotate: X Y Z -> Z Y X
func primRotate(i *Interp) error {
	if err := i.need("rotate", 3); err != nil {
		return err
	}
	n := len(i.stack)
	i.stack[n-3], i.stack[n-1] = i.stack[n-1], i.stack[n-3]
	return nil
}

// dipped wraps a shuffle so it operates one slot below the top by
// saving and restoring the topmost value.
func dipped(op string, inner Primitive) Primitive {
	return func(i *Interp) error {
		top, err := i.pop(op)
		if err != nil {
			return err
		}
		if err := inner(i); err != nil {
			if re, ok := err.(*RuntimeError); ok {
				re.Op = op
			}
			i.push(top)
			return err
		}
		i.push(top)
		return nil
	}
}

func primDupd(i *Interp) error {
	return dipped("dupd", primDup)(i)
}

func primPopd(i *Interp) error {
	return dipped("popd", primPop)(i)
}

func primSwapd(i *Interp) error {
	return dipped("swapd", primSwap)(i)
}

// stack: .. X Y Z -> .. X Y Z [Z Y X]
func primStack(i *Interp) error {
	n := len(i.stack)
	elements := make([]value.Value, n)
	for k := 0; k < n; k++ {
		elements[k] = i.stack[n-1-k]
	}
	i.push(value.NewList(elements...))
	return nil
}

// unstack: [Z Y X] -> X Y Z. The list contents become the new stack,
// first element on top.
func primUnstack(i *Interp) error {
	l, err := i.popList("unstack")
	if err != nil {
		return err
	}
	n := len(l.Elements)
	stack := make([]value.Value, n)
	for k := 0; k < n; k++ {
		stack[k] = l.Elements[n-1-k]
	}
	i.stack = stack
	return nil
}

// choice: B T F -> T-or-F
func primChoice(i *Interp) error {
	if err := i.need("choice", 3); err != nil {
		return err
	}
	f, _ := i.pop("choice")
	t, _ := i.pop("choice")
	b, _ := i.pop("choice")
	if value.Truthy(b) {
		i.push(t)
	} else {
		i.push(f)
	}
	return nil
}
