package interp

import (
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/cwbudde/go-joy/internal/value"
)

func init() {
	registerPrims(map[string]Primitive{
		"system": primSystem,
		"getenv": primGetenv,
		"argc":   primArgc,
		"argv":   primArgv,

		"time":      primTime,
		"clock":     primClock,
		"rand":      primRand,
		"srand":     primSrand,
		"localtime": timeBreakdown("localtime", time.Local),
		"gmtime":    timeBreakdown("gmtime", time.UTC),
		"mktime":    primMktime,
		"strftime":  primStrftime,

		"abort": primAbort,
		"quit":  primQuit,
		"gc":    primGC,
	})
}

// primSystem: S -> I, runs S through the shell and pushes the exit
// status.
func primSystem(i *Interp) error {
	cmdStr, err := i.popString("system")
	if err != nil {
		return err
	}
	cmd := exec.Command("sh", "-c", cmdStr)
	cmd.Stdout = i.out
	cmd.Stderr = i.errw
	cmd.Stdin = os.Stdin
	status := 0
	if runErr := cmd.Run(); runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			status = exitErr.ExitCode()
		} else {
			status = -1
		}
	}
	i.push(&value.IntegerValue{Value: int64(status)})
	return nil
}

// primGetenv: S -> S', the value of the variable or the empty string.
func primGetenv(i *Interp) error {
	name, err := i.popString("getenv")
	if err != nil {
		return err
	}
	i.push(&value.StringValue{Value: os.Getenv(name)})
	return nil
}

func primArgc(i *Interp) error {
	i.push(&value.IntegerValue{Value: int64(len(i.args))})
	return nil
}

func primArgv(i *Interp) error {
	elements := make([]value.Value, len(i.args))
	for k, a := range i.args {
		elements[k] = &value.StringValue{Value: a}
	}
	i.push(value.NewList(elements...))
	return nil
}

func primTime(i *Interp) error {
	i.push(&value.IntegerValue{Value: time.Now().Unix()})
	return nil
}

// primClock pushes the wall-clock microseconds elapsed since the
// evaluator was created; it does not measure processor time.
func primClock(i *Interp) error {
	i.push(&value.IntegerValue{Value: time.Since(i.startTime).Microseconds()})
	return nil
}

// primRand pushes a value in 0..2^31-1, as rand(3) does.
func primRand(i *Interp) error {
	i.push(&value.IntegerValue{Value: i.rng.Int63n(1 << 31)})
	return nil
}

func primSrand(i *Interp) error {
	seed, err := i.popInt("srand")
	if err != nil {
		return err
	}
	i.rng.Seed(seed)
	return nil
}

// timeBreakdown builds localtime/gmtime: I -> L, where L is the
// 9-integer breakdown [sec min hour mday mon year wday yday isdst].
func timeBreakdown(op string, loc *time.Location) Primitive {
	return func(i *Interp) error {
		secs, err := i.popInt(op)
		if err != nil {
			return err
		}
		t := time.Unix(secs, 0).In(loc)
		isdst := int64(0)
		if t.IsDST() {
			isdst = 1
		}
		i.push(value.NewList(
			&value.IntegerValue{Value: int64(t.Second())},
			&value.IntegerValue{Value: int64(t.Minute())},
			&value.IntegerValue{Value: int64(t.Hour())},
			&value.IntegerValue{Value: int64(t.Day())},
			&value.IntegerValue{Value: int64(t.Month())},
			&value.IntegerValue{Value: int64(t.Year())},
			&value.IntegerValue{Value: int64(t.Weekday())},
			&value.IntegerValue{Value: int64(t.YearDay())},
			&value.IntegerValue{Value: isdst},
		))
		return nil
	}
}

// popTimeList pops the 9-integer time breakdown.
func (i *Interp) popTimeList(op string) ([]int64, error) {
	l, err := i.popList(op)
	if err != nil {
		return nil, err
	}
	if len(l.Elements) != 9 {
		return nil, domainErr(op, "time list must have 9 members, got %d", len(l.Elements))
	}
	out := make([]int64, 9)
	for k, el := range l.Elements {
		n, ok := el.(*value.IntegerValue)
		if !ok {
			return nil, typeErr(op, "integer", el)
		}
		out[k] = n.Value
	}
	return out, nil
}

// primMktime: L -> I, the local-time seconds for a 9-integer
// breakdown. The wday/yday/isdst members are recomputed, as mktime(3)
// does.
func primMktime(i *Interp) error {
	tl, err := i.popTimeList("mktime")
	if err != nil {
		return err
	}
	t := time.Date(int(tl[5]), time.Month(tl[4]), int(tl[3]),
		int(tl[2]), int(tl[1]), int(tl[0]), 0, time.Local)
	i.push(&value.IntegerValue{Value: t.Unix()})
	return nil
}

// primStrftime: L S -> S', formats a 9-integer time breakdown with
// the strftime(3) conversion set.
func primStrftime(i *Interp) error {
	format, err := i.popString("strftime")
	if err != nil {
		return err
	}
	tl, err := i.popTimeList("strftime")
	if err != nil {
		return err
	}
	t := time.Date(int(tl[5]), time.Month(tl[4]), int(tl[3]),
		int(tl[2]), int(tl[1]), int(tl[0]), 0, time.Local)
	i.push(&value.StringValue{Value: strftime(t, format)})
	return nil
}

func primAbort(i *Interp) error {
	return &ExitError{Code: 1}
}

func primQuit(i *Interp) error {
	return &ExitError{Code: 0}
}

// primGC is a no-op: aggregate lifetime is handled by ownership in
// the compiled runtime and by the host collector here.
func primGC(i *Interp) error {
	return nil
}

// canonicalPath resolves a path for the include cycle check.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
