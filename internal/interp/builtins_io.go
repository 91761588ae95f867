package interp

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cwbudde/go-joy/internal/value"
)

func init() {
	registerPrims(map[string]Primitive{
		"put":      primPut,
		"putln":    primPutln,
		"putch":    primPutch,
		"putchars": primPutchars,
		".":        primDot,

		"stdin":  pushStd("stdin"),
		"stdout": pushStd("stdout"),
		"stderr": pushStd("stderr"),

		"fopen":      primFopen,
		"fclose":     primFclose,
		"fflush":     primFflush,
		"feof":       primFeof,
		"ferror":     primFerror,
		"fgetch":     primFgetch,
		"fgets":      primFgets,
		"fread":      primFread,
		"fput":       primFput,
		"fputch":     primFputch,
		"fputchars":  primFputchars,
		"fputstring": primFputchars,
		"fwrite":     primFwrite,
		"fseek":      primFseek,
		"ftell":      primFtell,
		"fremove":    primFremove,
		"frename":    primFrename,
	})
}

// primPut prints TOS in its Joy form and pops it.
func primPut(i *Interp) error {
	v, err := i.pop("put")
	if err != nil {
		return err
	}
	fmt.Fprint(i.out, v.String())
	return nil
}

func primPutln(i *Interp) error {
	v, err := i.pop("putln")
	if err != nil {
		return err
	}
	fmt.Fprintln(i.out, v.String())
	return nil
}

// primPutch prints the character itself, not its quoted form.
func primPutch(i *Interp) error {
	c, err := i.popChar("putch")
	if err != nil {
		return err
	}
	fmt.Fprintf(i.out, "%c", c)
	return nil
}

// primPutchars prints the raw contents of a string.
func primPutchars(i *Interp) error {
	s, err := i.popString("putchars")
	if err != nil {
		return err
	}
	fmt.Fprint(i.out, s)
	return nil
}

// primDot prints TOS followed by a newline and pops it. On an empty
// stack it is a no-op: the same spelling also terminates definition
// blocks, and a trailing dot after a complete program must not fail.
func primDot(i *Interp) error {
	if len(i.stack) == 0 {
		return nil
	}
	v, _ := i.pop(".")
	fmt.Fprintln(i.out, v.String())
	return nil
}

func pushStd(name string) Primitive {
	return func(i *Interp) error {
		var h *os.File
		switch name {
		case "stdin":
			h = os.Stdin
		case "stdout":
			h = os.Stdout
		case "stderr":
			h = os.Stderr
		}
		i.push(&value.FileValue{Handle: h, Name: name})
		return nil
	}
}

// primFopen: P M -> F|false. A failed open pushes boolean false,
// which programs are expected to test.
func primFopen(i *Interp) error {
	mode, err := i.popString("fopen")
	if err != nil {
		return err
	}
	path, err := i.popString("fopen")
	if err != nil {
		return err
	}

	var flag int
	switch strings.TrimSuffix(mode, "b") {
	case "r":
		flag = os.O_RDONLY
	case "w":
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case "a":
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case "r+":
		flag = os.O_RDWR
	case "w+":
		flag = os.O_RDWR | os.O_CREATE | os.O_TRUNC
	case "a+":
		flag = os.O_RDWR | os.O_CREATE | os.O_APPEND
	default:
		return domainErr("fopen", "unknown mode %q", mode)
	}

	f, ferr := os.OpenFile(path, flag, 0o644)
	if ferr != nil {
		i.push(value.False)
		return nil
	}
	i.push(&value.FileValue{Handle: f, Name: path})
	return nil
}

func primFclose(i *Interp) error {
	f, err := i.popFile("fclose")
	if err != nil {
		return err
	}
	if f.Handle != nil {
		f.Handle.Close()
	}
	return nil
}

func primFflush(i *Interp) error {
	f, err := i.popFile("fflush")
	if err != nil {
		return err
	}
	if f.Handle != nil {
		f.Handle.Sync()
	}
	i.push(f)
	return nil
}

// readOneByte reads the next byte of f, going through the shared
// buffered reader for stdin so that fgetch and get interleave
// correctly.
func (i *Interp) readOneByte(f *value.FileValue) (byte, bool) {
	if f.Handle == os.Stdin {
		b, err := i.in.ReadByte()
		return b, err == nil
	}
	if f.Handle == nil {
		return 0, false
	}
	var buf [1]byte
	n, _ := f.Handle.Read(buf[:])
	return buf[0], n == 1
}

// primFeof: F -> F B. A nil handle reports end-of-file.
func primFeof(i *Interp) error {
	f, err := i.popFile("feof")
	if err != nil {
		return err
	}
	i.push(f)
	if f.Handle == nil {
		i.push(value.True)
		return nil
	}
	// Probe one byte ahead and push it back on success.
	if f.Handle == os.Stdin {
		_, perr := i.in.Peek(1)
		i.push(value.Bool(perr != nil))
		return nil
	}
	pos, _ := f.Handle.Seek(0, io.SeekCurrent)
	var buf [1]byte
	n, _ := f.Handle.Read(buf[:])
	if n == 1 {
		f.Handle.Seek(pos, io.SeekStart)
	}
	i.push(value.Bool(n == 0))
	return nil
}

func primFerror(i *Interp) error {
	f, err := i.popFile("ferror")
	if err != nil {
		return err
	}
	i.push(f)
	i.push(value.False)
	return nil
}

// primFgetch: F -> F C|-1. End of input yields the integer -1.
func primFgetch(i *Interp) error {
	f, err := i.popFile("fgetch")
	if err != nil {
		return err
	}
	i.push(f)
	b, ok := i.readOneByte(f)
	if !ok {
		i.push(&value.IntegerValue{Value: -1})
		return nil
	}
	i.push(&value.CharValue{Value: b})
	return nil
}

// primFgets: F -> F S, the next line including its newline, or the
// empty string at end of input.
func primFgets(i *Interp) error {
	f, err := i.popFile("fgets")
	if err != nil {
		return err
	}
	i.push(f)
	var sb strings.Builder
	for {
		b, ok := i.readOneByte(f)
		if !ok {
			break
		}
		sb.WriteByte(b)
		if b == '\n' {
			break
		}
	}
	i.push(&value.StringValue{Value: sb.String()})
	return nil
}

// primFread: F N -> F L, up to N bytes as a list of integers.
func primFread(i *Interp) error {
	n, err := i.popInt("fread")
	if err != nil {
		return err
	}
	f, err := i.popFile("fread")
	if err != nil {
		return err
	}
	i.push(f)
	var elements []value.Value
	for k := int64(0); k < n; k++ {
		b, ok := i.readOneByte(f)
		if !ok {
			break
		}
		elements = append(elements, &value.IntegerValue{Value: int64(b)})
	}
	i.push(value.NewList(elements...))
	return nil
}

// primFput: F X -> F, writes X in its Joy form.
func primFput(i *Interp) error {
	x, err := i.pop("fput")
	if err != nil {
		return err
	}
	f, err := i.popFile("fput")
	if err != nil {
		return err
	}
	if f.Handle != nil {
		fmt.Fprint(f.Handle, x.String())
	}
	i.push(f)
	return nil
}

func primFputch(i *Interp) error {
	c, err := i.popChar("fputch")
	if err != nil {
		return err
	}
	f, err := i.popFile("fputch")
	if err != nil {
		return err
	}
	if f.Handle != nil {
		f.Handle.Write([]byte{c})
	}
	i.push(f)
	return nil
}

func primFputchars(i *Interp) error {
	s, err := i.popString("fputchars")
	if err != nil {
		return err
	}
	f, err := i.popFile("fputchars")
	if err != nil {
		return err
	}
	if f.Handle != nil {
		io.WriteString(f.Handle, s)
	}
	i.push(f)
	return nil
}

// primFwrite: F L -> F, writes the list elements as bytes.
func primFwrite(i *Interp) error {
	l, err := i.popList("fwrite")
	if err != nil {
		return err
	}
	f, err := i.popFile("fwrite")
	if err != nil {
		return err
	}
	buf := make([]byte, 0, len(l.Elements))
	for _, el := range l.Elements {
		switch el := el.(type) {
		case *value.IntegerValue:
			buf = append(buf, byte(el.Value))
		case *value.CharValue:
			buf = append(buf, el.Value)
		default:
			return typeErr("fwrite", "integer or char", el)
		}
	}
	if f.Handle != nil {
		f.Handle.Write(buf)
	}
	i.push(f)
	return nil
}

// primFseek: F P W -> F B, with whence 0/1/2 as in fseek(3). Pushes
// true on success.
func primFseek(i *Interp) error {
	whence, err := i.popInt("fseek")
	if err != nil {
		return err
	}
	pos, err := i.popInt("fseek")
	if err != nil {
		return err
	}
	f, err := i.popFile("fseek")
	if err != nil {
		return err
	}
	i.push(f)
	if whence < 0 || whence > 2 || f.Handle == nil {
		i.push(value.False)
		return nil
	}
	_, serr := f.Handle.Seek(pos, int(whence))
	i.push(value.Bool(serr == nil))
	return nil
}

func primFtell(i *Interp) error {
	f, err := i.popFile("ftell")
	if err != nil {
		return err
	}
	i.push(f)
	if f.Handle == nil {
		i.push(&value.IntegerValue{Value: -1})
		return nil
	}
	pos, serr := f.Handle.Seek(0, io.SeekCurrent)
	if serr != nil {
		pos = -1
	}
	i.push(&value.IntegerValue{Value: pos})
	return nil
}

func primFremove(i *Interp) error {
	path, err := i.popString("fremove")
	if err != nil {
		return err
	}
	i.push(value.Bool(os.Remove(path) == nil))
	return nil
}

func primFrename(i *Interp) error {
	to, err := i.popString("frename")
	if err != nil {
		return err
	}
	from, err := i.popString("frename")
	if err != nil {
		return err
	}
	i.push(value.Bool(os.Rename(from, to) == nil))
	return nil
}
