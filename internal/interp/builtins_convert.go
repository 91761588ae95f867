package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/go-joy/internal/value"
)

func init() {
	registerPrims(map[string]Primitive{
		"chr":     primChr,
		"ord":     primOrd,
		"strtol":  primStrtol,
		"strtod":  primStrtod,
		"format":  primFormat,
		"formatf": primFormatf,
	})
}

// primChr: I -> C, the character with code I mod 256.
func primChr(i *Interp) error {
	n, err := i.popInt("chr")
	if err != nil {
		return err
	}
	i.push(&value.CharValue{Value: byte(n & 0xff)})
	return nil
}

// primOrd: C -> I. Integers and booleans pass through as their
// numeric value.
func primOrd(i *Interp) error {
	n, err := i.popInt("ord")
	if err != nil {
		return err
	}
	i.push(&value.IntegerValue{Value: n})
	return nil
}

// primStrtol: S I -> J, the string read as an integer in base I.
// Base 0 accepts the 0x/0 prefixes, as strtol(3) does.
func primStrtol(i *Interp) error {
	base, err := i.popInt("strtol")
	if err != nil {
		return err
	}
	s, err := i.popString("strtol")
	if err != nil {
		return err
	}
	n, perr := strconv.ParseInt(strings.TrimSpace(s), int(base), 64)
	if perr != nil {
		// Like strtol, parse the longest valid prefix; an empty one
		// yields zero.
		n = parseIntPrefix(strings.TrimSpace(s), int(base))
	}
	i.push(&value.IntegerValue{Value: n})
	return nil
}

// parseIntPrefix reads the longest integer prefix of s in the given
// base.
func parseIntPrefix(s string, base int) int64 {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	if base == 0 {
		base = 10
		if strings.HasPrefix(s[end:], "0x") || strings.HasPrefix(s[end:], "0X") {
			base = 16
			end += 2
		} else if end < len(s) && s[end] == '0' {
			base = 8
		}
	}
	start := end
	for end < len(s) && digitValue(s[end]) >= 0 && digitValue(s[end]) < base {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], base, 64)
	if err != nil {
		return 0
	}
	return n
}

func digitValue(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'z':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'Z':
		return int(b-'A') + 10
	}
	return -1
}

// primStrtod: S -> F.
func primStrtod(i *Interp) error {
	s, err := i.popString("strtod")
	if err != nil {
		return err
	}
	f, perr := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if perr != nil {
		f = 0
	}
	i.push(&value.FloatValue{Value: f})
	return nil
}

// primFormat: N C I J -> S, formats the integer N with conversion
// character C ('d', 'i', 'o', 'x' or 'X'), field width I and
// precision J, as with printf's "%*.*d" family.
func primFormat(i *Interp) error {
	prec, err := i.popInt("format")
	if err != nil {
		return err
	}
	width, err := i.popInt("format")
	if err != nil {
		return err
	}
	conv, err := i.popChar("format")
	if err != nil {
		return err
	}
	n, err := i.popInt("format")
	if err != nil {
		return err
	}
	var verb string
	switch conv {
	case 'd', 'i':
		verb = "d"
	case 'o':
		verb = "o"
	case 'x':
		verb = "x"
	case 'X':
		verb = "X"
	default:
		return domainErr("format", "unknown conversion '%c'", conv)
	}
	spec := fmt.Sprintf("%%%d.%d%s", width, prec, verb)
	i.push(&value.StringValue{Value: fmt.Sprintf(spec, n)})
	return nil
}

// primFormatf: F C I J -> S, the float analogue of format with
// conversions 'e', 'E', 'f', 'g' and 'G'.
func primFormatf(i *Interp) error {
	prec, err := i.popInt("formatf")
	if err != nil {
		return err
	}
	width, err := i.popInt("formatf")
	if err != nil {
		return err
	}
	conv, err := i.popChar("formatf")
	if err != nil {
		return err
	}
	f, err := i.popFloat("formatf")
	if err != nil {
		return err
	}
	switch conv {
	case 'e', 'E', 'f', 'g', 'G':
	default:
		return domainErr("formatf", "unknown conversion '%c'", conv)
	}
	spec := fmt.Sprintf("%%%d.%d%c", width, prec, conv)
	i.push(&value.StringValue{Value: fmt.Sprintf(spec, f)})
	return nil
}
