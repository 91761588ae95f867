// Package codegen lowers a parsed Joy program to a portable C
// translation unit. Linked against the runtime library it behaves
// observably identically to the evaluator, except for the documented
// get/reflection limits.
//
// Layout of a generated unit:
//   - a constant pool holding every literal aggregate in the program,
//     built once at startup,
//   - one C function per user-defined word, lowered term by term,
//   - a main that registers the primitives, installs the user words
//     (with their body quotations as reflection metadata) and runs
//     the top-level terms in source order.
package codegen

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/go-joy/internal/interp"
	"github.com/cwbudde/go-joy/internal/value"
)

// Artifact is a complete compilation output: the generated unit, the
// byte-identical runtime sources and a Makefile.
type Artifact struct {
	Name     string
	Unit     string
	Runtime  map[string]string
	Makefile string
}

// SourceFiles returns every C file of the artifact keyed by filename.
func (a *Artifact) SourceFiles() map[string]string {
	out := map[string]string{a.Name + ".c": a.Unit, "Makefile": a.Makefile}
	for name, content := range a.Runtime {
		out[name] = content
	}
	return out
}

// WriteTo writes the artifact into dir/<name>/.
func (a *Artifact) WriteTo(dir string) (string, error) {
	outDir := filepath.Join(dir, a.Name)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	for name, content := range a.SourceFiles() {
		if err := os.WriteFile(filepath.Join(outDir, name), []byte(content), 0o644); err != nil {
			return "", err
		}
	}
	return outDir, nil
}

// defInstance is one installed clause: a word name bound to a body at
// a specific program position.
type defInstance struct {
	name    string
	cname   string
	body    []value.Value
	poolIdx int
}

type generator struct {
	prims      map[string]bool
	defs       []*defInstance
	defsByName map[string][]*defInstance
	instByDef  map[*value.DefBlock][]*defInstance
	cnameSeen  map[string]int
	pool       []string // C expressions building each pool entry
	poolOf     map[*value.ListValue]int
}

// Generate lowers prog to C. baseDir resolves include paths; name
// becomes the artifact and executable name. The embedded standard
// library is preprocessed into the program so both execution modes
// share one startup dictionary.
func Generate(prog *value.Program, name, baseDir string) (*Artifact, error) {
	libs, err := interp.LibrarySources()
	if err != nil {
		return nil, err
	}
	full := &value.Program{}
	for _, src := range libs {
		libProg, perr := interp.ParseSource(src)
		if perr != nil {
			return nil, fmt.Errorf("standard library: %w", perr)
		}
		full.Terms = append(full.Terms, libProg.Terms...)
	}

	expanded, err := expandIncludes(prog.Terms, baseDir, map[string]bool{})
	if err != nil {
		return nil, err
	}
	full.Terms = append(full.Terms, expanded...)

	g := &generator{
		prims:      interp.PrimitiveNames(),
		defsByName: make(map[string][]*defInstance),
		cnameSeen:  make(map[string]int),
		poolOf:     make(map[*value.ListValue]int),
		instByDef:  make(map[*value.DefBlock][]*defInstance),
	}
	g.collect(full)

	runtime, err := RuntimeFiles()
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Name:     name,
		Unit:     g.emitUnit(full, name),
		Runtime:  runtime,
		Makefile: makefile(name),
	}, nil
}

// collect registers every definition instance and assigns pool slots
// to every literal aggregate, walking the program in source order.
func (g *generator) collect(prog *value.Program) {
	for _, t := range prog.Terms {
		if t.Def != nil {
			for _, c := range t.Def.Clauses {
				inst := &defInstance{name: c.Name, body: c.Body}
				inst.cname = g.uniqueCName(c.Name)
				inst.poolIdx = g.poolIndex(&value.ListValue{Elements: c.Body, Quoted: true})
				g.defs = append(g.defs, inst)
				g.defsByName[c.Name] = append(g.defsByName[c.Name], inst)
				g.instByDef[t.Def] = append(g.instByDef[t.Def], inst)
				g.collectLiterals(c.Body)
			}
			continue
		}
		if l, ok := t.Value.(*value.ListValue); ok {
			g.poolIndex(l)
		}
	}
}

func (g *generator) collectLiterals(terms []value.Value) {
	for _, t := range terms {
		if l, ok := t.(*value.ListValue); ok {
			g.poolIndex(l)
		}
	}
}

func (g *generator) uniqueCName(name string) string {
	base := "usr_" + mangleWord(name)
	g.cnameSeen[base]++
	if n := g.cnameSeen[base]; n > 1 {
		return fmt.Sprintf("%s_%d", base, n)
	}
	return base
}

// poolIndex assigns (or returns) the constant-pool slot for a literal
// aggregate. Nested aggregates build inside the one expression.
func (g *generator) poolIndex(l *value.ListValue) int {
	if idx, ok := g.poolOf[l]; ok {
		return idx
	}
	idx := len(g.pool)
	g.pool = append(g.pool, cExpr(l))
	g.poolOf[l] = idx
	return idx
}

// uniqueDef returns the definition instance a symbol reference
// resolves to, when that resolution is unambiguous across the whole
// program.
func (g *generator) uniqueDef(name string) (*defInstance, bool) {
	insts := g.defsByName[name]
	if len(insts) == 1 {
		return insts[0], true
	}
	return nil, false
}

// emitTerm lowers one executable term.
func (g *generator) emitTerm(sb *strings.Builder, t value.Value) {
	switch t := t.(type) {
	case *value.SymbolValue:
		name := t.Name
		if inst, ok := g.uniqueDef(name); ok {
			fmt.Fprintf(sb, "    %s(ctx);\n", inst.cname)
			return
		}
		if len(g.defsByName[name]) > 1 {
			// Redefined mid-stream: resolve through the dictionary at
			// runtime so each occurrence sees the binding in force.
			fmt.Fprintf(sb, "    joy_exec_name(ctx, %s);\n", cString(name))
			return
		}
		if g.prims[name] {
			fmt.Fprintf(sb, "    %s(ctx);\n", primCName(name))
			return
		}
		switch name {
		case "inf":
			sb.WriteString("    joy_push(ctx, joy_make_float(1.0 / 0.0));\n")
		case "-inf":
			sb.WriteString("    joy_push(ctx, joy_make_float(-1.0 / 0.0));\n")
		case "nan":
			sb.WriteString("    joy_push(ctx, joy_make_float(0.0 / 0.0));\n")
		default:
			fmt.Fprintf(sb, "    joy_exec_name(ctx, %s);\n", cString(name))
		}
	case *value.ListValue:
		fmt.Fprintf(sb, "    joy_push(ctx, joy_value_clone(pool[%d]));\n", g.poolOf[t])
	default:
		fmt.Fprintf(sb, "    joy_push(ctx, %s);\n", cExpr(t))
	}
}

// emitUnit renders the whole translation unit.
func (g *generator) emitUnit(prog *value.Program, name string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "/* %s.c - generated by joy compile; do not edit. */\n\n", name)
	sb.WriteString("#include \"joy_runtime.h\"\n\n")

	if len(g.pool) > 0 {
		fmt.Fprintf(&sb, "static JoyValue *pool[%d];\n\n", len(g.pool))
	}
	sb.WriteString("static void build_pool(void)\n{\n")
	for k, expr := range g.pool {
		fmt.Fprintf(&sb, "    pool[%d] = %s;\n", k, expr)
	}
	sb.WriteString("}\n\n")

	for _, inst := range g.defs {
		fmt.Fprintf(&sb, "static void %s(JoyContext *ctx);\n", inst.cname)
	}
	sb.WriteString("\n")

	for _, inst := range g.defs {
		body := &value.ListValue{Elements: inst.body, Quoted: true}
		fmt.Fprintf(&sb, "/* %s == %s */\n", inst.name, joyBody(body))
		fmt.Fprintf(&sb, "static void %s(JoyContext *ctx)\n{\n", inst.cname)
		if len(inst.body) == 0 {
			sb.WriteString("    (void)ctx;\n")
		}
		for _, t := range inst.body {
			g.emitTerm(&sb, t)
		}
		sb.WriteString("}\n\n")
	}

	sb.WriteString("int main(int argc, char **argv)\n{\n")
	sb.WriteString("    JoyContext *ctx = joy_context_new(argc, argv);\n")
	sb.WriteString("    joy_register_primitives(ctx);\n")
	sb.WriteString("    build_pool();\n")
	for _, t := range prog.Terms {
		if t.Def != nil {
			for _, inst := range g.instByDef[t.Def] {
				fmt.Fprintf(&sb, "    joy_define(ctx, %s, %s, pool[%d]);\n",
					cString(inst.name), inst.cname, inst.poolIdx)
			}
			continue
		}
		g.emitTerm(&sb, t.Value)
	}
	sb.WriteString("    joy_autoput(ctx);\n")
	sb.WriteString("    joy_context_free(ctx);\n")
	sb.WriteString("    return 0;\n")
	sb.WriteString("}\n")
	return sb.String()
}

// joyBody renders a body for the source comment above its function.
func joyBody(body *value.ListValue) string {
	s := body.String()
	return strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
}

// cExpr renders a literal value as a C expression building it.
func cExpr(v value.Value) string {
	switch v := v.(type) {
	case *value.IntegerValue:
		if v.Value == math.MinInt64 {
			return "joy_make_integer(INT64_MIN)"
		}
		return fmt.Sprintf("joy_make_integer(%dLL)", v.Value)
	case *value.FloatValue:
		return fmt.Sprintf("joy_make_float(%s)", cFloat(v.Value))
	case *value.BooleanValue:
		if v.Value {
			return "joy_make_boolean(1)"
		}
		return "joy_make_boolean(0)"
	case *value.CharValue:
		return fmt.Sprintf("joy_make_char(%d)", v.Value)
	case *value.StringValue:
		return fmt.Sprintf("joy_make_string(%s)", cString(v.Value))
	case *value.SymbolValue:
		return fmt.Sprintf("joy_make_symbol(%s)", cString(v.Name))
	case *value.SetValue:
		return fmt.Sprintf("joy_make_set(UINT64_C(0x%x))", v.Bits)
	case *value.ListValue:
		quoted := 0
		if v.Quoted {
			quoted = 1
		}
		parts := make([]string, 0, len(v.Elements)+2)
		parts = append(parts, strconv.Itoa(quoted), strconv.Itoa(len(v.Elements)))
		for _, el := range v.Elements {
			parts = append(parts, cExpr(el))
		}
		return fmt.Sprintf("joy_list_of(%s)", strings.Join(parts, ", "))
	}
	return "joy_make_boolean(0)"
}

// cFloat renders a float as a C double literal.
func cFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "(1.0 / 0.0)"
	case math.IsInf(f, -1):
		return "(-1.0 / 0.0)"
	case math.IsNaN(f):
		return "(0.0 / 0.0)"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// cString renders a C string literal with full escaping. Octal
// escapes are always three digits so a following digit cannot extend
// them.
func cString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch b {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if b < 32 || b > 126 {
				fmt.Fprintf(&sb, `\%03o`, b)
			} else {
				sb.WriteByte(b)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// makefile renders the per-artifact Makefile.
func makefile(name string) string {
	var sb strings.Builder
	sb.WriteString("CC ?= cc\n")
	sb.WriteString("CFLAGS ?= -O2 -std=c11\n")
	sb.WriteString("LDLIBS = -lm\n\n")
	fmt.Fprintf(&sb, "%s: %s.c joy_runtime.c joy_primitives.c joy_runtime.h\n", name, name)
	fmt.Fprintf(&sb, "\t$(CC) $(CFLAGS) -o %s %s.c joy_runtime.c joy_primitives.c $(LDLIBS)\n\n", name, name)
	sb.WriteString("clean:\n")
	fmt.Fprintf(&sb, "\trm -f %s\n", name)
	return sb.String()
}
