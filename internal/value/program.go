package value

// Program is the parsed form of a Joy source: a flat, ordered
// sequence of terms executed left to right.
type Program struct {
	Terms []Term
}

// Term is one element of a program: either a value (a literal or a
// symbol reference) or a definition block. Exactly one field is set.
type Term struct {
	Value Value
	Def   *DefBlock
}

// DefBlock is a DEFINE/LIBRA/CONST block or a MODULE…END group.
// Definitions are not evaluated at parse time; the block is installed
// into the dictionary when execution reaches it, so that a program may
// redefine a name mid-stream and later occurrences see the new body.
type DefBlock struct {
	// Module is the module name for MODULE…END groups, empty for
	// plain definition blocks.
	Module  string
	Clauses []Clause
}

// Clause is a single `NAME == BODY` definition.
type Clause struct {
	Name string
	Body []Value
}

// Append adds a value term to the program.
func (p *Program) Append(v Value) {
	p.Terms = append(p.Terms, Term{Value: v})
}

// AppendDef adds a definition block to the program.
func (p *Program) AppendDef(d *DefBlock) {
	p.Terms = append(p.Terms, Term{Def: d})
}
