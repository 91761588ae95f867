package codegen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/go-joy/internal/interp"
	"github.com/cwbudde/go-joy/internal/value"
)

// expandIncludes preprocesses `"FILE" include` at lowering time: the
// named file is parsed and its terms spliced in place of the pair.
// Expansion recurses into included files; a visited set keyed by
// canonical path breaks cycles. There is no runtime include in the
// compiled artifact.
func expandIncludes(terms []value.Term, baseDir string, visited map[string]bool) ([]value.Term, error) {
	var out []value.Term
	for k := 0; k < len(terms); k++ {
		t := terms[k]
		if t.Value != nil && k+1 < len(terms) {
			if path, ok := includePair(t, terms[k+1]); ok {
				spliced, err := loadInclude(path, baseDir, visited)
				if err != nil {
					return nil, err
				}
				out = append(out, spliced...)
				k++ // skip the include symbol
				continue
			}
		}
		out = append(out, t)
	}
	return out, nil
}

// includePair recognises the two-term pattern "FILE" include.
func includePair(a, b value.Term) (string, bool) {
	s, ok := a.Value.(*value.StringValue)
	if !ok || b.Value == nil {
		return "", false
	}
	sym, ok := b.Value.(*value.SymbolValue)
	if !ok || sym.Name != "include" {
		return "", false
	}
	return s.Value, true
}

func loadInclude(path, baseDir string, visited map[string]bool) ([]value.Term, error) {
	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(baseDir, path)
	}
	canon, err := filepath.Abs(resolved)
	if err != nil {
		canon = resolved
	}
	if real, err := filepath.EvalSymlinks(canon); err == nil {
		canon = real
	}
	if visited[canon] {
		return nil, nil
	}
	visited[canon] = true

	content, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("include %s: %w", path, err)
	}
	prog, perr := interp.ParseSource(string(content))
	if perr != nil {
		return nil, fmt.Errorf("include %s: %w", path, perr)
	}
	return expandIncludes(prog.Terms, filepath.Dir(resolved), visited)
}
