package interp

import (
	"embed"
	"fmt"
)

//go:embed lib/base.joy lib/agg.joy
var libFS embed.FS

// libraryFiles are loaded in order at startup: the base library
// first, then the aggregate library.
var libraryFiles = []string{"lib/base.joy", "lib/agg.joy"}

// LoadLibrary parses and installs the embedded standard library.
// A failure here is a startup error; the evaluator must not accept
// user input without the library dictionary.
func (i *Interp) LoadLibrary() error {
	for _, name := range libraryFiles {
		content, err := libFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("standard library %s: %w", name, err)
		}
		prog, perr := ParseSource(string(content))
		if perr != nil {
			return fmt.Errorf("standard library %s: %w", name, perr)
		}
		if rerr := i.RunTerms(prog); rerr != nil {
			return fmt.Errorf("standard library %s: %w", name, rerr)
		}
	}
	return nil
}

// LibrarySources returns the embedded standard library sources in
// load order; the code generator preprocesses them into compiled
// programs so both execution modes share one dictionary.
func LibrarySources() ([]string, error) {
	out := make([]string, 0, len(libraryFiles))
	for _, name := range libraryFiles {
		content, err := libFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("standard library %s: %w", name, err)
		}
		out = append(out, string(content))
	}
	return out, nil
}
