package codegen

import "embed"

// The runtime library ships byte-identical with every compilation:
// the same three source files are written next to each generated
// translation unit.
//
//go:embed runtime/joy_runtime.h runtime/joy_runtime.c runtime/joy_primitives.c
var runtimeFS embed.FS

// RuntimeFiles returns the runtime sources keyed by output filename.
func RuntimeFiles() (map[string]string, error) {
	out := make(map[string]string, 3)
	for _, name := range []string{"joy_runtime.h", "joy_runtime.c", "joy_primitives.c"} {
		content, err := runtimeFS.ReadFile("runtime/" + name)
		if err != nil {
			return nil, err
		}
		out[name] = string(content)
	}
	return out, nil
}
