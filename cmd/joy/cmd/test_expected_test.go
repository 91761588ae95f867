package cmd

import "testing"

func TestParseExpected(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
		ok     bool
	}{
		{
			name:   "single line",
			source: "2 3 + .\n(* expected:\n5\n*)\n",
			want:   "5\n",
			ok:     true,
		},
		{
			name:   "multiple lines",
			source: "(* expected:\n5\n[1 4 9]\n*)\n2 3 + .",
			want:   "5\n[1 4 9]\n",
			ok:     true,
		},
		{
			name:   "no marker",
			source: "2 3 + .",
			ok:     false,
		},
		{
			name:   "marker without closing comment",
			source: "(* expected:\n5\n",
			ok:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseExpected(tt.source)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("expected block = %q, want %q", got, tt.want)
			}
		})
	}
}
