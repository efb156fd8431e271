package debug

import "testing"

func TestTreeWriter(t *testing.T) {
	tw := NewTreeWriter()
	if tw.String() != "" {
		t.Fatal("expected empty output from new TreeWriter")
	}

	tw.Line(0, "build %d", 1)
	tw.Field(1, "comment", "/* a\tb */")
	tw.Field(1, "empty", "")
	tw.List(1, "selectors", []string{".a", ".b"})
	tw.List(1, "nothing", nil)

	want := "build 1\n" +
		"  comment: \"/* a\\tb */\"\n" +
		"  empty: \n" +
		"  selectors (2)\n" +
		"    .a\n" +
		"    .b\n"
	if got := tw.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{"no depth", 0, "test", nil, "test\n"},
		{"depth 1", 1, "indented", nil, "  indented\n"},
		{"depth 3", 3, "%s=%d", []any{"x", 5}, "      x=5\n"},
		{"percent in argument", 0, "%s", []any{"w-[50%]"}, "w-[50%]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}
