package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	s := Default()
	cases := []struct {
		name string
		in   string
		want Line
	}{
		{"plain", "// define", Line{Prefix: "", Opener: "//", Body: "define"}},
		{"indented", "    //   Print value  ", Line{Prefix: "    ", Opener: "//", Body: "Print value"}},
		{"doc", "/// Returns the sum", Line{Prefix: "", Opener: "///", Body: "Returns the sum"}},
		{"container doc", "//! Module docs", Line{Prefix: "", Opener: "//!", Body: "Module docs"}},
		{"inline", "const x = 1; // one", Line{Prefix: "const x = 1; ", Opener: "//", Body: "one"}},
		{"empty body", "\t//", Line{Prefix: "\t", Opener: "//", Body: ""}},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Split(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	_, ok := s.Split("const y = 2;")
	assert.False(t, ok)
}

func TestIsCommentAndInline(t *testing.T) {
	s := Default()
	assert.True(t, s.IsComment("   // x"))
	assert.False(t, s.IsComment("x // y"))
	assert.False(t, s.IsComment(""))

	l, _ := s.Split("    foo(); // call")
	assert.True(t, l.Inline())
	assert.Equal(t, "    ", l.Indent())
	l, _ = s.Split("  // only")
	assert.False(t, l.Inline())
	assert.Equal(t, "  ", l.Indent())
}

func TestCountRuns(t *testing.T) {
	s := Default()
	assert.Equal(t, 3, s.Count("// // // real comment"))
	assert.Equal(t, 1, s.Count("////////////"))
	assert.Equal(t, 1, s.Count("/// doc"))
	assert.Equal(t, 2, s.Count("// see http://example.com"))
	assert.Equal(t, 0, s.Count("no markers"))
}

func TestLastSegment(t *testing.T) {
	s := Default()
	got, ok := s.LastSegment("// // // real comment")
	require.True(t, ok)
	assert.Equal(t, "real comment", got)

	got, ok = s.LastSegment("  // a // b //   ")
	require.True(t, ok)
	assert.Equal(t, "b", got)

	_, ok = s.LastSegment("// // //")
	assert.False(t, ok)
}

func TestHeaderTags(t *testing.T) {
	s := Default()
	assert.True(t, s.IsHeader("File: chapters-data/code/01/hello.zig"))
	assert.True(t, s.IsHeader("Chapters 1-3"))
	assert.False(t, s.IsHeader("Define a file"))

	none := New("//", []string{})
	assert.False(t, none.IsHeader("File: x"))
	assert.Empty(t, none.HeaderTags())
}

func TestCustomMarker(t *testing.T) {
	s := New("--", nil)
	assert.Equal(t, "--", s.Marker())
	l, ok := s.Split("  ---- Query users")
	require.True(t, ok)
	assert.Equal(t, "----", l.Opener)
	assert.Equal(t, "Query users", l.Body)
	assert.Equal(t, "  -- 查询", s.Format("  ", "", "查询"))

	blank := New("  ", nil)
	assert.Equal(t, DefaultMarker, blank.Marker())
}

func TestInString(t *testing.T) {
	assert.False(t, InString(`const x = 1; `))
	assert.True(t, InString(`const url = "http:`))
	assert.False(t, InString(`print("a\"b", "c"); `))
}
