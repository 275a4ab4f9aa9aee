package repair

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmtrans/internal/comment"
	"cmtrans/pkg/contract"
)

func newRepair(t *testing.T, opts *Options) *Rewriter {
	t.Helper()
	r, err := New(comment.Default(), opts)
	require.NoError(t, err)
	return r
}

func run(t *testing.T, r *Rewriter, in []string) contract.Result {
	t.Helper()
	res, err := r.Rewrite(context.Background(), "a.zig", in)
	require.NoError(t, err)
	return res
}

func TestRepairLines(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"triple marker", []string{"// // // real comment"}, []string{"// real comment"}},
		{"indented triple", []string{"    // a // b // c"}, []string{"    // c"}},
		{"empty segments kept", []string{"// // //"}, []string{"// // //"}},
		{"banner kept", []string{"////////////////", "// title", "////////////////"}, []string{"////////////////", "// title", "////////////////"}},
		{"duplicate collapse", []string{"// note", "// note"}, []string{"// note"}},
		{"duplicate run keeps last", []string{"// a", "  // a", "    // a", "x"}, []string{"    // a", "x"}},
		{"code duplicates kept", []string{"x += 1;", "x += 1;"}, []string{"x += 1;", "x += 1;"}},
		{"nested inline", []string{"if (p == null) return; // Handle null // 处理空"}, []string{"if (p == null) return; // 处理空"}},
		{"inline in string", []string{`const u = "http://x"; // link`}, []string{`const u = "http://x"; // link`}},
		{"blank", []string{"", "   ", "\t"}, []string{"", "   ", "\t"}},
		{"plain", []string{"const std = @import(\"std\");", "// one marker", "foo(); // inline"}, []string{"const std = @import(\"std\");", "// one marker", "foo(); // inline"}},
	}
	r := newRepair(t, nil)
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, r, tt.in)
			if d := cmp.Diff(tt.want, res.Lines); d != "" {
				t.Fatalf("lines mismatch (-want +got):\n%s", d)
			}
			assert.Equal(t, cmp.Diff(tt.in, tt.want) != "", res.Changed)
		})
	}
}

func TestRepairCounts(t *testing.T) {
	r := newRepair(t, nil)
	res := run(t, r, []string{"// note", "// note", "// // // x", "", "y(); // a // b"})
	assert.Equal(t, 1, res.Count(contract.Drop))
	assert.Equal(t, 2, res.Count(contract.Clean))
	assert.Equal(t, 2, res.Count(contract.Keep))
	assert.True(t, res.Changed)
}

func TestClassify(t *testing.T) {
	r := newRepair(t, nil)
	cases := []struct {
		cur, next string
		hasNext   bool
		rule      string
		outcome   contract.Outcome
	}{
		{"  ", "", false, RuleBlank, contract.Keep},
		{"// // // x", "// // // x", true, RuleMultiMarker, contract.Clean},
		{"// x", "// x", true, RuleDuplicate, contract.Drop},
		{"// x", "", false, RulePass, contract.Keep},
		{"a(); // b // c", "", false, RuleNestedInline, contract.Clean},
		{`s("//"); // c`, "", false, RuleNestedInline, contract.Keep},
		{"a();", "a();", true, RulePass, contract.Keep},
	}
	for _, tt := range cases {
		name, v := r.Classify(tt.cur, tt.next, tt.hasNext)
		assert.Equal(t, tt.rule, name, tt.cur)
		assert.Equal(t, tt.outcome, v.Outcome, tt.cur)
	}
}

func TestDisableRule(t *testing.T) {
	r := newRepair(t, &Options{Disable: []string{RuleDuplicate, " "}})
	res := run(t, r, []string{"// note", "// note"})
	assert.False(t, res.Changed)
	assert.Equal(t, []string{"// note", "// note"}, res.Lines)

	for _, bad := range []string{RulePass, RuleBlank, "nope"} {
		_, err := New(comment.Default(), &Options{Disable: []string{bad}})
		assert.ErrorIs(t, err, contract.ErrInvalidInput, bad)
	}
}

func TestRepairCustomMarker(t *testing.T) {
	r, err := New(comment.New("#", nil), nil)
	require.NoError(t, err)
	res := run(t, r, []string{"  # a # b # c", "x = 1 # y # z"})
	assert.Equal(t, []string{"  # c", "x = 1 # z"}, res.Lines)
}

func TestRepairCanceled(t *testing.T) {
	r := newRepair(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Rewrite(ctx, "a.zig", []string{"// x"})
	assert.ErrorIs(t, err, context.Canceled)
}
