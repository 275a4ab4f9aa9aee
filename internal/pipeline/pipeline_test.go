package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/multierr"

	"cmtrans/internal/comment"
	"cmtrans/internal/diag"
	"cmtrans/internal/phrase"
	"cmtrans/pkg/contract"
	asmlines "cmtrans/plugins/assembler/lines"
	fsreader "cmtrans/plugins/reader/filesystem"
	"cmtrans/plugins/rewriter/annotate"
	"cmtrans/plugins/rewriter/repair"
	splitlines "cmtrans/plugins/splitter/lines"
	fswriter "cmtrans/plugins/writer/filesystem"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testTable() *phrase.Table {
	return phrase.New([]phrase.Pair{{Source: "define", Target: "定义"}, {Source: "print", Target: "打印"}})
}

func annotateComponents() Components {
	return Components{
		Reader:    fsreader.New(nil),
		Splitter:  splitlines.New(nil),
		Rewriter:  annotate.New(comment.Default(), testTable(), nil),
		Assembler: asmlines.New(),
		Writer:    fswriter.New(nil),
	}
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for p, body := range files {
		fp := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0o755))
		require.NoError(t, os.WriteFile(fp, []byte(body), 0o644))
	}
	return root
}

func readTestFile(t *testing.T, root, p string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(p)))
	require.NoError(t, err)
	return string(b)
}

// UT-PIP-01: 翻译追加写回；无变化文件不写回；二次运行幂等
func TestRunAnnotate(t *testing.T) {
	root := writeTree(t, map[string]string{
		"01/a.zig": "// define\nconst x = 1;\n",
		"01/b.zig": "const y = 2;\n",
		"notes.md": "// define\n",
	})
	old := time.Now().Add(-time.Hour)
	bPath := filepath.Join(root, "01", "b.zig")
	require.NoError(t, os.Chtimes(bPath, old, old))

	sum, err := Run(context.Background(), annotateComponents(), Settings{Roots: []string{root}, Mode: "annotate"}, nil)
	require.NoError(t, err)
	require.NoError(t, sum.Err)
	assert.Equal(t, 2, sum.Seen)
	assert.Equal(t, 1, sum.Modified)
	assert.Equal(t, 0, sum.Failed)
	assert.Equal(t, "// define\n// 定义\nconst x = 1;\n", readTestFile(t, root, "01/a.zig"))
	assert.Equal(t, int64(len("// define\n// 定义\nconst x = 1;\n")), sum.Bytes)
	assert.Equal(t, "// define\n", readTestFile(t, root, "notes.md"))

	// 无变化：摘要相等、未写回、mtime 不变
	b := sum.Files[1]
	assert.False(t, b.Changed)
	assert.Equal(t, b.Before, b.After)
	assert.Zero(t, b.Bytes)
	fi, err := os.Stat(bPath)
	require.NoError(t, err)
	assert.True(t, fi.ModTime().Equal(old), "unchanged file must not be rewritten")

	a := sum.Files[0]
	assert.True(t, a.Changed)
	assert.NotEqual(t, a.Before, a.After)
	assert.Len(t, a.After, 64)
	assert.Equal(t, 1, a.Counts[contract.Split])

	again, err := Run(context.Background(), annotateComponents(), Settings{Roots: []string{root}, Mode: "annotate"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Modified)
	assert.Equal(t, a.After, again.Files[0].Before)
}

// UT-PIP-02: 根缺失为致命错误，且不处理任何文件
func TestRunRootMissing(t *testing.T) {
	root := writeTree(t, map[string]string{"a.zig": "// define\n"})
	sum, err := Run(context.Background(), annotateComponents(), Settings{Roots: []string{root, filepath.Join(root, "missing")}}, nil)
	require.ErrorIs(t, err, contract.ErrRootMissing)
	assert.Zero(t, sum.Seen)
	assert.Equal(t, "// define\n", readTestFile(t, root, "a.zig"))
}

// UT-PIP-03: 读失败跳过并继续
func TestRunReadFailureContinues(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.zig": "// define \xff\n",
		"b.zig": "// print\n",
	})
	sum, err := Run(context.Background(), annotateComponents(), Settings{Roots: []string{root}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Seen)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 1, sum.Modified)
	require.Error(t, sum.Err)
	assert.ErrorIs(t, sum.Err, contract.ErrReadFailed)
	assert.ErrorIs(t, sum.Err, contract.ErrNotUTF8)
	assert.ErrorIs(t, sum.Files[0].Err, contract.ErrReadFailed)
	assert.Equal(t, "// print\n// 打印\n", readTestFile(t, root, "b.zig"))
}

type failWriter struct {
	bad   contract.FileID
	wrote []contract.FileID
}

func (w *failWriter) Write(ctx context.Context, id contract.FileID, r io.Reader) error {
	if id == w.bad {
		return errors.New("disk full")
	}
	_, err := io.Copy(io.Discard, r)
	w.wrote = append(w.wrote, id)
	return err
}

// UT-PIP-04: 写失败跳过并继续；多个错误合并
func TestRunWriteFailureContinues(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.zig": "// define\n",
		"b.zig": "// print\n",
		"c.zig": "\xfe\n",
	})
	comp := annotateComponents()
	w := &failWriter{bad: contract.NormalizeFileID(filepath.Join(root, "a.zig"))}
	comp.Writer = w
	sum, err := Run(context.Background(), comp, Settings{Roots: []string{root}}, diag.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Failed)
	assert.Equal(t, 1, sum.Modified)
	assert.Len(t, multierr.Errors(sum.Err), 2)
	assert.ErrorIs(t, sum.Files[0].Err, contract.ErrWriteFailed)
	assert.ErrorIs(t, sum.Files[2].Err, contract.ErrReadFailed)
	assert.Equal(t, []contract.FileID{contract.NormalizeFileID(filepath.Join(root, "b.zig"))}, w.wrote)
}

// UT-PIP-05: dry-run 只报告不写回
func TestRunDryRun(t *testing.T) {
	root := writeTree(t, map[string]string{"a.zig": "// define\n"})
	sum, err := Run(context.Background(), annotateComponents(), Settings{Roots: []string{root}, DryRun: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Modified)
	assert.Zero(t, sum.Bytes)
	assert.Equal(t, "// define\n", readTestFile(t, root, "a.zig"))
}

// UT-PIP-06: repair 模式保留 BOM 与 CRLF
func TestRunRepairPreservesShape(t *testing.T) {
	root := writeTree(t, map[string]string{"a.zig": "\uFEFF// // // real comment\r\n// note\r\n// note\r\n"})
	rw, err := repair.New(comment.Default(), nil)
	require.NoError(t, err)
	comp := annotateComponents()
	comp.Rewriter = rw
	sum, err := Run(context.Background(), comp, Settings{Roots: []string{root}, Mode: "repair"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Modified)
	assert.Equal(t, "\uFEFF// real comment\r\n// note\r\n", readTestFile(t, root, "a.zig"))
	assert.Equal(t, 1, sum.Files[0].Counts[contract.Drop])
}

// cancelRewriter 在处理第一个文件后取消 ctx。
type cancelRewriter struct {
	cancel context.CancelFunc
	calls  int
}

func (c *cancelRewriter) Rewrite(ctx context.Context, id contract.FileID, lines []string) (contract.Result, error) {
	c.calls++
	c.cancel()
	return contract.Result{Lines: lines}, nil
}

// UT-PIP-07: 文件之间检查取消
func TestRunCancelBetweenFiles(t *testing.T) {
	root := writeTree(t, map[string]string{"a.zig": "x\n", "b.zig": "y\n", "c.zig": "z\n"})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cr := &cancelRewriter{cancel: cancel}
	comp := annotateComponents()
	comp.Rewriter = cr
	sum, err := Run(ctx, comp, Settings{Roots: []string{root}}, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, cr.calls)
	assert.Equal(t, 1, sum.Seen)
}

// UT-PIP-08: 组件缺失与空 roots
func TestRunSanity(t *testing.T) {
	_, err := Run(context.Background(), Components{}, Settings{Roots: []string{"."}}, nil)
	assert.Error(t, err)
	_, err = Run(context.Background(), annotateComponents(), Settings{}, nil)
	assert.Error(t, err)
}

// 终端汇总与日志写出
func TestRunTerminalAndLog(t *testing.T) {
	root := writeTree(t, map[string]string{"a.zig": "// define\n", "b.zig": "\xff"})
	var out strings.Builder
	diag.SetTerminal(diag.NewTerminal(&out, true))
	defer diag.SetTerminal(nil)
	logDir := t.TempDir()
	logger := diag.NewLogger("corr", "debug", logDir)

	sum, err := Run(context.Background(), annotateComponents(), Settings{Roots: []string{root}, Mode: "annotate"}, logger)
	require.NoError(t, err)
	require.NoError(t, logger.Close())
	assert.Equal(t, 1, sum.Failed)

	s := out.String()
	assert.Contains(t, s, "找到 2 个文件")
	assert.Contains(t, s, "✓ 已翻译: ")
	assert.Contains(t, s, "✗ ")
	assert.Contains(t, s, "总计 2 个文件 | 已翻译 1 | 失败 1")

	b, err := os.ReadFile(filepath.Join(logDir, "cmtrans-current.log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"code":"encoding"`)
	assert.Contains(t, string(b), `"corr_id":"corr"`)
}

// FileResult 顺序与清单一致
func TestRunFileOrder(t *testing.T) {
	root := writeTree(t, map[string]string{"b/x.zig": "", "a.zig": "", "b/a/y.zig": ""})
	sum, err := Run(context.Background(), annotateComponents(), Settings{Roots: []string{root}}, nil)
	require.NoError(t, err)
	got := make([]string, 0, len(sum.Files))
	for _, f := range sum.Files {
		rel, _ := filepath.Rel(root, f.FileID.OSPath())
		got = append(got, filepath.ToSlash(rel))
	}
	want := []string{"b/a/y.zig", "b/x.zig", "a.zig"}
	if d := cmp.Diff(want, got, cmpopts.EquateEmpty()); d != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", d)
	}
}
