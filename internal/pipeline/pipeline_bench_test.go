package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cmtrans/internal/comment"
	"cmtrans/internal/phrase"
	"cmtrans/pkg/contract"
	asmlines "cmtrans/plugins/assembler/lines"
	fsreader "cmtrans/plugins/reader/filesystem"
	"cmtrans/plugins/rewriter/annotate"
	splitlines "cmtrans/plugins/splitter/lines"
)

// discardWriter 丢弃所有输出，避免磁盘开销。
type discardWriter struct{}

func (discardWriter) Write(ctx context.Context, id contract.FileID, r io.Reader) error {
	_, err := io.Copy(io.Discard, r)
	return err
}

// BenchmarkPipeline 测试完整流水线（内置短语表，输出丢弃）的性能。
func BenchmarkPipeline(b *testing.B) {
	for _, n := range []int{10, 100} {
		b.Run(fmt.Sprintf("files=%d", n), func(b *testing.B) {
			root := b.TempDir()
			body := strings.Repeat("// Import the standard library\nconst std = @import(\"std\");\n    // Print the value\n\n", 50)
			for i := 0; i < n; i++ {
				if err := os.WriteFile(filepath.Join(root, fmt.Sprintf("f%03d.zig", i)), []byte(body), 0o644); err != nil {
					b.Fatal(err)
				}
			}
			comp := Components{
				Reader:    fsreader.New(nil),
				Splitter:  splitlines.New(nil),
				Rewriter:  annotate.New(comment.Default(), phrase.Builtin(), nil),
				Assembler: asmlines.New(),
				Writer:    discardWriter{},
			}
			set := Settings{Roots: []string{root}, Mode: "annotate"}
			ctx := context.Background()
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Run(ctx, comp, set, nil); err != nil {
					b.Fatalf("运行失败: %v", err)
				}
			}
		})
	}
}
