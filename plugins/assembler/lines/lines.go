package lines

import (
	"bytes"
	"context"
	"io"
	"strings"

	"cmtrans/pkg/contract"
)

type assembler struct{}

// New 创建行装配器。
func New() contract.Assembler { return &assembler{} }

// Assemble 以 "\n"（CRLF 文件为 "\r\n"）拼接行，并还原 BOM。
func (a *assembler) Assemble(ctx context.Context, doc contract.Document) (io.Reader, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	sep := "\n"
	if doc.CRLF {
		sep = "\r\n"
	}
	var buf bytes.Buffer
	if doc.BOM {
		buf.WriteString("\uFEFF")
	}
	buf.WriteString(strings.Join(doc.Lines, sep))
	return &buf, nil
}

var _ contract.Assembler = (*assembler)(nil)
