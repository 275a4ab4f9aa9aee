package lines

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"cmtrans/pkg/contract"
)

// bom 为 UTF-8 字节序标记。
var bom = []byte{0xEF, 0xBB, 0xBF}

// Options 为行拆分器的可选配置（最小必要）。
type Options struct {
	// MaxBytes: 单文件最大字节数。0 表示不限制。
	MaxBytes int64 `yaml:"max_bytes" env:"CMTRANS_SPLITTER_MAX_BYTES" env-default:"0"`
}

// Splitter 将整文件拆为行批。
type Splitter struct {
	maxBytes int64
}

// New 创建行拆分器。
func New(opts *Options) *Splitter {
	var mb int64
	if opts != nil && opts.MaxBytes > 0 {
		mb = opts.MaxBytes
	}
	return &Splitter{maxBytes: mb}
}

// Split 读取全部字节并拆分为行：
// - 非法 UTF-8 返回 ErrNotUTF8；超出上限返回 ErrTooLarge；
// - 剥离 BOM 并记录；
// - 仅当所有 "\n" 都以 "\r\n" 出现时判定为 CRLF 并归一为 LF，混合换行原样保留 "\r"。
func (s *Splitter) Split(ctx context.Context, fileID contract.FileID, r io.Reader) (contract.Document, error) {
	if err := ctx.Err(); err != nil {
		return contract.Document{}, err
	}
	src := r
	if s.maxBytes > 0 {
		// 多读 1 字节用于判定超限
		src = io.LimitReader(r, s.maxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return contract.Document{}, err
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return contract.Document{}, fmt.Errorf("%s: > %d bytes: %w", fileID, s.maxBytes, contract.ErrTooLarge)
	}
	doc := contract.Document{FileID: fileID}
	if bytes.HasPrefix(data, bom) {
		doc.BOM = true
		data = data[len(bom):]
	}
	if !utf8.Valid(data) {
		return contract.Document{}, fmt.Errorf("%s: %w", fileID, contract.ErrNotUTF8)
	}
	text := string(data)
	if n := strings.Count(text, "\n"); n > 0 && strings.Count(text, "\r\n") == n {
		doc.CRLF = true
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	doc.Lines = strings.Split(text, "\n")
	return doc, nil
}

var _ contract.Splitter = (*Splitter)(nil)
