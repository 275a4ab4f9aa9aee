package contract

import (
	"context"
	"io"
)

// Splitter: 将单文件字节流拆分为行批。
// 约束：
// 1) 输入必须是合法 UTF-8，否则返回 ErrNotUTF8；
// 2) 仅做 BOM 剥离与 CRLF→LF 的最小必要归一，并在 Document 上记录；
// 3) 无内部并发、幂等。
type Splitter interface {
	Split(ctx context.Context, fileID FileID, r io.Reader) (Document, error)
}
