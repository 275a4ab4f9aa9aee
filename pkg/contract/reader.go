package contract

import (
	"context"
	"io"
)

// Reader: 输入源抽象（文件/目录）。
// 约束：
// 1) List 一次性返回稳定有序的文件清单，供进度显示使用总数；
// 2) FileID 稳定且去平台差异化；
// 3) 根不存在返回 ErrRootMissing；
// 4) 不做解码/业务解析，Open 仅提供字节流；
// 5) 不在内部起并发。
type Reader interface {
	List(ctx context.Context, roots []string) ([]FileID, error)
	Open(ctx context.Context, id FileID) (io.ReadCloser, error)
}
