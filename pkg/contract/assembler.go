package contract

import (
	"context"
	"io"
)

// Assembler: 将行批还原为完整文件字节流（单文件）。
// 约束：
//  1. 还原 Splitter 记录的 BOM 与换行风格；
//  2. Split 后直接 Assemble 必须逐字节还原原文；
//  3. 不引入跨文件状态。
type Assembler interface {
	Assemble(ctx context.Context, doc Document) (io.Reader, error)
}
