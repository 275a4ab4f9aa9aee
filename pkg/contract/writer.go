package contract

import (
	"context"
	"io"
)

// Writer: 将改写后的整文件持久化到目标介质。
// 约束：
//  1. 整文件替换，不做部分写；
//  2. 流式写入，按字节透传，不读取/修改业务内容；
//  3. ctx 取消需尽快返回；
//  4. 错误直接上抛（不做重试/回退）。
type Writer interface {
	Write(ctx context.Context, id FileID, r io.Reader) error
}
