package contract

import "context"

// Rewriter: 单文件行级改写器（注释翻译追加 / 重复注释修复）。
// 约束：
//  1. 单次前向扫描，最多向前看一行，不回看；
//  2. 不修改入参切片；
//  3. Changed 仅在输出与输入逐行不同时为 true；
//  4. 无 I/O、无内部并发。
type Rewriter interface {
	Rewrite(ctx context.Context, fileID FileID, lines []string) (Result, error)
}
