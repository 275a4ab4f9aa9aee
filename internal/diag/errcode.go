package diag

import (
	"context"
	"errors"
	"io/fs"
	"time"

	"cmtrans/pkg/contract"
)

// Code 是最小错误分类代码。
// 仅用于日志/指标汇总，与退出码解耦。
type Code string

const (
	CodeUnknown     Code = "unknown"
	CodeCancel      Code = "cancel"
	CodeRootMissing Code = "root_missing"
	CodeEncoding    Code = "encoding"
	CodeInvariant   Code = "invariant"
	CodeRead        Code = "read"
	CodeWrite       Code = "write"
	CodeIO          Code = "io"
)

// Classify 将错误归为最小分类。
// 说明：仅依赖哨兵错误与标准库错误类型，不做字符串匹配；越具体的原因越优先。
func Classify(err error) Code {
	if err == nil {
		return CodeUnknown
	}
	// 取消/超时优先
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return CodeCancel
	}
	if errors.Is(err, contract.ErrRootMissing) {
		return CodeRootMissing
	}
	if errors.Is(err, contract.ErrNotUTF8) {
		return CodeEncoding
	}
	// 不变量
	if errors.Is(err, contract.ErrInvalidInput) ||
		errors.Is(err, contract.ErrPathInvalid) ||
		errors.Is(err, contract.ErrTooLarge) {
		return CodeInvariant
	}
	if errors.Is(err, contract.ErrWriteFailed) {
		return CodeWrite
	}
	if errors.Is(err, contract.ErrReadFailed) {
		return CodeRead
	}
	// I/O
	var perr *fs.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}
	return CodeUnknown
}

// NowUTC 返回 RFC3339 UTC 时间字符串。
func NowUTC() string { return time.Now().UTC().Format(time.RFC3339) }
