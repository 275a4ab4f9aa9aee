package contract

import "errors"

// 最小错误分类（哨兵）。调用方以 errors.Is 判定。
var (
	// ErrRootMissing: 输入根不存在；唯一的整批致命前置条件。
	ErrRootMissing = errors.New("root missing")
	// ErrReadFailed: 单文件读取失败（打开/读取/解码）；跳过该文件。
	ErrReadFailed = errors.New("read failed")
	// ErrWriteFailed: 单文件写回失败；跳过该文件。
	ErrWriteFailed = errors.New("write failed")
	// ErrNotUTF8: 文件内容不是合法 UTF-8。
	ErrNotUTF8 = errors.New("not utf-8")
	// ErrTooLarge: 文件超过配置的大小上限。
	ErrTooLarge = errors.New("file too large")
	// ErrPathInvalid: 目标标识映射为无效/越界路径（例如绝对路径或 '..' 逃逸）。
	ErrPathInvalid = errors.New("path invalid")
	// ErrInvalidInput: 入参违反组件约束（通用哨兵）。
	ErrInvalidInput = errors.New("invalid input")
)
