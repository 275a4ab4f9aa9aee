package contract

// FileID: 逻辑文件ID（规范化后的路径，正斜杠分隔，跨平台一致）。
type FileID string

// Document: 单文件的行批（Line Batch）。
// 约束：
// - Lines 按原始顺序保存，不含行尾换行符；
// - 以 "\n" 拼接 Lines 即可还原正文（末尾换行体现为最后一个空行）；
// - CRLF/BOM 仅记录原文件的外形，由 Assembler 负责还原。
type Document struct {
	FileID FileID
	Lines  []string
	CRLF   bool
	BOM    bool
}

// Outcome: 单行改写结果标签。
type Outcome int

const (
	// Keep: 原样透传。
	Keep Outcome = iota
	// Clean: 规整为单行。
	Clean
	// Drop: 重复行被丢弃。
	Drop
	// Split: 原行 + 译文行两行输出。
	Split
)

func (o Outcome) String() string {
	switch o {
	case Clean:
		return "clean"
	case Drop:
		return "drop"
	case Split:
		return "split"
	default:
		return "keep"
	}
}

// Result: 一次改写的产物。
type Result struct {
	Lines   []string
	Changed bool
	// Counts 按 Outcome 统计行数（Keep 亦计入）。
	Counts map[Outcome]int
}

// Count 返回指定标签的计数（nil 安全）。
func (r Result) Count(o Outcome) int {
	if r.Counts == nil {
		return 0
	}
	return r.Counts[o]
}
