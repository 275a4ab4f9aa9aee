package repair

import (
	"strings"

	"cmtrans/internal/comment"
	"cmtrans/pkg/contract"
)

// Rule 名称（按优先级）。
const (
	RuleBlank        = "blank"
	RuleMultiMarker  = "multi-marker"
	RuleDuplicate    = "duplicate"
	RuleNestedInline = "nested-inline"
	RulePass         = "pass"
)

// RuleNames 返回全部规则名（优先级顺序）。
func RuleNames() []string {
	return []string{RuleBlank, RuleMultiMarker, RuleDuplicate, RuleNestedInline, RulePass}
}

// Verdict: 单条规则对当前行的判定。
type Verdict struct {
	Outcome contract.Outcome
	// Line 为 Keep/Clean 时的输出行；Drop 时忽略。
	Line string
}

// view: 规则可见的窗口（当前行 + 至多一行前瞻）。
type view struct {
	cur     string
	next    string
	hasNext bool
}

// rule 命中时返回 ok=true，后续规则不再评估。
type rule struct {
	name  string
	apply func(s comment.Syntax, v view) (Verdict, bool)
}

func keep(line string) Verdict { return Verdict{Outcome: contract.Keep, Line: line} }

func blankRule(_ comment.Syntax, v view) (Verdict, bool) {
	if strings.TrimSpace(v.cur) != "" {
		return Verdict{}, false
	}
	return keep(v.cur), true
}

// 整行注释中出现 ≥3 次标记：保留最后一个非空片段。
func multiMarkerRule(s comment.Syntax, v view) (Verdict, bool) {
	if !s.IsComment(v.cur) || s.Count(v.cur) < 3 {
		return Verdict{}, false
	}
	seg, ok := s.LastSegment(v.cur)
	if !ok {
		return keep(v.cur), true
	}
	l, _ := s.Split(v.cur)
	return Verdict{Outcome: contract.Clean, Line: s.Format(l.Prefix, "", seg)}, true
}

// 整行注释与下一行去空白后逐字节相同：丢弃当前行（连续重复仅保留最后一行）。
func duplicateRule(s comment.Syntax, v view) (Verdict, bool) {
	if !v.hasNext || !s.IsComment(v.cur) {
		return Verdict{}, false
	}
	if strings.TrimSpace(v.cur) != strings.TrimSpace(v.next) {
		return Verdict{}, false
	}
	return Verdict{Outcome: contract.Drop}, true
}

// 代码后的行内注释内再次出现标记：code + marker + " " + 最后片段。
// 代码部分引号未闭合时标记位于字符串字面量内，原样保留。
func nestedInlineRule(s comment.Syntax, v view) (Verdict, bool) {
	l, ok := s.Split(v.cur)
	if !ok || !l.Inline() || s.Count(v.cur) < 2 {
		return Verdict{}, false
	}
	if comment.InString(l.Prefix) {
		return keep(v.cur), true
	}
	seg, ok := s.LastSegment(v.cur)
	if !ok {
		return keep(v.cur), true
	}
	return Verdict{Outcome: contract.Clean, Line: s.Format(l.Prefix, "", seg)}, true
}

func passRule(_ comment.Syntax, v view) (Verdict, bool) { return keep(v.cur), true }

var allRules = []rule{
	{RuleBlank, blankRule},
	{RuleMultiMarker, multiMarkerRule},
	{RuleDuplicate, duplicateRule},
	{RuleNestedInline, nestedInlineRule},
	{RulePass, passRule},
}
