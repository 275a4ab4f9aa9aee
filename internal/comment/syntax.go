// Package comment 描述单行注释的文本外形：前缀、起始符与正文。
// 只看标记与空白，不理解宿主语言语法。
package comment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMarker 为单行注释起始标记。
const DefaultMarker = "//"

// DefaultHeaderTags 为结构化文件头标签（正文以其开头的注释不参与翻译）。
var DefaultHeaderTags = []string{"File:", "Chapters"}

// Syntax: 注释外形规则（只读，构造后不变）。
type Syntax struct {
	marker     string
	headerTags []string
	// run 匹配一次“标记出现”：标记本身 + 末字符的连续重复（如 "////"）。
	run *regexp.Regexp
}

// New 构造注释规则；marker 为空时回退为 DefaultMarker。
// headerTags 为 nil 时使用 DefaultHeaderTags，显式空切片表示不识别文件头。
func New(marker string, headerTags []string) Syntax {
	marker = strings.TrimSpace(marker)
	if marker == "" {
		marker = DefaultMarker
	}
	tags := DefaultHeaderTags
	if headerTags != nil {
		tags = make([]string, 0, len(headerTags))
		for _, t := range headerTags {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	last, _ := utf8.DecodeLastRuneInString(marker)
	run := regexp.MustCompile(regexp.QuoteMeta(marker) + regexp.QuoteMeta(string(last)) + "*")
	return Syntax{marker: marker, headerTags: tags, run: run}
}

// Default 返回 "//" 与默认文件头标签。
func Default() Syntax { return New(DefaultMarker, nil) }

// Marker 返回注释起始标记。
func (s Syntax) Marker() string { return s.marker }

// HeaderTags 返回文件头标签副本。
func (s Syntax) HeaderTags() []string { return append([]string(nil), s.headerTags...) }

// Line: 以首个标记切分后的注释行视图（派生，不存储）。
type Line struct {
	// Prefix: 标记之前的文本（缩进或代码）。
	Prefix string
	// Opener: 标记 + 紧随的重复末字符或 '!'（如 "///"、"//!"）。
	Opener string
	// Body: Opener 之后去首尾空白的正文。
	Body string
}

// Inline 报告标记之前是否存在代码（而非纯缩进）。
func (l Line) Inline() bool { return strings.TrimSpace(l.Prefix) != "" }

// Indent 返回 Prefix 的前导空白。
func (l Line) Indent() string {
	return l.Prefix[:len(l.Prefix)-len(strings.TrimLeft(l.Prefix, " \t"))]
}

// Split 按首个标记切分；行内无标记时 ok=false。
func (s Syntax) Split(line string) (Line, bool) {
	loc := s.run.FindStringIndex(line)
	if loc == nil {
		return Line{}, false
	}
	end := loc[1]
	if end < len(line) && line[end] == '!' {
		end++
	}
	return Line{
		Prefix: line[:loc[0]],
		Opener: line[loc[0]:end],
		Body:   strings.TrimSpace(line[end:]),
	}, true
}

// IsComment 报告去首空白后是否以标记开头（整行注释）。
func (s Syntax) IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), s.marker)
}

// Count 统计标记出现次数；连续的末字符重复计为一次。
func (s Syntax) Count(text string) int {
	return len(s.run.FindAllStringIndex(text, -1))
}

// Contains 报告文本中是否出现标记。
func (s Syntax) Contains(text string) bool { return strings.Contains(text, s.marker) }

// Segments 以标记出现为界切分文本（首段为第一个标记之前的内容）。
func (s Syntax) Segments(text string) []string { return s.run.Split(text, -1) }

// LastSegment 返回最后一个非空（去空白后）片段；全部为空时 ok=false。
func (s Syntax) LastSegment(text string) (string, bool) {
	segs := s.Segments(text)
	for i := len(segs) - 1; i >= 1; i-- {
		if t := strings.TrimSpace(segs[i]); t != "" {
			return t, true
		}
	}
	return "", false
}

// IsHeader 报告正文是否为结构化文件头（File:/Chapters 等）。
func (s Syntax) IsHeader(body string) bool {
	for _, t := range s.headerTags {
		if strings.HasPrefix(body, t) {
			return true
		}
	}
	return false
}

// Format 组装单行注释：prefix + opener + " " + body。
// opener 为空时使用标记本身。
func (s Syntax) Format(prefix, opener, body string) string {
	if opener == "" {
		opener = s.marker
	}
	return prefix + opener + " " + body
}

// InString 粗略判断 prefix 中的标记是否落在字符串字面量内（双引号奇数个）。
func InString(prefix string) bool {
	n := 0
	for i := 0; i < len(prefix); i++ {
		switch prefix[i] {
		case '\\':
			i++
		case '"':
			n++
		}
	}
	return n%2 == 1
}
