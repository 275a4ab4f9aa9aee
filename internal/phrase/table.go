// Package phrase 提供只读的短语替换表：按源短语长度降序、整词、忽略大小写地替换。
package phrase

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Pair: 一条源短语 → 目标短语映射。Target 允许为空（替换后被空白折叠吸收）。
type Pair struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

type entry struct {
	Pair
	// length 为排序键（按 rune 计）。
	length int
	re     *regexp.Regexp
}

// Table: 构造后不可变，可在多处并发读取。
type Table struct {
	entries []entry
	index   map[string]int
}

var spaceRe = regexp.MustCompile(`\s+`)

// New 由有序的短语对构造替换表。
// - 源短语去首尾空白后为空的条目被忽略；
// - 忽略大小写后重复的源短语保留首次出现者；
// - 按源短语 rune 长度降序稳定排序，保证长短语先于其子短语被消费。
func New(pairs []Pair) *Table {
	t := &Table{index: make(map[string]int, len(pairs))}
	seen := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		src := strings.TrimSpace(p.Source)
		if src == "" {
			continue
		}
		key := strings.ToLower(src)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		t.entries = append(t.entries, entry{
			Pair:   Pair{Source: src, Target: strings.TrimSpace(p.Target)},
			length: utf8.RuneCountInString(src),
			re:     regexp.MustCompile(`(?i)` + regexp.QuoteMeta(src)),
		})
	}
	sort.SliceStable(t.entries, func(i, j int) bool { return t.entries[i].length > t.entries[j].length })
	for i, e := range t.entries {
		t.index[strings.ToLower(e.Source)] = i
	}
	return t
}

// Builtin 返回内置短语表。
func Builtin() *Table { return New(builtin) }

// BuiltinPairs 返回内置短语对副本（原始顺序）。
func BuiltinPairs() []Pair { return append([]Pair(nil), builtin...) }

// Len 返回有效条目数。
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Pairs 按匹配优先级（长度降序）返回条目副本。
func (t *Table) Pairs() []Pair {
	if t == nil {
		return nil
	}
	out := make([]Pair, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Pair
	}
	return out
}

// Lookup 忽略大小写精确查找源短语。
func (t *Table) Lookup(source string) (string, bool) {
	if t == nil {
		return "", false
	}
	i, ok := t.index[strings.ToLower(strings.TrimSpace(source))]
	if !ok {
		return "", false
	}
	return t.entries[i].Target, true
}

// Translate 对文本做整词替换，返回译文。
// 先折叠空白，再按长度降序逐条替换，最后再次折叠空白并去首尾空白。
// 纯空白输入原样返回；调用方以“译文 == 原文”判定无操作。
func (t *Table) Translate(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	out := Collapse(text)
	if t == nil {
		return out
	}
	for _, e := range t.entries {
		if !e.re.MatchString(out) {
			continue
		}
		out = e.replace(out)
	}
	return Collapse(out)
}

// replace 替换全部位于词边界上的匹配。
// 边界按 Unicode 判定（字母、数字、标记与下划线均为词字符），
// 因此 "errorés"、"用define" 中的子串不会被替换。
func (e entry) replace(s string) string {
	var b strings.Builder
	last, pos := 0, 0
	for pos < len(s) {
		loc := e.re.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if end > start && atBoundary(s, start) && atBoundary(s, end) {
			b.WriteString(s[last:start])
			b.WriteString(e.Target)
			last, pos = end, end
			continue
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		pos = start + max(size, 1)
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// atBoundary: i 两侧恰有一侧为词字符（文本首尾视为非词字符）。
func atBoundary(s string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = isWordRune(r)
	}
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = isWordRune(r)
	}
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// Collapse 将连续空白折叠为单个空格并去首尾空白。
func Collapse(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
