// Package annotate 实现翻译追加：在合格的注释行下方追加一行译文注释。
package annotate

import (
	"context"
	"slices"
	"strings"

	"cmtrans/internal/comment"
	"cmtrans/internal/phrase"
	"cmtrans/pkg/contract"
)

// Options 为 annotate Rewriter 的可选配置。
type Options struct {
	// Inline: 是否也翻译代码后的行内注释（译文行仅沿用代码前的缩进）。
	Inline bool `yaml:"inline" env:"CMTRANS_ANNOTATE_INLINE"`
}

// Rewriter 实现 contract.Rewriter。
type Rewriter struct {
	syntax comment.Syntax
	table  *phrase.Table
	inline bool
}

// New 创建 annotate Rewriter。table 为 nil 时不产生任何译文。
func New(syntax comment.Syntax, table *phrase.Table, opts *Options) *Rewriter {
	r := &Rewriter{syntax: syntax, table: table}
	if opts != nil {
		r.inline = opts.Inline
	}
	return r
}

// Rewrite 单次前向扫描：合格行输出“原行 + 译文行”，其余原样透传。
// 若下一行已等于将生成的译文行（去空白比较），视为已标注，两行一并透传。
func (r *Rewriter) Rewrite(ctx context.Context, fileID contract.FileID, lines []string) (contract.Result, error) {
	out := make([]string, 0, len(lines)+len(lines)/4)
	counts := make(map[contract.Outcome]int, 2)
	for i := 0; i < len(lines); i++ {
		if i&0xff == 0 {
			if err := ctx.Err(); err != nil {
				return contract.Result{}, err
			}
		}
		line := lines[i]
		tr, ok := r.Translate(line)
		if !ok {
			out = append(out, line)
			counts[contract.Keep]++
			continue
		}
		if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == strings.TrimSpace(tr) {
			out = append(out, line, lines[i+1])
			counts[contract.Keep] += 2
			i++
			continue
		}
		if strings.HasSuffix(line, "\r") {
			// 混合行尾文件中 CR 留在行内，译文行沿用原行的行尾。
			tr += "\r"
		}
		out = append(out, line, tr)
		counts[contract.Split]++
	}
	return contract.Result{Lines: out, Changed: !slices.Equal(out, lines), Counts: counts}, nil
}

// Translate 返回单行的译文行；不合格或译文无变化时 ok=false。
func (r *Rewriter) Translate(line string) (string, bool) {
	l, ok := r.syntax.Split(line)
	if !ok {
		return "", false
	}
	prefix := l.Prefix
	if l.Inline() {
		if !r.inline || comment.InString(l.Prefix) {
			return "", false
		}
		prefix = l.Indent()
	}
	if !r.eligible(l.Body) {
		return "", false
	}
	t := r.table.Translate(l.Body)
	if t == "" || t == l.Body || t == phrase.Collapse(l.Body) {
		return "", false
	}
	return r.syntax.Format(prefix, l.Opener, t), true
}

// eligible: 非空、非文件头、且不含标记（含标记视为已标注）。
func (r *Rewriter) eligible(body string) bool {
	return body != "" && !r.syntax.IsHeader(body) && !r.syntax.Contains(body)
}
