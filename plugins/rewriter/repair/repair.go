// Package repair 修复早先错误标注留下的重复/嵌套注释。
package repair

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"cmtrans/internal/comment"
	"cmtrans/pkg/contract"
)

// Options 为 repair Rewriter 的可选配置。
type Options struct {
	// Disable: 停用的规则名（blank/pass 不可停用）。
	Disable []string `yaml:"disable" env:"CMTRANS_REPAIR_DISABLE" env-separator:","`
}

// Rewriter 实现 contract.Rewriter。规则按固定优先级逐行评估，首个命中者生效。
type Rewriter struct {
	syntax comment.Syntax
	rules  []rule
}

// New 创建 repair Rewriter；未知规则名或停用 blank/pass 返回 ErrInvalidInput。
func New(syntax comment.Syntax, opts *Options) (*Rewriter, error) {
	off := map[string]struct{}{}
	if opts != nil {
		for _, n := range opts.Disable {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			if !slices.Contains(RuleNames(), n) || n == RuleBlank || n == RulePass {
				return nil, fmt.Errorf("repair: cannot disable rule %q: %w", n, contract.ErrInvalidInput)
			}
			off[n] = struct{}{}
		}
	}
	r := &Rewriter{syntax: syntax}
	for _, ru := range allRules {
		if _, skip := off[ru.name]; !skip {
			r.rules = append(r.rules, ru)
		}
	}
	return r, nil
}

// Classify 返回命中规则名与判定。next 为空且 hasNext=false 表示末行。
func (r *Rewriter) Classify(cur, next string, hasNext bool) (string, Verdict) {
	v := view{cur: cur, next: next, hasNext: hasNext}
	for _, ru := range r.rules {
		if out, ok := ru.apply(r.syntax, v); ok {
			return ru.name, out
		}
	}
	return RulePass, keep(cur)
}

// Rewrite 单次前向扫描，至多前瞻一行，不回看。
func (r *Rewriter) Rewrite(ctx context.Context, fileID contract.FileID, lines []string) (contract.Result, error) {
	out := make([]string, 0, len(lines))
	counts := make(map[contract.Outcome]int, 3)
	for i, line := range lines {
		if i&0xff == 0 {
			if err := ctx.Err(); err != nil {
				return contract.Result{}, err
			}
		}
		var next string
		hasNext := i+1 < len(lines)
		if hasNext {
			next = lines[i+1]
		}
		_, v := r.Classify(line, next, hasNext)
		counts[v.Outcome]++
		if v.Outcome == contract.Drop {
			continue
		}
		out = append(out, v.Line)
	}
	return contract.Result{Lines: out, Changed: !slices.Equal(out, lines), Counts: counts}, nil
}
