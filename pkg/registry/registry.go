package registry

import (
	"errors"
	"sort"

	"cmtrans/internal/comment"
	"cmtrans/internal/phrase"
	"cmtrans/pkg/contract"
	asmlines "cmtrans/plugins/assembler/lines"
	rfs "cmtrans/plugins/reader/filesystem"
	"cmtrans/plugins/rewriter/annotate"
	"cmtrans/plugins/rewriter/repair"
	splitlines "cmtrans/plugins/splitter/lines"
	wfs "cmtrans/plugins/writer/filesystem"
)

// Env 为工厂的输入：已解码的各组件 Options 与共享只读资源。
// 严格解析（未知字段）在配置层完成；工厂只做构造与语义校验。
type Env struct {
	Syntax comment.Syntax
	// Table 仅 annotate 使用；nil 时 annotate 不产生任何译文。
	Table *phrase.Table

	Reader   rfs.Options
	Splitter splitlines.Options
	Writer   wfs.Options
	Annotate annotate.Options
	Repair   repair.Options
}

// NewReader 工厂签名。
type NewReader func(env Env) (contract.Reader, error)

// NewSplitter 工厂签名。
type NewSplitter func(env Env) (contract.Splitter, error)

// NewRewriter 工厂签名。
type NewRewriter func(env Env) (contract.Rewriter, error)

// NewAssembler 工厂签名。
type NewAssembler func(env Env) (contract.Assembler, error)

// NewWriter 工厂签名。
type NewWriter func(env Env) (contract.Writer, error)

// Reader 工厂注册表（显式、零反射）。
var Reader = map[string]NewReader{
	// fs: 文件系统 Reader（目录递归 + 扩展名过滤）
	"fs": func(env Env) (contract.Reader, error) {
		opts := env.Reader
		return rfs.New(&opts), nil
	},
}

// Splitter 工厂注册表。
var Splitter = map[string]NewSplitter{
	// lines: UTF-8 校验、BOM/CRLF 感知的按行拆分
	"lines": func(env Env) (contract.Splitter, error) {
		opts := env.Splitter
		if opts.MaxBytes < 0 {
			return nil, errors.New("splitter.max_bytes must be >= 0")
		}
		return splitlines.New(&opts), nil
	},
}

// Rewriter 工厂注册表；键即运行模式。
var Rewriter = map[string]NewRewriter{
	// annotate: 在合格注释行下方追加译文行
	"annotate": func(env Env) (contract.Rewriter, error) {
		opts := env.Annotate
		return annotate.New(env.Syntax, env.Table, &opts), nil
	},
	// repair: 清理重复/嵌套注释
	"repair": func(env Env) (contract.Rewriter, error) {
		opts := env.Repair
		return repair.New(env.Syntax, &opts)
	},
}

// Assembler 工厂注册表。
var Assembler = map[string]NewAssembler{
	// lines: 还原 BOM 与换行风格
	"lines": func(env Env) (contract.Assembler, error) { return asmlines.New(), nil },
}

// Writer 工厂注册表。
var Writer = map[string]NewWriter{
	// fs: 文件系统 Writer（原地或镜像目录；默认原子替换）
	"fs": func(env Env) (contract.Writer, error) {
		opts := env.Writer
		return wfs.New(&opts), nil
	},
}

// Names 返回注册表中的实现名（字典序），用于错误提示与帮助信息。
func Names[F any](m map[string]F) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
