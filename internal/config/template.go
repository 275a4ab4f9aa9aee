package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"cmtrans/internal/phrase"
	rfs "cmtrans/plugins/reader/filesystem"
	"cmtrans/plugins/rewriter/annotate"
	"cmtrans/plugins/rewriter/repair"
	splitlines "cmtrans/plugins/splitter/lines"
	wfs "cmtrans/plugins/writer/filesystem"
)

// 模板文件名。
const (
	TemplatePhrasesFile = "phrases.yaml"
	TemplateEnvFile     = ".env"
)

// DefaultTemplateConfig 返回一个“可运行”的默认配置模板，包含全部键。
func DefaultTemplateConfig() Config {
	return Config{
		Mode:       "annotate",
		Roots:      []string{"chapters-data/code"},
		Logging:    Logging{Level: "info", Dir: "logs"},
		Comment:    Comment{Marker: "//", HeaderTags: []string{"File:", "Chapters"}},
		Phrases:    Phrases{Files: []string{TemplatePhrasesFile}},
		Components: Components{Reader: "fs", Splitter: "lines", Assembler: "lines", Writer: "fs"},
		Reader: rfs.Options{
			Extensions:      []string{".zig"},
			ExcludeDirNames: []string{".git", ".zig-cache", "zig-cache", "zig-out"},
			BufSize:         64 * 1024,
		},
		Splitter: splitlines.Options{MaxBytes: 0},
		Writer:   wfs.Options{BufSize: 64 * 1024},
		Annotate: annotate.Options{},
		Repair:   repair.Options{Disable: []string{}},
	}
}

// templatePhrases: phrases.yaml 示例条目（覆盖内置表的同名短语）。
var templatePhrases = []phrase.Pair{
	{Source: "allocator", Target: "分配器"},
	{Source: "comptime", Target: "编译期"},
}

// WriteTemplates 在 dir 下生成 cmtrans.yaml、phrases.yaml 与 .env 模板。
// 已存在的文件跳过（不覆盖）；返回新建与跳过的路径。
func WriteTemplates(dir string) (created, skipped []string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	steps := []struct {
		name  string
		write func(path string) error
	}{
		{DefaultFile, func(p string) error { return writeConfig(p, DefaultTemplateConfig()) }},
		{TemplatePhrasesFile, func(p string) error { return phrase.WriteFile(p, templatePhrases) }},
		{TemplateEnvFile, writeDotEnv},
	}
	for _, s := range steps {
		p := filepath.Join(dir, s.name)
		if err := s.write(p); err != nil {
			if errors.Is(err, fs.ErrExist) {
				skipped = append(skipped, p)
				continue
			}
			return created, skipped, fmt.Errorf("init %s: %w", p, err)
		}
		created = append(created, p)
	}
	return created, skipped, nil
}

// Encode 以 YAML 写出配置（用于诊断输出）。
func Encode(c Config) ([]byte, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func writeConfig(path string, c Config) error {
	b, err := Encode(c)
	if err != nil {
		return err
	}
	return createExcl(path, b)
}

// writeDotEnv 生成 .env 模板：全部键注释掉，空值会覆盖 YAML。
func writeDotEnv(path string) error {
	var b strings.Builder
	b.WriteString("# cmtrans .env 模板（由 init-config 生成）\n")
	b.WriteString("# 优先级：CLI > ENV(.env) > YAML > 默认值\n")
	b.WriteString("# 取消注释后生效；注意空值同样会覆盖 YAML。\n\n")
	for _, kv := range [][2]string{
		{"CMTRANS_CONFIG", DefaultFile},
		{"CMTRANS_MODE", "annotate"},
		{"CMTRANS_ROOTS", "chapters-data/code"},
		{"CMTRANS_DRY_RUN", "false"},
		{"CMTRANS_LOG_LEVEL", "info"},
		{"CMTRANS_LOG_DIR", "logs"},
		{"CMTRANS_COMMENT_MARKER", "//"},
		{"CMTRANS_COMMENT_HEADER_TAGS", "File:,Chapters"},
		{"CMTRANS_PHRASES_FILES", TemplatePhrasesFile},
		{"CMTRANS_PHRASES_NO_BUILTIN", "false"},
		{"CMTRANS_READER_EXTENSIONS", ".zig"},
		{"CMTRANS_READER_EXCLUDE_DIR_NAMES", ".git,.zig-cache,zig-cache,zig-out"},
		{"CMTRANS_SPLITTER_MAX_BYTES", "0"},
		{"CMTRANS_WRITER_OUTPUT_DIR", ""},
		{"CMTRANS_WRITER_DIRECT", "false"},
		{"CMTRANS_ANNOTATE_INLINE", "false"},
		{"CMTRANS_REPAIR_DISABLE", ""},
	} {
		fmt.Fprintf(&b, "# %s=%s\n", kv[0], kv[1])
	}
	return createExcl(path, []byte(b.String()))
}

// createExcl 仅新建文件；已存在返回 fs.ErrExist。
func createExcl(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
