package config

import (
	rfs "cmtrans/plugins/reader/filesystem"
	"cmtrans/plugins/rewriter/annotate"
	"cmtrans/plugins/rewriter/repair"
	splitlines "cmtrans/plugins/splitter/lines"
	wfs "cmtrans/plugins/writer/filesystem"
)

// Config: 运行期只读配置（一次解析，运行期不变）。
// YAML 使用 snake_case；未知字段在解析期失败。ENV 键统一前缀 CMTRANS_。
type Config struct {
	// Mode: annotate | repair（即 Rewriter 注册名）。
	Mode   string   `yaml:"mode" env:"CMTRANS_MODE" env-default:"annotate"`
	Roots  []string `yaml:"roots" env:"CMTRANS_ROOTS" env-separator:"," env-default:"chapters-data/code"`
	DryRun bool     `yaml:"dry_run" env:"CMTRANS_DRY_RUN"`

	Logging    Logging    `yaml:"logging"`
	Comment    Comment    `yaml:"comment"`
	Phrases    Phrases    `yaml:"phrases"`
	Components Components `yaml:"components"`

	// 各组件 Options 子树，解码后原样交给工厂。
	Reader   rfs.Options        `yaml:"reader"`
	Splitter splitlines.Options `yaml:"splitter"`
	Writer   wfs.Options        `yaml:"writer"`
	Annotate annotate.Options   `yaml:"annotate"`
	Repair   repair.Options     `yaml:"repair"`
}

// Logging: 日志等级与目录（"-" 表示 stderr）。
type Logging struct {
	Level string `yaml:"level" env:"CMTRANS_LOG_LEVEL" env-default:"info"`
	Dir   string `yaml:"dir" env:"CMTRANS_LOG_DIR" env-default:"logs"`
}

// Comment: 注释外形。header_tags 省略时使用内置标签，显式 [] 表示不识别文件头。
type Comment struct {
	Marker     string   `yaml:"marker" env:"CMTRANS_COMMENT_MARKER" env-default:"//"`
	HeaderTags []string `yaml:"header_tags" env:"CMTRANS_COMMENT_HEADER_TAGS" env-separator:","`
}

// Phrases: 短语文件按顺序优先，内置表垫后。
type Phrases struct {
	Files     []string `yaml:"files" env:"CMTRANS_PHRASES_FILES" env-separator:","`
	NoBuiltin bool     `yaml:"no_builtin" env:"CMTRANS_PHRASES_NO_BUILTIN"`
}

// Components: 组件名选择（注册表中的实现名）。Rewriter 由 Mode 决定。
type Components struct {
	Reader    string `yaml:"reader" env:"CMTRANS_COMPONENTS_READER" env-default:"fs"`
	Splitter  string `yaml:"splitter" env:"CMTRANS_COMPONENTS_SPLITTER" env-default:"lines"`
	Assembler string `yaml:"assembler" env:"CMTRANS_COMPONENTS_ASSEMBLER" env-default:"lines"`
	Writer    string `yaml:"writer" env:"CMTRANS_COMPONENTS_WRITER" env-default:"fs"`
}
