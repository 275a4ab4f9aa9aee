package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile 为工作目录下自动发现的配置文件名。
const DefaultFile = "cmtrans.yaml"

// Overrides: CLI 层覆盖（优先级最高）；零值表示未设置。
type Overrides struct {
	Mode        string
	Roots       []string
	DryRun      bool
	LogLevel    string
	Extensions  []string
	Marker      string
	PhraseFiles []string
}

// LoadDotEnv 加载 .env 注入进程环境（不覆盖已有 ENV）；文件不存在时忽略。
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("dotenv %s: %w", path, err)
	}
	return nil
}

// ResolvePath 确定配置文件：显式路径 > CMTRANS_CONFIG > ./cmtrans.yaml（若存在）。
// 返回空串表示仅使用 ENV + 默认值。
func ResolvePath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv("CMTRANS_CONFIG")); p != "" {
		return p
	}
	if st, err := os.Stat(DefaultFile); err == nil && !st.IsDir() {
		return DefaultFile
	}
	return ""
}

// Load 按优先级解析配置：CLI > ENV > YAML > 默认值（env-default）。
// path 为空时跳过文件。YAML 先做严格解码以拒绝未知键。
func Load(path string, over Overrides) (Config, error) {
	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("config: read env: %w", err)
		}
		return Merge(cfg, over), nil
	}
	fromFile, empty, err := decodeStrict(path)
	if err != nil {
		return cfg, err
	}
	if empty {
		return Load("", over)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	// 文件内的相对短语路径以配置文件所在目录为基准；来自 ENV 的保持原样。
	if slices.Equal(cfg.Phrases.Files, fromFile.Phrases.Files) {
		cfg.Phrases.Files = rebase(filepath.Dir(path), cfg.Phrases.Files)
	}
	return Merge(cfg, over), nil
}

// decodeStrict 以 KnownFields 严格解码 YAML 文件；empty 表示文件无任何文档。
func decodeStrict(path string) (cfg Config, empty bool, err error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
	default:
		return cfg, false, fmt.Errorf("config: %s: only .yaml/.yml files are supported", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, false, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, true, nil
		}
		return cfg, false, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, false, nil
}

// Merge 将 CLI 覆盖合并到 base（空值不覆盖；切片整体替换）。
func Merge(base Config, over Overrides) Config {
	out := base
	if m := strings.TrimSpace(over.Mode); m != "" {
		out.Mode = m
	}
	if len(over.Roots) > 0 {
		out.Roots = cloneStrings(over.Roots)
	}
	if over.DryRun {
		out.DryRun = true
	}
	if lv := strings.TrimSpace(over.LogLevel); lv != "" {
		out.Logging.Level = lv
	}
	if exts := splitComma(over.Extensions); len(exts) > 0 {
		out.Reader.Extensions = exts
	}
	if over.Marker != "" {
		out.Comment.Marker = over.Marker
	}
	if files := splitComma(over.PhraseFiles); len(files) > 0 {
		out.Phrases.Files = files
	}
	return out
}

func rebase(dir string, files []string) []string {
	if len(files) == 0 || dir == "" || dir == "." {
		return files
	}
	out := make([]string, len(files))
	for i, f := range files {
		if f == "" || filepath.IsAbs(f) {
			out[i] = f
			continue
		}
		out[i] = filepath.Join(dir, f)
	}
	return out
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// splitComma 展开 "a,b" 形式的元素并去空白、去空项。
func splitComma(in []string) []string {
	var out []string
	for _, s := range in {
		for _, p := range strings.Split(s, ",") {
			if t := strings.TrimSpace(p); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}
