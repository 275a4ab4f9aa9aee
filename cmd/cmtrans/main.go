package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	cfgpkg "cmtrans/internal/config"
	"cmtrans/internal/diag"
	"cmtrans/internal/phrase"
	"cmtrans/internal/pipeline"
)

var pipelineRun = pipeline.Run

// 退出码：0 完成（含单文件失败）；1 根缺失或运行中止；3 配置/用法错误。
const (
	exitOK     = 0
	exitRun    = 1
	exitConfig = 3
)

// exitError 携带退出码；err 为 nil 表示已在终端提示过。
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func configErr(format string, a ...any) error {
	return &exitError{code: exitConfig, err: fmt.Errorf(format, a...)}
}

// flags 为全局旗标。
type flags struct {
	config   string
	logLevel string
	status   bool
	dryRun   bool
	exts     []string
	marker   string
	phrases  []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// 在任何 ENV 读取前加载工作目录下的 .env（不覆盖已有 ENV）。
	if err := cfgpkg.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(stderr, "提示：.env 加载失败（已跳过）：%v\n", err)
	}
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "%v\n", ee.err)
		}
		return ee.code
	}
	// cobra 的用法错误（未知命令/旗标）
	fmt.Fprintf(stderr, "%v\n", err)
	return exitConfig
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "cmtrans",
		Short: "批量为源码单行注释追加中文译文，或清理重复注释",
		Long: `cmtrans 遍历源码目录，对单行注释做纯文本处理：
  annotate  在可翻译的注释行下方追加译文行（英文在上，中文在下）
  repair    清理早先错误标注留下的重复/嵌套注释

配置优先级：CLI > ENV(CMTRANS_*, .env) > cmtrans.yaml > 默认值。`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "配置文件路径（YAML）；缺省读取 CMTRANS_CONFIG 或 ./cmtrans.yaml（若存在）")
	pf.StringVar(&f.logLevel, "log-level", "", "日志级别 debug|info|warn|error（覆盖配置）")
	pf.BoolVar(&f.status, "status", true, "终端状态提示（stderr）。TTY 动态刷新；非 TTY 逐行输出")
	pf.BoolVar(&f.dryRun, "dry-run", false, "只报告将修改的文件，不写回")
	pf.StringSliceVar(&f.exts, "ext", nil, "目录递归时收集的扩展名（可重复或逗号分隔），默认 .zig")
	pf.StringVar(&f.marker, "marker", "", "单行注释标记（覆盖配置），默认 //")
	pf.StringSliceVar(&f.phrases, "phrases", nil, "短语文件（YAML，可重复）；优先于内置表")

	for _, mode := range []struct{ name, short string }{
		{"annotate", "在合格注释行下方追加译文行"},
		{"repair", "清理重复/嵌套注释"},
	} {
		root.AddCommand(&cobra.Command{
			Use:   mode.name + " [root ...]",
			Short: mode.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMode(cmd.Context(), f, mode.name, args, stderr)
			},
		})
	}
	root.AddCommand(newPhrasesCmd(f, stdout))
	root.AddCommand(newInitCmd(stdout, stderr))
	return root
}

func overrides(f *flags, mode string, roots []string) cfgpkg.Overrides {
	return cfgpkg.Overrides{
		Mode:        mode,
		Roots:       roots,
		DryRun:      f.dryRun,
		LogLevel:    f.logLevel,
		Extensions:  f.exts,
		Marker:      f.marker,
		PhraseFiles: f.phrases,
	}
}

func loadConfig(f *flags, mode string, roots []string) (cfgpkg.Config, error) {
	cfg, err := cfgpkg.Load(cfgpkg.ResolvePath(f.config), overrides(f, mode, roots))
	if err != nil {
		return cfg, configErr("配置解析失败: %v", err)
	}
	return cfg, nil
}

// runMode 执行一次 annotate/repair 批处理。
func runMode(ctx context.Context, f *flags, mode string, roots []string, stderr io.Writer) error {
	start := time.Now()
	corrID := uuid.NewString()
	diag.ResetMetrics()

	cfg, err := loadConfig(f, mode, roots)
	if err != nil {
		return err
	}
	if err := cfgpkg.Validate(cfg); err != nil {
		// 打印有效配置，便于诊断
		if b, eerr := cfgpkg.Encode(cfg); eerr == nil {
			fmt.Fprintf(stderr, "有效配置:\n%s", b)
		}
		return configErr("配置校验失败: %v", err)
	}

	logger := diag.NewLogger(corrID, cfg.Logging.Level, cfg.Logging.Dir)
	defer func() { _ = logger.Close() }()

	comp, set, err := cfgpkg.Assemble(cfg)
	if err != nil {
		logger.Error("config", string(diag.Classify(err)), "assemble failed", &start)
		return configErr("装配失败: %v", err)
	}

	term := diag.NewTerminal(stderr, f.status)
	diag.SetTerminal(term)
	defer diag.SetTerminal(nil)

	logger.DebugStart("config", "effective", "", map[string]string{
		"mode":       cfg.Mode,
		"roots":      strings.Join(cfg.Roots, ","),
		"dry_run":    fmt.Sprintf("%t", cfg.DryRun),
		"marker":     cfg.Comment.Marker,
		"extensions": strings.Join(cfg.Reader.Extensions, ","),
		"phrases":    strings.Join(cfg.Phrases.Files, ","),
		"builtin":    fmt.Sprintf("%t", !cfg.Phrases.NoBuiltin),
		"output_dir": cfg.Writer.OutputDir,
	})

	sum, err := pipelineRun(ctx, comp, set, logger)
	if err != nil {
		code := string(diag.Classify(err))
		logger.Error("cmd", code, "first error", &start)
		diag.IncOp("cmd", "error", "error")
		diag.IncError("cmd", code)
		if errors.Is(err, context.Canceled) {
			return &exitError{code: exitRun}
		}
		return &exitError{code: exitRun, err: fmt.Errorf("运行失败: %w", err)}
	}
	logger.InfoFinish("cmd", mode, start, int64(sum.Modified))
	diag.IncOp("cmd", "finish", "success")
	return nil
}

func newPhrasesCmd(f *flags, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "phrases [text ...]",
		Short: "打印生效的短语表（YAML），或翻译给定文本",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f, "", nil)
			if err != nil {
				return err
			}
			t, err := cfgpkg.Table(cfg)
			if err != nil {
				return configErr("短语表加载失败: %v", err)
			}
			if len(args) == 0 {
				if err := phrase.Encode(stdout, t.Pairs()); err != nil {
					return &exitError{code: exitRun, err: err}
				}
				return nil
			}
			for _, a := range args {
				fmt.Fprintln(stdout, t.Translate(a))
			}
			return nil
		},
	}
}

func newInitCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [dir]",
		Short: "生成 cmtrans.yaml、phrases.yaml 与 .env 模板（已存在则跳过，不覆盖）",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				dir = strings.TrimSpace(args[0])
			}
			created, skipped, err := cfgpkg.WriteTemplates(dir)
			for _, p := range created {
				fmt.Fprintf(stdout, "已生成 %s\n", p)
			}
			for _, p := range skipped {
				fmt.Fprintf(stderr, "已存在，跳过 %s\n", p)
			}
			if err != nil {
				return configErr("生成默认配置失败: %v", err)
			}
			return nil
		},
	}
}
