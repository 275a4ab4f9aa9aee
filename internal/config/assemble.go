package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"cmtrans/internal/comment"
	"cmtrans/internal/diag"
	"cmtrans/internal/phrase"
	"cmtrans/internal/pipeline"
	"cmtrans/pkg/registry"
)

// Validate 对最小必要边界做静态校验。
func Validate(cfg Config) error {
	if registry.Rewriter[cfg.Mode] == nil {
		return fmt.Errorf("config: mode %q not registered (want one of %s)", cfg.Mode, strings.Join(registry.Names(registry.Rewriter), "|"))
	}
	if len(cfg.Roots) == 0 {
		return errors.New("config: roots empty")
	}
	for _, r := range cfg.Roots {
		if strings.TrimSpace(r) == "" {
			return errors.New("config: root path cannot be empty")
		}
	}
	if strings.TrimSpace(cfg.Comment.Marker) == "" {
		return errors.New("config: comment.marker empty")
	}
	if !diag.ValidLevel(cfg.Logging.Level) {
		return fmt.Errorf("config: logging.level %q invalid (debug|info|warn|error)", cfg.Logging.Level)
	}
	if registry.Reader[cfg.Components.Reader] == nil {
		return fmt.Errorf("config: reader %q not registered", cfg.Components.Reader)
	}
	if registry.Splitter[cfg.Components.Splitter] == nil {
		return fmt.Errorf("config: splitter %q not registered", cfg.Components.Splitter)
	}
	if registry.Assembler[cfg.Components.Assembler] == nil {
		return fmt.Errorf("config: assembler %q not registered", cfg.Components.Assembler)
	}
	if registry.Writer[cfg.Components.Writer] == nil {
		return fmt.Errorf("config: writer %q not registered", cfg.Components.Writer)
	}
	for _, p := range cfg.Phrases.Files {
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("config: phrase file: %w", err)
		}
		_ = f.Close()
	}
	return nil
}

// Syntax 按配置构造注释规则。
func Syntax(cfg Config) comment.Syntax {
	return comment.New(cfg.Comment.Marker, cfg.Comment.HeaderTags)
}

// Table 按配置加载短语表（文件在前，内置垫后）。
func Table(cfg Config) (*phrase.Table, error) {
	t, err := phrase.Load(cfg.Phrases.Files, !cfg.Phrases.NoBuiltin)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return t, nil
}

// Assemble 校验配置并构造 Components 与 Settings。
func Assemble(cfg Config) (pipeline.Components, pipeline.Settings, error) {
	if err := Validate(cfg); err != nil {
		return pipeline.Components{}, pipeline.Settings{}, err
	}
	env := registry.Env{
		Syntax:   Syntax(cfg),
		Reader:   cfg.Reader,
		Splitter: cfg.Splitter,
		Writer:   cfg.Writer,
		Annotate: cfg.Annotate,
		Repair:   cfg.Repair,
	}
	if cfg.Mode == "annotate" {
		t, err := Table(cfg)
		if err != nil {
			return pipeline.Components{}, pipeline.Settings{}, err
		}
		env.Table = t
	}

	r, err := registry.Reader[cfg.Components.Reader](env)
	if err != nil {
		return pipeline.Components{}, pipeline.Settings{}, fmt.Errorf("config: reader: %w", err)
	}
	s, err := registry.Splitter[cfg.Components.Splitter](env)
	if err != nil {
		return pipeline.Components{}, pipeline.Settings{}, fmt.Errorf("config: splitter: %w", err)
	}
	rw, err := registry.Rewriter[cfg.Mode](env)
	if err != nil {
		return pipeline.Components{}, pipeline.Settings{}, fmt.Errorf("config: %s: %w", cfg.Mode, err)
	}
	asm, err := registry.Assembler[cfg.Components.Assembler](env)
	if err != nil {
		return pipeline.Components{}, pipeline.Settings{}, fmt.Errorf("config: assembler: %w", err)
	}
	w, err := registry.Writer[cfg.Components.Writer](env)
	if err != nil {
		return pipeline.Components{}, pipeline.Settings{}, fmt.Errorf("config: writer: %w", err)
	}

	comp := pipeline.Components{Reader: r, Splitter: s, Rewriter: rw, Assembler: asm, Writer: w}
	set := pipeline.Settings{Roots: cloneStrings(cfg.Roots), Mode: cfg.Mode, DryRun: cfg.DryRun}
	return comp, set, nil
}
