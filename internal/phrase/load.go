package phrase

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File: 短语文件的 YAML 结构。列表形式以保留顺序。
//
//	phrases:
//	  - source: error handling
//	    target: 错误处理
type File struct {
	Phrases []Pair `yaml:"phrases"`
}

// Decode 从 YAML 读取短语对（严格拒绝未知字段）。空输入返回空列表。
func Decode(r io.Reader) ([]Pair, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return f.Phrases, nil
}

// LoadFile 读取单个短语文件。
func LoadFile(path string) ([]Pair, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pairs, err := Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("phrase file %s: %w", path, err)
	}
	return pairs, nil
}

// Load 组装最终替换表：files 按给定顺序在前（优先），withBuiltin 时内置表垫后。
func Load(files []string, withBuiltin bool) (*Table, error) {
	var pairs []Pair
	for _, p := range files {
		ps, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ps...)
	}
	if withBuiltin {
		pairs = append(pairs, builtin...)
	}
	return New(pairs), nil
}

// Encode 以 YAML 写出短语对（保持给定顺序）。
func Encode(w io.Writer, pairs []Pair) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(File{Phrases: pairs}); err != nil {
		return err
	}
	return enc.Close()
}

// WriteFile 写出短语文件；已存在时不覆盖，返回 os.ErrExist。
func WriteFile(path string, pairs []Pair) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if err := Encode(f, pairs); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
