package filesystem

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cmtrans/pkg/contract"
)

// Options 为 FileSystem Reader 的可选配置（最小必要）。
type Options struct {
	// Extensions: 目录递归时收集的扩展名（大小写不敏感，含点）。默认 [".zig"]。
	// 显式给出的单文件 root 不受限制。
	Extensions []string `yaml:"extensions" env:"CMTRANS_READER_EXTENSIONS" env-separator:","`
	// ExcludeDirNames: 在扫描目录时跳过这些目录名（基名完全匹配）。
	// 例如 [".git","zig-cache","zig-out"]。
	// 仅影响目录递归，不影响单文件 root。
	ExcludeDirNames []string `yaml:"exclude_dir_names" env:"CMTRANS_READER_EXCLUDE_DIR_NAMES" env-separator:"," env-default:".git,.zig-cache,zig-cache,zig-out"`
	// BufSize 为读缓冲区大小（字节）。默认 64KiB。
	BufSize int `yaml:"buf_size" env:"CMTRANS_READER_BUF_SIZE" env-default:"65536"`
}

// DefaultExtensions 为默认收集的扩展名。
var DefaultExtensions = []string{".zig"}

// FileSystem 实现基于文件系统的 Reader。
type FileSystem struct {
	bufSize int
	// 以小写形式保存，比较时按小写基名匹配。
	excludeDir map[string]struct{}
	exts       map[string]struct{}
}

// New 创建 FileSystem Reader。
func New(opts *Options) *FileSystem {
	const defaultBuf = 64 * 1024
	b := defaultBuf
	if opts != nil && opts.BufSize > 0 {
		b = opts.BufSize
	}
	ex := make(map[string]struct{})
	if opts != nil && len(opts.ExcludeDirNames) > 0 {
		for _, name := range opts.ExcludeDirNames {
			if name == "" {
				continue
			}
			// 小写基名匹配，调用方无需关心大小写与前后斜杠。
			ex[strings.ToLower(strings.Trim(name, `/\`))] = struct{}{}
		}
	}
	list := DefaultExtensions
	if opts != nil && len(opts.Extensions) > 0 {
		list = opts.Extensions
	}
	exts := make(map[string]struct{}, len(list))
	for _, e := range list {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[e] = struct{}{}
	}
	return &FileSystem{bufSize: b, excludeDir: ex, exts: exts}
}

// List 遍历 roots，按稳定顺序返回全部待处理文件。
// 任一 root 不存在时返回包装的 ErrRootMissing，且不返回部分清单。
func (r *FileSystem) List(ctx context.Context, roots []string) ([]contract.FileID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("no roots: %w", contract.ErrInvalidInput)
	}
	var out []contract.FileID
	seen := make(map[contract.FileID]struct{})
	add := func(id contract.FileID) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, root := range roots {
		if err := r.listOne(ctx, root, add); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Open 打开单个文件并以缓冲 ReadCloser 返回。
func (r *FileSystem) Open(ctx context.Context, id contract.FileID) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(id.OSPath())
	if err != nil {
		return nil, err
	}
	return newBufferedCloser(f, r.bufSize), nil
}

func (r *FileSystem) listOne(ctx context.Context, root string, add func(contract.FileID)) error {
	info, err := os.Lstat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", root, contract.ErrRootMissing)
		}
		return err
	}
	// 仅跟随到常规文件；目录符号链接不跟随（忽略）
	if info.Mode()&os.ModeSymlink != 0 {
		t, err := os.Stat(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%s: dangling link: %w", root, contract.ErrRootMissing)
			}
			return err
		}
		if t.Mode().IsRegular() {
			add(contract.NormalizeFileID(root))
		}
		// 非常规目标（含目录）：忽略，不报错
		return nil
	}

	if info.IsDir() {
		return r.walkDir(ctx, root, add)
	}
	if info.Mode().IsRegular() { // 跳过非常规文件
		add(contract.NormalizeFileID(root))
	}
	return nil
}

func (r *FileSystem) walkDir(ctx context.Context, dir string, add func(contract.FileID)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	// 稳定顺序：字典序
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	// 先目录（不跟随目录符号链接）
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		// 跳过指定目录名
		if _, skip := r.excludeDir[strings.ToLower(e.Name())]; skip {
			continue
		}
		if err := r.walkDir(ctx, filepath.Join(dir, e.Name()), add); err != nil {
			return err
		}
	}
	// 再文件（允许指向常规文件的符号链接；目录符号链接忽略）
	for _, e := range entries {
		if e.IsDir() || !r.matchExt(e.Name()) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if e.Type()&os.ModeSymlink != 0 {
			t, err := os.Stat(p)
			if err != nil {
				// 悬空链接：忽略
				continue
			}
			if !t.Mode().IsRegular() {
				continue
			}
		} else if !e.Type().IsRegular() {
			// 设备、管道等
			continue
		}
		add(contract.NormalizeFileID(p))
	}
	return nil
}

func (r *FileSystem) matchExt(name string) bool {
	_, ok := r.exts[strings.ToLower(filepath.Ext(name))]
	return ok
}

// bufferedCloser 将 bufio.Reader 与底层 Closer 组合为 ReadCloser。
type bufferedCloser struct {
	*bufio.Reader
	c io.Closer
}

func newBufferedCloser(c io.ReadCloser, bufSize int) *bufferedCloser {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	return &bufferedCloser{Reader: bufio.NewReaderSize(c, bufSize), c: c}
}

func (b *bufferedCloser) Close() error { return b.c.Close() }

var _ contract.Reader = (*FileSystem)(nil)
