package filesystem

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cmtrans/pkg/contract"
)

// Options: 最小必要选项。
type Options struct {
	// OutputDir: 输出根目录。为空表示原地改写（目标即 FileID 本身）；
	// 非空时按 FileID 的相对路径镜像到该目录下。
	OutputDir string `yaml:"output_dir" env:"CMTRANS_WRITER_OUTPUT_DIR"`
	// Direct: 直接截断覆盖目标文件；默认 false 使用原子替换（同目录临时文件 + rename）。
	Direct bool `yaml:"direct" env:"CMTRANS_WRITER_DIRECT"`
	// BufSize: 写缓冲区大小；<=0 使用实现默认。
	BufSize int `yaml:"buf_size" env:"CMTRANS_WRITER_BUF_SIZE" env-default:"65536"`
}

const (
	defaultPermFile os.FileMode = 0o644
	defaultPermDir  os.FileMode = 0o755
)

type FS struct {
	root    string
	atomic  bool
	bufSize int
}

// New 创建文件系统 Writer 实现。
func New(opts *Options) *FS {
	w := &FS{atomic: true, bufSize: 64 * 1024}
	if opts == nil {
		return w
	}
	w.root = strings.TrimSpace(opts.OutputDir)
	w.atomic = !opts.Direct
	if opts.BufSize > 0 {
		w.bufSize = opts.BufSize
	}
	return w
}

var _ contract.Writer = (*FS)(nil)

// Write 将 r 的全部字节整体替换到基于 id 映射的目标路径。
// 目标权限沿用源文件（不存在时 0644）；原地模式下符号链接先解析到目标文件。
func (w *FS) Write(ctx context.Context, id contract.FileID, r io.Reader) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	dest, err := w.mapPath(id)
	if err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}
	src := id.OSPath()
	if w.root == "" {
		// 原地模式改写链接目标本身，链接保持不变。
		if resolved, err := filepath.EvalSymlinks(dest); err == nil {
			dest = resolved
		}
		src = dest
	}
	perm := defaultPermFile
	if fi, err := os.Stat(src); err == nil && fi.Mode().IsRegular() {
		perm = fi.Mode().Perm()
	}
	if w.root != "" {
		if err := os.MkdirAll(filepath.Dir(dest), defaultPermDir); err != nil {
			return err
		}
	}

	if w.atomic {
		return w.writeAtomic(ctx, dest, perm, r)
	}
	return w.writeOverwrite(ctx, dest, perm, r)
}

// mapPath: 原地模式直接返回 id 对应路径；镜像模式 Clean + Join + 越界校验。
func (w *FS) mapPath(id contract.FileID) (string, error) {
	rel := filepath.Clean(id.OSPath())
	if rel == "." || rel == "" {
		return "", contract.ErrPathInvalid
	}
	if w.root == "" {
		return rel, nil
	}
	// 镜像：禁止绝对路径、父级逃逸、Windows 卷名
	if filepath.IsAbs(rel) {
		return "", contract.ErrPathInvalid
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", contract.ErrPathInvalid
	}
	if vol := filepath.VolumeName(rel); vol != "" {
		return "", contract.ErrPathInvalid
	}
	return filepath.Join(w.root, rel), nil
}

func (w *FS) writeOverwrite(ctx context.Context, dest string, perm os.FileMode, r io.Reader) error {
	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(f, w.bufSize)
	if _, err := io.Copy(bw, readerWithCtx(ctx, r)); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (w *FS) writeAtomic(ctx context.Context, dest string, perm os.FileMode, r io.Reader) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	// CreateTemp 固定 0600，改为与源文件一致
	_ = os.Chmod(tmpPath, perm)

	bw := bufio.NewWriterSize(tmp, w.bufSize)
	if _, err := io.Copy(bw, readerWithCtx(ctx, r)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	// 平台特定的原子替换（或最佳努力）：
	if err := osReplace(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	// 最佳努力：在部分平台同步父目录，提升崩溃安全性
	_ = syncDir(dir)
	return nil
}

// readerWithCtx: 在每次 Read 前检查 ctx 是否已取消。
func readerWithCtx(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *ctxReader) Read(p []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, cr.ctx.Err()
	default:
	}
	return cr.r.Read(p)
}
