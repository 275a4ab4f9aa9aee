//go:build !windows

package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"cmtrans/pkg/contract"
)

// TestWalkDirNonRegular 非常规文件被忽略 (Unix only - uses mkfifo)
func TestWalkDirNonRegular(t *testing.T) {
	root := t.TempDir()
	fifo := filepath.Join(root, "fifo.zig")
	if err := syscall.Mkfifo(fifo, 0o644); err != nil {
		t.Fatalf("mkfifo: %v", err)
	}
	visited, err := New(nil).List(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(visited) != 0 {
		t.Fatalf("non-regular should skip, visited %#v", visited)
	}
}

// TestListSymlink 测试符号链接 (Unix only)
func TestListSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "t.zig")
	os.WriteFile(target, []byte("ok"), 0o644)
	link := filepath.Join(dir, "l.zig")
	os.Symlink(target, link)
	visited, _ := New(nil).List(context.Background(), []string{link})
	if len(visited) != 1 || !strings.Contains(string(visited[0]), "l.zig") {
		t.Fatalf("symlink not visited: %#v", visited)
	}
}

// TestListSymlinkDir 符号链接指向目录时忽略 (Unix only)
func TestListSymlinkDir(t *testing.T) {
	root := t.TempDir()
	realDir := filepath.Join(root, "real")
	os.Mkdir(realDir, 0o755)
	os.WriteFile(filepath.Join(realDir, "a.zig"), []byte("x"), 0o644)
	link := filepath.Join(root, "ln")
	os.Symlink(realDir, link)
	visited, err := New(nil).List(context.Background(), []string{link})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(visited) != 0 {
		t.Fatalf("dir symlink visited: %#v", visited)
	}
}

// TestWalkDirSymlinkDir 遍历目录时忽略指向目录的符号链接 (Unix only)
func TestWalkDirSymlinkDir(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	os.Mkdir(sub, 0o755)
	os.WriteFile(filepath.Join(sub, "ok.zig"), []byte("o"), 0o644)
	// 创建指向目录的符号链接
	os.Symlink(sub, filepath.Join(root, "sub_link.zig"))
	files, err := New(nil).List(context.Background(), []string{root})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 1 || filepath.Base(string(files[0])) != "ok.zig" {
		t.Fatalf("unexpected files %#v", files)
	}
}

// TestListSymlinkDangling 失效的符号链接 root 视为根缺失 (Unix only)
func TestListSymlinkDangling(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling")
	os.Symlink(filepath.Join(dir, "no"), link)
	_, err := New(nil).List(context.Background(), []string{link})
	if !errors.Is(err, contract.ErrRootMissing) {
		t.Fatalf("expect ErrRootMissing for dangling symlink, got %v", err)
	}
}
