package diag

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Terminal: 终端信息提示（非日志）。
// - 输出到提供的 io.Writer（默认建议 stderr）。
// - 修改/失败的文件逐行打印 ✓/✗；TTY 下其余文件以单行 \r 覆盖显示进度。
// - 并发安全；写失败后进入禁用态为 no-op。
type Terminal struct {
	w       io.Writer
	enabled bool
	isTTY   bool

	okMark  *color.Color
	badMark *color.Color

	// 运行期最小状态
	mode     string
	dryRun   bool
	total    int
	seen     int
	modified int
	failed   int
	bytes    int64
	runStart time.Time

	// 输出控制
	lastLen   int
	lastFlush time.Time

	mu sync.Mutex
}

// 进程级终端（可选，全局设置后供 pipeline 旁路调用）。
var (
	termMu sync.RWMutex
	term   *Terminal
)

// SetTerminal 设置全局终端指针（nil 可清除）。
func SetTerminal(t *Terminal) { termMu.Lock(); term = t; termMu.Unlock() }

// GetTerminal 返回全局终端（可能为 nil）。
func GetTerminal() *Terminal { termMu.RLock(); defer termMu.RUnlock(); return term }

// NewTerminal 构造终端提示器。
// enabled=false 时总是 no-op。仅 TTY 且未设置 NO_COLOR 时着色。
func NewTerminal(w io.Writer, enabled bool) *Terminal {
	if w == nil {
		w = os.Stderr
	}
	t := &Terminal{w: w, enabled: enabled, okMark: color.New(color.FgGreen), badMark: color.New(color.FgRed)}
	// CI 环境视为非 TTY
	if os.Getenv("CI") != "" {
		t.isTTY = false
	} else if f, ok := w.(*os.File); ok {
		t.isTTY = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	t.setColor(t.isTTY && os.Getenv("NO_COLOR") == "")
	return t
}

func (t *Terminal) setColor(on bool) {
	for _, c := range []*color.Color{t.okMark, t.badMark} {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// RunStart: 记录运行上下文并打印文件总数。
func (t *Terminal) RunStart(mode string, total int, dryRun bool) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return
	}
	t.mode, t.total, t.dryRun = mode, total, dryRun
	t.seen, t.modified, t.failed, t.bytes = 0, 0, 0, 0
	t.runStart = time.Now()
	extra := ""
	if dryRun {
		extra = " | dry-run"
	}
	t.println(fmt.Sprintf("[run] 模式=%s | 找到 %d 个文件%s", safe(mode), total, extra))
}

// FileDone: 单个文件处理完毕。i 从 1 开始。
// 失败打印 ✗ + 原因；修改打印 ✓；未修改的文件仅在 TTY 下刷新进度行（≥100ms 节流）。
func (t *Terminal) FileDone(i int, fileID string, changed bool, written int64, err error) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return
	}
	t.seen++
	idx := fmt.Sprintf("[%3d/%d]", i, t.total)
	switch {
	case err != nil:
		t.failed++
		t.clearInline()
		t.println(fmt.Sprintf("%s %s %s: %s", idx, t.badMark.Sprint("✗"), fileID, safe(err.Error())))
	case changed:
		t.modified++
		t.bytes += written
		t.clearInline()
		t.println(fmt.Sprintf("%s %s %s: %s", idx, t.okMark.Sprint("✓"), t.label(), fileID))
	case t.isTTY:
		now := time.Now()
		if now.Sub(t.lastFlush) < 100*time.Millisecond && i != t.total {
			return
		}
		t.lastFlush = now
		t.printInline(fmt.Sprintf("%s %s | 用时 %s", idx, shortenBase(fileID, 48), formatSince(t.runStart)))
	}
}

// RunFinish: 结束总览（总计/已修改/失败/写入字节/用时）。
func (t *Terminal) RunFinish(ok bool, dur time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return
	}
	t.clearInline()
	tag := "ok"
	if !ok {
		tag = "fail"
	}
	t.println(fmt.Sprintf("[%s] 总计 %d 个文件 | %s %d | 失败 %d | 写入 %s | 总用时 %s",
		tag, t.seen, t.label(), t.modified, t.failed, humanize.Bytes(uint64(t.bytes)), formatDur(dur)))
}

// Totals 返回已见/已修改/失败计数。
func (t *Terminal) Totals() (seen, modified, failed int) {
	if t == nil {
		return 0, 0, 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seen, t.modified, t.failed
}

func (t *Terminal) label() string {
	if t.dryRun {
		return "将修改"
	}
	switch t.mode {
	case "annotate":
		return "已翻译"
	case "repair":
		return "已清理"
	default:
		return "已修改"
	}
}

// 内部输出工具
func (t *Terminal) println(s string) {
	if t == nil || !t.enabled {
		return
	}
	if _, err := io.WriteString(t.w, s+"\n"); err != nil {
		// 写失败即禁用
		t.enabled = false
	}
	t.lastLen = 0
}

func (t *Terminal) clearInline() {
	if t.isTTY && t.lastLen > 0 {
		t.printInline("")
		// 光标回到行首，后续 println 覆盖空白行
		_, _ = io.WriteString(t.w, "\r")
		t.lastLen = 0
	}
}

func (t *Terminal) printInline(s string) {
	if t == nil || !t.enabled {
		return
	}
	// 组装：\r + 内容 + 清尾空格
	// 清尾：若新行比旧短，填充空格覆盖
	pad := 0
	if l := visLen(s); t.lastLen > l {
		pad = t.lastLen - l
	}
	var b strings.Builder
	b.WriteByte('\r')
	b.WriteString(s)
	if pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	if _, err := io.WriteString(t.w, b.String()); err != nil {
		t.enabled = false
		return
	}
	t.lastLen = visLen(s)
}

// shortenBase: 取基名并按可见宽度截断（尾部省略号）。
func shortenBase(s string, max int) string {
	if max <= 0 {
		return ""
	}
	base := filepath.Base(strings.TrimSpace(s))
	if base == "" {
		return ""
	}
	if visLen(base) <= max {
		return base
	}
	// 预留 1 个字符给省略号
	cut := max - 1
	if cut < 1 {
		cut = 1
	}
	rs := []rune(base)
	if len(rs) <= cut {
		return string(rs)
	}
	return string(rs[:cut]) + "…"
}

func visLen(s string) int { return len([]rune(s)) }

func safe(s string) string {
	// 避免换行等控制字符污染终端
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

func formatSince(t0 time.Time) string { return formatDur(time.Since(t0)) }

func formatDur(d time.Duration) string {
	if d < time.Second {
		ms := d.Milliseconds()
		if ms <= 0 {
			ms = 0
		}
		return fmt.Sprintf("%dms", ms)
	}
	// 秒，保留 1 位小数
	s := float64(d.Milliseconds()) / 1000.0
	return fmt.Sprintf("%.1fs", s)
}
