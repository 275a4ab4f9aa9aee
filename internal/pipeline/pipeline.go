package pipeline

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/zeebo/blake3"
	"go.uber.org/multierr"

	"cmtrans/internal/diag"
	"cmtrans/pkg/contract"
)

// - 顺序执行：先 List 得到完整有序清单，再逐文件 open → split → rewrite →（有变化）assemble → write；不起 goroutine。
// - 单文件读/写失败：记录、提示并跳过，汇总进 Summary.Err；批次继续。
// - 根缺失与 ctx 取消中止整批。
// - 无变化的文件从不写回。

// Components 聚合运行所需的原子组件。
type Components struct {
	Reader    contract.Reader
	Splitter  contract.Splitter
	Rewriter  contract.Rewriter
	Assembler contract.Assembler
	Writer    contract.Writer
}

// Settings 运行期配置（最小必要）。
type Settings struct {
	// 输入根（目录或单文件）
	Roots []string
	// Mode 仅用于日志与终端标签（annotate|repair）。
	Mode string
	// DryRun: 只改写与报告，不写回。
	DryRun bool
}

// FileResult 为单文件处理结果。
type FileResult struct {
	FileID  contract.FileID
	Changed bool
	// Before/After: 输入与输出字节的 blake3 摘要（hex）；未变化时二者相等。
	Before string
	After  string
	// Bytes: 实际写回的字节数（未写回为 0）。
	Bytes  int64
	Counts map[contract.Outcome]int
	Err    error
}

// Summary 为整批运行汇总。
type Summary struct {
	Seen     int
	Modified int
	Failed   int
	Bytes    int64
	Files    []FileResult
	// Err 合并全部单文件错误（multierr）；nil 表示全部成功。
	Err     error
	Elapsed time.Duration
}

// Run 执行完整流水线：Reader → Splitter → Rewriter → Assembler → Writer。
// 返回的 error 仅表示整批中止（根缺失、取消、组件缺失）；单文件失败见 Summary.Err。
func Run(ctx context.Context, comp Components, set Settings, logger *diag.Logger) (Summary, error) {
	var sum Summary
	if err := sanity(comp, set); err != nil {
		return sum, fmt.Errorf("sanity: %w", err)
	}
	start := time.Now()
	term := diag.GetTerminal()

	rtimer := logger.Start("reader", "list")
	ids, err := comp.Reader.List(ctx, set.Roots)
	if err != nil {
		code := diag.Classify(err)
		logger.ErrorWithKV("reader", string(code), "list failed", rtimer.Since(), "", map[string]string{"cause": err.Error()})
		diag.IncOp("reader", "error", "error")
		diag.IncError("reader", string(code))
		return sum, fmt.Errorf("reader list: %w", err)
	}
	rtimer.Finish("list", int64(len(ids)))
	diag.IncOp("reader", "finish", "success")

	term.RunStart(set.Mode, len(ids), set.DryRun)
	sum.Files = make([]FileResult, 0, len(ids))
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return abort(sum, start, term, logger, err)
		}
		fr := processFile(ctx, comp, set, logger, id)
		if isCancel(fr.Err) {
			return abort(sum, start, term, logger, fr.Err)
		}
		sum.Seen++
		sum.Files = append(sum.Files, fr)
		switch {
		case fr.Err != nil:
			sum.Failed++
			sum.Err = multierr.Append(sum.Err, fr.Err)
		case fr.Changed:
			sum.Modified++
			sum.Bytes += fr.Bytes
		}
		term.FileDone(i+1, string(id), fr.Changed, fr.Bytes, fr.Err)
	}

	sum.Elapsed = time.Since(start)
	diag.ObserveDuration("pipeline", "run", sum.Elapsed.Milliseconds())
	logger.InfoFinish("pipeline", "run", start, int64(sum.Modified))
	logger.DebugFinish("metrics", "snapshot", "", diag.Snapshot().KV())
	term.RunFinish(true, sum.Elapsed)
	return sum, nil
}

func abort(sum Summary, start time.Time, term *diag.Terminal, logger *diag.Logger, err error) (Summary, error) {
	sum.Elapsed = time.Since(start)
	logger.Error("pipeline", string(diag.Classify(err)), "run aborted", &start)
	term.RunFinish(false, sum.Elapsed)
	return sum, fmt.Errorf("run aborted: %w", err)
}

// processFile 处理单个文件；错误写入 FileResult.Err（读失败包装 ErrReadFailed，写失败包装 ErrWriteFailed）。
func processFile(ctx context.Context, comp Components, set Settings, logger *diag.Logger, id contract.FileID) (fr FileResult) {
	fr.FileID = id
	ftimer := logger.StartWith("pipeline", "file", string(id))
	defer func() {
		diag.ObserveDuration("pipeline", "file", time.Since(*ftimer.Since()).Milliseconds())
		if fr.Err == nil {
			diag.IncOp("pipeline", "file", "success")
			return
		}
		if isCancel(fr.Err) {
			return
		}
		code := diag.Classify(fr.Err)
		logger.ErrorWithKV("pipeline", string(code), "file failed", ftimer.Since(), string(id), map[string]string{"cause": fr.Err.Error()})
		diag.IncOp("pipeline", "file", "error")
		diag.IncError("pipeline", string(code))
	}()

	data, doc, err := readFile(ctx, comp, id)
	if err != nil {
		if isCancel(err) {
			fr.Err = err
			return fr
		}
		fr.Err = fmt.Errorf("%w: %s: %w", contract.ErrReadFailed, id, err)
		return fr
	}
	fr.Before = digest(data)
	fr.After = fr.Before

	res, err := comp.Rewriter.Rewrite(ctx, id, doc.Lines)
	if err != nil {
		fr.Err = err
		return fr
	}
	fr.Counts = res.Counts
	logger.DebugStart("rewriter", "counts", string(id), countsKV(res))
	if !res.Changed {
		ftimer.FinishKV("unchanged", 0, map[string]string{"blake3": fr.Before})
		return fr
	}

	out := doc
	out.Lines = res.Lines
	r, err := comp.Assembler.Assemble(ctx, out)
	if err != nil {
		fr.Err = fmt.Errorf("%w: %s: assemble: %w", contract.ErrWriteFailed, id, err)
		return fr
	}
	outData, err := io.ReadAll(r)
	if err != nil {
		fr.Err = fmt.Errorf("%w: %s: assemble: %w", contract.ErrWriteFailed, id, err)
		return fr
	}
	fr.Changed = true
	fr.After = digest(outData)
	kv := map[string]string{"before": fr.Before, "after": fr.After}
	if set.DryRun {
		kv["dry_run"] = "true"
		ftimer.FinishKV("dry-run", 1, kv)
		return fr
	}

	if err := comp.Writer.Write(ctx, id, bytes.NewReader(outData)); err != nil {
		if isCancel(err) {
			fr.Err = err
			return fr
		}
		fr.Err = fmt.Errorf("%w: %s: %w", contract.ErrWriteFailed, id, err)
		return fr
	}
	fr.Bytes = int64(len(outData))
	ftimer.FinishKV("written", fr.Bytes, kv)
	return fr
}

// readFile 读取全部字节（用于摘要）并拆分为行批。
func readFile(ctx context.Context, comp Components, id contract.FileID) ([]byte, contract.Document, error) {
	rc, err := comp.Reader.Open(ctx, id)
	if err != nil {
		return nil, contract.Document{}, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, contract.Document{}, err
	}
	doc, err := comp.Splitter.Split(ctx, id, bytes.NewReader(data))
	if err != nil {
		return nil, contract.Document{}, err
	}
	return data, doc, nil
}

func digest(b []byte) string {
	sum := blake3.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func countsKV(res contract.Result) map[string]string {
	kv := make(map[string]string, len(res.Counts))
	for o, n := range res.Counts {
		kv[o.String()] = strconv.Itoa(n)
	}
	return kv
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func sanity(c Components, s Settings) error {
	if c.Reader == nil || c.Splitter == nil || c.Rewriter == nil || c.Assembler == nil || c.Writer == nil {
		return errors.New("pipeline: missing components")
	}
	if len(s.Roots) == 0 {
		return errors.New("pipeline: empty roots")
	}
	return nil
}
