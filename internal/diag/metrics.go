package diag

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// 进程内最小指标（计数器），运行结束时以 debug 事件汇总输出。
// - op_total{comp,stage,result}
// - error_total{comp,code}
// - op_duration_ms{comp,stage}（累计）

var metrics = struct {
	mu   sync.Mutex
	ops  map[string]int64
	errs map[string]int64
	dur  map[string]int64
}{ops: map[string]int64{}, errs: map[string]int64{}, dur: map[string]int64{}}

// IncOp 累加操作计数（result=success|error|skip）。
func IncOp(comp, stage, result string) {
	metrics.mu.Lock()
	metrics.ops[comp+"."+stage+"."+result]++
	metrics.mu.Unlock()
}

// IncError 按分类累加错误计数。
func IncError(comp, code string) {
	metrics.mu.Lock()
	metrics.errs[comp+"."+code]++
	metrics.mu.Unlock()
}

// ObserveDuration 累计阶段耗时（毫秒）。
func ObserveDuration(comp, stage string, durMS int64) {
	metrics.mu.Lock()
	metrics.dur[comp+"."+stage] += durMS
	metrics.mu.Unlock()
}

// Metrics 为某一时刻的计数器副本。
type Metrics struct {
	Ops    map[string]int64
	Errors map[string]int64
	DurMS  map[string]int64
}

// Snapshot 返回当前计数器副本。
func Snapshot() Metrics {
	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	return Metrics{Ops: clone(metrics.ops), Errors: clone(metrics.errs), DurMS: clone(metrics.dur)}
}

// ResetMetrics 清零全部计数器（每次运行开始时调用）。
func ResetMetrics() {
	metrics.mu.Lock()
	metrics.ops = map[string]int64{}
	metrics.errs = map[string]int64{}
	metrics.dur = map[string]int64{}
	metrics.mu.Unlock()
}

// KV 将计数器展平为日志键值（op./err./dur_ms. 前缀）。
func (m Metrics) KV() map[string]string {
	kv := make(map[string]string, len(m.Ops)+len(m.Errors)+len(m.DurMS))
	put := func(prefix string, src map[string]int64) {
		for k, v := range src {
			kv[prefix+k] = strconv.FormatInt(v, 10)
		}
	}
	put("op.", m.Ops)
	put("err.", m.Errors)
	put("dur_ms.", m.DurMS)
	return kv
}

// String 以稳定顺序输出 k=v 列表。
func (m Metrics) String() string {
	kv := m.KV()
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k + "=" + kv[k])
	}
	return b.String()
}

func clone(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
