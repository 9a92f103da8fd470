// Package metrics 提供基于Prometheus的指标收集
//
// 可观测性三支柱之一（Tracing、Metrics、Logging）：
// - **Metrics（指标）**: 回答"有多少？多快？"（本模块）
// - **Tracing（追踪）**: 回答"为什么慢？"（pkg/tracing）
// - **Logging（日志）**: 回答"发生了什么？"
//
// # 核心概念
//
// **Counter（计数器）**：只增不减的累计值（库存操作总数、导入行数）
// **Gauge（仪表盘）**：可增可减的瞬时值（正在处理的请求数、熔断器状态）
// **Histogram（直方图）**：观测值的分布，自动计算分位数（批量导入耗时）
//
// # 使用示例
//
//	// 1. 初始化Metrics
//	metrics.InitMetrics()
//
//	// 2. 在HTTP服务中暴露/metrics端点（cmd/api已接好gin路由）
//
//	// 3. 在业务代码中记录指标
//	metrics.IncCounterVec(metrics.StockOperationsTotal, map[string]string{
//	    "op":     "add",
//	    "result": "success",
//	})
//
// # 指标命名规范
//
// 1. Counter以`_total`结尾：stock_operations_total
// 2. Histogram以单位结尾：bulk_import_duration_seconds
// 3. 使用标签区分维度，但避免高基数标签（不要用book_id做标签）
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/leftover/add）、status（200/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 库存台账指标

	// StockOperationsTotal 库存操作总数（Counter）
	// 标签：op（add/remove/set/bulk_row）、result（success/rejected/error）
	StockOperationsTotal *prometheus.CounterVec

	// BulkImportRowsTotal 批量导入行数（Counter）
	// 标签：result（applied/skipped/failed）
	BulkImportRowsTotal *prometheus.CounterVec

	// BulkImportDuration 批量导入整批耗时（Histogram）
	BulkImportDuration prometheus.Histogram

	// 缓存与熔断器指标

	// LeftoverCacheRequests 库存缓存请求总数（Counter）
	// 标签：result（hit/miss/error/rejected）
	LeftoverCacheRequests *prometheus.CounterVec

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. Counter使用*Vec支持标签（多维度统计）
// 3. Histogram的Buckets根据业务场景定制
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 库存台账指标
	StockOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_operations_total",
			Help: "库存操作总数",
		},
		[]string{"op", "result"},
	)

	BulkImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bulk_import_rows_total",
			Help: "批量导入处理的行数",
		},
		[]string{"result"},
	)

	BulkImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "bulk_import_duration_seconds",
			Help: "批量导入整批耗时（秒）",
			// 导入文件通常几十到几千行
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
	)

	// 缓存与熔断器指标
	LeftoverCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leftover_cache_requests_total",
			Help: "库存缓存请求总数",
		},
		[]string{"result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)
}

// 以下便捷函数都允许指标未初始化（为nil）时调用，
// 单元测试无需先InitMetrics

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	if gauge == nil {
		return
	}
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
