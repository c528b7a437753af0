// Package metrics 提供基于Prometheus的指标收集
//
// 指标类型速记：
// - Counter（计数器）：只增不减，如HTTP请求总数、库存调整总数
// - Gauge（仪表盘）：可增可减的瞬时值，如处理中的请求数
// - Histogram（直方图）：观测值分布，自动计算P50/P90/P99，如请求耗时
//
// 命名规范：
// - Counter以_total结尾（http_requests_total）
// - Histogram以单位结尾（http_request_duration_seconds）
// - 标签只用低基数维度（method/path/status/result），不要用user_id
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
	// 标签：method（GET/POST）、path（路由模板）、status（200/400/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// StockAdjustmentsTotal 库存调整总数（Counter）
	// 标签：direction（add/remove）、result（success/insufficient/conflict/error）
	StockAdjustmentsTotal *prometheus.CounterVec

	// StockAdjustmentDuration 库存调整耗时（Histogram）
	StockAdjustmentDuration prometheus.Histogram

	// LowStockAlertsTotal 低库存告警事件总数（Counter）
	LowStockAlertsTotal prometheus.Counter

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：routing_key、result（success/failure）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化并注册所有指标
// promauto会注册到默认Registry，由/metrics端点暴露
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "Number of HTTP requests currently being served",
		},
	)

	StockAdjustmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_adjustments_total",
			Help: "Total number of stock adjustments",
		},
		[]string{"direction", "result"},
	)

	StockAdjustmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stock_adjustment_duration_seconds",
			Help:    "Stock adjustment latency in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	LowStockAlertsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "low_stock_alerts_total",
			Help: "Total number of low-stock alert events published",
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "Total number of messages published to the broker",
		},
		[]string{"routing_key", "result"},
	)
}

// ObserveAdjustment 记录一次库存调整结果
// result取值：success / insufficient / conflict / error
func ObserveAdjustment(direction, result string, seconds float64) {
	if !initialized {
		return
	}
	StockAdjustmentsTotal.WithLabelValues(direction, result).Inc()
	StockAdjustmentDuration.Observe(seconds)
}

// IncLowStockAlert 记录一次已发布的低库存告警
func IncLowStockAlert() {
	if !initialized {
		return
	}
	LowStockAlertsTotal.Inc()
}

// IncMessagePublished 记录一次消息发布结果
// result取值：success / error
func IncMessagePublished(routingKey, result string) {
	if !initialized {
		return
	}
	MessagesPublishedTotal.WithLabelValues(routingKey, result).Inc()
}
