// Package metrics 提供 Prometheus 指标收集
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标收集器，nil 接收者上的记录方法为空操作
type Metrics struct {
	path string

	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge
	reservationsTotal    *prometheus.CounterVec
	roomStatusChanges    *prometheus.CounterVec
	paymentsTotal        *prometheus.CounterVec
	notificationsTotal   *prometheus.CounterVec
	repairFixesTotal     *prometheus.CounterVec
	rateLimitedTotal     *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	defaultOnce    sync.Once
)

// New 在指定注册表上创建指标
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "hotel"
	}
	factory := promauto.With(reg)

	return &Metrics{
		path: "/metrics",
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		httpRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		reservationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reservations_total",
				Help:      "Reservation lifecycle operations",
			},
			[]string{"operation", "source"},
		),
		roomStatusChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "room_status_changes_total",
				Help:      "Room status transitions by target status",
			},
			[]string{"estado"},
		),
		paymentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payments_total",
				Help:      "Payment ledger writes",
			},
			[]string{"method", "status"},
		),
		notificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notifications_total",
				Help:      "Booking notifications by channel and result",
			},
			[]string{"channel", "result"},
		),
		repairFixesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "repair_fixes_total",
				Help:      "Rows fixed by the repair routine",
			},
			[]string{"step"},
		),
		rateLimitedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the rate limiter",
			},
			[]string{"path"},
		),
	}
}

// Init 在默认注册表上初始化全局指标，只生效一次
func Init(namespace, path string) *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New(namespace, prometheus.DefaultRegisterer)
		if path != "" {
			defaultMetrics.path = path
		}
	})
	return defaultMetrics
}

// GetMetrics 获取全局指标，未初始化时返回 nil
func GetMetrics() *Metrics {
	return defaultMetrics
}

// Middleware 返回 Gin 中间件
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil || c.Request.URL.Path == m.path {
			c.Next()
			return
		}

		start := time.Now()
		m.httpRequestsInFlight.Inc()

		c.Next()

		m.httpRequestsInFlight.Dec()
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}

// Handler 返回 Prometheus HTTP 处理器
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RecordReservation 记录预订操作，operation 如 create/delete/checkin/checkout
func (m *Metrics) RecordReservation(operation, source string) {
	if m == nil {
		return
	}
	m.reservationsTotal.WithLabelValues(operation, source).Inc()
}

// RecordRoomStatus 记录房间状态变更
func (m *Metrics) RecordRoomStatus(estado string) {
	if m == nil {
		return
	}
	m.roomStatusChanges.WithLabelValues(estado).Inc()
}

// RecordPayment 记录付款写入
func (m *Metrics) RecordPayment(method, status string) {
	if m == nil {
		return
	}
	m.paymentsTotal.WithLabelValues(method, status).Inc()
}

// RecordNotification 记录通知发送结果
func (m *Metrics) RecordNotification(channel string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.notificationsTotal.WithLabelValues(channel, result).Inc()
}

// RecordRepair 记录修复步骤处理的行数
func (m *Metrics) RecordRepair(step string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.repairFixesTotal.WithLabelValues(step).Add(float64(count))
}

// RecordRateLimited 记录被限流的请求
func (m *Metrics) RecordRateLimited(path string) {
	if m == nil {
		return
	}
	m.rateLimitedTotal.WithLabelValues(path).Inc()
}
