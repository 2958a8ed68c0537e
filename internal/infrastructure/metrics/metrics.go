package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics Prometheus 指標收集器，方法皆可在 nil receiver 上安全呼叫
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	cacheOperations *prometheus.CounterVec

	generationTotal    *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec

	nutritionLookups       *prometheus.CounterVec
	nutritionLookupLatency prometheus.Histogram

	queueJobs *prometheus.CounterVec
}

// New 在指定 registry 上註冊指標
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		cacheOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_operations_total",
				Help: "Cache lookups by cache name and result",
			},
			[]string{"cache", "result"},
		),
		generationTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipe_generation_total",
				Help: "Recipe text produced, by source (cache, generated, fallback)",
			},
			[]string{"source"},
		),
		generationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "text_generation_duration_seconds",
				Help:    "Text generation call duration in seconds",
				Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"provider", "status"},
		),
		nutritionLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nutrition_lookups_total",
				Help: "Per-ingredient nutrition resolutions by source (memo, usda, estimate)",
			},
			[]string{"source"},
		),
		nutritionLookupLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "nutrition_lookup_duration_seconds",
				Help:    "External nutrition lookup duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5},
			},
		),
		queueJobs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "background_jobs_total",
				Help: "Background jobs by result",
			},
			[]string{"result"},
		),
	}
}

// ObserveHTTP 記錄 HTTP 請求
func (m *Metrics) ObserveHTTP(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// CacheHit 記錄快取命中
func (m *Metrics) CacheHit(cache string) {
	if m == nil {
		return
	}
	m.cacheOperations.WithLabelValues(cache, "hit").Inc()
}

// CacheMiss 記錄快取未命中
func (m *Metrics) CacheMiss(cache string) {
	if m == nil {
		return
	}
	m.cacheOperations.WithLabelValues(cache, "miss").Inc()
}

// RecipeSource 記錄食譜文字來源
func (m *Metrics) RecipeSource(source string) {
	if m == nil {
		return
	}
	m.generationTotal.WithLabelValues(source).Inc()
}

// ObserveGeneration 記錄文字生成呼叫
func (m *Metrics) ObserveGeneration(provider string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.generationDuration.WithLabelValues(provider, status).Observe(duration.Seconds())
}

// NutritionLookup 記錄營養資料來源
func (m *Metrics) NutritionLookup(source string) {
	if m == nil {
		return
	}
	m.nutritionLookups.WithLabelValues(source).Inc()
}

// ObserveNutritionLookup 記錄外部營養查詢耗時
func (m *Metrics) ObserveNutritionLookup(duration time.Duration) {
	if m == nil {
		return
	}
	m.nutritionLookupLatency.Observe(duration.Seconds())
}

// JobDone 記錄背景工作結果
func (m *Metrics) JobDone(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.queueJobs.WithLabelValues(result).Inc()
}

// Handler 回傳 /metrics 處理器
func (m *Metrics) Handler() gin.HandlerFunc {
	if m == nil {
		return gin.WrapH(promhttp.Handler())
	}
	return gin.WrapH(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
