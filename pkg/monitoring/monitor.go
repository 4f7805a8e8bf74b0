package monitoring

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry 独立注册表，避免测试间重复注册默认注册表
var Registry = prometheus.NewRegistry()

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of backend API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of backend API requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 15, 60},
		},
		[]string{"method", "endpoint"},
	)

	PomodoroTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pomodoro_transitions_total",
			Help: "Pomodoro mode transitions",
		},
		[]string{"from", "to"},
	)

	GenerationRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_requests_total",
			Help: "AI generation requests by kind and result",
		},
		[]string{"kind", "result"},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		Registry.MustRegister(RequestCounter)
		Registry.MustRegister(RequestDuration)
		Registry.MustRegister(PomodoroTransitions)
		Registry.MustRegister(GenerationRequests)
	})
}

// RecordGeneration 记录一次生成请求的结果
func RecordGeneration(kind string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	GenerationRequests.WithLabelValues(kind, result).Inc()
}

func RecordTransition(from, to string) {
	PomodoroTransitions.WithLabelValues(from, to).Inc()
}

// EndpointLabel 把路径中的数字段替换为 :id，控制标签基数
func EndpointLabel(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if _, err := strconv.ParseUint(p, 10, 64); err == nil {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

// Transport 统计每个后端请求的次数与耗时
type Transport struct {
	Base http.RoundTripper
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	start := time.Now()
	resp, err := base.RoundTrip(req)

	endpoint := EndpointLabel(req.URL.Path)
	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	RequestCounter.WithLabelValues(req.Method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(req.Method, endpoint).Observe(time.Since(start).Seconds())
	return resp, err
}

// WriteTextfile 写出 node_exporter textfile 格式，path 为空时跳过
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, Registry)
}

// PrometheusHandler 暴露 Registry，供测试后端使用
func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
