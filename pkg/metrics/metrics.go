package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Provider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	sseClients      *prometheus.GaugeVec
	pushSent        *prometheus.CounterVec
}

func NewProvider() *Provider {
	return &Provider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "villagehub_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "villagehub_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		sseClients: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "villagehub_sse_clients",
			Help: "Active streaming connections per resource",
		}, []string{"resource"}),

		pushSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "villagehub_push_sent_total",
			Help: "Push notifications dispatched per provider",
		}, []string{"provider"}),
	}
}

func (p *Provider) IncRequestsTotal(endpoint string, status int) {
	p.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (p *Provider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	p.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (p *Provider) SetSSEClients(resource string, count int) {
	p.sseClients.WithLabelValues(resource).Set(float64(count))
}

func (p *Provider) IncPushSent(provider string) {
	p.pushSent.WithLabelValues(provider).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// Middleware records request counts and durations per route.
func (p *Provider) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}
		p.IncRequestsTotal(endpoint, c.Writer.Status())
		p.ObserveRequestDuration(endpoint, time.Since(start))
	}
}

// Handler exposes the prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
