package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusCollector struct {
	// Counters
	streamTokensIssued prometheus.Counter
	streamsServedTotal *prometheus.CounterVec
	streamErrorsTotal  *prometheus.CounterVec
	bytesServedTotal   prometheus.Counter
	loginsTotal        *prometheus.CounterVec
	refreshesTotal     *prometheus.CounterVec

	// Histograms
	streamDuration prometheus.Histogram
}

func NewPrometheusCollector() *PrometheusCollector {
	return &PrometheusCollector{
		streamTokensIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vodguard_stream_tokens_issued_total",
			Help: "Total number of stream tokens issued",
		}),

		streamsServedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vodguard_streams_served_total",
			Help: "Total number of stream responses by HTTP status",
		}, []string{"status"}),

		streamErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vodguard_stream_errors_total",
			Help: "Total number of rejected stream requests by error code",
		}, []string{"code"}),

		bytesServedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vodguard_bytes_served_total",
			Help: "Total number of media bytes written to clients",
		}),

		loginsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vodguard_logins_total",
			Help: "Total number of login attempts by result",
		}, []string{"result"}),

		refreshesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vodguard_token_refreshes_total",
			Help: "Total number of access token refreshes by result",
		}, []string{"result"}),

		streamDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vodguard_stream_duration_seconds",
			Help:    "Duration of stream responses",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
	}
}

func (p *PrometheusCollector) RecordTokenIssued() {
	p.streamTokensIssued.Inc()
}

// StreamServed implements the streaming.Recorder interface.
func (p *PrometheusCollector) StreamServed(status int, bytes int64, duration time.Duration) {
	p.streamsServedTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	p.bytesServedTotal.Add(float64(bytes))
	p.streamDuration.Observe(duration.Seconds())
}

func (p *PrometheusCollector) RecordStreamRejected(code string) {
	p.streamErrorsTotal.WithLabelValues(code).Inc()
}

func (p *PrometheusCollector) RecordLogin(success bool) {
	p.loginsTotal.WithLabelValues(resultLabel(success)).Inc()
}

func (p *PrometheusCollector) RecordRefresh(success bool) {
	p.refreshesTotal.WithLabelValues(resultLabel(success)).Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// RegisterStoreSize exposes a token store's entry count as a gauge.
func RegisterStoreSize(store string, size func() int) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        "vodguard_token_store_entries",
		Help:        "Number of entries currently held in a token store",
		ConstLabels: prometheus.Labels{"store": store},
	}, func() float64 {
		return float64(size())
	})
}
