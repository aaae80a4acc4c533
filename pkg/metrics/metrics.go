package metrics

import (
	"sync"

	"github.com/penglongli/gin-metrics/ginmetrics"
	"go.uber.org/zap"
)

const (
	TokenVerificationFailures = "token_verification_failures_total"
	TokensIssued              = "token_issued_total"
)

var registerOnce sync.Once

// GetMonitor returns the process gin-metrics monitor serving path, with the
// token counters registered.
func GetMonitor(path string) *ginmetrics.Monitor {
	m := ginmetrics.GetMonitor()
	// +optional set path
	m.SetMetricPath(path)
	// +optional set slow time
	m.SetSlowTime(1)

	// used to p95, p99
	m.SetDuration([]float64{0.05, 0.1, 0.2, 0.3, 0.5, 1, 2, 5})

	registerOnce.Do(func() {
		customMetrics := []*ginmetrics.Metric{
			{
				Type:        ginmetrics.Counter,
				Name:        TokenVerificationFailures,
				Description: "bearer tokens rejected, by reason",
				Labels:      []string{"reason"},
			},
			{
				Type:        ginmetrics.Counter,
				Name:        TokensIssued,
				Description: "session tokens issued at login",
				Labels:      []string{},
			},
		}
		for _, metric := range customMetrics {
			if err := m.AddMetric(metric); err != nil {
				zap.L().Warn("Failed to register metric", zap.String("name", metric.Name), zap.Error(err))
			}
		}
	})

	return m
}

// Recorder receives the token lifecycle events worth counting.
type Recorder interface {
	TokenVerificationFailed(reason string)
	TokenIssued()
}

type monitorRecorder struct {
	m *ginmetrics.Monitor
}

// NewRecorder counts events on m's custom metrics.
func NewRecorder(m *ginmetrics.Monitor) Recorder {
	return &monitorRecorder{m: m}
}

func (r *monitorRecorder) TokenVerificationFailed(reason string) {
	if err := r.m.GetMetric(TokenVerificationFailures).Inc([]string{reason}); err != nil {
		zap.L().Debug("metric inc failed", zap.String("name", TokenVerificationFailures), zap.Error(err))
	}
}

func (r *monitorRecorder) TokenIssued() {
	if err := r.m.GetMetric(TokensIssued).Inc(nil); err != nil {
		zap.L().Debug("metric inc failed", zap.String("name", TokensIssued), zap.Error(err))
	}
}

type noopRecorder struct{}

func (noopRecorder) TokenVerificationFailed(string) {}
func (noopRecorder) TokenIssued() {}

// Noop discards every event. Used when metrics are disabled.
var Noop Recorder = noopRecorder{}
