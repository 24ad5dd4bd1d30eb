package limiter

// Metric names emitted by the limiter. Counters are tagged with "key" and
// "algorithm".
const (
	metricAllowed  = "ratelimit.allowed"
	metricRejected = "ratelimit.rejected"
)

// MetricsRecorder receives decision counters. Implement it against your
// metrics backend (statsd, Prometheus, etc.) and inject it with WithRecorder.
type MetricsRecorder interface {
	Add(name string, value float64, tags map[string]string)
	Observe(name string, value float64, tags map[string]string)
}

// NoOpMetricsRecorder is a placeholder that does nothing.
// It ensures we never have to check 'if r.recorder != nil' in our hot path.
type NoOpMetricsRecorder struct{}

func (n *NoOpMetricsRecorder) Add(name string, value float64, tags map[string]string)     {}
func (n *NoOpMetricsRecorder) Observe(name string, value float64, tags map[string]string) {}
