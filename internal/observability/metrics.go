package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — минимальный интерфейс, который используют бизнес-пакеты.
type Metrics interface {
	// ObserveSourceCall отмечает длительность обращения к источнику цены и успех/провал.
	ObserveSourceCall(d time.Duration, success bool)
	// QuoteWritten — счётчик успешно записанных котировок.
	QuoteWritten()
}

// Noop (для тестов)
type noopMetrics struct{}

func NewNoopMetrics() Metrics { return &noopMetrics{} }

func (n *noopMetrics) ObserveSourceCall(_ time.Duration, _ bool) {}
func (n *noopMetrics) QuoteWritten()                             {}

// Prometheus реализация
type prometheusMetrics struct {
	sourceLatency *prometheus.HistogramVec
	sourceErrors  prometheus.Counter
	quotesWritten prometheus.Counter
}

// NewPrometheusMetrics регистрирует метрики в reg и возвращает реализацию Metrics.
// CLI передаёт собственный prometheus.NewRegistry(), наружу ничего не публикуется.
// Повторная регистрация в том же reg — паника.
func NewPrometheusMetrics(reg prometheus.Registerer) Metrics {
	m := &prometheusMetrics{
		sourceLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "oracle_source_duration_seconds",
			Help:    "Duration of price source calls in seconds, labeled by success",
			Buckets: prometheus.DefBuckets,
		}, []string{"success"}),
		sourceErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oracle_source_errors_total",
			Help: "Number of failed price source calls",
		}),
		quotesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oracle_quotes_written_total",
			Help: "Number of quotes written to the output",
		}),
	}

	reg.MustRegister(m.sourceLatency, m.sourceErrors, m.quotesWritten)

	return m
}

func (m *prometheusMetrics) ObserveSourceCall(d time.Duration, success bool) {
	label := "true"
	if !success {
		label = "false"
		m.sourceErrors.Inc()
	}
	m.sourceLatency.WithLabelValues(label).Observe(d.Seconds())
}

func (m *prometheusMetrics) QuoteWritten() {
	m.quotesWritten.Inc()
}

// Snapshot собирает текущие значения из g: счётчики по имени метрики,
// гистограммы как <name>_count. Серии с разными лейблами суммируются.
func Snapshot(g prometheus.Gatherer) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	out := make(map[string]float64, len(families))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				out[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				out[mf.GetName()+"_count"] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out, nil
}
