package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"DominanceSentinel/internal/model"
)

// Run outcomes used as the "outcome" label.
const (
	OutcomeOK                  = "ok"
	OutcomeInvalidInput        = "invalid_input"
	OutcomeInsufficientHistory = "insufficient_history"
	OutcomeError               = "error"
)

// Metrics holds all Prometheus metrics for the analysis runs.
type Metrics struct {
	registry *prometheus.Registry

	RunsTotal   *prometheus.CounterVec // labels: pair, outcome
	Dominance   *prometheus.GaugeVec   // labels: pair
	RSI         *prometheus.GaugeVec   // labels: pair
	MACDHist    *prometheus.GaugeVec   // labels: pair
	FetchErrors *prometheus.CounterVec // labels: source
}

// NewMetrics creates the metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dominance_runs_total",
			Help: "Analysis runs by pair and outcome",
		}, []string{"pair", "outcome"}),
		Dominance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dominance_percent",
			Help: "Latest dominance of asset A over the pair, in percent",
		}, []string{"pair"}),
		RSI: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dominance_rsi",
			Help: "Latest RSI of the dominance series",
		}, []string{"pair"}),
		MACDHist: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dominance_macd_histogram",
			Help: "Latest MACD histogram of the dominance series",
		}, []string{"pair"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dominance_fetch_errors_total",
			Help: "Failed upstream fetches by data source",
		}, []string{"source"}),
	}

	m.registry.MustRegister(
		m.RunsTotal,
		m.Dominance,
		m.RSI,
		m.MACDHist,
		m.FetchErrors,
	)
	return m
}

// Outcome maps a pipeline error to its label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, model.ErrInvalidInputData):
		return OutcomeInvalidInput
	case errors.Is(err, model.ErrInsufficientHistory):
		return OutcomeInsufficientHistory
	default:
		return OutcomeError
	}
}

// ObserveAnalysis records a successful run and its latest values.
func (m *Metrics) ObserveAnalysis(a *model.Analysis) {
	pair := a.Pair.Name
	m.RunsTotal.WithLabelValues(pair, OutcomeOK).Inc()
	m.Dominance.WithLabelValues(pair).Set(a.Classification.Dominance)
	m.RSI.WithLabelValues(pair).Set(a.Classification.RSI)
	m.MACDHist.WithLabelValues(pair).Set(a.Classification.MACDHist)
}

// ObserveFailure records a failed run. Gauges keep their last good value.
func (m *Metrics) ObserveFailure(pair model.Pair, err error) {
	m.RunsTotal.WithLabelValues(pair.Name, Outcome(err)).Inc()
}

// ObserveFetchError counts a failed upstream fetch.
func (m *Metrics) ObserveFetchError(source string) {
	m.FetchErrors.WithLabelValues(source).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
