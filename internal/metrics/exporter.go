package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/san-kum/splitflap/internal/flap"
)

// Exporter publishes engine activity as prometheus metrics. Register it on an
// engine with flap.WithObserver.
type Exporter struct {
	board     string
	ticks     *prometheus.CounterVec
	flips     *prometheus.CounterVec
	converged *prometheus.CounterVec
	moving    *prometheus.GaugeVec
	gatherer  prometheus.Gatherer
}

// NewExporter registers the collectors on reg. Handler serves gatherer, which
// is usually the same registry.
func NewExporter(board string, reg prometheus.Registerer, gatherer prometheus.Gatherer) (*Exporter, error) {
	e := &Exporter{
		board: board,
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "splitflap_ticks_total",
			Help: "Total number of engine ticks",
		}, []string{"board"}),
		flips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "splitflap_cell_flips_total",
			Help: "Total number of single-cell advances",
		}, []string{"board"}),
		converged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "splitflap_transitions_converged_total",
			Help: "Number of transitions that reached their goal",
		}, []string{"board"}),
		moving: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "splitflap_cells_moving",
			Help: "Cells that flipped in the latest frame",
		}, []string{"board"}),
		gatherer: gatherer,
	}

	for _, c := range []prometheus.Collector{e.ticks, e.flips, e.converged, e.moving} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Exporter) OnFrame(f flap.Frame) {
	e.ticks.WithLabelValues(e.board).Inc()
	e.flips.WithLabelValues(e.board).Add(float64(f.Advanced))
	e.moving.WithLabelValues(e.board).Set(float64(f.Moving))
	if f.Converged {
		e.converged.WithLabelValues(e.board).Inc()
	}
}

// Handler serves the registry in the prometheus exposition format.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.gatherer, promhttp.HandlerOpts{})
}
