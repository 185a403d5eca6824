package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loan-origination/internal/domain/loan"
)

// Recorder receives domain events worth counting.
type Recorder interface {
	Evaluated(status loan.Status)
	Reviewed(status loan.Status)
}

type Prometheus struct {
	evaluations *prometheus.CounterVec
	reviews     *prometheus.CounterVec
	registry    *prometheus.Registry
}

// NewPrometheus registers the loan counters plus the Go and process
// collectors on a private registry.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	p := &Prometheus{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loan",
			Name:      "evaluations_total",
			Help:      "Applications evaluated at submission, by resulting status.",
		}, []string{"status"}),
		reviews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "loan",
			Name:      "reviews_total",
			Help:      "Officer reviews committed, by new status.",
		}, []string{"status"}),
		registry: reg,
	}
	reg.MustRegister(
		p.evaluations,
		p.reviews,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

func (p *Prometheus) Evaluated(s loan.Status) { p.evaluations.WithLabelValues(string(s)).Inc() }
func (p *Prometheus) Reviewed(s loan.Status)  { p.reviews.WithLabelValues(string(s)).Inc() }

func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Nop discards everything.
type Nop struct{}

func (Nop) Evaluated(loan.Status) {}
func (Nop) Reviewed(loan.Status)  {}
