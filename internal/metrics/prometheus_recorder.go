package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg              *prom.Registry
	markDoneDuration *prom.HistogramVec
	reconcileResults *prom.CounterVec
	cancelResults    *prom.CounterVec
	storageFailures  *prom.CounterVec
	overdue          prom.Gauge
	shoppingOps      *prom.CounterVec
}

func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		markDoneDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "taskly",
			Name:      "mark_done_duration_seconds",
			Help:      "Duration of the mark-done flow by result",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
		reconcileResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "taskly",
			Name:      "notification_reconcile_total",
			Help:      "Notification reconcile outcomes",
		}, []string{"result"}),
		cancelResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "taskly",
			Name:      "notification_cancel_total",
			Help:      "Cancellation outcomes for previously scheduled notifications",
		}, []string{"result"}),
		storageFailures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "taskly",
			Name:      "storage_failures_total",
			Help:      "Failed storage operations",
		}, []string{"op"}),
		overdue: prom.NewGauge(prom.GaugeOpts{
			Namespace: "taskly",
			Name:      "countdown_overdue",
			Help:      "1 while the countdown is overdue",
		}),
		shoppingOps: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "taskly",
			Name:      "shopping_mutations_total",
			Help:      "Shopping list mutations by operation",
		}, []string{"op"}),
	}
	reg.MustRegister(pr.markDoneDuration, pr.reconcileResults, pr.cancelResults, pr.storageFailures, pr.overdue, pr.shoppingOps)
	return pr
}

func (p *PrometheusRecorder) ObserveMarkDone(d time.Duration, result ResultLabel) {
	p.markDoneDuration.WithLabelValues(string(result)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncReconcile(result ResultLabel) {
	p.reconcileResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncCancel(result ResultLabel) {
	p.cancelResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncStorageFailure(op string) {
	p.storageFailures.WithLabelValues(op).Inc()
}

func (p *PrometheusRecorder) SetOverdue(overdue bool) {
	if overdue {
		p.overdue.Set(1)
		return
	}
	p.overdue.Set(0)
}

func (p *PrometheusRecorder) IncShoppingMutation(op string) {
	p.shoppingOps.WithLabelValues(op).Inc()
}

// Handler serves the recorder's registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
