package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "incident_reporter"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	validations    *prom.CounterVec
	findings       *prom.CounterVec
	renders        *prom.CounterVec
	renderDuration prom.Histogram
	pageCount      prom.Histogram
	webhooks       *prom.CounterVec
}

// NewPrometheusRecorder создает и регистрирует метрики в reg
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	pr := &PrometheusRecorder{
		validations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Record validations by export profile and result",
		}, []string{"profile", "result"}),
		findings: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "validation_findings_total",
			Help:      "Validation findings by kind",
		}, []string{"kind"}),
		renders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Report generations by outcome",
		}, []string{"outcome"}),
		renderDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of map, layout and PDF output for one report",
			Buckets:   prom.DefBuckets,
		}),
		pageCount: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "report_pages",
			Help:      "Page count of generated reports",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		webhooks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_deliveries_total",
			Help:      "Webhook deliveries by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.validations, pr.findings, pr.renders, pr.renderDuration, pr.pageCount, pr.webhooks)
	return pr
}

// NewRegistry возвращает реестр с базовыми коллекторами процесса и рантайма
func NewRegistry() *prom.Registry {
	reg := prom.NewRegistry()
	reg.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	return reg
}

// HTTPHandler returns an http.Handler that serves Prometheus metrics for the provided registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (p *PrometheusRecorder) ObserveValidation(profile string, valid bool, errors, warnings int) {
	if p == nil {
		return
	}
	result := "invalid"
	if valid {
		result = "valid"
	}
	p.validations.WithLabelValues(profile, result).Inc()
	p.findings.WithLabelValues("error").Add(float64(errors))
	p.findings.WithLabelValues("warning").Add(float64(warnings))
}

func (p *PrometheusRecorder) ObserveRender(outcome Outcome, d time.Duration, pages int) {
	if p == nil {
		return
	}
	p.renders.WithLabelValues(string(outcome)).Inc()
	if outcome != OutcomeSuccess {
		return
	}
	p.renderDuration.Observe(d.Seconds())
	p.pageCount.Observe(float64(pages))
}

func (p *PrometheusRecorder) ObserveWebhookDelivery(delivered bool) {
	if p == nil {
		return
	}
	res := "failed"
	if delivered {
		res = "delivered"
	}
	p.webhooks.WithLabelValues(res).Inc()
}
