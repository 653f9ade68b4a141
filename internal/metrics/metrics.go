package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Reports
	ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_total",
			Help: "Total successful report mutations",
		},
		[]string{"op"}, // created|updated
	)
	ReportsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_rejected_total",
			Help: "Report requests rejected by validation",
		},
		[]string{"reason"},
	)
	WeeklyHours = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "report_weekly_hours",
			Help:    "Total hours of a user's week after a report is accepted",
			Buckets: []float64{5, 10, 20, 30, 40, 45},
		},
	)
)

// /metrics endpoint handler
var Handler = promhttp.Handler

// Init registers the collectors. queueDepth feeds the audit worker queue gauge.
func Init(queueDepth func() float64) {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(ReportsTotal)
	prometheus.MustRegister(ReportsRejected)
	prometheus.MustRegister(WeeklyHours)
	if queueDepth != nil {
		prometheus.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "worker_queue_depth",
				Help: "Current worker queue depth",
			},
			queueDepth,
		))
	}
}
