package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "extracurricular"

// 报名/退出结果
const (
	ResultOK          = "ok"
	ResultNotFound    = "not_found"
	ResultDuplicate   = "duplicate"
	ResultFull        = "full"
	ResultNotEnrolled = "not_enrolled"
	ResultError       = "error"
)

var (
	signups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Signup attempts partitioned by outcome.",
	}, []string{"result"})

	unregistrations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unregistrations_total",
		Help:      "Unregister attempts partitioned by outcome.",
	}, []string{"result"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(signups, unregistrations, requestDuration)
}

func RecordSignup(result string) {
	signups.WithLabelValues(result).Inc()
}

func RecordUnregister(result string) {
	unregistrations.WithLabelValues(result).Inc()
}

func ObserveRequest(method, route, status string, seconds float64) {
	requestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
