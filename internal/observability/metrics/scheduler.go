// Package metrics registers the prometheus instruments for the refresh
// scheduler and the per-customer snapshot writes.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type SchedulerMetrics struct {
	jobRuns     *prometheus.CounterVec
	jobErrors   *prometheus.CounterVec
	jobTimeouts *prometheus.CounterVec
	jobDuration *prometheus.HistogramVec

	refreshCustomers *prometheus.CounterVec
}

var (
	mu       sync.Mutex
	instance *SchedulerMetrics
)

// Scheduler returns the process-wide scheduler metrics, registering them on
// the default registerer on first use.
func Scheduler() *SchedulerMetrics {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = newSchedulerMetrics(prometheus.DefaultRegisterer)
	}
	return instance
}

// ResetSchedulerMetricsForTest drops the cached instance so a test can swap
// the default registry.
func ResetSchedulerMetricsForTest() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
}

func newSchedulerMetrics(reg prometheus.Registerer) *SchedulerMetrics {
	m := &SchedulerMetrics{
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "riskwatch_scheduler_job_runs_total",
			Help: "Number of scheduler job invocations.",
		}, []string{"job"}),
		jobErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "riskwatch_scheduler_job_errors_total",
			Help: "Number of scheduler job failures.",
		}, []string{"job"}),
		jobTimeouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "riskwatch_scheduler_job_timeouts_total",
			Help: "Number of scheduler jobs cut off by their timeout.",
		}, []string{"job"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "riskwatch_scheduler_job_duration_seconds",
			Help:    "Scheduler job wall time.",
			Buckets: prometheus.DefBuckets,
		}, []string{"job"}),
		refreshCustomers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "riskwatch_refresh_customers_total",
			Help: "Per-customer snapshot refresh outcomes.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.jobRuns, m.jobErrors, m.jobTimeouts, m.jobDuration, m.refreshCustomers)
	return m
}

func (m *SchedulerMetrics) IncJobRun(job string) {
	m.jobRuns.WithLabelValues(job).Inc()
}

func (m *SchedulerMetrics) IncJobError(job string) {
	m.jobErrors.WithLabelValues(job).Inc()
}

func (m *SchedulerMetrics) IncJobTimeout(job string) {
	m.jobTimeouts.WithLabelValues(job).Inc()
}

func (m *SchedulerMetrics) ObserveJobDuration(job string, d time.Duration) {
	m.jobDuration.WithLabelValues(job).Observe(d.Seconds())
}

// IncRefreshCustomer records one per-customer refresh outcome ("ok" or "failed").
func IncRefreshCustomer(result string) {
	Scheduler().refreshCustomers.WithLabelValues(result).Inc()
}
