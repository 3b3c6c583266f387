// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CronMetricsRecorder implements cron.MetricsRecorder.
type CronMetricsRecorder struct {
	runsTotal   *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	lastRunTime *prometheus.GaugeVec
	nextRunTime *prometheus.GaugeVec
	jobsTotal   prometheus.Gauge
}

func NewCronMetricsRecorder() *CronMetricsRecorder {
	return &CronMetricsRecorder{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cron_job_runs_total",
			Help:      "Total number of cron job runs",
		}, []string{"job_name"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cron_job_errors_total",
			Help:      "Total number of cron job errors",
		}, []string{"job_name"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cron_job_run_duration_seconds",
			Help:      "Duration of cron job runs in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~32s
		}, []string{"job_name"}),
		lastRunTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cron_job_last_run_time_seconds",
			Help:      "Last run time of cron job in seconds since epoch",
		}, []string{"job_name"}),
		nextRunTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cron_job_next_run_time_seconds",
			Help:      "Next scheduled run time of cron job in seconds since epoch",
		}, []string{"job_name"}),
		jobsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cron_jobs_total",
			Help:      "Total number of registered cron jobs",
		}),
	}
}

// Describe implements prometheus.Collector.
func (r *CronMetricsRecorder) Describe(ch chan<- *prometheus.Desc) {
	r.runsTotal.Describe(ch)
	r.errorsTotal.Describe(ch)
	r.duration.Describe(ch)
	r.lastRunTime.Describe(ch)
	r.nextRunTime.Describe(ch)
	r.jobsTotal.Describe(ch)
}

// Collect implements prometheus.Collector.
func (r *CronMetricsRecorder) Collect(ch chan<- prometheus.Metric) {
	r.runsTotal.Collect(ch)
	r.errorsTotal.Collect(ch)
	r.duration.Collect(ch)
	r.lastRunTime.Collect(ch)
	r.nextRunTime.Collect(ch)
	r.jobsTotal.Collect(ch)
}

func (r *CronMetricsRecorder) RecordJobRun(jobName string, duration time.Duration, err error) {
	if err != nil {
		r.errorsTotal.WithLabelValues(jobName).Inc()
	}
	r.runsTotal.WithLabelValues(jobName).Inc()
	r.duration.WithLabelValues(jobName).Observe(duration.Seconds())
	r.lastRunTime.WithLabelValues(jobName).Set(float64(time.Now().Unix()))
}

func (r *CronMetricsRecorder) UpdateNextRun(jobName string, nextRun time.Time) {
	if !nextRun.IsZero() {
		r.nextRunTime.WithLabelValues(jobName).Set(float64(nextRun.Unix()))
	}
}

func (r *CronMetricsRecorder) UpdateJobsCount(count int) {
	r.jobsTotal.Set(float64(count))
}
