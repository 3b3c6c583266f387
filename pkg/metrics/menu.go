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

// MenuMetrics collects publish and platform statistics.
// All methods are safe on a nil receiver so callers can run without metrics.
type MenuMetrics struct {
	publishTotal     *prometheus.CounterVec
	publishDuration  prometheus.Histogram
	platformTotal    *prometheus.CounterVec
	platformDuration *prometheus.HistogramVec
	tokenRefresh     prometheus.Counter
	driftTotal       *prometheus.CounterVec
}

func NewMenuMetrics() *MenuMetrics {
	return &MenuMetrics{
		publishTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menu_publish_total",
			Help:      "Menu publish attempts by result",
		}, []string{"result"}),
		publishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "menu_publish_duration_seconds",
			Help:      "End to end duration of a menu publish",
			Buckets:   prometheus.DefBuckets,
		}),
		platformTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "platform_requests_total",
			Help:      "Requests sent to the WeChat API",
		}, []string{"api", "result"}),
		platformDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "platform_request_duration_seconds",
			Help:      "Latency of WeChat API requests",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}, []string{"api"}),
		tokenRefresh: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "access_token_refresh_total",
			Help:      "Number of access token fetches",
		}),
		driftTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menu_drift_total",
			Help:      "Detected differences between the published version and the live platform menu",
		}, []string{"account_id"}),
	}
}

func (m *MenuMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.publishTotal.Describe(ch)
	m.publishDuration.Describe(ch)
	m.platformTotal.Describe(ch)
	m.platformDuration.Describe(ch)
	m.tokenRefresh.Describe(ch)
	m.driftTotal.Describe(ch)
}

func (m *MenuMetrics) Collect(ch chan<- prometheus.Metric) {
	m.publishTotal.Collect(ch)
	m.publishDuration.Collect(ch)
	m.platformTotal.Collect(ch)
	m.platformDuration.Collect(ch)
	m.tokenRefresh.Collect(ch)
	m.driftTotal.Collect(ch)
}

// ObservePublish records one publish attempt. result is a short code such
// as "success" or "platform_failed".
func (m *MenuMetrics) ObservePublish(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.publishTotal.WithLabelValues(result).Inc()
	m.publishDuration.Observe(d.Seconds())
}

func (m *MenuMetrics) ObservePlatformCall(api string, err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.platformTotal.WithLabelValues(api, result).Inc()
	m.platformDuration.WithLabelValues(api).Observe(d.Seconds())
}

func (m *MenuMetrics) IncTokenRefresh() {
	if m == nil {
		return
	}
	m.tokenRefresh.Inc()
}

func (m *MenuMetrics) IncDrift(accountID string) {
	if m == nil {
		return
	}
	m.driftTotal.WithLabelValues(accountID).Inc()
}
