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
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuMetrics_NilSafe(t *testing.T) {
	var m *MenuMetrics
	m.ObservePublish("success", time.Second)
	m.ObservePlatformCall("menu/create", nil, time.Millisecond)
	m.IncTokenRefresh()
	m.IncDrift("acc-1")
}

func TestMenuMetrics_Counts(t *testing.T) {
	m := NewMenuMetrics()
	m.ObservePublish("success", 10*time.Millisecond)
	m.ObservePublish("platform_failed", 10*time.Millisecond)
	m.ObservePublish("success", 10*time.Millisecond)
	m.ObservePlatformCall("menu/create", errors.New("x"), time.Millisecond)
	m.IncDrift("acc-1")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.publishTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.platformTotal.WithLabelValues("menu/create", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.driftTotal.WithLabelValues("acc-1")))
}

func TestNewMetricsServer_Scrape(t *testing.T) {
	menu := NewMenuMetrics()
	cron := NewCronMetricsRecorder()
	server, err := NewMetricsServer(MetricsConfig{}, menu, cron)
	require.NoError(t, err)

	menu.ObservePublish("success", time.Millisecond)
	cron.RecordJobRun("menu-drift-check", time.Millisecond, nil)
	cron.UpdateJobsCount(1)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "wxmenu_menu_publish_total"))
	assert.True(t, strings.Contains(body, "wxmenu_cron_job_runs_total"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}

func TestServer_DisabledStart(t *testing.T) {
	s := NewServer(MetricsConfig{Enable: false})
	require.NoError(t, s.Start())
	require.NoError(t, s.Stop(context.Background()))
}
