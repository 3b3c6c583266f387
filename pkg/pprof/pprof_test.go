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

package pprof

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := NewServer(PprofConfig{})
	assert.Equal(t, "/debug/pprof", s.config.Path)
	assert.Equal(t, 8083, s.config.Port)
}

func TestHandler_Index(t *testing.T) {
	s := NewServer(PprofConfig{Path: "/dbg"})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dbg/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStartDisabled(t *testing.T) {
	s := NewServer(PprofConfig{Enable: false})
	require.NoError(t, s.Start())
	require.NoError(t, s.Stop(context.Background()))
}
