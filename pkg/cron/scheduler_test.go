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

package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	mu    sync.Mutex
	runs  map[string]int
	errs  map[string]int
	next  map[string]time.Time
	count int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{runs: map[string]int{}, errs: map[string]int{}, next: map[string]time.Time{}}
}

func (r *fakeRecorder) RecordJobRun(name string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[name]++
	if err != nil {
		r.errs[name]++
	}
}

func (r *fakeRecorder) UpdateNextRun(name string, next time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next[name] = next
}

func (r *fakeRecorder) UpdateJobsCount(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count = count
}

func TestAddFunc_Validation(t *testing.T) {
	s := New()
	noop := func(context.Context) error { return nil }

	assert.ErrorIs(t, s.AddFunc("", "@every 1m", noop), ErrEmptyName)
	assert.Error(t, s.AddFunc("bad", "not a spec", noop))
	require.NoError(t, s.AddFunc("drift", "0 */5 * * * *", noop))
	assert.ErrorIs(t, s.AddFunc("drift", "@every 1m", noop), ErrDuplicateName)
}

func TestRunNow_RecordsMetrics(t *testing.T) {
	rec := newFakeRecorder()
	s := New(WithMetricsRecorder(rec))
	boom := errors.New("boom")

	calls := 0
	require.NoError(t, s.AddFunc("flaky", "@every 1h", func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return boom
		}
		return nil
	}))

	assert.ErrorIs(t, s.RunNow("flaky"), boom)
	assert.NoError(t, s.RunNow("flaky"))
	assert.Error(t, s.RunNow("missing"))

	assert.Equal(t, 2, rec.runs["flaky"])
	assert.Equal(t, 1, rec.errs["flaky"])
	assert.Equal(t, 1, rec.count)
	assert.True(t, rec.next["flaky"].After(time.Now()))
}

func TestRunNow_RecoversPanic(t *testing.T) {
	s := New()
	require.NoError(t, s.AddFunc("panicky", "@every 1h", func(context.Context) error {
		panic("unexpected")
	}))

	err := s.RunNow("panicky")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}

func TestRunNow_Timeout(t *testing.T) {
	s := New(WithTimeout(20 * time.Millisecond))
	require.NoError(t, s.AddFunc("slow", "@every 1h", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	assert.ErrorIs(t, s.RunNow("slow"), context.DeadlineExceeded)
}

func TestEntries(t *testing.T) {
	s := New()
	noop := func(context.Context) error { return nil }
	require.NoError(t, s.AddFunc("b", "@every 1m", noop))
	require.NoError(t, s.AddFunc("a", "@every 2m", noop))

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, "@every 2m", entries[0].Spec)
	assert.Equal(t, "b", entries[1].Name)
}

func TestStartStop(t *testing.T) {
	s := New()
	ran := make(chan struct{}, 4)
	require.NoError(t, s.AddFunc("tick", "@every 1s", func(context.Context) error {
		ran <- struct{}{}
		return nil
	}))

	s.Start()
	s.Start() // idempotent
	assert.True(t, s.Running())

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled job did not run")
	}

	s.Stop()
	s.Stop()
	assert.False(t, s.Running())
}

func TestWithLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Skip("tzdata not available")
	}
	s := New(WithLocation(loc))
	assert.Equal(t, loc, s.Location())
}
