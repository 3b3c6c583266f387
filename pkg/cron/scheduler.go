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
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-arcade/wxmenu/pkg/log"
	"github.com/robfig/cron"
)

var (
	ErrDuplicateName = errors.New("cron job name already registered")
	ErrEmptyName     = errors.New("cron job name is required")
)

// JobFunc is a scheduled unit of work. The context is cancelled when the
// scheduler stops or the per-run timeout elapses.
type JobFunc func(ctx context.Context) error

// MetricsRecorder receives per-run statistics.
type MetricsRecorder interface {
	RecordJobRun(jobName string, duration time.Duration, err error)
	UpdateNextRun(jobName string, nextRun time.Time)
	UpdateJobsCount(count int)
}

// Entry is a snapshot of a registered job.
type Entry struct {
	Name string
	Spec string
	Prev time.Time
	Next time.Time
}

type OpOption func(*Scheduler)

// WithLocation sets the scheduling time zone.
func WithLocation(loc *time.Location) OpOption {
	return func(s *Scheduler) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithMetricsRecorder sets the recorder used for every job run.
func WithMetricsRecorder(r MetricsRecorder) OpOption {
	return func(s *Scheduler) {
		s.recorder = r
	}
}

// WithTimeout bounds a single run of each job. Zero means no bound.
func WithTimeout(d time.Duration) OpOption {
	return func(s *Scheduler) {
		s.timeout = d
	}
}

// Scheduler wraps robfig/cron with named jobs, context cancellation,
// structured logging and metrics.
type Scheduler struct {
	mu       sync.Mutex
	cron     *cron.Cron
	location *time.Location
	recorder MetricsRecorder
	timeout  time.Duration
	jobs     map[string]*namedJob
	running  bool

	ctx    context.Context
	cancel context.CancelFunc
}

type namedJob struct {
	name  string
	spec  string
	fn    JobFunc
	owner *Scheduler
	// a job never overlaps itself
	running sync.Mutex
}

func New(opts ...OpOption) *Scheduler {
	s := &Scheduler{
		location: time.Local,
		jobs:     make(map[string]*namedJob),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cron = cron.NewWithLocation(s.location)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// AddFunc registers fn under name. spec uses the six-field format with
// seconds ("0 */5 * * * *") or a descriptor such as "@every 5m".
func (s *Scheduler) AddFunc(name, spec string, fn JobFunc) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, err := cron.Parse(spec); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	job := &namedJob{name: name, spec: spec, fn: fn, owner: s}
	if err := s.cron.AddJob(spec, job); err != nil {
		return fmt.Errorf("add cron job %s: %w", name, err)
	}
	s.jobs[name] = job
	if s.recorder != nil {
		s.recorder.UpdateJobsCount(len(s.jobs))
	}
	log.Infow("cron job registered", "job", name, "spec", spec)
	return nil
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.cron.Start()
}

// Stop halts scheduling and cancels the context of in-flight runs.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.cron.Stop()
	s.cancel()
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) Location() *time.Location {
	return s.location
}

// Entries returns the registered jobs ordered by name.
func (s *Scheduler) Entries() []Entry {
	out := make([]Entry, 0)
	for _, e := range s.cron.Entries() {
		job, ok := e.Job.(*namedJob)
		if !ok {
			continue
		}
		out = append(out, Entry{Name: job.name, Spec: job.spec, Prev: e.Prev, Next: e.Next})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RunNow executes the named job synchronously, outside the schedule.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("cron job %s not found", name)
	}
	return job.execute()
}

// Run implements cron.Job.
func (j *namedJob) Run() {
	_ = j.execute()
}

func (j *namedJob) execute() (err error) {
	if !j.running.TryLock() {
		log.Warnw("cron job still running, skip this tick", "job", j.name)
		return nil
	}
	defer j.running.Unlock()

	s := j.owner
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cron job %s panicked: %v", j.name, r)
		}
		if err != nil {
			log.Errorw("cron job failed", "job", j.name, "error", err)
		} else {
			log.Debugw("cron job finished", "job", j.name, "duration", time.Since(start))
		}
		if s.recorder != nil {
			s.recorder.RecordJobRun(j.name, time.Since(start), err)
			if sched, perr := cron.Parse(j.spec); perr == nil {
				s.recorder.UpdateNextRun(j.name, sched.Next(time.Now().In(s.location)))
			}
		}
	}()

	return j.fn(ctx)
}
