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

// Package context keeps the active request context per goroutine so that code
// without a context.Context parameter (zap cores, gorm callbacks) can still
// find the current span.
package context

import (
	"context"
	"runtime"
	"sync"

	"github.com/timandy/routine"
	"go.opentelemetry.io/otel/trace"
)

const (
	bucketsSize = 128
	armSystem   = "arm64"
)

type contextBucket struct {
	lock sync.RWMutex
	data map[uint64]context.Context
}

var buckets [bucketsSize]*contextBucket

func init() {
	for i := range buckets {
		buckets[i] = &contextBucket{data: make(map[uint64]context.Context)}
	}
}

// routine cannot read goid reliably on arm64, so it is disabled there.
func bucketOf() (*contextBucket, uint64, bool) {
	if runtime.GOARCH == armSystem {
		return nil, 0, false
	}
	goid := routine.Goid()
	return buckets[goid%bucketsSize], goid, true
}

// GetContext returns the context bound to the calling goroutine, or nil.
func GetContext() context.Context {
	bucket, goid, ok := bucketOf()
	if !ok {
		return nil
	}
	bucket.lock.RLock()
	defer bucket.lock.RUnlock()
	return bucket.data[goid]
}

// SetContext binds ctx to the calling goroutine.
func SetContext(ctx context.Context) {
	bucket, goid, ok := bucketOf()
	if !ok {
		return
	}
	bucket.lock.Lock()
	bucket.data[goid] = ctx
	bucket.lock.Unlock()
}

// ClearContext removes the binding of the calling goroutine.
func ClearContext() {
	bucket, goid, ok := bucketOf()
	if !ok {
		return
	}
	bucket.lock.Lock()
	delete(bucket.data, goid)
	bucket.lock.Unlock()
}

// RunWithContext runs fn with ctx bound to the current goroutine.
func RunWithContext(ctx context.Context, fn func(ctx context.Context)) {
	SetContext(ctx)
	defer ClearContext()
	fn(ctx)
}

// ContextWithSpan copies the goroutine's span into ctx when ctx has none.
func ContextWithSpan(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx
	}
	if pct := GetContext(); pct != nil {
		if span := trace.SpanFromContext(pct); span.SpanContext().IsValid() {
			ctx = trace.ContextWithSpan(ctx, span)
		}
	}
	return ctx
}
