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

package trace

import (
	"context"

	tracectx "github.com/go-arcade/wxmenu/pkg/trace/context"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/go-arcade/wxmenu"

// Go 在新 goroutine 中执行 fn，并继承 ctx 的 span
func Go(ctx context.Context, fn func(ctx context.Context)) {
	ctx = tracectx.ContextWithSpan(ctx)
	go tracectx.RunWithContext(ctx, fn)
}

// StartSpan 使用 wxmenu tracer 创建 span，ctx 中没有 span 时继承 goroutine 上下文
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	ctx = tracectx.ContextWithSpan(ctx)
	return GetTracer(tracerName).Start(ctx, name, opts...)
}

// EndSpan 记录 err（如有）并结束 span
func EndSpan(span trace.Span, err error, attrs ...attribute.KeyValue) {
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
