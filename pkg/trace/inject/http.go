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

package inject

import (
	"context"
	"net/http"
	"time"

	"github.com/go-arcade/wxmenu/pkg/trace"
	tracecontext "github.com/go-arcade/wxmenu/pkg/trace/context"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// HTTPRequest 对一次出站 HTTP 调用进行埋点
// fn 返回响应状态码、响应大小和错误；header 会被注入 traceparent
func HTTPRequest(ctx context.Context, method, url string, header http.Header,
	fn func(ctx context.Context) (statusCode int, responseSize int64, err error)) (int, int64, error) {
	ctx, span := trace.StartSpan(ctx, "http.client "+method, oteltrace.WithSpanKind(oteltrace.SpanKindClient))

	tracecontext.SetContext(ctx)
	defer tracecontext.ClearContext()

	if header != nil {
		otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(header))
	}

	start := time.Now()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.url", url),
	)

	statusCode, size, err := fn(ctx)

	attrs := []attribute.KeyValue{
		attribute.Int("http.status_code", statusCode),
		attribute.Int64("http.response.size", size),
		attribute.Int64("http.duration_ms", time.Since(start).Milliseconds()),
	}
	spanErr := err
	if spanErr == nil && statusCode >= http.StatusBadRequest {
		spanErr = &statusError{code: statusCode}
	}
	trace.EndSpan(span, spanErr, attrs...)

	return statusCode, size, err
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return http.StatusText(e.code)
}
