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
	"fmt"
	"net/http"
	"time"

	tracecontext "github.com/go-arcade/wxmenu/pkg/trace/context"
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const fiberTracerName = "github.com/go-arcade/wxmenu/pkg/trace/inject/fiber"

// FiberMiddleware 为每个请求开启一个 server span
// span 同时写入 fiber UserContext 和 goroutine context，handler、gorm 回调和日志都能取到
func FiberMiddleware() fiber.Handler {
	tracer := otel.Tracer(fiberTracerName)
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if ctx == nil {
			ctx = context.Background()
		}
		carrier := propagation.HeaderCarrier(http.Header(c.GetReqHeaders()))
		ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

		start := time.Now()
		// 路由在 c.Next() 之前还未匹配，span 名先用原始路径
		ctx, span := tracer.Start(ctx, c.Method()+" "+c.Path(), trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		tracecontext.SetContext(ctx)
		defer tracecontext.ClearContext()
		c.SetUserContext(ctx)

		attrs := []attribute.KeyValue{
			attribute.String("http.method", c.Method()),
			attribute.String("http.scheme", c.Protocol()),
			attribute.String("http.target", string(c.Request().URI().RequestURI())),
		}
		if id, ok := c.Locals("request_id").(string); ok && id != "" {
			attrs = append(attrs, attribute.String("http.request.id", id))
		}
		if ua := c.Get(fiber.HeaderUserAgent); ua != "" {
			attrs = append(attrs, attribute.String("http.user_agent", ua))
		}
		if ip, ok := c.Locals("ip").(string); ok && ip != "" {
			attrs = append(attrs, attribute.String("net.peer.ip", ip))
		}
		span.SetAttributes(attrs...)

		err := c.Next()

		if route := c.Route(); route != nil && route.Path != "" {
			span.SetName(c.Method() + " " + route.Path)
			span.SetAttributes(attribute.String("http.route", route.Path))
		}

		status := c.Response().StatusCode()
		span.SetAttributes(
			attribute.Int("http.status_code", status),
			attribute.Int64("http.duration_ms", time.Since(start).Milliseconds()),
		)
		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case status >= fiber.StatusBadRequest:
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
		default:
			span.SetStatus(codes.Ok, "")
		}
		return err
	}
}
