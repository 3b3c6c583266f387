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
	"errors"
	"strings"

	tracecontext "github.com/go-arcade/wxmenu/pkg/trace/context"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const redisTracerName = "github.com/go-arcade/wxmenu/pkg/trace/inject/redis"

// RedisHook 实现 redis.Hook
type RedisHook struct {
	// WithStatement 记录完整命令，access token 等敏感值会出现在 span 中，生产环境慎用
	WithStatement bool

	tracer trace.Tracer
}

func (h *RedisHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *RedisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		ctx, span := h.start(ctx, "redis."+cmd.Name(), cmd.Name())
		if h.WithStatement {
			span.SetAttributes(attribute.String("db.statement", cmd.String()))
		}
		err := next(ctx, cmd)
		h.end(span, err)
		return err
	}
}

func (h *RedisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		ctx, span := h.start(ctx, "redis.pipeline", "pipeline")
		names := make([]string, 0, len(cmds))
		for _, cmd := range cmds {
			names = append(names, cmd.Name())
		}
		span.SetAttributes(
			attribute.Int("db.redis.pipeline.length", len(cmds)),
			attribute.String("db.redis.pipeline.commands", strings.Join(names, ",")),
		)
		err := next(ctx, cmds)
		h.end(span, err)
		return err
	}
}

func (h *RedisHook) start(ctx context.Context, name, op string) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = tracecontext.GetContext()
	}
	ctx = tracecontext.ContextWithSpan(ctx)
	ctx, span := h.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String("db.system", "redis"),
		attribute.String("db.operation", op),
	)
	return ctx, span
}

func (h *RedisHook) end(span trace.Span, err error) {
	defer span.End()
	switch {
	case err == nil:
		span.SetStatus(codes.Ok, "")
	case errors.Is(err, redis.Nil):
		span.SetAttributes(attribute.Bool("db.redis.nil", true))
		span.SetStatus(codes.Ok, "")
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// RegisterRedisHook 为 redis client 注册 tracing hook
func RegisterRedisHook(client redis.UniversalClient, withStatement bool) {
	client.AddHook(&RedisHook{
		WithStatement: withStatement,
		tracer:        otel.Tracer(redisTracerName),
	})
}
