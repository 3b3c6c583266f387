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
	"time"

	tracecontext "github.com/go-arcade/wxmenu/pkg/trace/context"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const gormTracerName = "github.com/go-arcade/wxmenu/pkg/trace/inject/gorm"

type gormCtxKey int

const (
	gormSpanKey gormCtxKey = iota
	gormStartKey
)

// GormPlugin 为每条 SQL 生成一个 client span
type GormPlugin struct {
	WithQuery bool // 记录 SQL 语句
	WithRows  bool // 记录影响行数

	tracer trace.Tracer
}

func (p *GormPlugin) Name() string {
	return "opentelemetry"
}

func (p *GormPlugin) Initialize(db *gorm.DB) error {
	p.tracer = otel.Tracer(gormTracerName)

	cb := db.Callback()
	errs := []error{
		cb.Create().Before("gorm:create").Register("otel:before_create", p.before("create")),
		cb.Create().After("gorm:create").Register("otel:after_create", p.after),
		cb.Query().Before("gorm:query").Register("otel:before_query", p.before("query")),
		cb.Query().After("gorm:query").Register("otel:after_query", p.after),
		cb.Update().Before("gorm:update").Register("otel:before_update", p.before("update")),
		cb.Update().After("gorm:update").Register("otel:after_update", p.after),
		cb.Delete().Before("gorm:delete").Register("otel:before_delete", p.before("delete")),
		cb.Delete().After("gorm:delete").Register("otel:after_delete", p.after),
		cb.Row().Before("gorm:row").Register("otel:before_row", p.before("row")),
		cb.Row().After("gorm:row").Register("otel:after_row", p.after),
		cb.Raw().Before("gorm:raw").Register("otel:before_raw", p.before("raw")),
		cb.Raw().After("gorm:raw").Register("otel:after_raw", p.after),
	}
	return errors.Join(errs...)
}

func (p *GormPlugin) before(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Statement == nil {
			return
		}
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = tracecontext.GetContext()
		}
		ctx = tracecontext.ContextWithSpan(ctx)

		ctx, span := p.tracer.Start(ctx, "gorm."+op, trace.WithSpanKind(trace.SpanKindClient))
		attrs := []attribute.KeyValue{
			attribute.String("db.system", db.Dialector.Name()),
			attribute.String("db.operation", op),
		}
		if db.Statement.Table != "" {
			attrs = append(attrs, attribute.String("db.sql.table", db.Statement.Table))
		}
		span.SetAttributes(attrs...)

		ctx = context.WithValue(ctx, gormSpanKey, span)
		db.Statement.Context = context.WithValue(ctx, gormStartKey, time.Now())
	}
}

func (p *GormPlugin) after(db *gorm.DB) {
	if db.Statement == nil || db.Statement.Context == nil {
		return
	}
	span, ok := db.Statement.Context.Value(gormSpanKey).(trace.Span)
	if !ok {
		return
	}
	defer span.End()

	if start, ok := db.Statement.Context.Value(gormStartKey).(time.Time); ok {
		span.SetAttributes(attribute.Int64("db.duration_ms", time.Since(start).Milliseconds()))
	}
	// SQL 在 gorm:xxx 回调中才生成，只能在 after 里记录
	if p.WithQuery {
		if sql := db.Statement.SQL.String(); sql != "" {
			span.SetAttributes(attribute.String("db.statement", sql))
		}
	}
	if p.WithRows {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}

	if err := db.Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

// RegisterGormPlugin 注册 OpenTelemetry 插件
func RegisterGormPlugin(db *gorm.DB, withQuery, withRows bool) error {
	return db.Use(&GormPlugin{WithQuery: withQuery, WithRows: withRows})
}
