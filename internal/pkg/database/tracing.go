// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package database

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	instrumentationName = "internal/pkg/database"
	spanKey             = "tracing:span"
)

var _ gorm.Plugin = (*GormTracingPlugin)(nil)

// GormTracingPlugin 为每一条 SQL 创建一个 span
type GormTracingPlugin struct {
	tracer trace.Tracer
}

type TracingOption func(p *GormTracingPlugin)

// WithTracerProvider 默认使用全局的 TracerProvider
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(p *GormTracingPlugin) {
		p.tracer = tp.Tracer(instrumentationName)
	}
}

func NewGormTracingPlugin(opts ...TracingOption) *GormTracingPlugin {
	res := &GormTracingPlugin{
		tracer: otel.GetTracerProvider().Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func (p *GormTracingPlugin) Name() string {
	return "GormTracingPlugin"
}

func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	err := errors.Join(
		cb.Query().Before("gorm:query").Register("tracing:before_query", p.before("query")),
		cb.Query().After("gorm:query").Register("tracing:after_query", p.after),
		cb.Create().Before("gorm:create").Register("tracing:before_create", p.before("create")),
		cb.Create().After("gorm:create").Register("tracing:after_create", p.after),
		cb.Update().Before("gorm:update").Register("tracing:before_update", p.before("update")),
		cb.Update().After("gorm:update").Register("tracing:after_update", p.after),
		cb.Delete().Before("gorm:delete").Register("tracing:before_delete", p.before("delete")),
		cb.Delete().After("gorm:delete").Register("tracing:after_delete", p.after),
		cb.Row().Before("gorm:row").Register("tracing:before_row", p.before("row")),
		cb.Row().After("gorm:row").Register("tracing:after_row", p.after),
		cb.Raw().Before("gorm:raw").Register("tracing:before_raw", p.before("raw")),
		cb.Raw().After("gorm:raw").Register("tracing:after_raw", p.after),
	)
	if err != nil {
		return fmt.Errorf("注册追踪回调失败: %w", err)
	}
	return nil
}

func (p *GormTracingPlugin) before(operation string) func(db *gorm.DB) {
	return func(db *gorm.DB) {
		ctx := context.Background()
		if db.Statement.Context != nil {
			ctx = db.Statement.Context
		}
		spanName := "SQL " + operation
		if db.Statement.Table != "" {
			spanName = db.Statement.Table + " " + operation
		}
		ctx, span := p.tracer.Start(ctx, spanName,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(attribute.String("db.operation", operation)))
		db.Statement.Context = ctx
		db.InstanceSet(spanKey, span)
	}
}

func (p *GormTracingPlugin) after(db *gorm.DB) {
	val, ok := db.InstanceGet(spanKey)
	if !ok {
		return
	}
	span, ok := val.(trace.Span)
	if !ok {
		return
	}
	defer span.End()
	attrs := []attribute.KeyValue{
		attribute.String("db.system", db.Dialector.Name()),
		attribute.String("db.statement", db.Statement.SQL.String()),
		attribute.Int64("db.rows_affected", db.Statement.RowsAffected),
	}
	if db.Statement.Table != "" {
		attrs = append(attrs, attribute.String("db.table", db.Statement.Table))
	}
	span.SetAttributes(attrs...)
	// 查不到数据是正常的业务结果
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.RecordError(db.Error)
		span.SetStatus(codes.Error, db.Error.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
