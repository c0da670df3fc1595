/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package tracing wires OpenTelemetry spans for the server components.
package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/salesflow/orderdesk/internal/system/log"
)

const instrumentationPrefix = "github.com/salesflow/orderdesk/"

// Tracer returns the tracer for the named component from the global tracer provider.
func Tracer(component string) trace.Tracer {
	return otel.Tracer(instrumentationPrefix + component)
}

// EndSpan records the error, if any, on the span and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, strings.TrimSpace(err.Error()))
	}
	span.End()
}

// InitTracerProvider installs a global tracer provider that reports finished spans to the debug log.
// The returned function flushes and shuts the provider down.
func InitTracerProvider(serviceName string) func(context.Context) error {
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(&logSpanProcessor{serviceName: serviceName}),
	)
	otel.SetTracerProvider(provider)
	return provider.Shutdown
}

// logSpanProcessor writes every ended span to the debug log.
type logSpanProcessor struct {
	serviceName string
}

func (p *logSpanProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *logSpanProcessor) OnEnd(span sdktrace.ReadOnlySpan) {
	logger := log.GetLogger()
	if !logger.IsDebugEnabled() {
		return
	}

	fields := []log.Field{
		log.String("service", p.serviceName),
		log.String("span", span.Name()),
		log.String("traceId", span.SpanContext().TraceID().String()),
		log.Duration("duration", span.EndTime().Sub(span.StartTime())),
	}
	for _, attr := range span.Attributes() {
		fields = append(fields, log.String(string(attr.Key), attr.Value.Emit()))
	}
	if span.Status().Code == codes.Error {
		fields = append(fields, log.String("error", span.Status().Description))
	}
	logger.Debug("Span finished", fields...)
}

func (p *logSpanProcessor) Shutdown(context.Context) error { return nil }

func (p *logSpanProcessor) ForceFlush(context.Context) error { return nil }

// StringAttr is a shorthand for a string span attribute.
func StringAttr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}
