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

package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestEndSpanRecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := provider.Tracer("tracing-test")

	_, okSpan := tracer.Start(context.Background(), "ok")
	EndSpan(okSpan, nil)
	_, failedSpan := tracer.Start(context.Background(), "failed")
	EndSpan(failedSpan, errors.New(" engine unreachable "))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "engine unreachable", spans[1].Status().Description)
	assert.Len(t, spans[1].Events(), 1)
}

func TestInitTracerProviderInstallsGlobalProvider(t *testing.T) {
	shutdown := InitTracerProvider("orderdesk-test")
	defer func() {
		assert.NoError(t, shutdown(context.Background()))
	}()

	_, span := Tracer("tracing").Start(context.Background(), "probe")
	defer span.End()

	assert.True(t, span.SpanContext().IsValid())
	assert.Equal(t, "tracing", StringAttr("component", "tracing").Value.AsString())
}
