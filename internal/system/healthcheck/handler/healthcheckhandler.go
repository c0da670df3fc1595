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

// Package handler serves the liveness and readiness probes.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/salesflow/orderdesk/internal/system/healthcheck/model"
	"github.com/salesflow/orderdesk/internal/system/healthcheck/service"
	"github.com/salesflow/orderdesk/internal/system/log"
	sysutils "github.com/salesflow/orderdesk/internal/system/utils"
)

const (
	handlerLoggerComponentName = "HealthCheckHandler"
	defaultReadinessTimeout    = 5 * time.Second
)

// HealthCheckHandler serves the health probes.
type HealthCheckHandler struct {
	service          service.HealthCheckServiceInterface
	readinessTimeout time.Duration
}

// NewHealthCheckHandler creates a health check handler. A readiness check that outlasts readinessTimeout
// reports the slow dependencies as down.
func NewHealthCheckHandler(healthCheckService service.HealthCheckServiceInterface,
	readinessTimeout time.Duration) *HealthCheckHandler {
	if readinessTimeout <= 0 {
		readinessTimeout = defaultReadinessTimeout
	}
	return &HealthCheckHandler{
		service:          healthCheckService,
		readinessTimeout: readinessTimeout,
	}
}

// HandleLivenessRequest reports that the process is serving requests. It never checks dependencies.
func (hch *HealthCheckHandler) HandleLivenessRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))
	sysutils.WriteJSONResponse(w, http.StatusOK, model.ServerStatus{Status: model.StatusUp}, logger)
}

// HandleReadinessRequest reports whether the history database and the workflow engine are usable.
func (hch *HealthCheckHandler) HandleReadinessRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	ctx, cancel := context.WithTimeout(r.Context(), hch.readinessTimeout)
	defer cancel()
	serverStatus := hch.service.CheckReadiness(ctx)

	statusCode := http.StatusOK
	if serverStatus.Status != model.StatusUp {
		logger.Warn("Readiness check failed", log.Any("services", serverStatus.ServiceStatus))
		statusCode = http.StatusServiceUnavailable
	}
	sysutils.WriteJSONResponse(w, statusCode, serverStatus, logger)
}
