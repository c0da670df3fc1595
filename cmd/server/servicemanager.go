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

package main

import (
	"net/http"
	"time"

	"github.com/salesflow/orderdesk/internal/catalog"
	"github.com/salesflow/orderdesk/internal/form"
	"github.com/salesflow/orderdesk/internal/history"
	"github.com/salesflow/orderdesk/internal/processflow"
	"github.com/salesflow/orderdesk/internal/system/config"
	"github.com/salesflow/orderdesk/internal/system/database/provider"
	"github.com/salesflow/orderdesk/internal/system/healthcheck/handler"
	"github.com/salesflow/orderdesk/internal/system/healthcheck/service"
	syshttp "github.com/salesflow/orderdesk/internal/system/http"
	"github.com/salesflow/orderdesk/internal/system/log"
	"github.com/salesflow/orderdesk/internal/system/metrics"
	"github.com/salesflow/orderdesk/internal/system/middleware"
	"github.com/salesflow/orderdesk/internal/workflow"
)

// registerServices registers all the services with the provided HTTP multiplexer. The returned
// refresher is nil when no catalog refresh schedule is configured.
func registerServices(mux *http.ServeMux, cfg *config.Config) *catalog.Refresher {
	logger := log.GetLogger()

	dbProvider := provider.GetDBProvider()
	engine := workflow.NewClient(cfg.Workflow,
		syshttp.NewHTTPClientWithTimeout(time.Duration(cfg.Workflow.RequestTimeout)*time.Second))

	historyService, err := history.Initialize(mux, dbProvider)
	if err != nil {
		logger.Fatal("Failed to initialize the approval history service", log.Error(err))
	}

	catalogs, refresher, err := catalog.Initialize(mux, engine)
	if err != nil {
		logger.Fatal("Failed to initialize the step catalog provider", log.Error(err))
	}

	_ = processflow.Initialize(mux, engine, catalogs, history.NewHistorySource(historyService))

	if _, err := form.Initialize(mux); err != nil {
		logger.Fatal("Failed to initialize the form service", log.Error(err))
	}

	registerHealthCheckRoutes(mux, handler.NewHealthCheckHandler(
		service.NewHealthCheckService(dbProvider, engine), time.Duration(cfg.Workflow.RequestTimeout)*time.Second))

	if cfg.Metrics.Enabled {
		mux.Handle("GET "+cfg.Metrics.Path, metrics.Handler())
	}

	return refresher
}

// registerHealthCheckRoutes registers the liveness and readiness routes.
func registerHealthCheckRoutes(mux *http.ServeMux, healthCheckHandler *handler.HealthCheckHandler) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "GET",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}

	mux.HandleFunc(middleware.WithCORS("OPTIONS /health/liveness", middleware.Preflight, opts))
	mux.HandleFunc(middleware.WithCORS("GET /health/liveness", healthCheckHandler.HandleLivenessRequest, opts))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /health/readiness", middleware.Preflight, opts))
	mux.HandleFunc(middleware.WithCORS("GET /health/readiness", healthCheckHandler.HandleReadinessRequest, opts))
}
