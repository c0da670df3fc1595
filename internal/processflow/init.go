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

package processflow

import (
	"errors"
	"net/http"
	"time"

	"github.com/salesflow/orderdesk/internal/catalog"
	"github.com/salesflow/orderdesk/internal/system/config"
	"github.com/salesflow/orderdesk/internal/system/middleware"
)

var errNoEngine = errors.New("no workflow engine configured")

// Initialize creates the process flow service and registers its routes.
func Initialize(mux *http.ServeMux, engine EngineClient, catalogs catalog.ProviderInterface,
	history HistorySource) ProcessFlowServiceInterface {
	cfg := config.GetServerRuntime().Config
	service := NewProcessFlowService(engine, catalogs, history, cfg.Catalog.DefaultProcessID,
		time.Duration(cfg.Workflow.AggregationTimeout)*time.Second)

	handler := newProcessFlowHandler(service)
	opts := middleware.CORSOptions{
		AllowedMethods:   "GET",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("GET /process-instances/{key}/flow-status",
		handler.HandleFlowStatusRequest, opts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /process-instances/{key}/flow-status", middleware.Preflight, opts))
	return service
}
