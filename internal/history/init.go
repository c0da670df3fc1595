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

package history

import (
	"fmt"
	"net/http"

	"github.com/salesflow/orderdesk/internal/system/database/provider"
	"github.com/salesflow/orderdesk/internal/system/database/seeder"
	"github.com/salesflow/orderdesk/internal/system/middleware"
)

// Initialize bootstraps the history schema, creates the history service and registers its routes.
func Initialize(mux *http.ServeMux, dbProvider provider.DBProviderInterface) (HistoryServiceInterface, error) {
	if err := seeder.SeedDatabase(dbProvider, provider.HistoryDBName, SchemaQueries...); err != nil {
		return nil, fmt.Errorf("failed to bootstrap history schema: %w", err)
	}

	historyService := newHistoryService(newHistoryStore(dbProvider))
	registerRoutes(mux, newHistoryHandler(historyService))
	return historyService, nil
}

func registerRoutes(mux *http.ServeMux, handler *historyHandler) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "GET, POST",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("GET /process-instances/{key}/approvals",
		handler.HandleApprovalListRequest, opts))
	mux.HandleFunc(middleware.WithCORS("POST /process-instances/{key}/approvals",
		handler.HandleApprovalPostRequest, opts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /process-instances/{key}/approvals", middleware.Preflight, opts))
}
