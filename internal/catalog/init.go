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

package catalog

import (
	"net/http"

	"github.com/salesflow/orderdesk/internal/system/cache"
	"github.com/salesflow/orderdesk/internal/system/config"
	"github.com/salesflow/orderdesk/internal/system/log"
	"github.com/salesflow/orderdesk/internal/system/middleware"
)

// Initialize creates the catalog provider, starts the refresh schedule and registers the routes.
// The returned refresher is nil when no schedule is configured.
func Initialize(mux *http.ServeMux, source DefinitionSource) (ProviderInterface, *Refresher, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, providerLoggerComponentName))
	runtime := config.GetServerRuntime()
	catalogConfig := runtime.Config.Catalog

	var static map[string]*StepCatalog
	if catalogConfig.StaticFile != "" {
		loaded, err := LoadStaticCatalogs(runtime.ResolvePath(catalogConfig.StaticFile))
		if err != nil {
			logger.Warn("Static step catalogs are not available", log.Error(err))
		} else {
			static = loaded
			logger.Debug("Loaded static step catalogs", log.Int("count", len(static)))
		}
	}

	provider := NewProvider(source, static, cache.GetCache[*StepCatalog](CacheName))

	var refresher *Refresher
	if catalogConfig.RefreshSchedule != "" {
		var err error
		if refresher, err = NewRefresher(catalogConfig.RefreshSchedule, provider); err != nil {
			return nil, nil, err
		}
		refresher.Start()
	}

	registerRoutes(mux, newCatalogHandler(provider))
	return provider, refresher, nil
}

func registerRoutes(mux *http.ServeMux, handler *catalogHandler) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "GET, POST",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("GET /catalogs/{processId}", handler.HandleCatalogGetRequest, opts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /catalogs/{processId}", middleware.Preflight, opts))
	mux.HandleFunc(middleware.WithCORS("POST /catalogs/{processId}/invalidate",
		handler.HandleCatalogInvalidateRequest, opts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /catalogs/{processId}/invalidate", middleware.Preflight, opts))
}
