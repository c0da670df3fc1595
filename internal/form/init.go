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

package form

import (
	"net/http"

	"github.com/salesflow/orderdesk/internal/system/cache"
	"github.com/salesflow/orderdesk/internal/system/config"
	"github.com/salesflow/orderdesk/internal/system/log"
	"github.com/salesflow/orderdesk/internal/system/middleware"
)

// Initialize indexes the form schemas, creates the form service and registers its routes.
func Initialize(mux *http.ServeMux) (FormServiceInterface, error) {
	runtime := config.GetServerRuntime()
	formConfig := runtime.Config.Form

	repository, err := newFileRepository(runtime.ResolvePath(formConfig.SchemaDirectory), cache.GetCache[*FormSchema](FormSchemaCacheName))
	if err != nil {
		return nil, err
	}

	renderer := NewRenderer(formConfig.DefaultVisibility)
	visibility := DefaultVisibilityVisible
	if !renderer.defaultVisible {
		visibility = DefaultVisibilityHidden
	}
	log.GetLogger().With(log.String(log.LoggerKeyComponentName, rendererLoggerComponentName)).
		Info("Form renderer initialized", log.String("defaultVisibility", visibility),
			log.Int("schemas", len(repository.ListFormSchemas())))

	service := newFormService(repository, renderer)
	registerRoutes(mux, newFormHandler(service))
	return service, nil
}

func registerRoutes(mux *http.ServeMux, handler *formHandler) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "GET, POST",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("GET /forms", handler.HandleFormListRequest, opts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /forms", middleware.Preflight, opts))
	mux.HandleFunc(middleware.WithCORS("POST /forms/{key}/render", handler.HandleFormRenderRequest, opts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /forms/{key}/render", middleware.Preflight, opts))
}
