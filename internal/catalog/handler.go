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
	"errors"
	"net/http"
	"strings"

	"github.com/salesflow/orderdesk/internal/system/error/serviceerror"
	"github.com/salesflow/orderdesk/internal/system/log"
	sysutils "github.com/salesflow/orderdesk/internal/system/utils"
)

const handlerLoggerComponentName = "StepCatalogHandler"

// catalogHandler exposes catalog lookup and invalidation over HTTP.
type catalogHandler struct {
	provider ProviderInterface
}

func newCatalogHandler(provider ProviderInterface) *catalogHandler {
	return &catalogHandler{provider: provider}
}

// HandleCatalogGetRequest handles GET /catalogs/{processId}.
func (ch *catalogHandler) HandleCatalogGetRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	processID := strings.TrimSpace(r.PathValue("processId"))
	if processID == "" {
		ch.handleError(w, logger, &ErrorInvalidProcessID)
		return
	}

	stepCatalog, err := ch.provider.GetCatalog(r.Context(), processID)
	if err != nil {
		if errors.Is(err, ErrCatalogNotFound) {
			logger.Debug("Step catalog not found", log.String(log.LoggerKeyProcessID, processID), log.Error(err))
			ch.handleError(w, logger, &ErrorCatalogNotFound)
			return
		}
		logger.Error("Failed to resolve step catalog", log.Error(err))
		ch.handleError(w, logger, &ErrorInternalServerError)
		return
	}

	sysutils.WriteJSONResponse(w, http.StatusOK, stepCatalog, logger)
}

// HandleCatalogInvalidateRequest handles POST /catalogs/{processId}/invalidate.
func (ch *catalogHandler) HandleCatalogInvalidateRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	processID := strings.TrimSpace(r.PathValue("processId"))
	if processID == "" {
		ch.handleError(w, logger, &ErrorInvalidProcessID)
		return
	}

	ch.provider.Invalidate(processID)
	logger.Info("Invalidated step catalog", log.String(log.LoggerKeyProcessID, processID))
	w.WriteHeader(http.StatusNoContent)
}

func (ch *catalogHandler) handleError(w http.ResponseWriter, logger *log.Logger,
	svcErr *serviceerror.ServiceError) {
	statusCode := http.StatusBadRequest
	if svcErr.Code == ErrorCatalogNotFound.Code {
		statusCode = http.StatusNotFound
	}
	sysutils.WriteServiceErrorResponse(w, statusCode, svcErr, logger)
}
