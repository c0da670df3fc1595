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
	"net/http"

	"github.com/salesflow/orderdesk/internal/system/error/serviceerror"
	"github.com/salesflow/orderdesk/internal/system/log"
	sysutils "github.com/salesflow/orderdesk/internal/system/utils"
)

const handlerLoggerComponentName = "ProcessFlowHandler"

// processFlowHandler is the handler for process flow status requests.
type processFlowHandler struct {
	service ProcessFlowServiceInterface
}

func newProcessFlowHandler(service ProcessFlowServiceInterface) *processFlowHandler {
	return &processFlowHandler{service: service}
}

// HandleFlowStatusRequest handles GET /process-instances/{key}/flow-status.
func (h *processFlowHandler) HandleFlowStatusRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	status, svcErr := h.service.GetProcessFlowStatus(r.Context(), r.PathValue("key"))
	if svcErr != nil {
		h.handleError(w, logger, svcErr)
		return
	}

	sysutils.WriteJSONResponse(w, http.StatusOK, status, logger)
}

func (h *processFlowHandler) handleError(w http.ResponseWriter, logger *log.Logger,
	svcErr *serviceerror.ServiceError) {
	statusCode := http.StatusBadRequest
	if svcErr.Code == ErrorCatalogUnavailable.Code {
		statusCode = http.StatusServiceUnavailable
	}
	sysutils.WriteServiceErrorResponse(w, statusCode, svcErr, logger)
}
