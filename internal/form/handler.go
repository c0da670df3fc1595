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

	"github.com/salesflow/orderdesk/internal/system/error/serviceerror"
	"github.com/salesflow/orderdesk/internal/system/log"
	sysutils "github.com/salesflow/orderdesk/internal/system/utils"
)

const handlerLoggerComponentName = "FormHandler"

// formHandler is the handler for form requests.
type formHandler struct {
	service FormServiceInterface
}

func newFormHandler(service FormServiceInterface) *formHandler {
	return &formHandler{service: service}
}

// HandleFormRenderRequest handles POST /forms/{key}/render.
func (h *formHandler) HandleFormRenderRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	request, err := sysutils.DecodeJSONBody[RenderFormRequest](r)
	if err != nil {
		logger.Debug("Rejecting malformed render request", log.Error(err))
		sysutils.WriteServiceErrorResponse(w, http.StatusBadRequest, &ErrorInvalidRequestFormat, logger)
		return
	}

	rendered, svcErr := h.service.RenderForm(r.PathValue("key"), request.PermissionLevel,
		request.Variables, request.TaskInfo)
	if svcErr != nil {
		h.handleError(w, logger, svcErr)
		return
	}

	sysutils.WriteJSONResponse(w, http.StatusOK, rendered, logger)
}

// HandleFormListRequest handles GET /forms.
func (h *formHandler) HandleFormListRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))
	sysutils.WriteJSONResponse(w, http.StatusOK, h.service.ListForms(), logger)
}

func (h *formHandler) handleError(w http.ResponseWriter, logger *log.Logger, svcErr *serviceerror.ServiceError) {
	statusCode := http.StatusBadRequest
	if svcErr.Code == ErrorFormNotFound.Code {
		statusCode = http.StatusNotFound
	}
	sysutils.WriteServiceErrorResponse(w, statusCode, svcErr, logger)
}
