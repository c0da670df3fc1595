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
	"net/http"

	"github.com/salesflow/orderdesk/internal/system/error/apierror"
	"github.com/salesflow/orderdesk/internal/system/error/serviceerror"
	"github.com/salesflow/orderdesk/internal/system/log"
	sysutils "github.com/salesflow/orderdesk/internal/system/utils"
)

const handlerLoggerComponentName = "ApprovalHistoryHandler"

// historyHandler is the handler for approval history operations.
type historyHandler struct {
	historyService HistoryServiceInterface
}

func newHistoryHandler(historyService HistoryServiceInterface) *historyHandler {
	return &historyHandler{historyService: historyService}
}

// HandleApprovalListRequest handles GET /process-instances/{key}/approvals.
// The stepId, actorId and action query parameters narrow the listing.
func (hh *historyHandler) HandleApprovalListRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	key := r.PathValue("key")
	query := r.URL.Query()
	filter := ApprovalFilter{
		StepID:  sysutils.SanitizeString(query.Get("stepId")),
		ActorID: sysutils.SanitizeString(query.Get("actorId")),
		Action:  sysutils.SanitizeString(query.Get("action")),
	}
	records, svcErr := hh.historyService.ListApprovals(key, filter)
	if svcErr != nil {
		hh.handleError(w, logger, svcErr)
		return
	}

	sysutils.WriteJSONResponse(w, http.StatusOK, ApprovalListResponse{
		ProcessInstanceKey: key,
		TotalResults:       len(records),
		Approvals:          records,
	}, logger)
}

// HandleApprovalPostRequest handles POST /process-instances/{key}/approvals.
func (hh *historyHandler) HandleApprovalPostRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	request, err := sysutils.DecodeJSONBody[RecordApprovalRequest](r)
	if err != nil {
		sysutils.WriteJSONResponse(w, http.StatusBadRequest, apierror.ErrorResponse{
			Code:        ErrorInvalidRequestFormat.Code,
			Message:     ErrorInvalidRequestFormat.Error,
			Description: "Failed to parse request body: " + err.Error(),
		}, logger)
		return
	}

	record, svcErr := hh.historyService.RecordApproval(r.PathValue("key"), sanitizeRecordApprovalRequest(*request))
	if svcErr != nil {
		hh.handleError(w, logger, svcErr)
		return
	}

	sysutils.WriteJSONResponse(w, http.StatusCreated, record, logger)
}

func (hh *historyHandler) handleError(w http.ResponseWriter, logger *log.Logger,
	svcErr *serviceerror.ServiceError) {
	sysutils.WriteServiceErrorResponse(w, http.StatusBadRequest, svcErr, logger)
}

func sanitizeRecordApprovalRequest(request RecordApprovalRequest) RecordApprovalRequest {
	return RecordApprovalRequest{
		StepID:  sysutils.SanitizeString(request.StepID),
		ActorID: sysutils.SanitizeString(request.ActorID),
		Action:  sysutils.SanitizeString(request.Action),
		Comment: sysutils.SanitizeString(request.Comment),
	}
}
