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
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/salesflow/orderdesk/internal/system/error/serviceerror"
	"github.com/salesflow/orderdesk/internal/system/log"
	sysutils "github.com/salesflow/orderdesk/internal/system/utils"
)

const (
	serviceLoggerComponentName = "ApprovalHistoryService"
	maxCommentLength           = 2000
)

// HistoryServiceInterface defines the approval history operations.
type HistoryServiceInterface interface {
	RecordApproval(processInstanceKey string, request RecordApprovalRequest) (
		*ApprovalRecord, *serviceerror.ServiceError)
	ListApprovals(processInstanceKey string, filter ApprovalFilter) ([]ApprovalRecord, *serviceerror.ServiceError)
}

// historyService is the default implementation of HistoryServiceInterface.
type historyService struct {
	store historyStoreInterface
	now   func() time.Time
}

func newHistoryService(store historyStoreInterface) HistoryServiceInterface {
	return &historyService{
		store: store,
		now:   time.Now,
	}
}

// RecordApproval validates and persists an approval action.
func (s *historyService) RecordApproval(processInstanceKey string, request RecordApprovalRequest) (
	*ApprovalRecord, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName))

	if !isValidProcessInstanceKey(processInstanceKey) {
		return nil, &ErrorInvalidProcessInstanceKey
	}
	if svcErr := validateRecordApprovalRequest(request); svcErr != nil {
		return nil, svcErr
	}

	record := ApprovalRecord{
		ID:                 sysutils.GenerateUUID(),
		ProcessInstanceKey: processInstanceKey,
		StepID:             request.StepID,
		ActorID:            request.ActorID,
		Action:             strings.ToUpper(request.Action),
		Comment:            request.Comment,
		CompletedAt:        s.now().UTC(),
	}
	if err := s.store.CreateApproval(record); err != nil {
		logger.Error("Failed to record approval", log.String(log.LoggerKeyProcessInstanceKey, processInstanceKey),
			log.Error(err))
		return nil, &ErrorInternalServerError
	}

	logger.Debug("Recorded approval", log.String(log.LoggerKeyProcessInstanceKey, processInstanceKey),
		log.String(log.LoggerKeyStepID, record.StepID), log.String("action", record.Action))
	return &record, nil
}

// ListApprovals returns the approvals of a process instance matching the filter, oldest first.
func (s *historyService) ListApprovals(processInstanceKey string, filter ApprovalFilter) (
	[]ApprovalRecord, *serviceerror.ServiceError) {
	if !isValidProcessInstanceKey(processInstanceKey) {
		return nil, &ErrorInvalidProcessInstanceKey
	}
	if filter.Action != "" {
		filter.Action = strings.ToUpper(filter.Action)
		if !isValidAction(filter.Action) {
			return nil, &ErrorInvalidAction
		}
	}

	records, err := s.store.ListApprovals(processInstanceKey, filter)
	if err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName)).
			Error("Failed to list approvals", log.String(log.LoggerKeyProcessInstanceKey, processInstanceKey),
				log.Error(err))
		return nil, &ErrorInternalServerError
	}
	return records, nil
}

func validateRecordApprovalRequest(request RecordApprovalRequest) *serviceerror.ServiceError {
	if strings.TrimSpace(request.StepID) == "" {
		return &ErrorMissingStepID
	}
	if strings.TrimSpace(request.ActorID) == "" {
		return &ErrorMissingActorID
	}
	if !isValidAction(strings.ToUpper(request.Action)) {
		return &ErrorInvalidAction
	}
	if utf8.RuneCountInString(request.Comment) > maxCommentLength {
		return &ErrorCommentTooLong
	}
	return nil
}

func isValidAction(action string) bool {
	switch action {
	case ActionApprove, ActionReject, ActionSubmit:
		return true
	}
	return false
}

// isValidProcessInstanceKey reports whether key is a positive engine key.
func isValidProcessInstanceKey(key string) bool {
	value, err := strconv.ParseInt(key, 10, 64)
	return err == nil && value > 0
}
