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
	"context"
	"errors"
	"fmt"

	"github.com/salesflow/orderdesk/internal/processflow"
)

// historySource exposes the approval history to the status aggregator.
type historySource struct {
	historyService HistoryServiceInterface
}

// NewHistorySource adapts the history service to processflow.HistorySource.
func NewHistorySource(historyService HistoryServiceInterface) processflow.HistorySource {
	return &historySource{historyService: historyService}
}

// ListHistory returns the recorded approvals as history records, oldest first.
func (h *historySource) ListHistory(ctx context.Context, processInstanceKey string) (
	[]processflow.HistoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	approvals, svcErr := h.historyService.ListApprovals(processInstanceKey, ApprovalFilter{})
	if svcErr != nil {
		return nil, fmt.Errorf("%s: %w", svcErr.Code, errors.New(svcErr.ErrorDescription))
	}

	records := make([]processflow.HistoryRecord, 0, len(approvals))
	for _, approval := range approvals {
		// A rejection does not complete the step.
		if approval.Action == ActionReject {
			continue
		}
		records = append(records, processflow.HistoryRecord{
			StepID:      approval.StepID,
			CompletedAt: approval.CompletedAt,
			ActorID:     approval.ActorID,
		})
	}
	return records, nil
}
