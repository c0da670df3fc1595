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

// Package history persists the approval actions taken on process instances.
package history

import "time"

// Supported approval actions.
const (
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
	ActionSubmit  = "SUBMIT"
)

// ApprovalRecord is one recorded approval action.
type ApprovalRecord struct {
	ID                 string    `json:"id"`
	ProcessInstanceKey string    `json:"processInstanceKey"`
	StepID             string    `json:"stepId"`
	ActorID            string    `json:"actorId"`
	Action             string    `json:"action"`
	Comment            string    `json:"comment,omitempty"`
	CompletedAt        time.Time `json:"completedAt"`
}

// RecordApprovalRequest is the body of a record approval request.
type RecordApprovalRequest struct {
	StepID  string `json:"stepId"`
	ActorID string `json:"actorId"`
	Action  string `json:"action"`
	Comment string `json:"comment,omitempty"`
}

// ApprovalListResponse is the response of a list approvals request.
type ApprovalListResponse struct {
	ProcessInstanceKey string           `json:"processInstanceKey"`
	TotalResults       int              `json:"totalResults"`
	Approvals          []ApprovalRecord `json:"approvals"`
}

// ApprovalFilter narrows an approval listing. Empty fields match every record.
type ApprovalFilter struct {
	StepID  string
	ActorID string
	Action  string
}

// columns maps the set filter fields to their history table columns.
func (f ApprovalFilter) columns() map[string]interface{} {
	columns := make(map[string]interface{}, 3)
	if f.StepID != "" {
		columns["STEP_ID"] = f.StepID
	}
	if f.ActorID != "" {
		columns["ACTOR_ID"] = f.ActorID
	}
	if f.Action != "" {
		columns["ACTION"] = f.Action
	}
	return columns
}
