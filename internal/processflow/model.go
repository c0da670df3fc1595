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

// Package processflow reconciles the step status of an approval process instance.
package processflow

import (
	"context"
	"time"
)

// StepStatus is the status of a catalog step within one process instance.
type StepStatus string

const (
	// StepStatusPending marks a step that has not been reached.
	StepStatusPending StepStatus = "PENDING"
	// StepStatusCurrent marks the step waiting for work.
	StepStatusCurrent StepStatus = "CURRENT"
	// StepStatusCompleted marks a finished step.
	StepStatusCompleted StepStatus = "COMPLETED"
)

// ProcessStatus is the overall state of a process instance.
type ProcessStatus string

const (
	// ProcessStatusActive marks a running instance. It is also reported when the state is unknown.
	ProcessStatusActive ProcessStatus = "ACTIVE"
	// ProcessStatusCompleted marks an instance that reached an end event.
	ProcessStatusCompleted ProcessStatus = "COMPLETED"
	// ProcessStatusCanceled marks an instance that was terminated before completing.
	ProcessStatusCanceled ProcessStatus = "CANCELED"
)

// Step is one reconciled catalog step.
type Step struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Status      StepStatus `json:"status"`
	Assignee    string     `json:"assignee,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// ProcessFlowStatus is the reconciled view of a process instance. It is computed per request.
type ProcessFlowStatus struct {
	ProcessInstanceKey string        `json:"processInstanceKey"`
	ProcessStatus      ProcessStatus `json:"processStatus"`
	CurrentStepID      string        `json:"currentStepId,omitempty"`
	Steps              []Step        `json:"steps"`
}

// FlowNodeState is a live flow node entry reported by the workflow engine.
type FlowNodeState struct {
	FlowNodeID   string
	FlowNodeName string
	State        string
	EndDate      *time.Time
}

// HistoryRecord is a persisted approval action.
type HistoryRecord struct {
	StepID      string
	CompletedAt time.Time
	ActorID     string
}

// LiveSource returns the live flow node states of a process instance, oldest entry first.
type LiveSource interface {
	ListFlowNodeStates(ctx context.Context, processInstanceKey string) ([]FlowNodeState, error)
}

// HistorySource returns the recorded approvals of a process instance, oldest first.
type HistorySource interface {
	ListHistory(ctx context.Context, processInstanceKey string) ([]HistoryRecord, error)
}

// InstanceSource returns the overall state of a process instance.
type InstanceSource interface {
	GetProcessInstanceState(ctx context.Context, processInstanceKey string) (ProcessStatus, error)
}

// LiveSourceFunc adapts a function to LiveSource.
type LiveSourceFunc func(ctx context.Context, processInstanceKey string) ([]FlowNodeState, error)

// ListFlowNodeStates calls f.
func (f LiveSourceFunc) ListFlowNodeStates(ctx context.Context, processInstanceKey string) ([]FlowNodeState, error) {
	return f(ctx, processInstanceKey)
}

// HistorySourceFunc adapts a function to HistorySource.
type HistorySourceFunc func(ctx context.Context, processInstanceKey string) ([]HistoryRecord, error)

// ListHistory calls f.
func (f HistorySourceFunc) ListHistory(ctx context.Context, processInstanceKey string) ([]HistoryRecord, error) {
	return f(ctx, processInstanceKey)
}

// InstanceSourceFunc adapts a function to InstanceSource.
type InstanceSourceFunc func(ctx context.Context, processInstanceKey string) (ProcessStatus, error)

// GetProcessInstanceState calls f.
func (f InstanceSourceFunc) GetProcessInstanceState(ctx context.Context,
	processInstanceKey string) (ProcessStatus, error) {
	return f(ctx, processInstanceKey)
}
