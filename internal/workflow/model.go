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

package workflow

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Process instance states reported by the engine.
const (
	ProcessInstanceStateActive    = "ACTIVE"
	ProcessInstanceStateCompleted = "COMPLETED"
	ProcessInstanceStateCanceled  = "CANCELED"
)

// Flow node states reported by the engine.
const (
	FlowNodeStateActive     = "ACTIVE"
	FlowNodeStateCompleted  = "COMPLETED"
	FlowNodeStateTerminated = "TERMINATED"
)

// FlowNodeTypeUserTask is the flow node type of human tasks.
const FlowNodeTypeUserTask = "USER_TASK"

// engineTimeLayouts are the timestamp layouts the engine is known to emit.
var engineTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
}

// EngineTime is a timestamp as serialized by the engine REST API.
type EngineTime struct {
	time.Time
}

// UnmarshalJSON accepts both RFC 3339 timestamps and offsets without a colon.
func (t *EngineTime) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range engineTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized engine timestamp %q", raw)
}

// ProcessInstance is a running or finished process instance.
type ProcessInstance struct {
	Key                  int64       `json:"key"`
	ProcessDefinitionKey int64       `json:"processDefinitionKey"`
	BPMNProcessID        string      `json:"bpmnProcessId"`
	ProcessVersion       int         `json:"processVersion"`
	State                string      `json:"state"`
	StartDate            *EngineTime `json:"startDate,omitempty"`
	EndDate              *EngineTime `json:"endDate,omitempty"`

	// CurrentElementID and Assignee are taken from the active user task, when there is one.
	CurrentElementID string `json:"-"`
	Assignee         string `json:"-"`
}

// FlowNodeInstance is one execution of a flow node inside a process instance.
type FlowNodeInstance struct {
	Key                int64       `json:"key"`
	ProcessInstanceKey int64       `json:"processInstanceKey"`
	FlowNodeID         string      `json:"flowNodeId"`
	FlowNodeName       string      `json:"flowNodeName"`
	Type               string      `json:"type"`
	State              string      `json:"state"`
	Assignee           string      `json:"assignee,omitempty"`
	StartDate          *EngineTime `json:"startDate,omitempty"`
	EndDate            *EngineTime `json:"endDate,omitempty"`
}

// ProcessDefinition is a deployed version of a BPMN process.
type ProcessDefinition struct {
	Key           int64  `json:"key"`
	BPMNProcessID string `json:"bpmnProcessId"`
	Name          string `json:"name"`
	Version       int    `json:"version"`
}

type sortField struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

type flowNodeFilter struct {
	ProcessInstanceKey int64  `json:"processInstanceKey"`
	State              string `json:"state,omitempty"`
	Type               string `json:"type,omitempty"`
}

type flowNodeSearchRequest struct {
	Filter      flowNodeFilter  `json:"filter"`
	Size        int             `json:"size"`
	Sort        []sortField     `json:"sort,omitempty"`
	SearchAfter json.RawMessage `json:"searchAfter,omitempty"`
}

type processDefinitionFilter struct {
	BPMNProcessID string `json:"bpmnProcessId,omitempty"`
}

type processDefinitionSearchRequest struct {
	Filter *processDefinitionFilter `json:"filter,omitempty"`
	Size   int                      `json:"size"`
	Sort   []sortField              `json:"sort,omitempty"`
}

// searchResponse is one page of a search. SortValues is the cursor for the next page; it is kept
// raw because it carries int64 keys that would lose precision as float64.
type searchResponse[T any] struct {
	Items      []T             `json:"items"`
	SortValues json.RawMessage `json:"sortValues"`
	Total      int64           `json:"total"`
}
