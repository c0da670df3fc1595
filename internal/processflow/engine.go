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
	"context"

	"github.com/salesflow/orderdesk/internal/workflow"
)

// EngineClient is the part of the workflow engine client the aggregator reads from.
type EngineClient interface {
	GetProcessInstance(ctx context.Context, key string) (*workflow.ProcessInstance, error)
	SearchFlowNodeInstances(ctx context.Context, key string) ([]workflow.FlowNodeInstance, error)
}

// NewLiveSource exposes the engine flow node search as a LiveSource.
func NewLiveSource(engine EngineClient) LiveSource {
	return LiveSourceFunc(func(ctx context.Context, processInstanceKey string) ([]FlowNodeState, error) {
		instances, err := engine.SearchFlowNodeInstances(ctx, processInstanceKey)
		if err != nil {
			return nil, err
		}

		states := make([]FlowNodeState, 0, len(instances))
		for _, instance := range instances {
			state := FlowNodeState{
				FlowNodeID:   instance.FlowNodeID,
				FlowNodeName: instance.FlowNodeName,
				State:        instance.State,
			}
			if instance.EndDate != nil && !instance.EndDate.IsZero() {
				endDate := instance.EndDate.Time
				state.EndDate = &endDate
			}
			states = append(states, state)
		}
		return states, nil
	})
}

// resolvedInstance answers InstanceSource from a process instance that was already fetched.
func resolvedInstance(instance *workflow.ProcessInstance, err error) InstanceSource {
	return InstanceSourceFunc(func(context.Context, string) (ProcessStatus, error) {
		if err != nil {
			return "", err
		}
		return ProcessStatus(instance.State), nil
	})
}
