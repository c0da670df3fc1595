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

// Package workflowmock provides a testify mock of the workflow engine client.
package workflowmock

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	workflow "github.com/salesflow/orderdesk/internal/workflow"
)

// ClientMock is a mock type for the workflow.Client type.
type ClientMock struct {
	mock.Mock
}

// GetProcessInstance provides a mock function with given fields: ctx, key
func (_m *ClientMock) GetProcessInstance(ctx context.Context, key string) (*workflow.ProcessInstance, error) {
	ret := _m.Called(ctx, key)

	if len(ret) == 0 {
		panic("no return value specified for GetProcessInstance")
	}

	var r0 *workflow.ProcessInstance
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*workflow.ProcessInstance, error)); ok {
		return rf(ctx, key)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*workflow.ProcessInstance)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// SearchFlowNodeInstances provides a mock function with given fields: ctx, key
func (_m *ClientMock) SearchFlowNodeInstances(ctx context.Context, key string) ([]workflow.FlowNodeInstance, error) {
	ret := _m.Called(ctx, key)

	if len(ret) == 0 {
		panic("no return value specified for SearchFlowNodeInstances")
	}

	var r0 []workflow.FlowNodeInstance
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]workflow.FlowNodeInstance, error)); ok {
		return rf(ctx, key)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]workflow.FlowNodeInstance)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// FindLatestProcessDefinition provides a mock function with given fields: ctx, bpmnProcessID
func (_m *ClientMock) FindLatestProcessDefinition(ctx context.Context,
	bpmnProcessID string) (*workflow.ProcessDefinition, error) {
	ret := _m.Called(ctx, bpmnProcessID)

	if len(ret) == 0 {
		panic("no return value specified for FindLatestProcessDefinition")
	}

	var r0 *workflow.ProcessDefinition
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*workflow.ProcessDefinition, error)); ok {
		return rf(ctx, bpmnProcessID)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*workflow.ProcessDefinition)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// GetProcessDefinitionXML provides a mock function with given fields: ctx, processDefinitionKey
func (_m *ClientMock) GetProcessDefinitionXML(ctx context.Context, processDefinitionKey string) (string, error) {
	ret := _m.Called(ctx, processDefinitionKey)

	if len(ret) == 0 {
		panic("no return value specified for GetProcessDefinitionXML")
	}

	if rf, ok := ret.Get(0).(func(context.Context, string) (string, error)); ok {
		return rf(ctx, processDefinitionKey)
	}
	return ret.String(0), ret.Error(1)
}

// Ping provides a mock function with given fields: ctx
func (_m *ClientMock) Ping(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Ping")
	}

	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		return rf(ctx)
	}
	return ret.Error(0)
}

// NewClientMock creates a new instance of ClientMock. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewClientMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *ClientMock {
	m := &ClientMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
