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

// Package servicemock provides a testify mock of the health check service.
package servicemock

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	model "github.com/salesflow/orderdesk/internal/system/healthcheck/model"
)

// HealthCheckServiceInterfaceMock is a mock type for the HealthCheckServiceInterface type.
type HealthCheckServiceInterfaceMock struct {
	mock.Mock
}

// CheckReadiness provides a mock function with given fields: ctx
func (_m *HealthCheckServiceInterfaceMock) CheckReadiness(ctx context.Context) model.ServerStatus {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for CheckReadiness")
	}

	var r0 model.ServerStatus
	if rf, ok := ret.Get(0).(func(context.Context) model.ServerStatus); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Get(0).(model.ServerStatus)
	}

	return r0
}

// NewHealthCheckServiceInterfaceMock creates a new instance of HealthCheckServiceInterfaceMock. It also registers
// a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewHealthCheckServiceInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *HealthCheckServiceInterfaceMock {
	m := &HealthCheckServiceInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
