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

package databasemock

import (
	mock "github.com/stretchr/testify/mock"

	client "github.com/salesflow/orderdesk/internal/system/database/client"
)

// DBProviderInterfaceMock is a mock type for the provider.DBProviderInterface type.
type DBProviderInterfaceMock struct {
	mock.Mock
}

// GetDBClient provides a mock function with given fields: dbName
func (_m *DBProviderInterfaceMock) GetDBClient(dbName string) (client.DBClientInterface, error) {
	ret := _m.Called(dbName)

	if len(ret) == 0 {
		panic("no return value specified for GetDBClient")
	}

	var r0 client.DBClientInterface
	if rf, ok := ret.Get(0).(func(string) (client.DBClientInterface, error)); ok {
		return rf(dbName)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(client.DBClientInterface)
	}

	return r0, ret.Error(1)
}

// NewDBProviderInterfaceMock creates a new instance of DBProviderInterfaceMock. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewDBProviderInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *DBProviderInterfaceMock {
	m := &DBProviderInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
