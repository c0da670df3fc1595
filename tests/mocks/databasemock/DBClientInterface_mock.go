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

// Package databasemock provides testify mocks of the database client and provider.
package databasemock

import (
	mock "github.com/stretchr/testify/mock"

	model "github.com/salesflow/orderdesk/internal/system/database/model"
)

// DBClientInterfaceMock is a mock type for the client.DBClientInterface type.
type DBClientInterfaceMock struct {
	mock.Mock
}

// Query provides a mock function with given fields: query, args
func (_m *DBClientInterfaceMock) Query(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
	ret := _m.Called(append([]interface{}{query}, args...)...)

	if len(ret) == 0 {
		panic("no return value specified for Query")
	}

	var r0 []map[string]interface{}
	if rf, ok := ret.Get(0).(func(model.DBQuery, ...interface{}) ([]map[string]interface{}, error)); ok {
		return rf(query, args...)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]map[string]interface{})
	}

	return r0, ret.Error(1)
}

// Execute provides a mock function with given fields: query, args
func (_m *DBClientInterfaceMock) Execute(query model.DBQuery, args ...interface{}) (int64, error) {
	ret := _m.Called(append([]interface{}{query}, args...)...)

	if len(ret) == 0 {
		panic("no return value specified for Execute")
	}

	if rf, ok := ret.Get(0).(func(model.DBQuery, ...interface{}) (int64, error)); ok {
		return rf(query, args...)
	}

	return ret.Get(0).(int64), ret.Error(1)
}

// BeginTx provides a mock function with no fields
func (_m *DBClientInterfaceMock) BeginTx() (model.TxInterface, error) {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for BeginTx")
	}

	var r0 model.TxInterface
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(model.TxInterface)
	}

	return r0, ret.Error(1)
}

// GetDBType provides a mock function with no fields
func (_m *DBClientInterfaceMock) GetDBType() string {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for GetDBType")
	}

	return ret.String(0)
}

// Ping provides a mock function with no fields
func (_m *DBClientInterfaceMock) Ping() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Ping")
	}

	return ret.Error(0)
}

// Close provides a mock function with no fields
func (_m *DBClientInterfaceMock) Close() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Close")
	}

	return ret.Error(0)
}

// NewDBClientInterfaceMock creates a new instance of DBClientInterfaceMock. It also registers a testing interface
// on the mock and a cleanup function to assert the mocks expectations.
func NewDBClientInterfaceMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *DBClientInterfaceMock {
	m := &DBClientInterfaceMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
