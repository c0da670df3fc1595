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

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	healthmodel "github.com/salesflow/orderdesk/internal/system/healthcheck/model"
	"github.com/salesflow/orderdesk/tests/mocks/databasemock"
)

type fakeEngine struct {
	err error
}

func (f *fakeEngine) Ping(context.Context) error {
	return f.err
}

type HealthCheckServiceTestSuite struct {
	suite.Suite
}

func TestHealthCheckServiceSuite(t *testing.T) {
	suite.Run(t, new(HealthCheckServiceTestSuite))
}

func (suite *HealthCheckServiceTestSuite) TestCheckReadiness() {
	testCases := []struct {
		name           string
		queryErr       error
		providerErr    error
		engineErr      error
		expectedStatus healthmodel.Status
		expectedDB     healthmodel.Status
		expectedEngine healthmodel.Status
	}{
		{
			name:           "AllUp",
			expectedStatus: healthmodel.StatusUp,
			expectedDB:     healthmodel.StatusUp,
			expectedEngine: healthmodel.StatusUp,
		},
		{
			name:           "HistoryDBQueryFails",
			queryErr:       errors.New("no such table: APPROVAL_HISTORY"),
			expectedStatus: healthmodel.StatusDown,
			expectedDB:     healthmodel.StatusDown,
			expectedEngine: healthmodel.StatusUp,
		},
		{
			name:           "HistoryDBUnavailable",
			providerErr:    errors.New("connection refused"),
			expectedStatus: healthmodel.StatusDown,
			expectedDB:     healthmodel.StatusDown,
			expectedEngine: healthmodel.StatusUp,
		},
		{
			name:           "EngineDown",
			engineErr:      errors.New("breaker open"),
			expectedStatus: healthmodel.StatusDown,
			expectedDB:     healthmodel.StatusUp,
			expectedEngine: healthmodel.StatusDown,
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			dbClient := databasemock.NewDBClientInterfaceMock(t)
			dbProvider := databasemock.NewDBProviderInterfaceMock(t)
			if tc.providerErr != nil {
				dbProvider.On("GetDBClient", "history").Return(nil, tc.providerErr).Once()
			} else {
				dbProvider.On("GetDBClient", "history").Return(dbClient, nil).Once()
				dbClient.On("Query", queryHistoryDBTable).Return(nil, tc.queryErr).Once()
			}

			svc := NewHealthCheckService(dbProvider, &fakeEngine{err: tc.engineErr})
			status := svc.CheckReadiness(context.Background())

			assert.Equal(t, tc.expectedStatus, status.Status)
			assert.Equal(t, []healthmodel.ServiceStatus{
				{ServiceName: "HistoryDB", Status: tc.expectedDB},
				{ServiceName: "WorkflowEngine", Status: tc.expectedEngine},
			}, status.ServiceStatus)
			dbClient.AssertNotCalled(t, "Close")
			assert.Equal(t, statusValue(tc.expectedEngine),
				testutil.ToFloat64(dependencyUp.WithLabelValues("WorkflowEngine")))
		})
	}
}

func (suite *HealthCheckServiceTestSuite) TestCheckReadinessWithoutEngine() {
	dbClient := databasemock.NewDBClientInterfaceMock(suite.T())
	dbClient.On("Query", queryHistoryDBTable).Return([]map[string]interface{}{}, nil).Once()
	dbProvider := databasemock.NewDBProviderInterfaceMock(suite.T())
	dbProvider.On("GetDBClient", "history").Return(dbClient, nil).Once()
	svc := NewHealthCheckService(dbProvider, nil)

	status := svc.CheckReadiness(context.Background())

	suite.Equal(healthmodel.StatusDown, status.Status)
}

func statusValue(status healthmodel.Status) float64 {
	if status == healthmodel.StatusUp {
		return 1
	}
	return 0
}
