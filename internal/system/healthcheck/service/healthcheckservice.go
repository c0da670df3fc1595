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

// Package service provides health check-related business logic and operations.
package service

import (
	"context"

	dbmodel "github.com/salesflow/orderdesk/internal/system/database/model"
	"github.com/salesflow/orderdesk/internal/system/database/provider"
	"github.com/salesflow/orderdesk/internal/system/healthcheck/model"
	"github.com/salesflow/orderdesk/internal/system/log"
)

const (
	historyDBServiceName      = "HistoryDB"
	workflowEngineServiceName = "WorkflowEngine"
)

// queryHistoryDBTable fails unless the approval history table exists. It never returns rows.
var queryHistoryDBTable = dbmodel.DBQuery{
	ID:    "HLC-00001",
	Query: "SELECT ID FROM APPROVAL_HISTORY WHERE 1 = 0",
}

// EnginePinger is implemented by the workflow engine client.
type EnginePinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckServiceInterface defines the interface for the health check service.
type HealthCheckServiceInterface interface {
	CheckReadiness(ctx context.Context) model.ServerStatus
}

// HealthCheckService is the default implementation of the HealthCheckServiceInterface.
type HealthCheckService struct {
	DBProvider provider.DBProviderInterface
	Engine     EnginePinger
}

// NewHealthCheckService creates a health check service over the history database and the workflow engine.
func NewHealthCheckService(dbProvider provider.DBProviderInterface, engine EnginePinger) HealthCheckServiceInterface {
	return &HealthCheckService{
		DBProvider: dbProvider,
		Engine:     engine,
	}
}

// CheckReadiness checks the readiness of the server and its dependencies.
// The server is ready only when every dependency is up.
func (hcs *HealthCheckService) CheckReadiness(ctx context.Context) model.ServerStatus {
	statuses := []model.ServiceStatus{
		{ServiceName: historyDBServiceName, Status: hcs.checkHistoryDatabase()},
		{ServiceName: workflowEngineServiceName, Status: hcs.checkWorkflowEngine(ctx)},
	}

	status := model.StatusUp
	for _, s := range statuses {
		up := 1.0
		if s.Status == model.StatusDown {
			status = model.StatusDown
			up = 0
		}
		dependencyUp.WithLabelValues(s.ServiceName).Set(up)
	}
	return model.ServerStatus{
		Status:        status,
		ServiceStatus: statuses,
	}
}

// checkHistoryDatabase verifies the history database is reachable and holds the approval table.
func (hcs *HealthCheckService) checkHistoryDatabase() model.Status {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HealthCheckService"))

	dbClient, err := hcs.DBProvider.GetDBClient(provider.HistoryDBName)
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return model.StatusDown
	}

	if _, err = dbClient.Query(queryHistoryDBTable); err != nil {
		logger.Error("Failed to execute query", log.Error(err))
		return model.StatusDown
	}
	return model.StatusUp
}

// checkWorkflowEngine verifies the BPM engine answers.
func (hcs *HealthCheckService) checkWorkflowEngine(ctx context.Context) model.Status {
	if hcs.Engine == nil {
		return model.StatusDown
	}
	if err := hcs.Engine.Ping(ctx); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HealthCheckService")).
			Warn("Workflow engine is not reachable", log.Error(err))
		return model.StatusDown
	}
	return model.StatusUp
}
