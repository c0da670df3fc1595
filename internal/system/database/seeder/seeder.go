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

// Package seeder bootstraps database schemas at server startup.
package seeder

import (
	"fmt"

	"github.com/salesflow/orderdesk/internal/system/database/client"
	"github.com/salesflow/orderdesk/internal/system/database/model"
	"github.com/salesflow/orderdesk/internal/system/database/provider"
	"github.com/salesflow/orderdesk/internal/system/log"
)

// SeederInterface applies bootstrap statements to a database.
type SeederInterface interface {
	// Seed executes the statements in order and stops at the first failure.
	// Statements must be idempotent, since they run on every start.
	Seed(statements ...model.DBQuery) error
}

// SeedDatabase applies the statements to the named database of the provider.
func SeedDatabase(dbProvider provider.DBProviderInterface, dbName string, statements ...model.DBQuery) error {
	dbClient, err := dbProvider.GetDBClient(dbName)
	if err != nil {
		return fmt.Errorf("failed to get %s database: %w", dbName, err)
	}
	return NewDBSeeder(dbClient).Seed(statements...)
}

// DBSeeder implements SeederInterface for database schema seeding.
type DBSeeder struct {
	dbClient client.DBClientInterface
}

// NewDBSeeder creates a new instance of DBSeeder.
func NewDBSeeder(dbClient client.DBClientInterface) SeederInterface {
	return &DBSeeder{
		dbClient: dbClient,
	}
}

// Seed executes the statements in order and stops at the first failure.
func (s *DBSeeder) Seed(statements ...model.DBQuery) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBSeeder"))
	logger.Debug("Starting database seeding process", log.Int("statements", len(statements)))

	for _, statement := range statements {
		if _, err := s.dbClient.Execute(statement); err != nil {
			logger.Error("Failed to execute seed statement", log.String("queryID", statement.GetID()),
				log.Error(err))
			return fmt.Errorf("seed statement %s failed: %w", statement.GetID(), err)
		}
		logger.Debug("Executed seed statement", log.String("queryID", statement.GetID()))
	}

	logger.Debug("Database seeding process completed successfully")
	return nil
}
