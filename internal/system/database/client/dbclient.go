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

// Package client runs the queries of the persistence layer against a configured database.
package client

import (
	"database/sql"
	"strings"
	"time"

	"github.com/salesflow/orderdesk/internal/system/database/model"
	"github.com/salesflow/orderdesk/internal/system/log"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const loggerComponentName = "DBClient"

// DBClientInterface defines the interface for database operations.
type DBClientInterface interface {
	// Query runs a statement that returns rows. Each row is a map keyed by lower case column name.
	Query(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error)
	// Execute runs a statement that returns no rows and reports the number of rows affected.
	Execute(query model.DBQuery, args ...interface{}) (int64, error)
	// BeginTx starts a new database transaction.
	BeginTx() (model.TxInterface, error)
	// GetDBType returns the driver name the client was opened with.
	GetDBType() string
	// Ping verifies the database connection is still alive.
	Ping() error
	// Close closes the database connection.
	Close() error
}

// DBClient is the implementation of DBClientInterface.
type DBClient struct {
	db     model.DBInterface
	dbType string
}

// NewDBClient wraps an open database. dbType selects the dialect variant of every query.
func NewDBClient(db model.DBInterface, dbType string) DBClientInterface {
	return &DBClient{
		db:     db,
		dbType: dbType,
	}
}

// Query runs a statement that returns rows. Each row is a map keyed by lower case column name.
func (client *DBClient) Query(query model.DBQuery, args ...interface{}) (results []map[string]interface{},
	err error) {
	defer observeStatement(query.GetID(), "query", time.Now(), &err)

	rows, err := client.db.Query(query.GetQuery(client.dbType), args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
				Error("Error closing rows", log.String("queryID", query.GetID()), log.Error(closeErr))
		}
	}()

	return scanRows(rows)
}

// Execute runs a statement that returns no rows and reports the number of rows affected.
func (client *DBClient) Execute(query model.DBQuery, args ...interface{}) (affected int64, err error) {
	defer observeStatement(query.GetID(), "execute", time.Now(), &err)

	res, err := client.db.Exec(query.GetQuery(client.dbType), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// BeginTx starts a new database transaction.
func (client *DBClient) BeginTx() (model.TxInterface, error) {
	tx, err := client.db.Begin()
	if err != nil {
		return nil, err
	}
	return model.NewTx(tx), nil
}

// GetDBType returns the driver name the client was opened with.
func (client *DBClient) GetDBType() string {
	return client.dbType
}

// Ping verifies the database connection is still alive.
func (client *DBClient) Ping() error {
	return client.db.Ping()
}

// Close closes the database connection.
func (client *DBClient) Close() error {
	return client.db.Close()
}

// scanRows reads every row into a column map. Column names are lower cased since postgres and sqlite
// disagree on the case of unquoted identifiers.
func scanRows(rows *sql.Rows) ([]map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	for i := range columns {
		columns[i] = strings.ToLower(columns[i])
	}

	var results []map[string]interface{}
	values := make([]interface{}, len(columns))
	pointers := make([]interface{}, len(columns))
	for rows.Next() {
		for i := range values {
			values[i] = nil
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		result := make(map[string]interface{}, len(columns))
		for i, column := range columns {
			result[column] = values[i]
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// observeStatement records the outcome and duration of a statement and logs it at debug level.
func observeStatement(queryID, kind string, start time.Time, err *error) {
	elapsed := time.Since(start)
	outcome := "success"
	if *err != nil {
		outcome = "error"
	}
	statements.WithLabelValues(queryID, kind, outcome).Inc()
	statementDuration.WithLabelValues(queryID).Observe(elapsed.Seconds())

	logger := log.GetLogger()
	if logger.IsDebugEnabled() {
		logger.With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Debug("Executed statement", log.String("queryID", queryID), log.String("outcome", outcome),
				log.Duration("duration", elapsed))
	}
}
