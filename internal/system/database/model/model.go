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
// Package model defines the data structures and interfaces for database operations.
package model

import "database/sql"

// DBQuery is a named statement with optional per-driver text.
// Query is the fallback when no variant exists for the active driver.
type DBQuery struct {
	ID            string
	Query         string
	PostgresQuery string
	SQLiteQuery   string
}

// GetID returns the identifier used in logs and statement metrics.
func (q DBQuery) GetID() string {
	return q.ID
}

// GetQuery returns the statement text for the given driver.
func (q DBQuery) GetQuery(dbType string) string {
	variants := map[string]string{
		"postgres": q.PostgresQuery,
		"sqlite":   q.SQLiteQuery,
	}
	if variant := variants[dbType]; variant != "" {
		return variant
	}
	return q.Query
}

// DBInterface is the subset of *sql.DB the client depends on.
type DBInterface interface {
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
	Begin() (*sql.Tx, error)
	Ping() error
	Close() error
}

// DB adapts a *sql.DB to DBInterface.
type DB struct {
	*sql.DB
}

// NewDB wraps the given pool.
func NewDB(db *sql.DB) DBInterface {
	return &DB{DB: db}
}

// TxInterface is the subset of *sql.Tx used by stores writing several rows atomically.
type TxInterface interface {
	Commit() error
	Rollback() error
	Exec(query string, args ...any) (sql.Result, error)
}

// Tx adapts a *sql.Tx to TxInterface.
type Tx struct {
	*sql.Tx
}

// NewTx wraps the given transaction.
func NewTx(tx *sql.Tx) TxInterface {
	return &Tx{Tx: tx}
}
