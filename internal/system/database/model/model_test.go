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

package model

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBQueryGetQuery(t *testing.T) {
	query := DBQuery{
		ID:            "TST-00001",
		Query:         "SELECT 1",
		PostgresQuery: "SELECT 1 WHERE $1 = $1",
	}

	assert.Equal(t, "TST-00001", query.GetID())
	assert.Equal(t, "SELECT 1 WHERE $1 = $1", query.GetQuery("postgres"))
	assert.Equal(t, "SELECT 1", query.GetQuery("sqlite"))
	assert.Equal(t, "SELECT 1", query.GetQuery("mock"))

	query.SQLiteQuery = "SELECT 1 WHERE ? = ?"
	assert.Equal(t, "SELECT 1 WHERE ? = ?", query.GetQuery("sqlite"))
}

func TestDBAndTxDelegateToPool(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM APPROVAL_HISTORY").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	mock.ExpectClose()

	db := NewDB(sqlDB)
	sqlTx, err := db.Begin()
	require.NoError(t, err)

	tx := NewTx(sqlTx)
	result, err := tx.Exec("DELETE FROM APPROVAL_HISTORY")
	require.NoError(t, err)
	affected, err := result.RowsAffected()
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	require.NoError(t, tx.Commit())
	require.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
