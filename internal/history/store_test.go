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

package history

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"

	"github.com/salesflow/orderdesk/internal/system/database/client"
	dbmodel "github.com/salesflow/orderdesk/internal/system/database/model"
	"github.com/salesflow/orderdesk/tests/mocks/databasemock"
)

type HistoryStoreTestSuite struct {
	suite.Suite
	sqlMock    sqlmock.Sqlmock
	dbProvider *databasemock.DBProviderInterfaceMock
	store      historyStoreInterface
}

func TestHistoryStoreSuite(t *testing.T) {
	suite.Run(t, new(HistoryStoreTestSuite))
}

func (suite *HistoryStoreTestSuite) setup(dbType string) {
	db, sqlMock, err := sqlmock.New()
	suite.Require().NoError(err)
	suite.T().Cleanup(func() { _ = db.Close() })

	dbClient := client.NewDBClient(dbmodel.NewDB(db), dbType)
	suite.sqlMock = sqlMock
	suite.dbProvider = databasemock.NewDBProviderInterfaceMock(suite.T())
	suite.dbProvider.On("GetDBClient", "history").Return(dbClient, nil)
	suite.store = newHistoryStore(suite.dbProvider)
}

func (suite *HistoryStoreTestSuite) TearDownTest() {
	if suite.sqlMock != nil {
		suite.NoError(suite.sqlMock.ExpectationsWereMet())
	}
}

func sampleRecord() ApprovalRecord {
	return ApprovalRecord{
		ID:                 "4b3c2a1d-0000-4000-8000-000000000001",
		ProcessInstanceKey: "2251799813685249",
		StepID:             "manager-approve",
		ActorID:            "alice",
		Action:             ActionApprove,
		Comment:            "within budget",
		CompletedAt:        time.Date(2025, 3, 1, 10, 30, 0, 1000, time.UTC),
	}
}

func (suite *HistoryStoreTestSuite) TestCreateApprovalPostgres() {
	suite.setup("postgres")
	record := sampleRecord()

	suite.sqlMock.ExpectBegin()
	suite.sqlMock.ExpectExec(regexp.QuoteMeta(QueryInsertApproval.PostgresQuery)).
		WithArgs(record.ID, record.ProcessInstanceKey, record.StepID, record.ActorID, record.Action,
			record.Comment, "2025-03-01T10:30:00.000001Z").
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.sqlMock.ExpectCommit()

	suite.NoError(suite.store.CreateApproval(record))
	suite.dbProvider.AssertNumberOfCalls(suite.T(), "GetDBClient", 1)
}

func (suite *HistoryStoreTestSuite) TestCreateApprovalRollsBackOnFailure() {
	suite.setup("sqlite")

	suite.sqlMock.ExpectBegin()
	suite.sqlMock.ExpectExec(regexp.QuoteMeta(QueryInsertApproval.SQLiteQuery)).
		WillReturnError(errors.New("disk I/O error"))
	suite.sqlMock.ExpectRollback()

	err := suite.store.CreateApproval(sampleRecord())

	suite.ErrorContains(err, "disk I/O error")
}

func (suite *HistoryStoreTestSuite) TestCreateApprovalCommitFailure() {
	suite.setup("sqlite")

	suite.sqlMock.ExpectBegin()
	suite.sqlMock.ExpectExec(regexp.QuoteMeta(QueryInsertApproval.SQLiteQuery)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.sqlMock.ExpectCommit().WillReturnError(errors.New("database is locked"))

	suite.ErrorContains(suite.store.CreateApproval(sampleRecord()), "failed to commit")
}

func (suite *HistoryStoreTestSuite) TestListApprovalsPostgres() {
	suite.setup("postgres")
	completedAt := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"ID", "PROCESS_INSTANCE_KEY", "STEP_ID", "ACTOR_ID", "ACTION", "COMMENT",
		"COMPLETED_AT"}).
		AddRow("id-1", "42", "validate", "system", "SUBMIT", nil, completedAt).
		AddRow("id-2", "42", "manager-approve", "alice", "APPROVE", []byte("ok"), completedAt.Add(time.Hour))
	suite.sqlMock.ExpectQuery(regexp.QuoteMeta(QueryListApprovals.PostgresQuery)).WithArgs("42").WillReturnRows(rows)

	records, err := suite.store.ListApprovals("42", ApprovalFilter{})

	suite.Require().NoError(err)
	suite.Require().Len(records, 2)
	suite.Equal("validate", records[0].StepID)
	suite.Empty(records[0].Comment)
	suite.Equal(completedAt, records[0].CompletedAt)
	suite.Equal("ok", records[1].Comment)
}

func (suite *HistoryStoreTestSuite) TestListApprovalsSQLiteTextTimestamps() {
	suite.setup("sqlite")

	rows := sqlmock.NewRows([]string{"ID", "PROCESS_INSTANCE_KEY", "STEP_ID", "ACTOR_ID", "ACTION", "COMMENT",
		"COMPLETED_AT"}).
		AddRow("id-1", "42", "validate", "system", "SUBMIT", "", "2025-03-01T10:30:00.000001Z")
	suite.sqlMock.ExpectQuery(regexp.QuoteMeta(QueryListApprovals.SQLiteQuery)).WithArgs("42").WillReturnRows(rows)

	records, err := suite.store.ListApprovals("42", ApprovalFilter{})

	suite.Require().NoError(err)
	suite.Equal(time.Date(2025, 3, 1, 10, 30, 0, 1000, time.UTC), records[0].CompletedAt)
}

func (suite *HistoryStoreTestSuite) TestListApprovalsWithFilter() {
	suite.setup("postgres")

	rows := sqlmock.NewRows([]string{"ID", "PROCESS_INSTANCE_KEY", "STEP_ID", "ACTOR_ID", "ACTION", "COMMENT",
		"COMPLETED_AT"}).
		AddRow("id-2", "42", "manager-approve", "alice", "APPROVE", nil, time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC))
	suite.sqlMock.ExpectQuery(regexp.QuoteMeta("SELECT ID, PROCESS_INSTANCE_KEY, STEP_ID, ACTOR_ID, ACTION, " +
		"COMMENT, COMPLETED_AT FROM APPROVAL_HISTORY WHERE PROCESS_INSTANCE_KEY = $1 AND ACTION = $2 " +
		"AND STEP_ID = $3 ORDER BY COMPLETED_AT, ID")).
		WithArgs("42", ActionApprove, "manager-approve").
		WillReturnRows(rows)

	records, err := suite.store.ListApprovals("42", ApprovalFilter{StepID: "manager-approve", Action: ActionApprove})

	suite.Require().NoError(err)
	suite.Require().Len(records, 1)
	suite.Equal("alice", records[0].ActorID)
}

func (suite *HistoryStoreTestSuite) TestListApprovalsRejectsCorruptRows() {
	suite.setup("sqlite")

	rows := sqlmock.NewRows([]string{"ID", "PROCESS_INSTANCE_KEY", "STEP_ID", "ACTOR_ID", "ACTION", "COMMENT",
		"COMPLETED_AT"}).
		AddRow("id-1", "42", "validate", "system", "SUBMIT", "", "yesterday")
	suite.sqlMock.ExpectQuery(regexp.QuoteMeta(QueryListApprovals.SQLiteQuery)).WillReturnRows(rows)

	_, err := suite.store.ListApprovals("42", ApprovalFilter{})

	suite.ErrorContains(err, "unparsable timestamp")
}

func (suite *HistoryStoreTestSuite) TestDatabaseUnavailable() {
	suite.dbProvider = databasemock.NewDBProviderInterfaceMock(suite.T())
	suite.dbProvider.On("GetDBClient", "history").Return(nil, errors.New("connection refused")).Twice()
	suite.sqlMock = nil
	store := newHistoryStore(suite.dbProvider)

	suite.ErrorContains(store.CreateApproval(sampleRecord()), "failed to get database client")
	_, err := store.ListApprovals("42", ApprovalFilter{})
	suite.ErrorContains(err, "failed to get database client")
}
