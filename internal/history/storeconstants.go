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

import dbmodel "github.com/salesflow/orderdesk/internal/system/database/model"

// timestampLayout is fixed width so that stored timestamps sort chronologically as text.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

const approvalsOrderBy = " ORDER BY COMPLETED_AT, ID"

var (
	// QueryCreateApprovalHistoryTable creates the approval history table.
	QueryCreateApprovalHistoryTable = dbmodel.DBQuery{
		ID: "HIS-00001",
		PostgresQuery: `CREATE TABLE IF NOT EXISTS APPROVAL_HISTORY (
			ID VARCHAR(36) PRIMARY KEY,
			PROCESS_INSTANCE_KEY VARCHAR(64) NOT NULL,
			STEP_ID VARCHAR(255) NOT NULL,
			ACTOR_ID VARCHAR(255) NOT NULL,
			ACTION VARCHAR(16) NOT NULL,
			COMMENT TEXT,
			COMPLETED_AT TIMESTAMP NOT NULL)`,
		SQLiteQuery: `CREATE TABLE IF NOT EXISTS APPROVAL_HISTORY (
			ID TEXT PRIMARY KEY,
			PROCESS_INSTANCE_KEY TEXT NOT NULL,
			STEP_ID TEXT NOT NULL,
			ACTOR_ID TEXT NOT NULL,
			ACTION TEXT NOT NULL,
			COMMENT TEXT,
			COMPLETED_AT TEXT NOT NULL)`,
	}

	// QueryCreateApprovalHistoryIndex indexes approvals by process instance.
	QueryCreateApprovalHistoryIndex = dbmodel.DBQuery{
		ID: "HIS-00002",
		Query: "CREATE INDEX IF NOT EXISTS IDX_APPROVAL_HISTORY_INSTANCE " +
			"ON APPROVAL_HISTORY (PROCESS_INSTANCE_KEY, COMPLETED_AT)",
	}

	// QueryInsertApproval inserts an approval record.
	QueryInsertApproval = dbmodel.DBQuery{
		ID: "HIS-00003",
		PostgresQuery: "INSERT INTO APPROVAL_HISTORY (ID, PROCESS_INSTANCE_KEY, STEP_ID, ACTOR_ID, ACTION, " +
			"COMMENT, COMPLETED_AT) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		SQLiteQuery: "INSERT INTO APPROVAL_HISTORY (ID, PROCESS_INSTANCE_KEY, STEP_ID, ACTOR_ID, ACTION, " +
			"COMMENT, COMPLETED_AT) VALUES (?, ?, ?, ?, ?, ?, ?)",
	}

	// queryListApprovalsBase selects the approvals of a process instance. Filters extend its WHERE clause.
	queryListApprovalsBase = dbmodel.DBQuery{
		ID: "HIS-00004",
		PostgresQuery: "SELECT ID, PROCESS_INSTANCE_KEY, STEP_ID, ACTOR_ID, ACTION, COMMENT, COMPLETED_AT " +
			"FROM APPROVAL_HISTORY WHERE PROCESS_INSTANCE_KEY = $1",
		SQLiteQuery: "SELECT ID, PROCESS_INSTANCE_KEY, STEP_ID, ACTOR_ID, ACTION, COMMENT, COMPLETED_AT " +
			"FROM APPROVAL_HISTORY WHERE PROCESS_INSTANCE_KEY = ?",
	}

	// QueryListApprovals lists the approvals of a process instance, oldest first.
	QueryListApprovals = dbmodel.DBQuery{
		ID:            "HIS-00004",
		PostgresQuery: queryListApprovalsBase.PostgresQuery + approvalsOrderBy,
		SQLiteQuery:   queryListApprovalsBase.SQLiteQuery + approvalsOrderBy,
	}
)

// SchemaQueries are the statements that bootstrap the history database, in order.
var SchemaQueries = []dbmodel.DBQuery{QueryCreateApprovalHistoryTable, QueryCreateApprovalHistoryIndex}
