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
	"fmt"
	"time"

	"github.com/salesflow/orderdesk/internal/system/database/provider"
	dbutils "github.com/salesflow/orderdesk/internal/system/database/utils"
	"github.com/salesflow/orderdesk/internal/system/log"
)

const storeLoggerComponentName = "ApprovalHistoryStore"

// historyStoreInterface defines the persistence operations of the approval history.
type historyStoreInterface interface {
	CreateApproval(record ApprovalRecord) error
	ListApprovals(processInstanceKey string, filter ApprovalFilter) ([]ApprovalRecord, error)
}

// historyStore is the SQL implementation of historyStoreInterface.
type historyStore struct {
	dbProvider provider.DBProviderInterface
}

func newHistoryStore(dbProvider provider.DBProviderInterface) historyStoreInterface {
	return &historyStore{dbProvider: dbProvider}
}

// CreateApproval inserts an approval record in a transaction.
func (s *historyStore) CreateApproval(record ApprovalRecord) error {
	dbClient, err := s.dbProvider.GetDBClient(provider.HistoryDBName)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	tx, err := dbClient.BeginTx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = tx.Exec(
		QueryInsertApproval.GetQuery(dbClient.GetDBType()),
		record.ID,
		record.ProcessInstanceKey,
		record.StepID,
		record.ActorID,
		record.Action,
		record.Comment,
		record.CompletedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rollbackErr))
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListApprovals returns the approvals of a process instance matching the filter, ordered by completion time.
func (s *historyStore) ListApprovals(processInstanceKey string, filter ApprovalFilter) ([]ApprovalRecord, error) {
	dbClient, err := s.dbProvider.GetDBClient(provider.HistoryDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	query, filterArgs, err := dbutils.BuildFilterQuery(QueryListApprovals.ID, queryListApprovalsBase, 1,
		filter.columns(), approvalsOrderBy)
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}
	args := append([]interface{}{processInstanceKey}, filterArgs...)

	results, err := dbClient.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	records := make([]ApprovalRecord, 0, len(results))
	for _, row := range results {
		record, err := buildApprovalFromResultRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to build approval from result row: %w", err)
		}
		records = append(records, record)
	}

	log.GetLogger().With(log.String(log.LoggerKeyComponentName, storeLoggerComponentName)).
		Debug("Listed approvals", log.String(log.LoggerKeyProcessInstanceKey, processInstanceKey),
			log.Int("count", len(records)))
	return records, nil
}

func buildApprovalFromResultRow(row map[string]interface{}) (ApprovalRecord, error) {
	id, err := stringColumn(row, "id", true)
	if err != nil {
		return ApprovalRecord{}, err
	}
	processInstanceKey, err := stringColumn(row, "process_instance_key", true)
	if err != nil {
		return ApprovalRecord{}, err
	}
	stepID, err := stringColumn(row, "step_id", true)
	if err != nil {
		return ApprovalRecord{}, err
	}
	actorID, err := stringColumn(row, "actor_id", true)
	if err != nil {
		return ApprovalRecord{}, err
	}
	action, err := stringColumn(row, "action", true)
	if err != nil {
		return ApprovalRecord{}, err
	}
	comment, err := stringColumn(row, "comment", false)
	if err != nil {
		return ApprovalRecord{}, err
	}
	completedAt, err := timeColumn(row, "completed_at")
	if err != nil {
		return ApprovalRecord{}, err
	}

	return ApprovalRecord{
		ID:                 id,
		ProcessInstanceKey: processInstanceKey,
		StepID:             stepID,
		ActorID:            actorID,
		Action:             action,
		Comment:            comment,
		CompletedAt:        completedAt,
	}, nil
}

// stringColumn reads a text column. Drivers report text either as string or as []byte.
func stringColumn(row map[string]interface{}, column string, required bool) (string, error) {
	switch value := row[column].(type) {
	case string:
		return value, nil
	case []byte:
		return string(value), nil
	case nil:
		if required {
			return "", fmt.Errorf("column %s is null", column)
		}
		return "", nil
	default:
		return "", fmt.Errorf("column %s has unexpected type %T", column, value)
	}
}

// timeColumn reads COMPLETED_AT, a TIMESTAMP on postgres and fixed width text on sqlite.
func timeColumn(row map[string]interface{}, column string) (time.Time, error) {
	switch value := row[column].(type) {
	case time.Time:
		return value.UTC(), nil
	case string, []byte:
		raw, _ := stringColumn(row, column, true)
		for _, layout := range []string{timestampLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, raw); err == nil {
				return parsed.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("column %s has unparsable timestamp %q", column, raw)
	default:
		return time.Time{}, fmt.Errorf("column %s has unexpected type %T", column, value)
	}
}
