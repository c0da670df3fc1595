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

// Package utils provides helpers for building database queries.
package utils

import (
	"fmt"
	"sort"

	"github.com/salesflow/orderdesk/internal/system/database/model"
)

// BuildFilterQuery narrows a base query with an equality condition per filter column. The base query
// must end in a WHERE clause and already bind boundArgs positional parameters. Columns are applied in
// sorted order and the suffix, typically an ORDER BY clause, is appended last.
func BuildFilterQuery(queryID string, base model.DBQuery, boundArgs int, filters map[string]interface{},
	suffix string) (model.DBQuery, []interface{}, error) {
	args := make([]interface{}, 0, len(filters))

	columns := make([]string, 0, len(filters))
	for column := range filters {
		if err := validateKey(column); err != nil {
			return model.DBQuery{}, nil, fmt.Errorf("invalid filter column: %w", err)
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	postgresQuery := base.GetQuery("postgres")
	sqliteQuery := base.GetQuery("sqlite")
	for i, column := range columns {
		postgresQuery += fmt.Sprintf(" AND %s = $%d", column, boundArgs+i+1)
		sqliteQuery += fmt.Sprintf(" AND %s = ?", column)
		args = append(args, filters[column])
	}
	postgresQuery += suffix
	sqliteQuery += suffix

	resultQuery := model.DBQuery{
		ID:            queryID,
		Query:         postgresQuery,
		PostgresQuery: postgresQuery,
		SQLiteQuery:   sqliteQuery,
	}

	return resultQuery, args, nil
}

// validateKey ensures that the provided key contains only safe characters (alphanumeric and underscores).
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key must not be empty")
	}
	for _, char := range key {
		if !(char >= 'a' && char <= 'z' || char >= 'A' && char <= 'Z' ||
			char >= '0' && char <= '9' || char == '_') {
			return fmt.Errorf("key '%s' contains invalid characters", key)
		}
	}
	return nil
}
