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

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/salesflow/orderdesk/internal/form"
)

func renderCmd() *cobra.Command {
	var (
		schemaFile        string
		level             string
		varsFile          string
		taskFile          string
		defaultVisibility string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a form schema offline for a permission level",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(filepath.Clean(schemaFile))
			if err != nil {
				return fmt.Errorf("read form schema: %w", err)
			}
			schema, err := form.ParseFormSchema(content)
			if err != nil {
				return err
			}

			permissionLevel, err := form.ParsePermissionLevel(level)
			if err != nil {
				return err
			}
			if !schema.Supports(permissionLevel) {
				return fmt.Errorf("form %q does not support level %s", schema.ID, permissionLevel)
			}

			variables, err := readJSONObject(varsFile)
			if err != nil {
				return fmt.Errorf("read variables: %w", err)
			}
			taskInfo, err := readJSONObject(taskFile)
			if err != nil {
				return fmt.Errorf("read task info: %w", err)
			}

			rendered := form.NewRenderer(defaultVisibility).Render(schema, permissionLevel, variables, taskInfo)
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(rendered)
		},
	}

	cmd.Flags().StringVar(&schemaFile, "schema", "", "Form schema JSON file")
	cmd.Flags().StringVar(&level, "level", "VIEW", "Permission level: VIEW, EDIT or APPROVE")
	cmd.Flags().StringVar(&varsFile, "vars", "", "JSON file holding the variable bag")
	cmd.Flags().StringVar(&taskFile, "task", "", "JSON file holding the task information")
	cmd.Flags().StringVar(&defaultVisibility, "default-visibility", form.DefaultVisibilityVisible,
		"Visibility of components without a permission map: visible or hidden")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

// readJSONObject decodes a JSON object file. An empty path yields a nil map.
func readJSONObject(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var object map[string]any
	if err := json.Unmarshal(content, &object); err != nil {
		return nil, err
	}
	return object, nil
}
