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
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/salesflow/orderdesk/cmd/orderctl/ui"
	"github.com/salesflow/orderdesk/internal/catalog"
)

func catalogCmd() *cobra.Command {
	var (
		bpmnFile  string
		processID string
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the step catalog extracted from a BPMN file",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(filepath.Clean(bpmnFile))
			if err != nil {
				return fmt.Errorf("read BPMN file: %w", err)
			}
			stepCatalog, err := catalog.ParseBPMN(processID, string(content))
			if err != nil {
				return err
			}

			steps := stepCatalog.Steps()
			rows := make([][]string, 0, len(steps))
			for i, step := range steps {
				rows = append(rows, []string{strconv.Itoa(i + 1), step.ID, step.Name})
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, ui.KeyValues("", ui.KV("process", ui.Bold(stepCatalog.ProcessID())),
				ui.KV("steps", strconv.Itoa(len(steps)))))
			fmt.Fprintln(out, ui.Table([]string{"#", "ID", "NAME"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&bpmnFile, "bpmn", "", "BPMN 2.0 XML file")
	cmd.Flags().StringVar(&processID, "process", "", "Process id; defaults to the first executable process")
	_ = cmd.MarkFlagRequired("bpmn")
	return cmd
}
