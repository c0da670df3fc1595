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
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/salesflow/orderdesk/cmd/orderctl/ui"
	"github.com/salesflow/orderdesk/internal/catalog"
	"github.com/salesflow/orderdesk/internal/processflow"
	"github.com/salesflow/orderdesk/internal/system/cache"
	"github.com/salesflow/orderdesk/internal/system/config"
	"github.com/salesflow/orderdesk/internal/workflow"
)

func flowCmd() *cobra.Command {
	var (
		engineURL   string
		key         string
		catalogFile string
		processID   string
		username    string
		password    string
		timeout     time.Duration
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Reconcile the step status of a process instance against a live engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			workflowConfig := config.WorkflowConfig{
				BaseURL:        engineURL,
				RequestTimeout: int(timeout / time.Second),
				MaxRetries:     1,
				RetryBackoff:   200,
				Username:       username,
				Password:       password,
			}
			// Catalogs are resolved once per run, so the cache stays off.
			if err := config.InitializeServerRuntime("", &config.Config{
				Workflow: workflowConfig,
				Cache:    config.CacheConfig{Disabled: true},
			}); err != nil {
				return err
			}

			var static map[string]*catalog.StepCatalog
			if catalogFile != "" {
				loaded, err := catalog.LoadStaticCatalogs(catalogFile)
				if err != nil {
					return err
				}
				static = loaded
			}

			engine := workflow.NewClient(workflowConfig, nil)
			provider := catalog.NewProvider(engine, static, cache.GetCache[*catalog.StepCatalog](catalog.CacheName))
			service := processflow.NewProcessFlowService(engine, provider, nil, processID, timeout)

			status, svcErr := service.GetProcessFlowStatus(context.Background(), key)
			if svcErr != nil {
				return fmt.Errorf("%s: %s", svcErr.Code, svcErr.ErrorDescription)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(status)
			}

			current := status.CurrentStepID
			if current == "" {
				current = ui.Muted("none")
			}
			fmt.Fprint(out, ui.KeyValues("",
				ui.KV("instance", ui.Bold(status.ProcessInstanceKey)),
				ui.KV("status", ui.Status(string(status.ProcessStatus))),
				ui.KV("current step", current)))

			rows := make([][]string, 0, len(status.Steps))
			for _, step := range status.Steps {
				completedAt := ""
				if step.CompletedAt != nil {
					completedAt = step.CompletedAt.Format(time.RFC3339)
				}
				rows = append(rows, []string{step.ID, step.Name, ui.Status(string(step.Status)), step.Assignee,
					completedAt})
			}
			fmt.Fprintln(out, ui.Table([]string{"STEP", "NAME", "STATUS", "ASSIGNEE", "COMPLETED"}, rows))
			fmt.Fprintln(out, ui.WarnMsg("approval history is not consulted by this command"))
			return nil
		},
	}

	cmd.Flags().StringVar(&engineURL, "engine", "http://localhost:8081", "Base URL of the BPM engine REST API")
	cmd.Flags().StringVar(&key, "key", "", "Process instance key")
	cmd.Flags().StringVar(&catalogFile, "catalog", "", "Static step catalog YAML used when the engine has none")
	cmd.Flags().StringVar(&processID, "process", "", "Process id used when the instance cannot be resolved")
	cmd.Flags().StringVar(&username, "username", "", "Engine basic auth user")
	cmd.Flags().StringVar(&password, "password", "", "Engine basic auth password")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Overall timeout")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the status as JSON")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}
