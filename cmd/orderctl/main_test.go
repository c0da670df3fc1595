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
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const approvalForm = `{
  "id": "manager-approval",
  "name": "Approve {{orderNumber}}",
  "supportedLevels": ["VIEW", "APPROVE"],
  "components": [
    {"id": "amount", "type": "number", "label": "Amount", "key": "amount"},
    {"id": "escalation", "type": "checkbox", "label": "Escalate",
     "conditional": {"dependsOn": "amount", "operator": "greaterThan", "value": 1000}},
    {"id": "decision", "type": "select", "label": "Decision",
     "permission": {"APPROVE": {"visible": true, "readonly": false}}}
  ]
}`

const approvalBPMN = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL" id="defs">
  <bpmn:process id="sales-order-approval" isExecutable="true">
    <bpmn:startEvent id="start" />
    <bpmn:sequenceFlow id="f1" sourceRef="start" targetRef="validate" />
    <bpmn:serviceTask id="validate" name="Validate order" />
    <bpmn:sequenceFlow id="f2" sourceRef="validate" targetRef="manager-approval" />
    <bpmn:userTask id="manager-approval" />
    <bpmn:sequenceFlow id="f3" sourceRef="manager-approval" targetRef="end" />
    <bpmn:endEvent id="end" />
  </bpmn:process>
</bpmn:definitions>`

const staticCatalogs = `catalogs:
  - process_id: sales-order-approval
    steps:
      - id: validate
        name: Validate order
      - id: manager-approval
        name: Manager approval
      - id: finance-approval
        name: Finance approval
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	schema := writeFile(t, "form.json", approvalForm)
	vars := writeFile(t, "vars.json", `{"orderNumber": "SO-3", "amount": 250}`)

	out, err := execute(t, "render", "--schema", schema, "--level", "VIEW", "--vars", vars)
	require.NoError(t, err)

	var rendered struct {
		FormName   string `json:"formName"`
		Components []struct {
			ID       string `json:"id"`
			Readonly bool   `json:"readonly"`
			Value    any    `json:"value"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rendered))
	assert.Equal(t, "Approve SO-3", rendered.FormName)
	require.Len(t, rendered.Components, 1)
	assert.Equal(t, "amount", rendered.Components[0].ID)
	assert.True(t, rendered.Components[0].Readonly)
	assert.Equal(t, 250.0, rendered.Components[0].Value)
}

func TestRenderCommandRejectsUnsupportedLevel(t *testing.T) {
	schema := writeFile(t, "form.json", approvalForm)

	_, err := execute(t, "render", "--schema", schema, "--level", "EDIT")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not support level EDIT")
}

func TestRenderCommandRejectsInvalidSchema(t *testing.T) {
	schema := writeFile(t, "form.json", `{"id": "f"}`)

	_, err := execute(t, "render", "--schema", schema)

	assert.Error(t, err)
}

func TestCatalogCommand(t *testing.T) {
	bpmn := writeFile(t, "process.bpmn", approvalBPMN)

	out, err := execute(t, "catalog", "--bpmn", bpmn)
	require.NoError(t, err)

	assert.Contains(t, out, "sales-order-approval")
	assert.Contains(t, out, "Validate order")
	assert.Contains(t, out, "Manager Approval")
}

func TestFlowCommand(t *testing.T) {
	engine := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/process-instances/7":
			_, _ = w.Write([]byte(`{"key": 7, "bpmnProcessId": "sales-order-approval", "state": "ACTIVE"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/v1/flownode-instances/search":
			var body struct {
				Filter struct {
					Type string `json:"type"`
				} `json:"filter"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			task := `{"key": 2, "processInstanceKey": 7, "flowNodeId": "manager-approval", "type": "USER_TASK",
				"state": "ACTIVE", "assignee": "alice"}`
			if body.Filter.Type == "USER_TASK" {
				_, _ = w.Write([]byte(`{"items": [` + task + `], "total": 1}`))
				return
			}
			_, _ = w.Write([]byte(`{"items": [{"key": 1, "processInstanceKey": 7, "flowNodeId": "validate",
				"type": "SERVICE_TASK", "state": "COMPLETED", "endDate": "2026-01-05T10:00:00.000+0000"}, ` +
				task + `], "total": 2}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer engine.Close()
	catalogs := writeFile(t, "catalogs.yaml", staticCatalogs)

	out, err := execute(t, "flow", "--engine", engine.URL, "--key", "7", "--catalog", catalogs, "--json")
	require.NoError(t, err)

	var status struct {
		ProcessStatus string `json:"processStatus"`
		CurrentStepID string `json:"currentStepId"`
		Steps         []struct {
			ID          string `json:"id"`
			Status      string `json:"status"`
			Assignee    string `json:"assignee"`
			CompletedAt string `json:"completedAt"`
		} `json:"steps"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Equal(t, "ACTIVE", status.ProcessStatus)
	assert.Equal(t, "manager-approval", status.CurrentStepID)
	require.Len(t, status.Steps, 3)
	assert.Equal(t, "COMPLETED", status.Steps[0].Status)
	assert.Equal(t, "2026-01-05T10:00:00Z", status.Steps[0].CompletedAt)
	assert.Equal(t, "CURRENT", status.Steps[1].Status)
	assert.Equal(t, "alice", status.Steps[1].Assignee)
	assert.Equal(t, "PENDING", status.Steps[2].Status)
}
