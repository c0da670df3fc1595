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

// Package catalog provides the ordered step catalogs of the approval processes.
package catalog

import (
	"encoding/json"
	"errors"
)

var (
	// ErrInvalidDefinition is returned when a BPMN document has no usable process.
	ErrInvalidDefinition = errors.New("invalid process definition")
	// ErrCatalogNotFound is returned when no catalog could be resolved for a process.
	ErrCatalogNotFound = errors.New("step catalog not found")
)

// StepDefinition is one entry of a step catalog.
type StepDefinition struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// StepCatalog is the ordered list of steps of a process. It is immutable once built.
type StepCatalog struct {
	processID string
	steps     []StepDefinition
}

// NewStepCatalog builds a catalog from the given steps. Later duplicates of a step id are ignored.
func NewStepCatalog(processID string, steps []StepDefinition) *StepCatalog {
	seen := make(map[string]struct{}, len(steps))
	ordered := make([]StepDefinition, 0, len(steps))
	for _, step := range steps {
		if step.ID == "" {
			continue
		}
		if _, dup := seen[step.ID]; dup {
			continue
		}
		seen[step.ID] = struct{}{}
		ordered = append(ordered, step)
	}
	return &StepCatalog{processID: processID, steps: ordered}
}

// ProcessID returns the BPMN process id the catalog belongs to.
func (c *StepCatalog) ProcessID() string {
	return c.processID
}

// Steps returns a copy of the steps in catalog order.
func (c *StepCatalog) Steps() []StepDefinition {
	steps := make([]StepDefinition, len(c.steps))
	copy(steps, c.steps)
	return steps
}

// Len returns the number of steps.
func (c *StepCatalog) Len() int {
	return len(c.steps)
}

// Contains reports whether the catalog has a step with the given id.
func (c *StepCatalog) Contains(stepID string) bool {
	for _, step := range c.steps {
		if step.ID == stepID {
			return true
		}
	}
	return false
}

// MarshalJSON renders the catalog as {"processId": ..., "steps": [...]}.
func (c *StepCatalog) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ProcessID string           `json:"processId"`
		Steps     []StepDefinition `json:"steps"`
	}{ProcessID: c.processID, Steps: c.steps})
}
