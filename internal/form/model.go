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

// Package form renders dynamic task forms filtered by the caller's permission level.
package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPermissionLevel is returned when a permission level name is not recognised.
var ErrInvalidPermissionLevel = errors.New("invalid permission level")

// PermissionLevel is the access level of the caller rendering a form.
type PermissionLevel int

// Permission levels, ordered from least to most privileged.
const (
	LevelView PermissionLevel = iota + 1
	LevelEdit
	LevelApprove
)

var permissionLevelNames = map[PermissionLevel]string{
	LevelView:    "VIEW",
	LevelEdit:    "EDIT",
	LevelApprove: "APPROVE",
}

// ParsePermissionLevel parses a level name. Matching is case-insensitive.
func ParsePermissionLevel(name string) (PermissionLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "VIEW":
		return LevelView, nil
	case "EDIT":
		return LevelEdit, nil
	case "APPROVE":
		return LevelApprove, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPermissionLevel, name)
}

// String returns the level name.
func (l PermissionLevel) String() string {
	if name, ok := permissionLevelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("PermissionLevel(%d)", int(l))
}

// IsValid reports whether the level is one of the known levels.
func (l PermissionLevel) IsValid() bool {
	_, ok := permissionLevelNames[l]
	return ok
}

// MarshalText implements encoding.TextMarshaler. It also makes levels usable as JSON object keys.
func (l PermissionLevel) MarshalText() ([]byte, error) {
	if !l.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPermissionLevel, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *PermissionLevel) UnmarshalText(text []byte) error {
	parsed, err := ParsePermissionLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// FieldPermission is the visibility of a component at one permission level.
type FieldPermission struct {
	Visible  bool `json:"visible"`
	Readonly bool `json:"readonly"`
}

// Conditional operators.
const (
	OperatorEquals      = "equals"
	OperatorNotEquals   = "notEquals"
	OperatorContains    = "contains"
	OperatorGreaterThan = "greaterThan"
	OperatorLessThan    = "lessThan"
)

// Conditional shows a component only when a variable satisfies the operator.
type Conditional struct {
	DependsOn string `json:"dependsOn"`
	Operator  string `json:"operator"`
	Value     any    `json:"value"`
}

// FormComponent is a node of a form schema. A component with a non-nil Components slice is a
// container, otherwise it is a field.
type FormComponent struct {
	ID            string                              `json:"id"`
	Label         string                              `json:"label,omitempty"`
	Type          string                              `json:"type"`
	Key           string                              `json:"key,omitempty"`
	Readonly      bool                                `json:"readonly,omitempty"`
	Components    []FormComponent                     `json:"components,omitempty"`
	Permission    map[PermissionLevel]FieldPermission `json:"permission,omitempty"`
	Conditional   *Conditional                        `json:"conditional,omitempty"`
	AlwaysVisible bool                                `json:"alwaysVisible,omitempty"`
	Properties    map[string]string                   `json:"properties,omitempty"`
}

// IsContainer reports whether the component groups other components.
func (c FormComponent) IsContainer() bool {
	return c.Components != nil
}

// FormSchema is a form definition as stored in the schema repository.
type FormSchema struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	TaskType        string            `json:"taskType,omitempty"`
	SupportedLevels []PermissionLevel `json:"supportedLevels,omitempty"`
	Components      []FormComponent   `json:"components"`
}

// Supports reports whether the form can be rendered at the given level. A form that declares no
// supported levels accepts all of them.
func (s *FormSchema) Supports(level PermissionLevel) bool {
	if len(s.SupportedLevels) == 0 {
		return level.IsValid()
	}
	for _, supported := range s.SupportedLevels {
		if supported == level {
			return true
		}
	}
	return false
}

// FormSummary is the listing view of a form schema.
type FormSummary struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	TaskType        string            `json:"taskType,omitempty"`
	SupportedLevels []PermissionLevel `json:"supportedLevels"`
}

// RenderedComponent is a component that survived rendering.
type RenderedComponent struct {
	ID         string              `json:"id"`
	Label      string              `json:"label,omitempty"`
	Type       string              `json:"type"`
	Key        string              `json:"key,omitempty"`
	Readonly   bool                `json:"readonly"`
	Value      any                 `json:"value,omitempty"`
	Properties map[string]string   `json:"properties,omitempty"`
	Components []RenderedComponent `json:"components,omitempty"`
}

// IsContainer reports whether the rendered component groups other components.
func (c RenderedComponent) IsContainer() bool {
	return c.Components != nil
}

// MarshalJSON emits an empty components array for containers whose children were all dropped.
func (c RenderedComponent) MarshalJSON() ([]byte, error) {
	type plain RenderedComponent
	out := struct {
		plain
		Components *[]RenderedComponent `json:"components,omitempty"`
	}{plain: plain(c)}
	if c.Components != nil {
		out.Components = &c.Components
	}
	return json.Marshal(out)
}

// RenderedForm is the permission-filtered view of a form returned to the caller.
type RenderedForm struct {
	FormID          string              `json:"formId"`
	FormName        string              `json:"formName"`
	PermissionLevel PermissionLevel     `json:"permissionLevel"`
	Components      []RenderedComponent `json:"components"`
	Variables       map[string]any      `json:"variables"`
	TaskInfo        map[string]any      `json:"taskInfo,omitempty"`
}

// RenderFormRequest is the body of a render request.
type RenderFormRequest struct {
	PermissionLevel string         `json:"permissionLevel"`
	Variables       map[string]any `json:"variables"`
	TaskInfo        map[string]any `json:"taskInfo"`
}
