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

package form

import (
	"sort"
	"strings"

	"github.com/salesflow/orderdesk/internal/system/log"
)

const rendererLoggerComponentName = "FormRenderer"

// Default visibility policies for components that carry no permission map.
const (
	DefaultVisibilityVisible = "visible"
	DefaultVisibilityHidden  = "hidden"
)

// Reasons a component is left out of a rendered form.
const (
	dropReasonPermission  = "permission"
	dropReasonConditional = "conditional"
)

// Renderer turns a form schema into the view allowed for one permission level.
// A Renderer holds no per-call state and is safe for concurrent use.
type Renderer struct {
	defaultVisible bool
}

// NewRenderer returns a renderer applying the given default visibility policy to components
// without a permission map. Any value other than "hidden" keeps such components visible.
func NewRenderer(defaultVisibility string) *Renderer {
	return &Renderer{defaultVisible: defaultVisibility != DefaultVisibilityHidden}
}

var defaultRenderer = NewRenderer(DefaultVisibilityVisible)

// Render renders the schema with the default visibility policy.
func Render(schema *FormSchema, level PermissionLevel, variables, taskInfo map[string]any) RenderedForm {
	return defaultRenderer.Render(schema, level, variables, taskInfo)
}

// Render returns the components of the schema visible at the given level. Hidden components are
// absent from the result, string properties of visible ones have their placeholders substituted
// and field values are bound from the variable bag. The returned variables hold only the names that
// rendered components bind or substitute. The schema and the inputs are not modified.
func (r *Renderer) Render(schema *FormSchema, level PermissionLevel, variables,
	taskInfo map[string]any) RenderedForm {
	form, _ := r.render(schema, level, variables, taskInfo)
	return form
}

// renderStats counts the components dropped during one render, by reason.
type renderStats map[string]int

type renderContext struct {
	level     PermissionLevel
	variables map[string]any
	stats     renderStats
	logger    *log.Logger
}

func (r *Renderer) render(schema *FormSchema, level PermissionLevel, variables,
	taskInfo map[string]any) (RenderedForm, renderStats) {
	form := RenderedForm{
		PermissionLevel: level,
		Variables:       map[string]any{},
		TaskInfo:        cloneObject(taskInfo),
	}
	stats := renderStats{}
	if schema == nil {
		form.Components = []RenderedComponent{}
		return form, stats
	}

	var used []string
	form.FormID = schema.ID
	form.FormName = substitutePlaceholders(schema.Name, variables, func(name string) { used = append(used, name) })
	rc := &renderContext{
		level:     level,
		variables: variables,
		stats:     stats,
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, rendererLoggerComponentName),
			log.String(log.LoggerKeyFormKey, schema.ID)),
	}
	components, bound := r.renderComponents(schema.Components, rc)
	form.Components = components
	form.Variables = boundVariables(variables, append(used, bound...))
	return form, stats
}

// renderComponents renders the surviving components and returns the variable names they bind.
func (r *Renderer) renderComponents(components []FormComponent, rc *renderContext) ([]RenderedComponent, []string) {
	rendered := make([]RenderedComponent, 0, len(components))
	var bound []string
	for i := range components {
		if out, names, ok := r.renderComponent(&components[i], rc); ok {
			rendered = append(rendered, out)
			bound = append(bound, names...)
		}
	}
	return rendered, bound
}

func (r *Renderer) renderComponent(component *FormComponent, rc *renderContext) (RenderedComponent, []string, bool) {
	var children []RenderedComponent
	var bound []string
	if component.IsContainer() {
		children, bound = r.renderComponents(component.Components, rc)
	}

	permission := r.permissionFor(component, rc.level)
	if !permission.Visible {
		rc.stats[dropReasonPermission]++
		return RenderedComponent{}, nil, false
	}

	holds, err := evaluateConditional(component.Conditional, rc.variables)
	if err != nil {
		rc.logger.Warn("Ignoring component with an invalid conditional",
			log.String("componentId", component.ID), log.Error(err))
	}
	if !holds {
		rc.stats[dropReasonConditional]++
		return RenderedComponent{}, nil, false
	}

	if component.IsContainer() && len(children) == 0 && !component.AlwaysVisible {
		return RenderedComponent{}, nil, false
	}

	resolved := func(name string) { bound = append(bound, name) }
	out := RenderedComponent{
		ID:         component.ID,
		Label:      substitutePlaceholders(component.Label, rc.variables, resolved),
		Type:       component.Type,
		Key:        component.Key,
		Readonly:   component.Readonly || permission.Readonly,
		Components: children,
	}
	if len(component.Properties) > 0 {
		out.Properties = make(map[string]string, len(component.Properties))
		for name, value := range component.Properties {
			out.Properties[name] = substitutePlaceholders(value, rc.variables, resolved)
		}
	}
	if component.Key != "" {
		if value, ok := lookupVariable(rc.variables, component.Key); ok {
			out.Value = cloneValue(value)
			bound = append(bound, component.Key)
		}
	}
	return out, bound, true
}

// permissionFor resolves the permission of a component at a level. A map without an entry for the
// level falls back to the nearest lower configured level; when there is none the component is hidden.
func (r *Renderer) permissionFor(component *FormComponent, level PermissionLevel) FieldPermission {
	if len(component.Permission) == 0 {
		return FieldPermission{Visible: r.defaultVisible, Readonly: level < LevelEdit}
	}
	for candidate := level; candidate >= LevelView; candidate-- {
		if permission, ok := component.Permission[candidate]; ok {
			return permission
		}
	}
	return FieldPermission{}
}

// boundVariables copies from the variable bag only the given names. A dotted name that is not a
// literal key is copied as a path, so sibling properties of the same object stay out.
func boundVariables(variables map[string]any, names []string) map[string]any {
	bound := make(map[string]any, len(names))
	sort.Strings(names)
	for _, name := range names {
		if value, ok := variables[name]; ok {
			bound[name] = cloneValue(value)
			continue
		}
		value, ok := lookupVariable(variables, name)
		if !ok {
			continue
		}
		segments := strings.Split(name, ".")
		target := bound
		for _, segment := range segments[:len(segments)-1] {
			next, isObject := target[segment].(map[string]any)
			if !isObject {
				next = map[string]any{}
				target[segment] = next
			}
			target = next
		}
		target[segments[len(segments)-1]] = cloneValue(value)
	}
	return bound
}

func cloneObject(object map[string]any) map[string]any {
	if object == nil {
		return nil
	}
	clone := make(map[string]any, len(object))
	for key, value := range object {
		clone[key] = cloneValue(value)
	}
	return clone
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return cloneObject(v)
	case []any:
		clone := make([]any, len(v))
		for i, item := range v {
			clone[i] = cloneValue(item)
		}
		return clone
	case []string:
		return append([]string(nil), v...)
	}
	return value
}
