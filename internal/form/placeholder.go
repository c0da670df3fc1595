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
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	placeholderOpen  = "{{"
	placeholderClose = "}}"
)

// substitutePlaceholders replaces {{name}} and {{name.property}} tokens with values from the
// variable bag. Tokens that do not resolve, and an unclosed opening marker, are kept verbatim.
// onResolve, when set, receives the name of every substituted token.
func substitutePlaceholders(template string, variables map[string]any, onResolve func(name string)) string {
	if !strings.Contains(template, placeholderOpen) {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))
	rest := template
	for {
		start := strings.Index(rest, placeholderOpen)
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[start+len(placeholderOpen):], placeholderClose)
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += start + len(placeholderOpen)
		if nested := strings.LastIndex(rest[:end], placeholderOpen); nested > start {
			start = nested
		}

		b.WriteString(rest[:start])
		token := rest[start : end+len(placeholderClose)]
		expr := strings.TrimSpace(rest[start+len(placeholderOpen) : end])
		if replacement, ok := resolvePlaceholder(expr, variables); ok {
			b.WriteString(replacement)
			if onResolve != nil {
				onResolve(expr)
			}
		} else {
			b.WriteString(token)
		}
		rest = rest[end+len(placeholderClose):]
	}
	return b.String()
}

func resolvePlaceholder(expr string, variables map[string]any) (string, bool) {
	if expr == "" {
		return "", false
	}
	value, ok := lookupVariable(variables, expr)
	if !ok {
		return "", false
	}
	return formatValue(value)
}

// lookupVariable resolves a name against the variable bag. A name containing dots is first looked
// up as a literal key and then as a property path through nested objects.
func lookupVariable(variables map[string]any, name string) (any, bool) {
	if variables == nil || name == "" {
		return nil, false
	}
	if value, ok := variables[name]; ok {
		return value, true
	}
	if !strings.Contains(name, ".") {
		return nil, false
	}

	var current any = variables
	for _, segment := range strings.Split(name, ".") {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = object[segment]; !ok {
			return nil, false
		}
	}
	return current, true
}

func formatValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, json.Number:
		return fmt.Sprint(v), true
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", false
	}
	return string(encoded), true
}
