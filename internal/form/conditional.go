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
	"errors"
	"fmt"
	"strings"
)

var errUnknownOperator = errors.New("unknown conditional operator")

// evaluateConditional reports whether the conditional holds for the variable bag. A missing
// dependsOn variable or a comparison that cannot be made yields false. An unknown operator yields
// false together with an error so that the caller can report the schema defect.
func evaluateConditional(cond *Conditional, variables map[string]any) (bool, error) {
	if cond == nil {
		return true, nil
	}
	actual, ok := lookupVariable(variables, cond.DependsOn)
	if !ok {
		return false, nil
	}

	switch cond.Operator {
	case OperatorEquals:
		return valuesEqual(actual, cond.Value), nil
	case OperatorNotEquals:
		return !valuesEqual(actual, cond.Value), nil
	case OperatorContains:
		return containsValue(actual, cond.Value), nil
	case OperatorGreaterThan:
		return compareNumbers(actual, cond.Value, func(a, b float64) bool { return a > b }), nil
	case OperatorLessThan:
		return compareNumbers(actual, cond.Value, func(a, b float64) bool { return a < b }), nil
	}
	return false, fmt.Errorf("%w: %q", errUnknownOperator, cond.Operator)
}

// valuesEqual compares numerically when both sides are numbers and by formatted value otherwise.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

// containsValue is a substring test for strings and a membership test for lists.
func containsValue(container, element any) bool {
	switch c := container.(type) {
	case string:
		needle, ok := element.(string)
		if !ok {
			if element == nil {
				return false
			}
			needle = fmt.Sprintf("%v", element)
		}
		return strings.Contains(c, needle)
	case []any:
		for _, item := range c {
			if valuesEqual(item, element) {
				return true
			}
		}
	case []string:
		for _, item := range c {
			if valuesEqual(item, element) {
				return true
			}
		}
	}
	return false
}

// compareNumbers fails closed when either operand is not a number. Numeric strings are not coerced.
func compareNumbers(a, b any, cmp func(a, b float64) bool) bool {
	af, ok := toFloat(a)
	if !ok {
		return false
	}
	bf, ok := toFloat(b)
	if !ok {
		return false
	}
	return cmp(af, bf)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
