/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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

package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Data type names used by the canonical field table.
const (
	StringDataType = "string"
	NumberDataType = "number"
)

// CoerceValueToType converts a decoded JSON value to the canonical representation of targetType.
//
// Coercion rules:
//   - string target: strings as is, numbers as their JSON literal, booleans as "true"/"false",
//     objects and arrays as compact JSON
//   - number target: numbers, and strings that parse as a finite number
//   - null never coerces
//
// Returns the coerced value and false when the value cannot be represented.
func CoerceValueToType(value interface{}, targetType string) (interface{}, bool) {
	switch targetType {
	case StringDataType:
		s, ok := CoerceToString(value)
		return s, ok
	case NumberDataType:
		f, ok := CoerceToNumber(value)
		return f, ok
	default:
		return value, value != nil
	}
}

// CoerceToString converts a scalar or container to its string form.
func CoerceToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

// CoerceToNumber converts numbers and numeric strings to float64.
func CoerceToNumber(value interface{}) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CoerceLegacyBool maps the string flags "0" and "1" sent by older clients to booleans.
// Any other value is returned unchanged.
func CoerceLegacyBool(value interface{}) interface{} {
	switch value {
	case "0":
		return false
	case "1":
		return true
	}
	return value
}
