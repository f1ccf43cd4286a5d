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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceValueToType_String(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected interface{}
		ok       bool
	}{
		{"string to string", "hello", "hello", true},
		{"json number to string", json.Number("12345678901234567890"), "12345678901234567890", true},
		{"int to string", 42, "42", true},
		{"float to string (integer)", 42.0, "42", true},
		{"float to string (decimal)", 42.5, "42.5", true},
		{"bool true to string", true, "true", true},
		{"bool false to string", false, "false", true},
		{"object to string", map[string]interface{}{"a": 1}, `{"a":1}`, true},
		{"nil is not coerced", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := CoerceValueToType(tt.input, StringDataType)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCoerceValueToType_Number(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected interface{}
		ok       bool
	}{
		{"json number", json.Number("1700000000"), 1700000000.0, true},
		{"json decimal", json.Number("12.5"), 12.5, true},
		{"float", 42.5, 42.5, true},
		{"int", 42, 42.0, true},
		{"numeric string", " 3.25 ", 3.25, true},
		{"non-numeric string", "yesterday", 0.0, false},
		{"infinite string", "Inf", 0.0, false},
		{"bool", true, 0.0, false},
		{"nil", nil, 0.0, false},
		{"object", map[string]interface{}{}, 0.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := CoerceValueToType(tt.input, NumberDataType)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCoerceLegacyBool(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected interface{}
	}{
		{"string zero", "0", false},
		{"string one", "1", true},
		{"bool kept", true, true},
		{"other string kept", "yes", "yes"},
		{"number kept", json.Number("1"), json.Number("1")},
		{"nil kept", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CoerceLegacyBool(tt.input))
		})
	}
}
