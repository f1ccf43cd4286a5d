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

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithWriter(&buf, "DEBUG", "json"))

	GetLogger().With(String("record_id", "r-1")).Debug("processed", Bool("registered", true))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "processed", line["msg"])
	assert.Equal(t, "r-1", line["record_id"])
	assert.Equal(t, true, line["registered"])
}

func TestInitWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithWriter(&buf, "ERROR"))

	GetLogger().Info("dropped")
	assert.Empty(t, buf.String())

	GetLogger().Error("kept", Error(assert.AnError))
	assert.Contains(t, buf.String(), "kept")
}

func TestInit_InvalidLevel(t *testing.T) {
	err := Init("LOUD")
	assert.Error(t, err)
}

func TestParseLogLevel_EmptyDefaultsToInfo(t *testing.T) {
	level, err := parseLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, "INFO", level.String())
}
