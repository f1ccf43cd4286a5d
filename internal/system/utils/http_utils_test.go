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
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	customerrors "github.com/wso2/game-events-processor/internal/system/errors"
)

func TestHandleError_ClientError(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, customerrors.NewClientError(customerrors.UN_AUTHORIZED, http.StatusUnauthorized))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body customerrors.ErrorMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, customerrors.UN_AUTHORIZED.Code, body.Code)
}

func TestHandleError_ServerError(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, customerrors.NewServerError(customerrors.DB_CLIENT_INIT, errors.New("boom")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestHandleDecodeError(t *testing.T) {
	shape := RequestShape{Resource: "transform", Fields: []string{"invocationId", "records", "records[].recordId", "records[].data"}}
	type record struct {
		RecordID string `json:"recordId"`
		Data     string `json:"data"`
	}
	type request struct {
		InvocationID string   `json:"invocationId"`
		Records      []record `json:"records"`
	}
	decode := func(body string) error {
		dec := json.NewDecoder(strings.NewReader(body))
		dec.DisallowUnknownFields()
		var req request
		return dec.Decode(&req)
	}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "empty body", err: decode(""), want: "Request body for transform is empty."},
		{name: "array body", err: decode(`[]`), want: "Request body for transform must be a JSON object, got array."},
		{name: "scalar body", err: decode(`"records"`), want: "Request body for transform must be a JSON object, got string."},
		{
			name: "records not an array",
			err:  decode(`{"records": 5}`),
			want: "Field 'records' in transform request body must be an array, got number.",
		},
		{
			name: "unknown field",
			err:  decode(`{"records": [], "extra": true}`),
			want: `Unknown field "extra" in transform request body. Accepted fields: invocationId, records, records[].recordId, records[].data.`,
		},
		{
			name: "syntax error",
			err:  decode(`{"records": [}`),
			want: "Malformed JSON at offset 14 in transform request body. " +
				"Expected an object with invocationId, records, records[].recordId, records[].data.",
		},
		{
			name: "truncated",
			err:  decode(`{"records":`),
			want: "Truncated JSON in transform request body. " +
				"Expected an object with invocationId, records, records[].recordId, records[].data.",
		},
		{
			name: "too large",
			err:  &http.MaxBytesError{Limit: 10},
			want: "Request body for transform exceeds 10 bytes.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HandleDecodeError(tt.err, shape))
		})
	}
}
