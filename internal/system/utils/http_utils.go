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

	customerrors "github.com/wso2/game-events-processor/internal/system/errors"
	"github.com/wso2/game-events-processor/internal/system/log"
)

// HandleError sends an HTTP error response based on the provided error
func HandleError(w http.ResponseWriter, err error) {

	var clientError *customerrors.ClientError
	if errors.As(err, &clientError) {
		WriteErrorResponse(w, clientError)
		return
	}

	log.GetLogger().Error("Request failed", log.Error(err))
	WriteJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "Internal server error",
	})
}

// WriteErrorResponse writes the client error's catalogue entry with its status code.
func WriteErrorResponse(w http.ResponseWriter, err *customerrors.ClientError) {
	WriteJSON(w, err.StatusCode, err.ErrorMessage)
}

// WriteJSON writes body as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
