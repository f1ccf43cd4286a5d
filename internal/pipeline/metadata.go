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

package pipeline

import (
	"encoding/json"
	"maps"

	"github.com/wso2/game-events-processor/internal/events/model"
	"github.com/wso2/game-events-processor/internal/system/constants"
)

var apiFields = []string{
	constants.FieldAPIValidatedFlag,
	constants.FieldAPIRequestID,
	constants.FieldAPIRequestTime,
}

// splitAPIMetadata returns a copy of the envelope without the ingestion API keys and, when the
// validated flag is truthy, the api metadata block built from them.
func splitAPIMetadata(envelope map[string]interface{}) (map[string]interface{}, *model.APIMetadata) {

	var api *model.APIMetadata
	if truthy(envelope[constants.FieldAPIValidatedFlag]) {
		api = &model.APIMetadata{
			RequestID:        envelope[constants.FieldAPIRequestID],
			RequestTimeEpoch: envelope[constants.FieldAPIRequestTime],
		}
	}

	stripped := maps.Clone(envelope)
	for _, field := range apiFields {
		delete(stripped, field)
	}
	return stripped, api
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0
	default:
		return true
	}
}
