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

package model

// CanonicalEvent is the normalized record emitted downstream. Field order is the output order.
type CanonicalEvent struct {
	Metadata        Metadata    `json:"metadata"`
	EventID         *string     `json:"event_id,omitzero"`
	EventType       *string     `json:"event_type,omitzero"`
	EventName       *string     `json:"event_name,omitzero"`
	EventVersion    *string     `json:"event_version,omitzero"`
	EventTimestamp  *float64    `json:"event_timestamp,omitzero"`
	GameTime        *float64    `json:"game_time,omitzero"`
	AppInfo         interface{} `json:"app_info,omitzero"`
	User            interface{} `json:"user,omitzero"`
	Device          interface{} `json:"device,omitzero"`
	RemoteConfig    interface{} `json:"remote_config,omitzero"`
	Attribution     interface{} `json:"attribution,omitzero"`
	EventData       interface{} `json:"event_data,omitzero"`
	ApplicationName *string     `json:"application_name,omitzero"`
}

// Metadata describes how and when the record was processed.
type Metadata struct {
	IngestionID         string           `json:"ingestion_id"`
	ProcessingTimestamp int64            `json:"processing_timestamp"`
	API                 *APIMetadata     `json:"api,omitzero"`
	ProcessingResult    ProcessingResult `json:"processing_result"`
}

// APIMetadata is attached to events that arrived through the validated ingestion API.
type APIMetadata struct {
	RequestID        interface{} `json:"request_id,omitzero"`
	RequestTimeEpoch interface{} `json:"request_time_epoch,omitzero"`
}

// ProcessingResult carries the status and, on a schema mismatch, the validation errors.
type ProcessingResult struct {
	Status           string            `json:"status"`
	ValidationErrors []ValidationError `json:"validation_errors,omitzero"`
}

// ValidationError is one schema violation.
type ValidationError struct {
	InstancePath string `json:"instancePath"`
	SchemaPath   string `json:"schemaPath"`
	Keyword      string `json:"keyword"`
	Message      string `json:"message"`
}

// StringField returns the string value of a top-level object field of v, if v is an object.
func StringField(v interface{}, key string) (string, bool) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return "", false
	}
	s, ok := obj[key].(string)
	return s, ok
}
