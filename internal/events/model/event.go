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

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/wso2/game-events-processor/internal/system/constants"
)

// RawEvent is one client payload as received. Envelope values keep their JSON number literals.
type RawEvent struct {
	Raw      []byte
	Envelope map[string]interface{}
}

// ParseRawEvent decodes a payload that must be a JSON object.
func ParseRawEvent(data []byte) (*RawEvent, error) {

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var envelope map[string]interface{}
	if err := dec.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if envelope == nil {
		return nil, fmt.Errorf("decode event: payload is not a JSON object")
	}
	if dec.More() {
		return nil, fmt.Errorf("decode event: trailing data after payload")
	}
	return &RawEvent{Raw: data, Envelope: envelope}, nil
}

// ApplicationID returns the envelope's application_id and whether it is present.
func (r *RawEvent) ApplicationID() (interface{}, bool) {
	v, ok := r.Envelope[constants.FieldApplicationID]
	return v, ok
}

// Event returns the nested event object. The boolean is false when the key is absent.
func (r *RawEvent) Event() (map[string]interface{}, bool) {
	v, ok := r.Envelope[constants.FieldEvent]
	if !ok {
		return nil, false
	}
	event, _ := v.(map[string]interface{})
	return event, true
}

// Country returns the envelope country and whether it is present.
func (r *RawEvent) Country() (interface{}, bool) {
	v, ok := r.Envelope[constants.FieldCountry]
	return v, ok
}
