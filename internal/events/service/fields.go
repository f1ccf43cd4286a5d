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

package service

import (
	"github.com/wso2/game-events-processor/internal/events/model"
	"github.com/wso2/game-events-processor/internal/system/utils"
)

// fieldRule copies one event field into the canonical record with the coercion of its data type.
type fieldRule struct {
	name     string
	dataType string
	// slot returns a **string, **float64 or *interface{} into the record, matching dataType.
	slot func(e *model.CanonicalEvent) interface{}
}

const verbatimDataType = "verbatim"

// canonicalFields lists the copied fields in output order. Fields that fail coercion are omitted.
var canonicalFields = []fieldRule{
	{"event_id", utils.StringDataType, func(e *model.CanonicalEvent) interface{} { return &e.EventID }},
	{"event_type", utils.StringDataType, func(e *model.CanonicalEvent) interface{} { return &e.EventType }},
	{"event_name", utils.StringDataType, func(e *model.CanonicalEvent) interface{} { return &e.EventName }},
	{"event_version", utils.StringDataType, func(e *model.CanonicalEvent) interface{} { return &e.EventVersion }},
	{"event_timestamp", utils.NumberDataType, func(e *model.CanonicalEvent) interface{} { return &e.EventTimestamp }},
	{"game_time", utils.NumberDataType, func(e *model.CanonicalEvent) interface{} { return &e.GameTime }},
	{"app_info", verbatimDataType, func(e *model.CanonicalEvent) interface{} { return &e.AppInfo }},
	{"user", verbatimDataType, func(e *model.CanonicalEvent) interface{} { return &e.User }},
	{"device", verbatimDataType, func(e *model.CanonicalEvent) interface{} { return &e.Device }},
	{"remote_config", verbatimDataType, func(e *model.CanonicalEvent) interface{} { return &e.RemoteConfig }},
	{"attribution", verbatimDataType, func(e *model.CanonicalEvent) interface{} { return &e.Attribution }},
	{"event_data", verbatimDataType, func(e *model.CanonicalEvent) interface{} { return &e.EventData }},
}

func (r fieldRule) apply(e *model.CanonicalEvent, value interface{}) {
	switch r.dataType {
	case utils.StringDataType:
		if s, ok := utils.CoerceToString(value); ok {
			*r.slot(e).(**string) = &s
		}
	case utils.NumberDataType:
		if f, ok := utils.CoerceToNumber(value); ok {
			*r.slot(e).(**float64) = &f
		}
	default:
		*r.slot(e).(*interface{}) = cloneValue(value)
	}
}

// pathPolicy holds the rules that differ between registered and unregistered applications.
type pathPolicy struct {
	// keepServerCountry leaves user.country of server events as supplied.
	keepServerCountry bool
	// restoreAdvertisingID replaces the reserved advertising id with the attributed one.
	restoreAdvertisingID  bool
	attachApplicationName bool
}

var (
	registeredPolicy = pathPolicy{
		keepServerCountry:     true,
		restoreAdvertisingID:  true,
		attachApplicationName: true,
	}
	unregisteredPolicy = pathPolicy{}
)
