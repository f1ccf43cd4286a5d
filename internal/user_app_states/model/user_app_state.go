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

import "time"

// UserAppState is the latest known snapshot of a user on one application.
// The nested objects are stored as JSON text; an empty string means the event did not carry them.
type UserAppState struct {
	UserID        string    `json:"user_id" bson:"user_id"`
	ApplicationID string    `json:"application_id" bson:"application_id"`
	AppInfo       string    `json:"app_info,omitempty" bson:"app_info,omitempty"`
	Attribution   string    `json:"attribution,omitempty" bson:"attribution,omitempty"`
	Device        string    `json:"device,omitempty" bson:"device,omitempty"`
	RemoteConfig  string    `json:"remote_config,omitempty" bson:"remote_config,omitempty"`
	User          string    `json:"user,omitempty" bson:"user,omitempty"`
	GameTime      *float64  `json:"game_time,omitempty" bson:"game_time,omitempty"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}
