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

package store

import (
	"context"

	"github.com/wso2/game-events-processor/internal/user_app_states/model"
)

// UserAppStateStore writes full-replace snapshots keyed by user id and application id.
type UserAppStateStore interface {
	PutUserAppState(ctx context.Context, state model.UserAppState) error
	// GetUserAppState returns nil when no snapshot exists.
	GetUserAppState(ctx context.Context, userID, applicationID string) (*model.UserAppState, error)
}
