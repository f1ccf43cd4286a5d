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
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wso2/game-events-processor/internal/events/model"
	"github.com/wso2/game-events-processor/internal/system/constants"
	errors2 "github.com/wso2/game-events-processor/internal/system/errors"
	"github.com/wso2/game-events-processor/internal/system/log"
	statemodel "github.com/wso2/game-events-processor/internal/user_app_states/model"
	"github.com/wso2/game-events-processor/internal/user_app_states/store"
)

// SinkInterface persists the latest user state carried by canonical events.
type SinkInterface interface {
	ShouldUpsert(eventName string) bool
	Upsert(ctx context.Context, event *model.CanonicalEvent, applicationID string) error
}

// Sink writes user app state snapshots for state-bearing events.
type Sink struct {
	store store.UserAppStateStore
	now   func() time.Time
}

// NewSink creates a sink over the given store. A nil now uses the wall clock.
func NewSink(s store.UserAppStateStore, now func() time.Time) *Sink {
	if now == nil {
		now = time.Now
	}
	return &Sink{store: s, now: now}
}

// ShouldUpsert reports whether events with this name refresh the user app state.
func (s *Sink) ShouldUpsert(eventName string) bool {
	return constants.UserAppStateEventNames[eventName]
}

// Upsert replaces the stored snapshot for the event's user on the application.
func (s *Sink) Upsert(ctx context.Context, event *model.CanonicalEvent, applicationID string) error {

	userID, ok := model.StringField(event.User, "user_id")
	if !ok || userID == "" {
		return errors2.NewProcessingError(errors2.KindStateSinkFailure, errors2.MISSING_USER_ID,
			fmt.Sprintf("Event for application %s carries no user.user_id", applicationID), nil)
	}

	state := statemodel.UserAppState{
		UserID:        userID,
		ApplicationID: applicationID,
		GameTime:      event.GameTime,
		UpdatedAt:     s.now().UTC(),
	}
	targets := []struct {
		dst   *string
		value interface{}
	}{
		{&state.AppInfo, event.AppInfo},
		{&state.Attribution, event.Attribution},
		{&state.Device, event.Device},
		{&state.RemoteConfig, event.RemoteConfig},
		{&state.User, event.User},
	}
	for _, target := range targets {
		if target.value == nil {
			continue
		}
		data, err := json.Marshal(target.value)
		if err != nil {
			return errors2.NewProcessingError(errors2.KindStateSinkFailure, errors2.MARSHAL_JSON,
				"Failed to serialize user app state", err)
		}
		*target.dst = string(data)
	}

	if err := s.store.PutUserAppState(ctx, state); err != nil {
		return err
	}
	log.GetLogger().Debug("User app state updated",
		log.String("user_id", userID), log.String("application_id", applicationID))
	return nil
}
