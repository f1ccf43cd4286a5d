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
	"database/sql"
	"fmt"
	"time"

	"github.com/wso2/game-events-processor/internal/system/database/client"
	"github.com/wso2/game-events-processor/internal/system/database/scripts"
	errors2 "github.com/wso2/game-events-processor/internal/system/errors"
	"github.com/wso2/game-events-processor/internal/system/log"
	"github.com/wso2/game-events-processor/internal/user_app_states/model"
)

// SQLStore keeps user app states in a relational table.
type SQLStore struct {
	db    client.DBClientInterface
	table string
}

// NewSQLStore returns a UserAppStateStore backed by the given client.
func NewSQLStore(db client.DBClientInterface, table string) *SQLStore {
	return &SQLStore{db: db, table: table}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// PutUserAppState replaces the snapshot for the user and application.
func (s *SQLStore) PutUserAppState(ctx context.Context, state model.UserAppState) error {

	var gameTime sql.NullFloat64
	if state.GameTime != nil {
		gameTime = sql.NullFloat64{Float64: *state.GameTime, Valid: true}
	}

	query := fmt.Sprintf(scripts.UpsertUserAppState[s.db.Driver()], s.table)
	_, err := s.db.ExecuteStatement(ctx, query,
		state.UserID, state.ApplicationID, nullable(state.AppInfo), nullable(state.Attribution),
		nullable(state.Device), nullable(state.RemoteConfig), nullable(state.User), gameTime,
		state.UpdatedAt.Unix(),
	)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to write user app state for user: %s, application: %s",
			state.UserID, state.ApplicationID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewProcessingError(errors2.KindStateSinkFailure, errors2.PUT_USER_APP_STATE, errorMsg, err)
	}
	return nil
}

// GetUserAppState fetches the snapshot for the user and application.
func (s *SQLStore) GetUserAppState(ctx context.Context, userID, applicationID string) (*model.UserAppState, error) {

	query := fmt.Sprintf(scripts.GetUserAppState[s.db.Driver()], s.table)
	results, err := s.db.ExecuteQuery(ctx, query, userID, applicationID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch user app state for user: %s, application: %s", userID, applicationID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.BackingStoreFailure(errors2.GET_USER_APP_STATE, errorMsg, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	row := results[0]
	state := &model.UserAppState{
		UserID:        client.StringValue(row, "user_id"),
		ApplicationID: client.StringValue(row, "application_id"),
		AppInfo:       client.StringValue(row, "app_info"),
		Attribution:   client.StringValue(row, "attribution"),
		Device:        client.StringValue(row, "device"),
		RemoteConfig:  client.StringValue(row, "remote_config"),
		User:          client.StringValue(row, "user_data"),
	}
	if row["game_time"] != nil {
		if gameTime, err := client.Float64Value(row, "game_time"); err == nil {
			state.GameTime = &gameTime
		}
	}
	if updatedAt, err := client.Int64Value(row, "updated_at"); err == nil {
		state.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	}
	return state, nil
}
