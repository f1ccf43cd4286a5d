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
	"fmt"

	"github.com/pkg/errors"
	errors2 "github.com/wso2/game-events-processor/internal/system/errors"
	"github.com/wso2/game-events-processor/internal/user_app_states/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository keeps user app states in a collection with a unique (user_id, application_id) index.
type MongoRepository struct {
	Collection *mongo.Collection
}

// NewMongoRepository initializes a repository for the user app states collection.
func NewMongoRepository(db *mongo.Database, collectionName string) *MongoRepository {
	return &MongoRepository{
		Collection: db.Collection(collectionName),
	}
}

// PutUserAppState replaces the snapshot for the user and application.
func (repo *MongoRepository) PutUserAppState(ctx context.Context, state model.UserAppState) error {

	filter := bson.M{"user_id": state.UserID, "application_id": state.ApplicationID}
	_, err := repo.Collection.ReplaceOne(ctx, filter, state, options.Replace().SetUpsert(true))
	if err != nil {
		return errors2.NewProcessingError(errors2.KindStateSinkFailure, errors2.PUT_USER_APP_STATE,
			fmt.Sprintf("Failed to write user app state for user: %s, application: %s", state.UserID, state.ApplicationID),
			errors.Wrap(err, "replace user app state"))
	}
	return nil
}

// GetUserAppState fetches the snapshot for the user and application.
func (repo *MongoRepository) GetUserAppState(ctx context.Context, userID, applicationID string) (*model.UserAppState, error) {

	var state model.UserAppState
	err := repo.Collection.FindOne(ctx, bson.M{"user_id": userID, "application_id": applicationID}).Decode(&state)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors2.BackingStoreFailure(errors2.GET_USER_APP_STATE,
			fmt.Sprintf("Failed to fetch user app state for user: %s, application: %s", userID, applicationID),
			errors.Wrap(err, "find user app state"))
	}
	return &state, nil
}
