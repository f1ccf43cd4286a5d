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
	"github.com/wso2/game-events-processor/internal/applications/model"
	errors2 "github.com/wso2/game-events-processor/internal/system/errors"
	"github.com/wso2/game-events-processor/internal/system/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository keeps applications in a MongoDB collection keyed by _id.
type MongoRepository struct {
	Collection *mongo.Collection
}

// NewMongoRepository initializes a repository for the applications collection.
func NewMongoRepository(db *mongo.Database, collectionName string) *MongoRepository {
	return &MongoRepository{
		Collection: db.Collection(collectionName),
	}
}

// GetApplication fetches an application by id.
func (repo *MongoRepository) GetApplication(ctx context.Context, applicationID string) (*model.Application, error) {

	var app model.Application
	err := repo.Collection.FindOne(ctx, bson.M{"_id": applicationID}).Decode(&app)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors2.BackingStoreFailure(errors2.GET_APPLICATION,
			fmt.Sprintf("Failed to fetch application: %s", applicationID), errors.Wrap(err, "find application"))
	}
	return &app, nil
}

// ListApplications returns one page of applications ordered by id.
func (repo *MongoRepository) ListApplications(ctx context.Context, token string, limit int) (pagination.Page[model.Application], error) {

	var page pagination.Page[model.Application]
	after, err := pagination.DecodeKeyCursor(token)
	if err != nil {
		return page, errors2.BackingStoreFailure(errors2.LIST_APPLICATIONS, "Invalid continuation token.", err)
	}
	limit = pagination.NormalizeLimit(limit)

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}).SetLimit(int64(limit))
	cursor, err := repo.Collection.Find(ctx, bson.M{"_id": bson.M{"$gt": after}}, opts)
	if err != nil {
		return page, errors2.BackingStoreFailure(errors2.LIST_APPLICATIONS, "Failed to list applications",
			errors.Wrap(err, "find applications"))
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &page.Items); err != nil {
		return page, errors2.BackingStoreFailure(errors2.LIST_APPLICATIONS, "Failed to decode applications",
			errors.Wrap(err, "decode applications"))
	}
	if len(page.Items) == limit {
		page.NextToken = pagination.EncodeKeyCursor(page.Items[len(page.Items)-1].ApplicationID)
	}
	return page, nil
}

// PutApplication creates or renames an application.
func (repo *MongoRepository) PutApplication(ctx context.Context, app model.Application) error {

	_, err := repo.Collection.ReplaceOne(ctx, bson.M{"_id": app.ApplicationID}, app, options.Replace().SetUpsert(true))
	if err != nil {
		return errors2.BackingStoreFailure(errors2.PUT_APPLICATION,
			fmt.Sprintf("Failed to write application: %s", app.ApplicationID), errors.Wrap(err, "replace application"))
	}
	return nil
}
