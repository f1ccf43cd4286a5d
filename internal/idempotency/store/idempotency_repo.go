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
	"time"

	"github.com/pkg/errors"
	"github.com/wso2/game-events-processor/internal/idempotency/model"
	errors2 "github.com/wso2/game-events-processor/internal/system/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository keeps idempotency records in a collection with a TTL index on expires_at.
// The TTL monitor deletes lazily, so reads still filter on the expiry.
type MongoRepository struct {
	Collection *mongo.Collection
}

// NewMongoRepository initializes a repository for the idempotency collection.
func NewMongoRepository(db *mongo.Database, collectionName string) *MongoRepository {
	return &MongoRepository{
		Collection: db.Collection(collectionName),
	}
}

// GetRecord looks up a live record by event id.
func (repo *MongoRepository) GetRecord(ctx context.Context, eventID string, now time.Time) (*model.Record, error) {

	var record model.Record
	filter := bson.M{"_id": eventID, "expires_at": bson.M{"$gt": now}}
	err := repo.Collection.FindOne(ctx, filter).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors2.BackingStoreFailure(errors2.GET_IDEMPOTENCY_RECORD,
			fmt.Sprintf("Failed to fetch idempotency record: %s", eventID), errors.Wrap(err, "find idempotency record"))
	}
	return &record, nil
}

// PutIfAbsent upserts the record only over an expired one. When a live record exists the filter
// misses, the upsert collides on _id, and the duplicate key error reports the record as present.
func (repo *MongoRepository) PutIfAbsent(ctx context.Context, record model.Record, now time.Time) (bool, error) {

	filter := bson.M{"_id": record.EventID, "expires_at": bson.M{"$lte": now}}
	update := bson.M{"$set": bson.M{"expires_at": record.ExpiresAt}}
	_, err := repo.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, errors2.BackingStoreFailure(errors2.PUT_IDEMPOTENCY_RECORD,
			fmt.Sprintf("Failed to write idempotency record: %s", record.EventID), errors.Wrap(err, "upsert idempotency record"))
	}
	return true, nil
}

// PurgeExpired deletes expired records ahead of the TTL monitor.
func (repo *MongoRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {

	res, err := repo.Collection.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": now}})
	if err != nil {
		return 0, errors2.BackingStoreFailure(errors2.PURGE_IDEMPOTENCY_RECORDS,
			"Failed to purge expired idempotency records", errors.Wrap(err, "delete expired records"))
	}
	return res.DeletedCount, nil
}
