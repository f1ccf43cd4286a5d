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
	"github.com/wso2/game-events-processor/internal/exchange_rates/model"
	errors2 "github.com/wso2/game-events-processor/internal/system/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository keeps exchange rates in a MongoDB collection keyed by currency code.
type MongoRepository struct {
	Collection *mongo.Collection
}

// NewMongoRepository initializes a repository for the exchange rates collection.
func NewMongoRepository(db *mongo.Database, collectionName string) *MongoRepository {
	return &MongoRepository{
		Collection: db.Collection(collectionName),
	}
}

// GetExchangeRate fetches the rate of a currency code.
func (repo *MongoRepository) GetExchangeRate(ctx context.Context, currency string) (*model.ExchangeRate, error) {

	var rate model.ExchangeRate
	err := repo.Collection.FindOne(ctx, bson.M{"_id": currency}).Decode(&rate)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors2.BackingStoreFailure(errors2.GET_EXCHANGE_RATE,
			fmt.Sprintf("Failed to fetch exchange rate: %s", currency), errors.Wrap(err, "find exchange rate"))
	}
	return &rate, nil
}

// PutExchangeRate creates or updates a rate.
func (repo *MongoRepository) PutExchangeRate(ctx context.Context, rate model.ExchangeRate) error {

	_, err := repo.Collection.ReplaceOne(ctx, bson.M{"_id": rate.Currency}, rate, options.Replace().SetUpsert(true))
	if err != nil {
		return errors2.BackingStoreFailure(errors2.PUT_EXCHANGE_RATE,
			fmt.Sprintf("Failed to write exchange rate: %s", rate.Currency), errors.Wrap(err, "replace exchange rate"))
	}
	return nil
}
