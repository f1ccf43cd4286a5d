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

package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/wso2/game-events-processor/internal/system/config"
	"github.com/wso2/game-events-processor/internal/system/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// MongoDB holds the client and the database the collections live in.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Connect opens a client and verifies it with a ping.
func Connect(ctx context.Context, uri, dbName string) (*MongoDB, error) {

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	log.GetLogger().Info("Connected to MongoDB", log.String("database", dbName))
	return &MongoDB{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

// EnsureIndexes creates the TTL index that expires idempotency records and the
// compound unique key of the user app states collection.
func (m *MongoDB) EnsureIndexes(ctx context.Context, tables config.TablesConfig) error {

	_, err := m.Database.Collection(tables.Idempotency).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetName("expires_at_ttl").SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("create ttl index on %s: %w", tables.Idempotency, err)
	}

	_, err = m.Database.Collection(tables.UserAppStates).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "application_id", Value: 1}},
		Options: options.Index().SetName("user_application_unique").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create unique index on %s: %w", tables.UserAppStates, err)
	}
	return nil
}

// Ping checks the primary is reachable.
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
