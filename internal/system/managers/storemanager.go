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

package managers

import (
	"context"

	appstore "github.com/wso2/game-events-processor/internal/applications/store"
	ratestore "github.com/wso2/game-events-processor/internal/exchange_rates/store"
	idemstore "github.com/wso2/game-events-processor/internal/idempotency/store"
	"github.com/wso2/game-events-processor/internal/system/config"
	"github.com/wso2/game-events-processor/internal/system/constants"
	"github.com/wso2/game-events-processor/internal/system/database/client"
	"github.com/wso2/game-events-processor/internal/system/database/mongodb"
	"github.com/wso2/game-events-processor/internal/system/database/provider"
	"github.com/wso2/game-events-processor/internal/system/database/scripts"
	errors2 "github.com/wso2/game-events-processor/internal/system/errors"
	"github.com/wso2/game-events-processor/internal/system/log"
	statestore "github.com/wso2/game-events-processor/internal/user_app_states/store"
)

// Stores bundles the four backing tables of the configured store type.
type Stores struct {
	Applications  appstore.ApplicationStore
	ExchangeRates ratestore.ExchangeRateStore
	Idempotency   idemstore.IdempotencyStore
	UserAppStates statestore.UserAppStateStore
	// NativeTTL is set when the store expires idempotency records on its own.
	NativeTTL bool

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping checks connectivity to the backing store.
func (s *Stores) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the backing store connection.
func (s *Stores) Close(ctx context.Context) error {
	return s.close(ctx)
}

// OpenStores connects to the configured backing store and prepares its tables or indexes.
func OpenStores(ctx context.Context, cfg config.Config) (*Stores, error) {

	if cfg.Store.Type == constants.StoreTypeMongoDB {
		return openMongoStores(ctx, cfg)
	}
	dbClient, err := provider.NewDBProvider(cfg).GetDBClient()
	if err != nil {
		return nil, storeInitError("Failed to open the SQL backing store", err)
	}
	statements, err := scripts.SchemaStatements(dbClient.Driver(), cfg.Tables)
	if err == nil {
		err = dbClient.InitDatabase(ctx, statements)
	}
	if err != nil {
		_ = dbClient.Close()
		return nil, storeInitError("Failed to create the backing tables", err)
	}
	log.GetLogger().Info("SQL backing store ready", log.String("driver", dbClient.Driver()))
	return SQLStores(dbClient, cfg.Tables), nil
}

// SQLStores builds the stores over an initialized SQL client.
func SQLStores(dbClient client.DBClientInterface, tables config.TablesConfig) *Stores {
	return &Stores{
		Applications:  appstore.NewSQLStore(dbClient, tables.Applications),
		ExchangeRates: ratestore.NewSQLStore(dbClient, tables.ExchangeRates),
		Idempotency:   idemstore.NewSQLStore(dbClient, tables.Idempotency),
		UserAppStates: statestore.NewSQLStore(dbClient, tables.UserAppStates),
		ping:          dbClient.Ping,
		close:         func(context.Context) error { return dbClient.Close() },
	}
}

func openMongoStores(ctx context.Context, cfg config.Config) (*Stores, error) {

	m, err := mongodb.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database)
	if err != nil {
		return nil, storeInitError("Failed to connect to MongoDB", err)
	}
	if err := m.EnsureIndexes(ctx, cfg.Tables); err != nil {
		_ = m.Close(ctx)
		return nil, storeInitError("Failed to create MongoDB indexes", err)
	}
	log.GetLogger().Info("MongoDB backing store ready", log.String("database", cfg.MongoDB.Database))
	return &Stores{
		Applications:  appstore.NewMongoRepository(m.Database, cfg.Tables.Applications),
		ExchangeRates: ratestore.NewMongoRepository(m.Database, cfg.Tables.ExchangeRates),
		Idempotency:   idemstore.NewMongoRepository(m.Database, cfg.Tables.Idempotency),
		UserAppStates: statestore.NewMongoRepository(m.Database, cfg.Tables.UserAppStates),
		NativeTTL:     true,
		ping:          m.Ping,
		close:         m.Close,
	}, nil
}

func storeInitError(description string, cause error) error {
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.DB_CLIENT_INIT.Code,
		Message:     errors2.DB_CLIENT_INIT.Message,
		Description: description,
	}, cause)
}
