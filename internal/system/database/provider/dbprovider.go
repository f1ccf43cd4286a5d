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

package provider

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/wso2/game-events-processor/internal/system/config"
	"github.com/wso2/game-events-processor/internal/system/constants"
	"github.com/wso2/game-events-processor/internal/system/database/client"
	_ "modernc.org/sqlite" // SQLite driver
)

// DBConfig represents the local database configuration.
type DBConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient() (client.DBClientInterface, error)
}

// DBProvider opens one pooled connection per process and hands out the shared client.
type DBProvider struct {
	cfg      config.Config
	once     sync.Once
	dbClient client.DBClientInterface
	err      error
}

// NewDBProvider creates a new instance of DBProvider.
func NewDBProvider(cfg config.Config) *DBProvider {

	return &DBProvider{cfg: cfg}
}

// GetDBClient returns the database client for the configured store type.
func (d *DBProvider) GetDBClient() (client.DBClientInterface, error) {

	d.once.Do(func() {
		dbConfig, err := getDBConfig(d.cfg)
		if err != nil {
			d.err = err
			return
		}
		d.dbClient, d.err = Open(context.Background(), dbConfig.driverName, dbConfig.dsn)
	})
	return d.dbClient, d.err
}

// Open connects with the given driver and verifies the connection.
func Open(ctx context.Context, driverName, dsn string) (client.DBClientInterface, error) {

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}
	if driverName == constants.StoreTypeSQLite {
		// A single writer avoids SQLITE_BUSY under concurrent batches.
		db.SetMaxOpenConns(1)
	}

	// Test the database connection.
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	return client.NewDBClient(db, driverName), nil
}

// SQLiteDSN builds a modernc.org/sqlite data source name for a file path.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
}

// getDBConfig returns the database configuration based on the configured store type.
func getDBConfig(cfg config.Config) (DBConfig, error) {

	var dbConfig DBConfig

	switch cfg.Store.Type {
	case constants.StoreTypePostgres:
		dbConfig.driverName = constants.StoreTypePostgres
		dbConfig.dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.DataSource.Hostname, cfg.DataSource.Port, cfg.DataSource.Username, cfg.DataSource.Password,
			cfg.DataSource.Name, cfg.DataSource.SSLMode)
	case constants.StoreTypeSQLite:
		if cfg.SQLite.Path == "" {
			return dbConfig, fmt.Errorf("sqlite path is not configured")
		}
		dbConfig.driverName = constants.StoreTypeSQLite
		dbConfig.dsn = SQLiteDSN(cfg.SQLite.Path)
	default:
		return dbConfig, fmt.Errorf("store type %q has no SQL driver", cfg.Store.Type)
	}
	return dbConfig, nil
}
