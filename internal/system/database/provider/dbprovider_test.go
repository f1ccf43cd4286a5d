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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/game-events-processor/internal/system/config"
	"github.com/wso2/game-events-processor/internal/system/constants"
)

func TestGetDBConfig(t *testing.T) {
	pg := config.Config{}
	pg.Store.Type = constants.StoreTypePostgres
	pg.DataSource = config.DataSourceConfig{Hostname: "db", Port: 5432, Name: "events", Username: "u", Password: "p", SSLMode: "disable"}

	dbConfig, err := getDBConfig(pg)
	require.NoError(t, err)
	assert.Equal(t, "postgres", dbConfig.driverName)
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=events sslmode=disable", dbConfig.dsn)

	mongo := config.Config{}
	mongo.Store.Type = constants.StoreTypeMongoDB
	_, err = getDBConfig(mongo)
	assert.Error(t, err)

	sqlite := config.Config{}
	sqlite.Store.Type = constants.StoreTypeSQLite
	_, err = getDBConfig(sqlite)
	assert.Error(t, err)
}

func TestGetDBClient_SQLiteShared(t *testing.T) {
	cfg := config.Config{}
	cfg.Store.Type = constants.StoreTypeSQLite
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "events.db")

	p := NewDBProvider(cfg)
	first, err := p.GetDBClient()
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Close() })
	second, err := p.GetDBClient()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, constants.StoreTypeSQLite, first.Driver())
	assert.NoError(t, first.Ping(context.Background()))
}
