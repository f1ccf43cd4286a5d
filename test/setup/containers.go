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

package setup

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/wso2/game-events-processor/internal/system/config"
	"github.com/wso2/game-events-processor/internal/system/database/client"
	"github.com/wso2/game-events-processor/internal/system/database/mongodb"
	"github.com/wso2/game-events-processor/internal/system/database/provider"
	"github.com/wso2/game-events-processor/internal/system/database/scripts"
	"github.com/wso2/game-events-processor/internal/system/log"
)

// TestTables are the table names used by every store test.
var TestTables = config.TablesConfig{
	Applications:  "applications",
	ExchangeRates: "exchange_rates",
	Idempotency:   "idempotency",
	UserAppStates: "user_app_states",
}

type TestPostgres struct {
	Container testcontainers.Container
	DB        client.DBClientInterface
}

type TestMongo struct {
	Container testcontainers.Container
	Mongo     *mongodb.MongoDB
}

// RequireDocker skips container tests under -short or when SKIP_CONTAINER_TESTS is set.
func RequireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() || os.Getenv("SKIP_CONTAINER_TESTS") != "" {
		t.Skip("container tests disabled")
	}
}

// SetupTestSQLite opens a schema-initialised SQLite file under dir.
func SetupTestSQLite(ctx context.Context, dir string) (client.DBClientInterface, error) {

	db, err := provider.Open(ctx, "sqlite", provider.SQLiteDSN(dir+"/events.db"))
	if err != nil {
		return nil, err
	}
	statements, err := scripts.SchemaStatements(db.Driver(), TestTables)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.InitDatabase(ctx, statements); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func SetupTestPostgres(ctx context.Context) (*TestPostgres, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, err
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432")

	dsn := fmt.Sprintf("host=%s port=%s user=testuser password=testpass dbname=testdb sslmode=disable", host, port.Port())
	db, err := provider.Open(ctx, "postgres", dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	statements, err := scripts.SchemaStatements(db.Driver(), TestTables)
	if err == nil {
		err = db.InitDatabase(ctx, statements)
	}
	if err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		return nil, err
	}

	log.GetLogger().Info("Postgres container started", log.String("host", host), log.String("port", port.Port()))

	return &TestPostgres{
		Container: container,
		DB:        db,
	}, nil
}

func SetupTestMongo(ctx context.Context) (*TestMongo, error) {
	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, err
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "27017")

	m, err := mongodb.Connect(ctx, fmt.Sprintf("mongodb://%s:%s", host, port.Port()), "testdb")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	if err := m.EnsureIndexes(ctx, TestTables); err != nil {
		_ = m.Close(ctx)
		_ = container.Terminate(ctx)
		return nil, err
	}

	log.GetLogger().Info("MongoDB container started", log.String("host", host), log.String("port", port.Port()))

	return &TestMongo{
		Container: container,
		Mongo:     m,
	}, nil
}

// Terminate stops the container and closes the connection.
func (p *TestPostgres) Terminate(ctx context.Context) {
	_ = p.DB.Close()
	_ = p.Container.Terminate(ctx)
}

// Terminate stops the container and disconnects the client.
func (m *TestMongo) Terminate(ctx context.Context) {
	_ = m.Mongo.Close(ctx)
	_ = m.Container.Terminate(ctx)
}
