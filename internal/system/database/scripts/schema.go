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

package scripts

import (
	"fmt"

	"github.com/wso2/game-events-processor/internal/system/config"
)

// CreateTables holds the DDL per driver. The verbs take the applications, exchange rates,
// idempotency and user app states table names, in that order.
var CreateTables = map[string][]string{
	"postgres": {
		`CREATE TABLE IF NOT EXISTS %[1]s (
			application_id   VARCHAR(255) PRIMARY KEY,
			application_name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS %[2]s (
			currency VARCHAR(16) PRIMARY KEY,
			rate     DOUBLE PRECISION NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS %[3]s (
			event_id   VARCHAR(255) PRIMARY KEY,
			expires_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS %[3]s_expires_at_idx ON %[3]s (expires_at)`,
		`CREATE TABLE IF NOT EXISTS %[4]s (
			user_id        VARCHAR(255) NOT NULL,
			application_id VARCHAR(255) NOT NULL,
			app_info       TEXT,
			attribution    TEXT,
			device         TEXT,
			remote_config  TEXT,
			user_data      TEXT,
			game_time      DOUBLE PRECISION,
			updated_at     BIGINT NOT NULL,
			PRIMARY KEY (user_id, application_id)
		)`,
	},
	"sqlite": {
		`CREATE TABLE IF NOT EXISTS %[1]s (
			application_id   TEXT PRIMARY KEY,
			application_name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS %[2]s (
			currency TEXT PRIMARY KEY,
			rate     REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS %[3]s (
			event_id   TEXT PRIMARY KEY,
			expires_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS %[3]s_expires_at_idx ON %[3]s (expires_at)`,
		`CREATE TABLE IF NOT EXISTS %[4]s (
			user_id        TEXT NOT NULL,
			application_id TEXT NOT NULL,
			app_info       TEXT,
			attribution    TEXT,
			device         TEXT,
			remote_config  TEXT,
			user_data      TEXT,
			game_time      REAL,
			updated_at     INTEGER NOT NULL,
			PRIMARY KEY (user_id, application_id)
		)`,
	},
}

// SchemaStatements renders the DDL for a driver with the configured table names.
func SchemaStatements(driver string, tables config.TablesConfig) ([]string, error) {

	templates, ok := CreateTables[driver]
	if !ok {
		return nil, fmt.Errorf("no schema for driver %q", driver)
	}
	statements := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		statements = append(statements, fmt.Sprintf(tmpl,
			tables.Applications, tables.ExchangeRates, tables.Idempotency, tables.UserAppStates))
	}
	return statements, nil
}
