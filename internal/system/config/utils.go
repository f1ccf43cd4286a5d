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

package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/wso2/game-events-processor/internal/system/constants"
	"gopkg.in/yaml.v2"
)

// LoadEnvFiles loads every config/*.env file under home into the process environment.
// Variables that are already set win over the files.
func LoadEnvFiles(home string) error {
	envFiles, err := filepath.Glob(filepath.Join(home, "config", "*.env"))
	if err != nil {
		return err
	}
	if len(envFiles) == 0 {
		return nil
	}
	return godotenv.Load(envFiles...)
}

// LoadConfig reads the YAML file, expands ${VAR} references, applies environment overrides
// and defaults, and validates the result.
func LoadConfig(home, filePath string) (*Config, error) {
	file, err := os.ReadFile(path.Join(home, filePath))
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(file))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	ApplyDefaults(&cfg)
	if cfg.Processing.SchemaPath != "" && !filepath.IsAbs(cfg.Processing.SchemaPath) {
		cfg.Processing.SchemaPath = filepath.Join(home, cfg.Processing.SchemaPath)
	}
	if cfg.SQLite.Path != "" && !filepath.IsAbs(cfg.SQLite.Path) {
		cfg.SQLite.Path = filepath.Join(home, cfg.SQLite.Path)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills every unset value.
func ApplyDefaults(cfg *Config) {
	if cfg.Addr.Port == 0 {
		cfg.Addr.Port = constants.DefaultPort
	}
	if cfg.Log.LogLevel == "" {
		cfg.Log.LogLevel = "INFO"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = constants.StoreTypeMongoDB
	}
	if cfg.Tables.Applications == "" {
		cfg.Tables.Applications = constants.DefaultApplicationsTable
	}
	if cfg.Tables.ExchangeRates == "" {
		cfg.Tables.ExchangeRates = constants.DefaultExchangeRatesTable
	}
	if cfg.Tables.Idempotency == "" {
		cfg.Tables.Idempotency = constants.DefaultIdempotencyTable
	}
	if cfg.Tables.UserAppStates == "" {
		cfg.Tables.UserAppStates = constants.DefaultUserAppStatesTable
	}
	if cfg.Processing.SchemaPath == "" {
		cfg.Processing.SchemaPath = constants.DefaultSchemaPath
	}
	if cfg.Processing.IdempotencyRetention == 0 {
		cfg.Processing.IdempotencyRetention = constants.DefaultIdempotencyRetention
	}
	if cfg.Processing.CacheRefreshInterval == 0 {
		cfg.Processing.CacheRefreshInterval = constants.DefaultCacheRefreshInterval
	}
	if cfg.Processing.JanitorInterval == 0 {
		cfg.Processing.JanitorInterval = constants.DefaultJanitorInterval
	}
	if cfg.Processing.BatchConcurrency == 0 {
		cfg.Processing.BatchConcurrency = constants.DefaultBatchConcurrency
	}
	if cfg.Processing.RegistryPageSize == 0 {
		cfg.Processing.RegistryPageSize = constants.DefaultRegistryPageSize
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = constants.ServiceName
	}
}

// Validate rejects configurations the processor cannot run with.
func Validate(cfg *Config) error {
	switch cfg.Store.Type {
	case constants.StoreTypeMongoDB, constants.StoreTypePostgres, constants.StoreTypeSQLite:
	default:
		return fmt.Errorf("unsupported store type %q", cfg.Store.Type)
	}
	if cfg.Processing.IdempotencyRetention <= 0 {
		return fmt.Errorf("idempotency_retention must be positive")
	}
	if cfg.Processing.CacheRefreshInterval <= 0 {
		return fmt.Errorf("cache_refresh_interval must be positive")
	}
	if cfg.Processing.JanitorInterval <= 0 {
		return fmt.Errorf("janitor_interval must be positive")
	}
	if cfg.Processing.BatchConcurrency < 1 {
		return fmt.Errorf("batch_concurrency must be at least 1")
	}
	return nil
}
