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

import "time"

type AddrConfig struct {
	Port int    `yaml:"port" env:"SERVER_PORT"`
	Host string `yaml:"host" env:"SERVER_HOST"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	Format   string `yaml:"format" env:"LOG_FORMAT"`
}

// StoreConfig selects the backing store implementation.
type StoreConfig struct {
	Type   string `yaml:"type" env:"STORE_TYPE"`
	Region string `yaml:"region" env:"AWS_REGION"`
}

// TablesConfig names the four logical tables (collections for MongoDB).
type TablesConfig struct {
	Applications  string `yaml:"applications" env:"APPLICATIONS_TABLE"`
	ExchangeRates string `yaml:"exchange_rates" env:"EXCHANGE_RATES_TABLE"`
	Idempotency   string `yaml:"idempotency" env:"IDEMPOTENCY_TABLE"`
	UserAppStates string `yaml:"user_app_states" env:"USER_APP_STATES_TABLE"`
}

type DataSourceConfig struct {
	Hostname string `yaml:"hostname" env:"DB_HOSTNAME"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	Name     string `yaml:"name" env:"DB_NAME"`
	Username string `yaml:"username" env:"DB_USERNAME"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE"`
}

type SQLiteConfig struct {
	Path string `yaml:"path" env:"SQLITE_PATH"`
}

type MongoDBConfig struct {
	URI      string `yaml:"uri" env:"MONGODB_URI"`
	Database string `yaml:"database" env:"MONGODB_DATABASE"`
}

type ProcessingConfig struct {
	SchemaPath           string        `yaml:"schema_path" env:"EVENT_SCHEMA_PATH"`
	IdempotencyRetention time.Duration `yaml:"idempotency_retention" env:"IDEMPOTENCY_RETENTION"`
	CacheRefreshInterval time.Duration `yaml:"cache_refresh_interval" env:"CACHE_REFRESH_INTERVAL"`
	JanitorInterval      time.Duration `yaml:"janitor_interval" env:"JANITOR_INTERVAL"`
	BatchConcurrency     int           `yaml:"batch_concurrency" env:"BATCH_CONCURRENCY"`
	RegistryPageSize     int           `yaml:"registry_page_size" env:"REGISTRY_PAGE_SIZE"`
}

// AuthConfig protects the transform endpoint. An empty secret disables the check.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"TRANSFORM_JWT_SECRET"`
	Issuer    string `yaml:"issuer" env:"TRANSFORM_JWT_ISSUER"`
}

type TelemetryConfig struct {
	OTelEndpoint string `yaml:"otel_endpoint" env:"OTEL_ENDPOINT"`
	ServiceName  string `yaml:"service_name" env:"OTEL_SERVICE_NAME"`
}

type Config struct {
	Addr       AddrConfig       `yaml:"addr"`
	Log        LogConfig        `yaml:"log"`
	Store      StoreConfig      `yaml:"store"`
	Tables     TablesConfig     `yaml:"tables"`
	DataSource DataSourceConfig `yaml:"datasource"`
	SQLite     SQLiteConfig     `yaml:"sqlite"`
	MongoDB    MongoDBConfig    `yaml:"mongodb"`
	Processing ProcessingConfig `yaml:"processing"`
	Auth       AuthConfig       `yaml:"auth"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}
