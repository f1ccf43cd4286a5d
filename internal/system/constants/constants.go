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

package constants

import "time"

const (
	ServiceName = "game-events-processor"
	ApiBasePath = "/api/v1"
	DefaultPort = 8900
	ConfigFile  = "/config/deployment.yaml"
)

// Backing store types.
const (
	StoreTypeMongoDB  = "mongodb"
	StoreTypePostgres = "postgres"
	StoreTypeSQLite   = "sqlite"
)

const (
	DefaultApplicationsTable    = "applications"
	DefaultExchangeRatesTable   = "exchange_rates"
	DefaultIdempotencyTable     = "idempotency"
	DefaultUserAppStatesTable   = "user_app_states"
	DefaultSchemaPath           = "config/event_schema.json"
	DefaultIdempotencyRetention = 7 * 24 * time.Hour
	DefaultCacheRefreshInterval = 5 * time.Minute
	DefaultJanitorInterval      = time.Hour
	DefaultBatchConcurrency     = 16
	DefaultRegistryPageSize     = 100
)

// Stream framework record results.
const (
	ResultOk               = "Ok"
	ResultDropped          = "Dropped"
	ResultProcessingFailed = "ProcessingFailed"
)

// Canonical processing_result statuses.
const (
	StatusOk             = "ok"
	StatusSchemaMismatch = "schema_mismatch"
	StatusUnregistered   = "unregistered"
)

// Envelope fields.
const (
	FieldApplicationID = "application_id"
	FieldCountry       = "country"
	FieldEvent         = "event"

	FieldAPIValidatedFlag = "aws_ga_api_validated_flag"
	FieldAPIRequestID     = "aws_ga_api_requestId"
	FieldAPIRequestTime   = "aws_ga_api_requestTimeEpoch"
)

// Event type whose user.country is kept as supplied.
const ServerEventType = "server"

// ReservedAdvertisingID is sent by clients that could not read the device advertising id.
const ReservedAdvertisingID = "00000000-0000-0000-0000-000000000000"

// BaseCurrency is the currency every revenue is converted to.
const BaseCurrency = "USD"

// UserAppStateEventNames lists the event names that refresh the user app state.
var UserAppStateEventNames = map[string]bool{
	"app_update":    true,
	"session_start": true,
}
