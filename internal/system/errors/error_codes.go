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

package errors

const errorPrefix = "GEP-"

var (
	// Client error codes

	INVALID_REQUEST = ErrorMessage{
		Code:    errorPrefix + "10001",
		Message: "Invalid request.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:        errorPrefix + "10002",
		Message:     "Unauthorized.",
		Description: "Missing or invalid Authorization header.",
	}

	INVALID_RECORD_DATA = ErrorMessage{
		Code:    errorPrefix + "10003",
		Message: "Record data is not valid base64.",
	}

	// Record processing error codes

	MALFORMED_ENVELOPE = ErrorMessage{
		Code:    errorPrefix + "12001",
		Message: "Event envelope is malformed.",
	}

	SCHEMA_MISMATCH = ErrorMessage{
		Code:    errorPrefix + "12002",
		Message: "Event does not match the event schema.",
	}

	DUPLICATE_EVENT = ErrorMessage{
		Code:    errorPrefix + "12003",
		Message: "Event was already processed.",
	}

	UNREGISTERED_APPLICATION = ErrorMessage{
		Code:    errorPrefix + "12004",
		Message: "Application is not registered.",
	}

	MISSING_EVENT_ID = ErrorMessage{
		Code:    errorPrefix + "12005",
		Message: "Event id is required for deduplication.",
	}

	INVALID_REVENUE = ErrorMessage{
		Code:    errorPrefix + "12006",
		Message: "Revenue fields cannot be converted.",
	}

	INVALID_EXCHANGE_RATE = ErrorMessage{
		Code:    errorPrefix + "12007",
		Message: "Exchange rate is missing or not positive.",
	}

	MISSING_USER_ID = ErrorMessage{
		Code:    errorPrefix + "12008",
		Message: "User id is required to persist user app state.",
	}

	ENCODE_RECORD = ErrorMessage{
		Code:    errorPrefix + "12009",
		Message: "Error while encoding the canonical record.",
	}

	PROCESSING_CANCELLED = ErrorMessage{
		Code:    errorPrefix + "12010",
		Message: "Record processing was cancelled.",
	}

	// Server error codes

	GET_APPLICATION = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Error while fetching application.",
	}

	LIST_APPLICATIONS = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while listing applications.",
	}

	GET_EXCHANGE_RATE = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while fetching exchange rate.",
	}

	GET_IDEMPOTENCY_RECORD = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while fetching idempotency record.",
	}

	PUT_IDEMPOTENCY_RECORD = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while writing idempotency record.",
	}

	PURGE_IDEMPOTENCY_RECORDS = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while purging expired idempotency records.",
	}

	PUT_USER_APP_STATE = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while writing user app state.",
	}

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Unable to initialize database client.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while marshalling JSON.",
	}

	SCHEMA_LOAD = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Unable to load the event schema.",
	}

	PUT_APPLICATION = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while writing application.",
	}

	PUT_EXCHANGE_RATE = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while writing exchange rate.",
	}

	GET_USER_APP_STATE = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while fetching user app state.",
	}
)
