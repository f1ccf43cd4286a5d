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

// Queries are keyed by driver name. A %s verb stands for the configured table name.

var GetApplicationByID = map[string]string{
	"postgres": `SELECT application_id, application_name FROM %s WHERE application_id = $1`,
	"sqlite":   `SELECT application_id, application_name FROM %s WHERE application_id = ?`,
}

var ListApplicationsAfter = map[string]string{
	"postgres": `SELECT application_id, application_name FROM %s WHERE application_id > $1
		ORDER BY application_id LIMIT $2`,
	"sqlite": `SELECT application_id, application_name FROM %s WHERE application_id > ?
		ORDER BY application_id LIMIT ?`,
}

var UpsertApplication = map[string]string{
	"postgres": `INSERT INTO %s (application_id, application_name) VALUES ($1, $2)
		ON CONFLICT (application_id) DO UPDATE SET application_name = EXCLUDED.application_name`,
	"sqlite": `INSERT INTO %s (application_id, application_name) VALUES (?, ?)
		ON CONFLICT (application_id) DO UPDATE SET application_name = excluded.application_name`,
}

var GetExchangeRateByCurrency = map[string]string{
	"postgres": `SELECT currency, rate FROM %s WHERE currency = $1`,
	"sqlite":   `SELECT currency, rate FROM %s WHERE currency = ?`,
}

var UpsertExchangeRate = map[string]string{
	"postgres": `INSERT INTO %s (currency, rate) VALUES ($1, $2)
		ON CONFLICT (currency) DO UPDATE SET rate = EXCLUDED.rate`,
	"sqlite": `INSERT INTO %s (currency, rate) VALUES (?, ?)
		ON CONFLICT (currency) DO UPDATE SET rate = excluded.rate`,
}

var GetIdempotencyRecord = map[string]string{
	"postgres": `SELECT event_id, expires_at FROM %s WHERE event_id = $1 AND expires_at > $2`,
	"sqlite":   `SELECT event_id, expires_at FROM %s WHERE event_id = ? AND expires_at > ?`,
}

// InsertIdempotencyRecordIfAbsent affects zero rows when a live record already exists.
// An expired record that the janitor has not purged yet is replaced.
var InsertIdempotencyRecordIfAbsent = map[string]string{
	"postgres": `INSERT INTO %[1]s (event_id, expires_at) VALUES ($1, $2)
		ON CONFLICT (event_id) DO UPDATE SET expires_at = EXCLUDED.expires_at
		WHERE %[1]s.expires_at <= $3`,
	"sqlite": `INSERT INTO %[1]s (event_id, expires_at) VALUES (?, ?)
		ON CONFLICT (event_id) DO UPDATE SET expires_at = excluded.expires_at
		WHERE %[1]s.expires_at <= ?`,
}

var DeleteExpiredIdempotencyRecords = map[string]string{
	"postgres": `DELETE FROM %s WHERE expires_at <= $1`,
	"sqlite":   `DELETE FROM %s WHERE expires_at <= ?`,
}

var UpsertUserAppState = map[string]string{
	"postgres": `INSERT INTO %s (user_id, application_id, app_info, attribution, device, remote_config, user_data,
		game_time, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, application_id) DO UPDATE SET app_info = EXCLUDED.app_info,
		attribution = EXCLUDED.attribution, device = EXCLUDED.device, remote_config = EXCLUDED.remote_config,
		user_data = EXCLUDED.user_data, game_time = EXCLUDED.game_time, updated_at = EXCLUDED.updated_at`,
	"sqlite": `INSERT INTO %s (user_id, application_id, app_info, attribution, device, remote_config, user_data,
		game_time, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, application_id) DO UPDATE SET app_info = excluded.app_info,
		attribution = excluded.attribution, device = excluded.device, remote_config = excluded.remote_config,
		user_data = excluded.user_data, game_time = excluded.game_time, updated_at = excluded.updated_at`,
}

var GetUserAppState = map[string]string{
	"postgres": `SELECT user_id, application_id, app_info, attribution, device, remote_config, user_data, game_time,
		updated_at FROM %s WHERE user_id = $1 AND application_id = $2`,
	"sqlite": `SELECT user_id, application_id, app_info, attribution, device, remote_config, user_data, game_time,
		updated_at FROM %s WHERE user_id = ? AND application_id = ?`,
}
