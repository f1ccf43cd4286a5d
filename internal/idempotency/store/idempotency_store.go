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

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/wso2/game-events-processor/internal/idempotency/model"
	"github.com/wso2/game-events-processor/internal/system/database/client"
	"github.com/wso2/game-events-processor/internal/system/database/scripts"
	errors2 "github.com/wso2/game-events-processor/internal/system/errors"
	"github.com/wso2/game-events-processor/internal/system/log"
)

// SQLStore keeps idempotency records in a relational table with epoch-second expiries.
type SQLStore struct {
	db    client.DBClientInterface
	table string
}

// NewSQLStore returns an IdempotencyStore backed by the given client.
func NewSQLStore(db client.DBClientInterface, table string) *SQLStore {
	return &SQLStore{db: db, table: table}
}

// GetRecord looks up a live record by event id.
func (s *SQLStore) GetRecord(ctx context.Context, eventID string, now time.Time) (*model.Record, error) {

	query := fmt.Sprintf(scripts.GetIdempotencyRecord[s.db.Driver()], s.table)
	results, err := s.db.ExecuteQuery(ctx, query, eventID, now.Unix())
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch idempotency record: %s", eventID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.BackingStoreFailure(errors2.GET_IDEMPOTENCY_RECORD, errorMsg, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	expiresAt, err := client.Int64Value(results[0], "expires_at")
	if err != nil {
		return nil, errors2.BackingStoreFailure(errors2.GET_IDEMPOTENCY_RECORD,
			fmt.Sprintf("Stored expiry for %s is not numeric", eventID), err)
	}
	return &model.Record{
		EventID:   client.StringValue(results[0], "event_id"),
		ExpiresAt: time.Unix(expiresAt, 0).UTC(),
	}, nil
}

// PutIfAbsent inserts the record, replacing an expired one the janitor has not purged yet.
func (s *SQLStore) PutIfAbsent(ctx context.Context, record model.Record, now time.Time) (bool, error) {

	query := fmt.Sprintf(scripts.InsertIdempotencyRecordIfAbsent[s.db.Driver()], s.table)
	affected, err := s.db.ExecuteStatement(ctx, query, record.EventID, record.ExpiresAt.Unix(), now.Unix())
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to write idempotency record: %s", record.EventID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return false, errors2.BackingStoreFailure(errors2.PUT_IDEMPOTENCY_RECORD, errorMsg, err)
	}
	return affected > 0, nil
}

// PurgeExpired deletes expired records.
func (s *SQLStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {

	query := fmt.Sprintf(scripts.DeleteExpiredIdempotencyRecords[s.db.Driver()], s.table)
	deleted, err := s.db.ExecuteStatement(ctx, query, now.Unix())
	if err != nil {
		errorMsg := "Failed to purge expired idempotency records"
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return 0, errors2.BackingStoreFailure(errors2.PURGE_IDEMPOTENCY_RECORDS, errorMsg, err)
	}
	return deleted, nil
}
