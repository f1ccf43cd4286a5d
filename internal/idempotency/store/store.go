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
	"time"

	"github.com/wso2/game-events-processor/internal/idempotency/model"
)

// IdempotencyStore persists processed event ids. Records whose expiry is not after now count as absent.
type IdempotencyStore interface {
	// GetRecord returns nil when no live record exists for the id.
	GetRecord(ctx context.Context, eventID string, now time.Time) (*model.Record, error)
	// PutIfAbsent writes the record unless a live one exists and reports whether it was written.
	PutIfAbsent(ctx context.Context, record model.Record, now time.Time) (bool, error)
	// PurgeExpired deletes records that expired at or before now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
