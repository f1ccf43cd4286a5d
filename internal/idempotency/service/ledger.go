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

package service

import (
	"context"
	"math"
	"time"

	"github.com/wso2/game-events-processor/internal/idempotency/model"
	"github.com/wso2/game-events-processor/internal/idempotency/store"
	"github.com/wso2/game-events-processor/internal/system/log"
)

// LedgerInterface detects re-deliveries of an event id.
type LedgerInterface interface {
	// CheckAndMark reports whether eventID was already processed, and marks it otherwise.
	// eventTimestamp is in Unix seconds; nil falls back to the current time.
	CheckAndMark(ctx context.Context, eventID string, eventTimestamp *float64) (bool, error)
}

// Ledger remembers processed event ids for a retention window that starts at the event timestamp.
type Ledger struct {
	store     store.IdempotencyStore
	retention time.Duration
	now       func() time.Time
}

// NewLedger builds a ledger. A nil clock means time.Now.
func NewLedger(idempotencyStore store.IdempotencyStore, retention time.Duration, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{
		store:     idempotencyStore,
		retention: retention,
		now:       now,
	}
}

// CheckAndMark looks the id up first and writes only when it is absent. The write is conditional
// at the store, so of two concurrent first deliveries at most one is reported as new.
func (l *Ledger) CheckAndMark(ctx context.Context, eventID string, eventTimestamp *float64) (bool, error) {

	now := l.now()
	existing, err := l.store.GetRecord(ctx, eventID, now)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return true, nil
	}

	record := model.Record{
		EventID:   eventID,
		ExpiresAt: l.expiry(eventTimestamp, now),
	}
	written, err := l.store.PutIfAbsent(ctx, record, now)
	if err != nil {
		return false, err
	}
	if !written {
		log.GetLogger().Debug("Lost idempotency race", log.String("event_id", eventID))
		return true, nil
	}
	return false, nil
}

func (l *Ledger) expiry(eventTimestamp *float64, now time.Time) time.Time {
	start := now
	if eventTimestamp != nil && !math.IsNaN(*eventTimestamp) && !math.IsInf(*eventTimestamp, 0) {
		sec, frac := math.Modf(*eventTimestamp)
		start = time.Unix(int64(sec), int64(frac*float64(time.Second)))
	}
	return start.Add(l.retention).UTC()
}
