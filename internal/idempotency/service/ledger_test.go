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
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/game-events-processor/internal/idempotency/model"
	"github.com/wso2/game-events-processor/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

type memoryStore struct {
	mu      sync.Mutex
	records map[string]model.Record
	puts    int
	getErr  error
	// skipGet hides existing records from GetRecord to force the conditional write path.
	skipGet bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: map[string]model.Record{}}
}

func (s *memoryStore) GetRecord(_ context.Context, id string, now time.Time) (*model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	r, ok := s.records[id]
	if s.skipGet || !ok || !r.ExpiresAt.After(now) {
		return nil, nil
	}
	return &r, nil
}

func (s *memoryStore) PutIfAbsent(_ context.Context, r model.Record, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if existing, ok := s.records[r.EventID]; ok && existing.ExpiresAt.After(now) {
		return false, nil
	}
	s.records[r.EventID] = r
	return true, nil
}

func (s *memoryStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func ts(v float64) *float64 { return &v }

func TestCheckAndMark_FirstThenDuplicate(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := newMemoryStore()
	l := NewLedger(s, 7*24*time.Hour, func() time.Time { return now })
	ctx := context.Background()

	seen, err := l.CheckAndMark(ctx, "evt-1", ts(1_700_000_000))
	require.NoError(t, err)
	assert.False(t, seen)

	for i := 0; i < 3; i++ {
		seen, err = l.CheckAndMark(ctx, "evt-1", ts(1_700_000_000))
		require.NoError(t, err)
		assert.True(t, seen)
	}
	assert.Equal(t, 1, s.puts)
}

func TestCheckAndMark_ExpiryFromEventTimestamp(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := newMemoryStore()
	l := NewLedger(s, 7*24*time.Hour, func() time.Time { return now })

	_, err := l.CheckAndMark(context.Background(), "evt-1", ts(1_699_990_000.5))
	require.NoError(t, err)
	assert.Equal(t, int64(1_699_990_000+7*86400), s.records["evt-1"].ExpiresAt.Unix())

	_, err = l.CheckAndMark(context.Background(), "evt-2", nil)
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour).Unix(), s.records["evt-2"].ExpiresAt.Unix())
}

func TestCheckAndMark_AfterRetentionIsNew(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := newMemoryStore()
	l := NewLedger(s, time.Hour, func() time.Time { return now })
	ctx := context.Background()

	seen, err := l.CheckAndMark(ctx, "evt-1", ts(float64(now.Unix())))
	require.NoError(t, err)
	assert.False(t, seen)

	now = now.Add(2 * time.Hour)
	seen, err = l.CheckAndMark(ctx, "evt-1", ts(float64(now.Unix())))
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestCheckAndMark_LostRaceReportsProcessed(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := newMemoryStore()
	s.records["evt-1"] = model.Record{EventID: "evt-1", ExpiresAt: now.Add(time.Hour)}
	s.skipGet = true
	l := NewLedger(s, time.Hour, func() time.Time { return now })

	seen, err := l.CheckAndMark(context.Background(), "evt-1", nil)
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestCheckAndMark_ConcurrentDeliveriesAcceptOnce(t *testing.T) {
	s := newMemoryStore()
	l := NewLedger(s, time.Hour, nil)
	var accepted atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen, err := l.CheckAndMark(context.Background(), "evt-1", nil)
			assert.NoError(t, err)
			if !seen {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), accepted.Load())
}

func TestCheckAndMark_StoreError(t *testing.T) {
	s := newMemoryStore()
	s.getErr = errors.New("unavailable")
	l := NewLedger(s, time.Hour, nil)

	_, err := l.CheckAndMark(context.Background(), "evt-1", nil)
	assert.Error(t, err)
	assert.Equal(t, 0, s.puts)
}
