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

package workers

import (
	"context"
	"time"

	"github.com/wso2/game-events-processor/internal/system/log"
)

// ExpiredRecordPurger deletes idempotency records whose window has passed.
type ExpiredRecordPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// StartIdempotencyJanitor purges expired idempotency records every interval until ctx is done.
// Stores with native TTL expiry do not need it.
func StartIdempotencyJanitor(ctx context.Context, purger ExpiredRecordPurger, interval time.Duration,
	now func() time.Time) {

	if now == nil {
		now = time.Now
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// Run once at startup
		purgeExpired(ctx, purger, now())
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				purgeExpired(ctx, purger, now())
			}
		}
	}()
}

func purgeExpired(ctx context.Context, purger ExpiredRecordPurger, now time.Time) {

	logger := log.GetLogger()
	purged, err := purger.PurgeExpired(ctx, now)
	if err != nil {
		logger.Error("Failed to purge expired idempotency records", log.Error(err))
		return
	}
	if purged > 0 {
		logger.Info("Purged expired idempotency records", log.Int64("records", purged))
	}
}
