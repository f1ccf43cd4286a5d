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

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/wso2/game-events-processor/internal/system/log"
)

// Entry is a cached lookup result. NotFound marks a memoized miss, in which case Value is the zero value.
type Entry[V any] struct {
	Value    V
	NotFound bool
}

type cacheItem[V any] struct {
	entry      Entry[V]
	expiration time.Time
}

type options struct {
	now func() time.Time
}

// Option customises a Cache.
type Option func(*options)

// WithClock replaces the wall clock used for expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// Cache is a concurrency-safe keyed cache with a shared TTL and support for negative entries.
// A zero TTL keeps entries until they are invalidated.
type Cache[V any] struct {
	name  string
	items map[string]cacheItem[V]
	mutex sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
}

// NewCache creates a new cache with a TTL (time-to-live).
func NewCache[V any](name string, ttl time.Duration, opts ...Option) *Cache[V] {

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[V]{
		name:  name,
		items: make(map[string]cacheItem[V]),
		ttl:   ttl,
		now:   o.now,
	}
}

// Set stores a positive entry.
func (c *Cache[V]) Set(key string, value V) {
	c.put(key, Entry[V]{Value: value})
}

// SetNotFound memoizes that key does not exist in the backing store.
func (c *Cache[V]) SetNotFound(key string) {
	c.put(key, Entry[V]{NotFound: true})
}

func (c *Cache[V]) put(key string, entry Entry[V]) {

	log.GetLogger().Debug("Setting cache entry",
		log.String("cache", c.name), log.String("key", key), log.Bool("not_found", entry.NotFound))
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var expiration time.Time
	if c.ttl > 0 {
		expiration = c.now().Add(c.ttl)
	}
	c.items[key] = cacheItem[V]{entry: entry, expiration: expiration}
}

// Get retrieves an entry. The boolean is false on a cache miss or an expired entry.
func (c *Cache[V]) Get(key string) (Entry[V], bool) {

	c.mutex.RLock()
	item, found := c.items[key]
	c.mutex.RUnlock()

	if !found {
		return Entry[V]{}, false
	}
	if !item.expiration.IsZero() && c.now().After(item.expiration) {
		log.GetLogger().Debug("Cache entry expired", log.String("cache", c.name), log.String("key", key))
		return Entry[V]{}, false
	}
	return item.entry, true
}

// InvalidateAll drops every entry, positive and negative.
func (c *Cache[V]) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items = make(map[string]cacheItem[V])
}

// RunRefresher calls refresh every interval until ctx is done.
func RunRefresher(ctx context.Context, interval time.Duration, refresh func(ctx context.Context)) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh(ctx)
		}
	}
}
