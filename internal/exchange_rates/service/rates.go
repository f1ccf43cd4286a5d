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
	"fmt"
	"strings"
	"time"

	"github.com/wso2/game-events-processor/internal/exchange_rates/store"
	"github.com/wso2/game-events-processor/internal/system/cache"
	"github.com/wso2/game-events-processor/internal/system/constants"
	errors2 "github.com/wso2/game-events-processor/internal/system/errors"
)

// RateProviderInterface converts currency codes to USD rates.
type RateProviderInterface interface {
	Rate(ctx context.Context, currency string) (float64, error)
}

// RateProvider memoizes exchange rates. Unknown currencies are not memoized.
type RateProvider struct {
	store store.ExchangeRateStore
	cache *cache.Cache[float64]
}

// NewRateProvider builds a rate provider whose entries live for ttl.
func NewRateProvider(rateStore store.ExchangeRateStore, ttl time.Duration, opts ...cache.Option) *RateProvider {
	return &RateProvider{
		store: rateStore,
		cache: cache.NewCache[float64]("exchange_rates", ttl, opts...),
	}
}

// Rate returns the number of currency units per US dollar. Codes are case-insensitive.
// A missing or non-positive rate is a backing store failure.
func (p *RateProvider) Rate(ctx context.Context, currency string) (float64, error) {

	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == constants.BaseCurrency {
		return 1, nil
	}
	if entry, ok := p.cache.Get(code); ok {
		return entry.Value, nil
	}

	rate, err := p.store.GetExchangeRate(ctx, code)
	if err != nil {
		return 0, err
	}
	if rate == nil {
		return 0, errors2.BackingStoreFailure(errors2.INVALID_EXCHANGE_RATE,
			fmt.Sprintf("No exchange rate for currency %q", code), nil)
	}
	if rate.Rate <= 0 {
		return 0, errors2.BackingStoreFailure(errors2.INVALID_EXCHANGE_RATE,
			fmt.Sprintf("Exchange rate for currency %q is %v", code, rate.Rate), nil)
	}
	p.cache.Set(code, rate.Rate)
	return rate.Rate, nil
}

// InvalidateAll drops every memoized rate.
func (p *RateProvider) InvalidateAll() {
	p.cache.InvalidateAll()
}
