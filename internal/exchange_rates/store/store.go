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

	"github.com/wso2/game-events-processor/internal/exchange_rates/model"
)

// ExchangeRateStore reads the exchange rates table. GetExchangeRate returns nil when the currency is unknown.
type ExchangeRateStore interface {
	GetExchangeRate(ctx context.Context, currency string) (*model.ExchangeRate, error)
	PutExchangeRate(ctx context.Context, rate model.ExchangeRate) error
}
