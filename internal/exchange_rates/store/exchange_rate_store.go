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

	"github.com/wso2/game-events-processor/internal/exchange_rates/model"
	"github.com/wso2/game-events-processor/internal/system/database/client"
	"github.com/wso2/game-events-processor/internal/system/database/scripts"
	errors2 "github.com/wso2/game-events-processor/internal/system/errors"
	"github.com/wso2/game-events-processor/internal/system/log"
)

// SQLStore keeps exchange rates in a relational table.
type SQLStore struct {
	db    client.DBClientInterface
	table string
}

// NewSQLStore returns an ExchangeRateStore backed by the given client.
func NewSQLStore(db client.DBClientInterface, table string) *SQLStore {
	return &SQLStore{db: db, table: table}
}

// GetExchangeRate fetches the rate of a currency code.
func (s *SQLStore) GetExchangeRate(ctx context.Context, currency string) (*model.ExchangeRate, error) {

	query := fmt.Sprintf(scripts.GetExchangeRateByCurrency[s.db.Driver()], s.table)
	results, err := s.db.ExecuteQuery(ctx, query, currency)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch exchange rate: %s", currency)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.BackingStoreFailure(errors2.GET_EXCHANGE_RATE, errorMsg, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	rate, err := client.Float64Value(results[0], "rate")
	if err != nil {
		return nil, errors2.BackingStoreFailure(errors2.GET_EXCHANGE_RATE,
			fmt.Sprintf("Stored exchange rate for %s is not numeric", currency), err)
	}
	return &model.ExchangeRate{
		Currency: client.StringValue(results[0], "currency"),
		Rate:     rate,
	}, nil
}

// PutExchangeRate creates or updates a rate.
func (s *SQLStore) PutExchangeRate(ctx context.Context, rate model.ExchangeRate) error {

	query := fmt.Sprintf(scripts.UpsertExchangeRate[s.db.Driver()], s.table)
	if _, err := s.db.ExecuteStatement(ctx, query, rate.Currency, rate.Rate); err != nil {
		errorMsg := fmt.Sprintf("Failed to write exchange rate: %s", rate.Currency)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.BackingStoreFailure(errors2.PUT_EXCHANGE_RATE, errorMsg, err)
	}
	return nil
}
