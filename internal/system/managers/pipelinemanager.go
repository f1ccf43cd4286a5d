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

package managers

import (
	appservice "github.com/wso2/game-events-processor/internal/applications/service"
	eventservice "github.com/wso2/game-events-processor/internal/events/service"
	"github.com/wso2/game-events-processor/internal/events/validator"
	rateservice "github.com/wso2/game-events-processor/internal/exchange_rates/service"
	idemservice "github.com/wso2/game-events-processor/internal/idempotency/service"
	"github.com/wso2/game-events-processor/internal/pipeline"
	"github.com/wso2/game-events-processor/internal/system/config"
	stateservice "github.com/wso2/game-events-processor/internal/user_app_states/service"
)

// NewPipeline assembles the processing pipeline over the given stores.
// Reference caches live for one refresh interval.
func NewPipeline(cfg config.Config, stores *Stores) (*pipeline.Pipeline, error) {

	schemaValidator, err := validator.LoadSchemaValidator(cfg.Processing.SchemaPath)
	if err != nil {
		return nil, err
	}

	ttl := cfg.Processing.CacheRefreshInterval
	registry := appservice.NewRegistry(stores.Applications, ttl, cfg.Processing.RegistryPageSize)
	rates := rateservice.NewRateProvider(stores.ExchangeRates, ttl)

	return pipeline.New(pipeline.Dependencies{
		Registry:    registry,
		Rates:       rates,
		Validator:   schemaValidator,
		Ledger:      idemservice.NewLedger(stores.Idempotency, cfg.Processing.IdempotencyRetention, nil),
		Transformer: eventservice.NewTransformer(rates, nil),
		Sink:        stateservice.NewSink(stores.UserAppStates, nil),
	}, pipeline.Options{
		RefreshInterval: cfg.Processing.CacheRefreshInterval,
		Concurrency:     cfg.Processing.BatchConcurrency,
	}), nil
}
