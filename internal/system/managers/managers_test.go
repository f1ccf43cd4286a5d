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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appmodel "github.com/wso2/game-events-processor/internal/applications/model"
	ratemodel "github.com/wso2/game-events-processor/internal/exchange_rates/model"
	"github.com/wso2/game-events-processor/internal/pipeline"
	"github.com/wso2/game-events-processor/internal/system/config"
	"github.com/wso2/game-events-processor/internal/system/constants"
	"github.com/wso2/game-events-processor/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func sqliteConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Config{
		Store:  config.StoreConfig{Type: constants.StoreTypeSQLite},
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "events.db")},
	}
	config.ApplyDefaults(&cfg)
	cfg.Processing.SchemaPath = filepath.Join("..", "..", "..", "config", "event_schema.json")
	return cfg
}

func TestOpenStoresAndProcess_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	stores, err := OpenStores(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stores.Close(ctx) })
	require.NoError(t, stores.Ping(ctx))
	assert.False(t, stores.NativeTTL)

	require.NoError(t, stores.Applications.PutApplication(ctx,
		appmodel.Application{ApplicationID: "app-1", ApplicationName: "Space Miners"}))
	require.NoError(t, stores.ExchangeRates.PutExchangeRate(ctx, ratemodel.ExchangeRate{Currency: "EUR", Rate: 0.5}))

	p, err := NewPipeline(cfg, stores)
	require.NoError(t, err)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	p.Start(runCtx)

	raw := `{"application_id":"app-1","country":"DE","event":{"event_id":"e-1","event_type":"client",` +
		`"event_name":"session_start","event_timestamp":1700000000,"game_time":12,` +
		`"user":{"user_id":"u-1"},"device":{"is_limiting_ad_tracking":"1"},` +
		`"event_data":{"currency":"eur","revenues":4}}}`
	results := p.ProcessBatch(ctx, []pipeline.Record{
		{RecordID: "1", Data: []byte(raw)},
		{RecordID: "2", Data: []byte(raw)},
	}, "inv-1")

	outcomes := []string{results[0].Outcome, results[1].Outcome}
	assert.ElementsMatch(t, []string{constants.ResultOk, constants.ResultDropped}, outcomes)

	ok := results[0]
	if ok.Outcome != constants.ResultOk {
		ok = results[1]
	}
	require.NoError(t, ok.StateSinkErr)
	assert.Equal(t, constants.StatusOk, ok.Event.Metadata.ProcessingResult.Status)
	require.NotNil(t, ok.Event.ApplicationName)
	assert.Equal(t, "Space Miners", *ok.Event.ApplicationName)
	assert.Equal(t, 8.0, ok.Event.EventData.(map[string]interface{})["revenues_usd"])
	assert.Equal(t, true, ok.Event.Device.(map[string]interface{})["is_limiting_ad_tracking"])

	state, err := stores.UserAppStates.GetUserAppState(ctx, "u-1", "app-1")
	require.NoError(t, err)
	require.NotNil(t, state)
	require.NotNil(t, state.GameTime)
	assert.Equal(t, 12.0, *state.GameTime)
	assert.JSONEq(t, `{"user_id":"u-1","country":"DE"}`, state.User)
}

func TestOpenStores_UnreachableMongo(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Store.Type = constants.StoreTypeMongoDB
	cfg.MongoDB.URI = "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200"
	cfg.MongoDB.Database = "events"

	_, err := OpenStores(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewPipeline_MissingSchema(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)
	stores, err := OpenStores(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stores.Close(ctx) })

	cfg.Processing.SchemaPath = filepath.Join(t.TempDir(), "missing.json")
	_, err = NewPipeline(cfg, stores)
	assert.Error(t, err)
}

func TestRegisterServices(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)
	stores, err := OpenStores(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stores.Close(ctx) })
	p, err := NewPipeline(cfg, stores)
	require.NoError(t, err)

	mux := http.NewServeMux()
	require.NoError(t, NewServiceManager(mux, config.AuthConfig{}).RegisterServices(constants.ApiBasePath, p, stores))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/records/transform",
		strings.NewReader(`{"invocationId":"inv","records":[{"recordId":"r","data":"e30="}]}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Records []pipeline.OutputRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Records, 1)
	assert.Equal(t, constants.ResultProcessingFailed, resp.Records[0].Result)
}
