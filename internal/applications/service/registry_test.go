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
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/game-events-processor/internal/applications/model"
	"github.com/wso2/game-events-processor/internal/system/cache"
	"github.com/wso2/game-events-processor/internal/system/log"
	"github.com/wso2/game-events-processor/internal/system/pagination"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

type fakeStore struct {
	mu      sync.Mutex
	apps    map[string]model.Application
	gets    int
	lists   int
	getErr  error
	listErr error
}

func newFakeStore(apps ...model.Application) *fakeStore {
	s := &fakeStore{apps: map[string]model.Application{}}
	for _, a := range apps {
		s.apps[a.ApplicationID] = a
	}
	return s
}

func (s *fakeStore) GetApplication(_ context.Context, id string) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.getErr != nil {
		return nil, s.getErr
	}
	app, ok := s.apps[id]
	if !ok {
		return nil, nil
	}
	return &app, nil
}

func (s *fakeStore) ListApplications(_ context.Context, token string, limit int) (pagination.Page[model.Application], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	if s.listErr != nil {
		return pagination.Page[model.Application]{}, s.listErr
	}
	after, _ := pagination.DecodeKeyCursor(token)
	ids := make([]string, 0, len(s.apps))
	for id := range s.apps {
		if id > after {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	var page pagination.Page[model.Application]
	for _, id := range ids {
		if len(page.Items) == limit {
			break
		}
		page.Items = append(page.Items, s.apps[id])
	}
	if len(page.Items) == limit {
		page.NextToken = pagination.EncodeKeyCursor(page.Items[len(page.Items)-1].ApplicationID)
	}
	return page, nil
}

func (s *fakeStore) PutApplication(_ context.Context, app model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps[app.ApplicationID] = app
	return nil
}

func TestLookup_CachesPositiveResult(t *testing.T) {
	s := newFakeStore(model.Application{ApplicationID: "app-1", ApplicationName: "Space Miner"})
	r := NewRegistry(s, time.Minute, 10)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		app, err := r.Lookup(ctx, "app-1")
		require.NoError(t, err)
		require.NotNil(t, app)
		assert.Equal(t, "Space Miner", app.ApplicationName)
	}
	assert.Equal(t, 1, s.gets)
}

func TestLookup_MemoizesMiss(t *testing.T) {
	s := newFakeStore()
	r := NewRegistry(s, time.Minute, 10)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		app, err := r.Lookup(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, app)
	}
	assert.Equal(t, 1, s.gets)

	// Registered later: still hidden until the entry lapses or the registry refreshes.
	require.NoError(t, s.PutApplication(ctx, model.Application{ApplicationID: "ghost", ApplicationName: "Ghost"}))
	app, err := r.Lookup(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, app)

	require.NoError(t, r.Refresh(ctx))
	app, err = r.Lookup(ctx, "ghost")
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, "Ghost", app.ApplicationName)
}

func TestLookup_MissExpiresWithTTL(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	clock := func() time.Time { return now }
	s := newFakeStore()
	r := NewRegistry(s, time.Minute, 10, cache.WithClock(clock))
	ctx := context.Background()

	_, _ = r.Lookup(ctx, "late")
	require.NoError(t, s.PutApplication(ctx, model.Application{ApplicationID: "late", ApplicationName: "Late"}))

	now = now.Add(2 * time.Minute)
	app, err := r.Lookup(ctx, "late")
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, 2, s.gets)
}

func TestLookup_StoreFailureNotCached(t *testing.T) {
	s := newFakeStore()
	s.getErr = errors.New("unavailable")
	r := NewRegistry(s, time.Minute, 10)
	ctx := context.Background()

	_, err := r.Lookup(ctx, "app-1")
	assert.Error(t, err)

	s.getErr = nil
	_, err = r.Lookup(ctx, "app-1")
	assert.NoError(t, err)
	assert.Equal(t, 2, s.gets)
}

func TestRefresh_PagesThroughAllApplications(t *testing.T) {
	var apps []model.Application
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		apps = append(apps, model.Application{ApplicationID: id, ApplicationName: "name-" + id})
	}
	s := newFakeStore(apps...)
	r := NewRegistry(s, time.Minute, 2)
	ctx := context.Background()

	require.NoError(t, r.Refresh(ctx))
	assert.Equal(t, 3, s.lists)

	for _, id := range []string{"a", "c", "e"} {
		app, err := r.Lookup(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, app)
	}
	assert.Equal(t, 0, s.gets)
}

func TestRefresh_FailureKeepsCache(t *testing.T) {
	s := newFakeStore(model.Application{ApplicationID: "a", ApplicationName: "A"})
	r := NewRegistry(s, time.Minute, 10)
	ctx := context.Background()
	require.NoError(t, r.Refresh(ctx))

	s.listErr = errors.New("unavailable")
	assert.Error(t, r.Refresh(ctx))

	app, err := r.Lookup(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, 0, s.gets)
}
