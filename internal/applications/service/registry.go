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
	"time"

	"github.com/wso2/game-events-processor/internal/applications/model"
	"github.com/wso2/game-events-processor/internal/applications/store"
	"github.com/wso2/game-events-processor/internal/system/cache"
	"github.com/wso2/game-events-processor/internal/system/log"
	"github.com/wso2/game-events-processor/internal/system/pagination"
)

// RegistryInterface resolves application ids to descriptors.
type RegistryInterface interface {
	// Lookup returns nil without an error when the application is not registered.
	Lookup(ctx context.Context, applicationID string) (*model.Application, error)
	Refresh(ctx context.Context) error
}

// Registry memoizes application lookups, unknown ids included.
// An application registered after its id was memoized as unknown becomes visible on the next refresh.
type Registry struct {
	store    store.ApplicationStore
	cache    *cache.Cache[model.Application]
	pageSize int
}

// NewRegistry builds a registry whose entries live for ttl.
func NewRegistry(appStore store.ApplicationStore, ttl time.Duration, pageSize int, opts ...cache.Option) *Registry {
	return &Registry{
		store:    appStore,
		cache:    cache.NewCache[model.Application]("applications", ttl, opts...),
		pageSize: pageSize,
	}
}

// Lookup resolves an application id, from the cache when possible.
func (r *Registry) Lookup(ctx context.Context, applicationID string) (*model.Application, error) {

	if entry, ok := r.cache.Get(applicationID); ok {
		if entry.NotFound {
			return nil, nil
		}
		app := entry.Value
		return &app, nil
	}

	app, err := r.store.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		r.cache.SetNotFound(applicationID)
		return nil, nil
	}
	r.cache.Set(applicationID, *app)
	return app, nil
}

// Refresh reloads every registered application and replaces the cache contents,
// dropping memoized misses. The cache is left untouched when the listing fails.
func (r *Registry) Refresh(ctx context.Context) error {

	apps, err := pagination.Collect(ctx, func(ctx context.Context, token string) (pagination.Page[model.Application], error) {
		return r.store.ListApplications(ctx, token, r.pageSize)
	})
	if err != nil {
		log.GetLogger().Warn("Failed to refresh application registry", log.Error(err))
		return err
	}

	r.cache.InvalidateAll()
	for _, app := range apps {
		r.cache.Set(app.ApplicationID, app)
	}
	log.GetLogger().Debug("Application registry refreshed", log.Int("applications", len(apps)))
	return nil
}
