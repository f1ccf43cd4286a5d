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

	"github.com/wso2/game-events-processor/internal/applications/model"
	"github.com/wso2/game-events-processor/internal/system/database/client"
	"github.com/wso2/game-events-processor/internal/system/database/scripts"
	errors2 "github.com/wso2/game-events-processor/internal/system/errors"
	"github.com/wso2/game-events-processor/internal/system/log"
	"github.com/wso2/game-events-processor/internal/system/pagination"
)

// SQLStore keeps applications in a relational table.
type SQLStore struct {
	db    client.DBClientInterface
	table string
}

// NewSQLStore returns an ApplicationStore backed by the given client.
func NewSQLStore(db client.DBClientInterface, table string) *SQLStore {
	return &SQLStore{db: db, table: table}
}

// GetApplication fetches an application by id.
func (s *SQLStore) GetApplication(ctx context.Context, applicationID string) (*model.Application, error) {

	query := fmt.Sprintf(scripts.GetApplicationByID[s.db.Driver()], s.table)
	results, err := s.db.ExecuteQuery(ctx, query, applicationID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch application: %s", applicationID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.BackingStoreFailure(errors2.GET_APPLICATION, errorMsg, err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return rowToApplication(results[0]), nil
}

// ListApplications returns one page of applications ordered by id.
func (s *SQLStore) ListApplications(ctx context.Context, token string, limit int) (pagination.Page[model.Application], error) {

	var page pagination.Page[model.Application]
	after, err := pagination.DecodeKeyCursor(token)
	if err != nil {
		return page, errors2.BackingStoreFailure(errors2.LIST_APPLICATIONS, "Invalid continuation token.", err)
	}
	limit = pagination.NormalizeLimit(limit)

	query := fmt.Sprintf(scripts.ListApplicationsAfter[s.db.Driver()], s.table)
	results, err := s.db.ExecuteQuery(ctx, query, after, limit)
	if err != nil {
		errorMsg := "Failed to list applications"
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return page, errors2.BackingStoreFailure(errors2.LIST_APPLICATIONS, errorMsg, err)
	}

	for _, row := range results {
		page.Items = append(page.Items, *rowToApplication(row))
	}
	if len(page.Items) == limit {
		page.NextToken = pagination.EncodeKeyCursor(page.Items[len(page.Items)-1].ApplicationID)
	}
	return page, nil
}

// PutApplication creates or renames an application.
func (s *SQLStore) PutApplication(ctx context.Context, app model.Application) error {

	query := fmt.Sprintf(scripts.UpsertApplication[s.db.Driver()], s.table)
	if _, err := s.db.ExecuteStatement(ctx, query, app.ApplicationID, app.ApplicationName); err != nil {
		errorMsg := fmt.Sprintf("Failed to write application: %s", app.ApplicationID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.BackingStoreFailure(errors2.PUT_APPLICATION, errorMsg, err)
	}
	return nil
}

func rowToApplication(row map[string]interface{}) *model.Application {
	return &model.Application{
		ApplicationID:   client.StringValue(row, "application_id"),
		ApplicationName: client.StringValue(row, "application_name"),
	}
}
