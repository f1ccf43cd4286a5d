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

package services

import (
	"fmt"
	"net/http"

	"github.com/wso2/game-events-processor/internal/events/handler"
	"github.com/wso2/game-events-processor/internal/system/config"
	"github.com/wso2/game-events-processor/internal/system/security"
)

type TransformService struct {
	transformHandler *handler.TransformHandler
}

func NewTransformService(mux *http.ServeMux, apiBasePath string, processor handler.BatchProcessor,
	auth config.AuthConfig) *TransformService {

	instance := &TransformService{
		transformHandler: handler.NewTransformHandler(processor),
	}
	instance.RegisterRoutes(mux, apiBasePath, auth)

	return instance
}

func (s *TransformService) RegisterRoutes(mux *http.ServeMux, apiBasePath string, auth config.AuthConfig) {

	mux.Handle(fmt.Sprintf("POST %s/records/transform", apiBasePath),
		security.Middleware(auth)(http.HandlerFunc(s.transformHandler.TransformRecords)))
}
