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
	"net/http"

	"github.com/wso2/game-events-processor/internal/events/handler"
	"github.com/wso2/game-events-processor/internal/health_check/service"
	"github.com/wso2/game-events-processor/internal/system/config"
	"github.com/wso2/game-events-processor/internal/system/services"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string, processor handler.BatchProcessor, store service.Pinger) error
}

type ServiceManager struct {
	mux  *http.ServeMux
	auth config.AuthConfig
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux, auth config.AuthConfig) ServiceManagerInterface {

	return &ServiceManager{
		mux:  mux,
		auth: auth,
	}
}

func (sm *ServiceManager) RegisterServices(apiBasePath string, processor handler.BatchProcessor,
	store service.Pinger) error {

	services.NewTransformService(sm.mux, apiBasePath, processor, sm.auth)
	services.NewHealthService(sm.mux, store)
	return nil
}
