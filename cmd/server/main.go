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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wso2/game-events-processor/internal/system/config"
	"github.com/wso2/game-events-processor/internal/system/constants"
	"github.com/wso2/game-events-processor/internal/system/log"
	"github.com/wso2/game-events-processor/internal/system/managers"
	"github.com/wso2/game-events-processor/internal/system/telemetry"
	"github.com/wso2/game-events-processor/internal/system/workers"
)

const shutdownTimeout = 15 * time.Second

func main() {

	home := getHome()
	logger := log.GetLogger()

	if err := config.LoadEnvFiles(home); err != nil {
		logger.Warn("Failed to load .env files", log.Error(err))
	}
	cfg, err := config.LoadConfig(home, constants.ConfigFile)
	if err != nil {
		logger.Fatal("Failed to load configuration", log.Error(err))
	}
	if err := log.Init(cfg.Log.LogLevel, cfg.Log.Format); err != nil {
		logger.Fatal("Failed to initialize logger", log.Error(err))
	}
	logger = log.GetLogger()
	logger.Info("Configuration loaded", log.String("home", home))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to set up tracing", log.Error(err))
	}

	stores, err := managers.OpenStores(ctx, *cfg)
	if err != nil {
		logger.Fatal("Failed to open backing store", log.Error(err))
	}
	p, err := managers.NewPipeline(*cfg, stores)
	if err != nil {
		logger.Fatal("Failed to build pipeline", log.Error(err))
	}
	p.Start(ctx)
	if !stores.NativeTTL {
		workers.StartIdempotencyJanitor(ctx, stores.Idempotency, cfg.Processing.JanitorInterval, nil)
	}

	mux := http.NewServeMux()
	if err := managers.NewServiceManager(mux, cfg.Auth).RegisterServices(constants.ApiBasePath, p, stores); err != nil {
		logger.Fatal("Failed to register the services", log.Error(err))
	}

	serverAddr := fmt.Sprintf("%s:%d", cfg.Addr.Host, cfg.Addr.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Game events processor started", log.String("address", serverAddr),
			log.String("store", cfg.Store.Type))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to serve requests", log.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", log.Error(err))
	}
	if err := stores.Close(shutdownCtx); err != nil {
		logger.Error("Backing store close failed", log.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("Tracing shutdown failed", log.Error(err))
	}
}

func getHome() string {

	homeFlag := flag.String("home", "", "Path to the processor home directory")
	flag.Parse()

	if *homeFlag != "" {
		return *homeFlag
	}
	// If no command line argument is provided, use the current working directory.
	dir, err := os.Getwd()
	if err != nil {
		log.GetLogger().Fatal("Failed to get current working directory", log.Error(err))
	}
	return dir
}
