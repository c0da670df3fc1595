/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
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

// Package main is the entry point for starting the order desk server.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/salesflow/orderdesk/internal/system/cert"
	"github.com/salesflow/orderdesk/internal/system/config"
	"github.com/salesflow/orderdesk/internal/system/constants"
	"github.com/salesflow/orderdesk/internal/system/log"
	"github.com/salesflow/orderdesk/internal/system/tracing"
)

const (
	serviceName     = "orderdesk"
	shutdownTimeout = 15 * time.Second
)

func main() {
	logger := log.GetLogger()

	serverHome := getServerHome(logger)

	cfg := initServerConfigurations(logger, serverHome)
	if cfg == nil {
		logger.Fatal("Failed to initialize configurations")
	}

	shutdownTracing := tracing.InitTracerProvider(serviceName)

	mux := http.NewServeMux()
	refresher := registerServices(mux, cfg)

	server, serverAddr := createHTTPServer(logger, cfg, mux)
	listener := createListener(logger, cfg, serverAddr, serverHome)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to serve requests", log.Error(err))
		}
	case <-ctx.Done():
		logger.Info("Shutting down the server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if refresher != nil {
		select {
		case <-refresher.Stop().Done():
		case <-shutdownCtx.Done():
		}
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down the server gracefully", log.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("Failed to shut down the tracer provider", log.Error(err))
	}
	logger.Sync()
}

// getServerHome retrieves and returns the server home directory.
func getServerHome(logger *log.Logger) string {
	serverHomeFlag := flag.String("home", "", "Path to the server home directory")
	flag.Parse()

	if *serverHomeFlag != "" {
		logger.Info("Using server home from command line argument", log.String("home", *serverHomeFlag))
		return *serverHomeFlag
	}

	// Without a command line argument the current working directory is the server home.
	dir, err := os.Getwd()
	if err != nil {
		logger.Fatal("Failed to get current working directory", log.Error(err))
	}
	return dir
}

// initServerConfigurations loads the deployment configuration and initializes the server runtime.
func initServerConfigurations(logger *log.Logger, serverHome string) *config.Config {
	configFilePath := path.Join(serverHome, constants.DeploymentConfigPath)
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	if err := config.InitializeServerRuntime(serverHome, cfg); err != nil {
		logger.Fatal("Failed to initialize server runtime", log.Error(err))
	}
	return cfg
}

// createListener opens the server socket, with TLS unless the server runs in HTTP only mode.
func createListener(logger *log.Logger, cfg *config.Config, serverAddr, serverHome string) net.Listener {
	if cfg.Server.HTTPOnly {
		logger.Info("TLS is not enabled, starting server without TLS")
		ln, err := net.Listen("tcp", serverAddr)
		if err != nil {
			logger.Fatal("Failed to start listener", log.Error(err))
		}
		logger.Info("Order desk server started (HTTP)...", log.String("address", serverAddr))
		return ln
	}

	tlsConfig, err := cert.GetTLSConfig(cfg, serverHome)
	if err != nil {
		logger.Fatal("Failed to load TLS configuration", log.Error(err))
	}
	if thumbprint, err := cert.Thumbprint(tlsConfig); err == nil {
		logger.Debug("Loaded server certificate", log.String("thumbprint", thumbprint))
	}

	ln, err := tls.Listen("tcp", serverAddr, tlsConfig)
	if err != nil {
		logger.Fatal("Failed to start TLS listener", log.Error(err))
	}
	logger.Info("Order desk server started (HTTPS)...", log.String("address", serverAddr))
	return ln
}

// createHTTPServer creates and configures an HTTP server with common settings.
func createHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) (*http.Server, string) {
	wrappedMux := log.AccessLogHandler(logger, mux)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)

	server := &http.Server{
		Addr:              serverAddr,
		Handler:           wrappedMux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return server, serverAddr
}
