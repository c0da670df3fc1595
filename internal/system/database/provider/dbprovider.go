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
// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/salesflow/orderdesk/internal/system/config"
	"github.com/salesflow/orderdesk/internal/system/database/client"
	"github.com/salesflow/orderdesk/internal/system/database/model"
	"github.com/salesflow/orderdesk/internal/system/log"
)

// HistoryDBName is the name of the approval history data source.
const HistoryDBName = "history"

const (
	dataSourceTypePostgres = "postgres"
	dataSourceTypeSQLite   = "sqlite"
)

// dbConfig is the driver and connection string resolved from a data source.
type dbConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(dbName string) (client.DBClientInterface, error)
}

// DBProvider hands out one pooled client per named data source.
type DBProvider struct {
	mu      sync.Mutex
	clients map[string]client.DBClientInterface
	sources func() map[string]config.DataSource
}

var (
	instance *DBProvider
	once     sync.Once
)

// GetDBProvider returns the process wide DBProvider.
func GetDBProvider() DBProviderInterface {
	once.Do(func() {
		instance = newDBProvider(configuredSources)
		instance.warmUp()
		instance.closeOnInterrupt()
	})
	return instance
}

func newDBProvider(sources func() map[string]config.DataSource) *DBProvider {
	return &DBProvider{
		clients: make(map[string]client.DBClientInterface),
		sources: sources,
	}
}

func configuredSources() map[string]config.DataSource {
	return map[string]config.DataSource{
		HistoryDBName: config.GetServerRuntime().Config.Database.History,
	}
}

// GetDBClient returns the client for the named data source, opening it on first use.
// The returned client owns its connection pool and must not be closed by callers.
func (d *DBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if dbClient, ok := d.clients[dbName]; ok {
		return dbClient, nil
	}
	dataSource, ok := d.sources()[dbName]
	if !ok {
		return nil, fmt.Errorf("unsupported database name: %s", dbName)
	}

	dbClient, err := openClient(dataSource)
	if err != nil {
		return nil, err
	}
	d.clients[dbName] = dbClient
	return dbClient, nil
}

// warmUp opens every configured data source so misconfiguration shows up in the startup log.
func (d *DBProvider) warmUp() {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBProvider"))
	for _, name := range d.sourceNames() {
		if _, err := d.GetDBClient(name); err != nil {
			logger.Error("Failed to initialize database client", log.String("database", name), log.Error(err))
		}
	}
}

func (d *DBProvider) sourceNames() []string {
	sources := d.sources()
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func openClient(dataSource config.DataSource) (client.DBClientInterface, error) {
	cfg, err := getDBConfig(dataSource)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.driverName, cfg.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dataSource.Name, err)
	}
	applyPoolSettings(db, dataSource)

	if err := db.Ping(); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to ping database %s: %w", dataSource.Name, err), db.Close())
	}
	return client.NewDBClient(model.NewDB(db), cfg.driverName), nil
}

func applyPoolSettings(db *sql.DB, dataSource config.DataSource) {
	if dataSource.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dataSource.MaxOpenConns)
	}
	if dataSource.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dataSource.MaxIdleConns)
	}
	if dataSource.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(dataSource.ConnMaxLifetime) * time.Second)
	}
}

// getDBConfig resolves the driver and DSN for a data source. An empty type means sqlite.
func getDBConfig(dataSource config.DataSource) (dbConfig, error) {
	switch dataSource.Type {
	case dataSourceTypePostgres:
		return dbConfig{
			driverName: dataSourceTypePostgres,
			dsn: fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
				dataSource.Hostname, dataSource.Port, dataSource.Username, dataSource.Password,
				dataSource.Name, dataSource.SSLMode),
		}, nil
	case dataSourceTypeSQLite, "":
		options := dataSource.Options
		if options != "" && options[0] != '?' {
			options = "?" + options
		}
		return dbConfig{
			driverName: dataSourceTypeSQLite,
			dsn:        config.GetServerRuntime().ResolvePath(dataSource.Path) + options,
		}, nil
	default:
		return dbConfig{}, fmt.Errorf("unsupported database type: %s", dataSource.Type)
	}
}

func (d *DBProvider) closeOnInterrupt() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger := log.GetLogger()
		if err := d.close(); err != nil {
			logger.Error("Error closing database connections", log.Error(err))
		} else {
			logger.Debug("Database connections closed successfully")
		}
	}()
}

// close closes every open client and forgets it.
func (d *DBProvider) close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	for name, dbClient := range d.clients {
		if err := dbClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s client: %w", name, err))
		}
		delete(d.clients, name)
	}
	return errors.Join(errs...)
}
