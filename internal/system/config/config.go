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

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/salesflow/orderdesk/internal/system/log"

	yaml "gopkg.in/yaml.v3"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	HTTPOnly bool   `yaml:"http_only"`
}

// SecurityConfig holds the security configuration details.
type SecurityConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type"`
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	History DataSource `yaml:"history"`
}

// WorkflowConfig holds the connection details of the external BPM engine.
type WorkflowConfig struct {
	BaseURL string `yaml:"base_url"`
	// RequestTimeout is the per-request timeout in seconds.
	RequestTimeout int `yaml:"request_timeout"`
	// AggregationTimeout bounds all engine reads of one flow status request, in seconds.
	AggregationTimeout int `yaml:"aggregation_timeout"`
	MaxRetries         int `yaml:"max_retries"`
	// RetryBackoff is the base backoff between retries in milliseconds.
	RetryBackoff int `yaml:"retry_backoff"`
	// RateLimit is the number of requests per second allowed towards the engine.
	RateLimit        float64 `yaml:"rate_limit"`
	RateBurst        int     `yaml:"rate_burst"`
	BreakerThreshold int     `yaml:"breaker_threshold"`
	// BreakerCooldown is the time in seconds the breaker stays open.
	BreakerCooldown int    `yaml:"breaker_cooldown"`
	SearchPageSize  int    `yaml:"search_page_size"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
}

// CatalogConfig holds the configuration of the step catalog.
type CatalogConfig struct {
	StaticFile       string `yaml:"static_file"`
	DefaultProcessID string `yaml:"default_process_id"`
	RefreshSchedule  string `yaml:"refresh_schedule"`
}

// FormConfig holds the configuration of the form schema repository and renderer.
type FormConfig struct {
	SchemaDirectory   string `yaml:"schema_directory"`
	DefaultVisibility string `yaml:"default_visibility"`
}

// CacheProperty defines the properties for individual caches.
type CacheProperty struct {
	Name           string `yaml:"name"`
	Disabled       bool   `yaml:"disabled"`
	Size           int    `yaml:"size"`
	TTL            int    `yaml:"ttl"`
	EvictionPolicy string `yaml:"eviction_policy"`
}

// CacheConfig holds the cache configuration details.
type CacheConfig struct {
	Disabled        bool            `yaml:"disabled"`
	Type            string          `yaml:"type"`
	Size            int             `yaml:"size"`
	TTL             int             `yaml:"ttl"`
	EvictionPolicy  string          `yaml:"eviction_policy"`
	CleanupInterval int             `yaml:"cleanup_interval"`
	Properties      []CacheProperty `yaml:"properties,omitempty"`
}

// CORSConfig holds the configuration details for the CORS.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// MetricsConfig holds the configuration of the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Security SecurityConfig `yaml:"security"`
	Database DatabaseConfig `yaml:"database"`
	Workflow WorkflowConfig `yaml:"workflow"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Form     FormConfig     `yaml:"form"`
	Cache    CacheConfig    `yaml:"cache"`
	CORS     CORSConfig     `yaml:"cors"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills the optional settings that were left empty in the deployment file.
func applyDefaults(cfg *Config) {
	if cfg.Server.Hostname == "" {
		cfg.Server.Hostname = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8090
	}
	if cfg.Workflow.RequestTimeout <= 0 {
		cfg.Workflow.RequestTimeout = 5
	}
	if cfg.Workflow.AggregationTimeout <= 0 {
		cfg.Workflow.AggregationTimeout = 10
	}
	if cfg.Workflow.MaxRetries < 0 {
		cfg.Workflow.MaxRetries = 0
	}
	if cfg.Workflow.RetryBackoff <= 0 {
		cfg.Workflow.RetryBackoff = 200
	}
	if cfg.Workflow.RateLimit <= 0 {
		cfg.Workflow.RateLimit = 20
	}
	if cfg.Workflow.RateBurst <= 0 {
		cfg.Workflow.RateBurst = 10
	}
	if cfg.Workflow.BreakerThreshold <= 0 {
		cfg.Workflow.BreakerThreshold = 5
	}
	if cfg.Workflow.BreakerCooldown <= 0 {
		cfg.Workflow.BreakerCooldown = 30
	}
	if cfg.Workflow.SearchPageSize <= 0 {
		cfg.Workflow.SearchPageSize = 200
	}
	if cfg.Form.DefaultVisibility == "" {
		cfg.Form.DefaultVisibility = "visible"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

// validate rejects configurations the server cannot start with.
func validate(cfg *Config) error {
	switch cfg.Form.DefaultVisibility {
	case "visible", "hidden":
	default:
		return fmt.Errorf("invalid form.default_visibility %q: must be visible or hidden",
			cfg.Form.DefaultVisibility)
	}
	switch cfg.Database.History.Type {
	case "", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database.history.type %q", cfg.Database.History.Type)
	}
	return nil
}
