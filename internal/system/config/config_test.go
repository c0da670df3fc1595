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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const testResourceDir = "../../../tests/resources"

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) getFilePath(filename string) string {
	return filepath.Join(testResourceDir, filename)
}

func (suite *ConfigTestSuite) TestLoadConfigValid() {
	config, err := LoadConfig(suite.getFilePath("deployment.yaml"))

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), config)

	assert.Equal(suite.T(), "localhost", config.Server.Hostname)
	assert.Equal(suite.T(), 8090, config.Server.Port)
	assert.True(suite.T(), config.Server.HTTPOnly)

	assert.Equal(suite.T(), "sqlite", config.Database.History.Type)
	assert.Equal(suite.T(), "repository/database/history.db", config.Database.History.Path)

	assert.Equal(suite.T(), "http://localhost:8081", config.Workflow.BaseURL)
	assert.Equal(suite.T(), 3, config.Workflow.RequestTimeout)
	assert.Equal(suite.T(), 2, config.Workflow.MaxRetries)
	assert.Equal(suite.T(), 10.0, config.Workflow.RateLimit)

	assert.Equal(suite.T(), "sales-order-approval", config.Catalog.DefaultProcessID)
	assert.Equal(suite.T(), "@every 10m", config.Catalog.RefreshSchedule)

	assert.Equal(suite.T(), "repository/resources/forms", config.Form.SchemaDirectory)
	assert.Equal(suite.T(), "visible", config.Form.DefaultVisibility)

	assert.Len(suite.T(), config.Cache.Properties, 2)
	assert.Equal(suite.T(), []string{"http://localhost:3000"}, config.CORS.AllowedOrigins)
}

func (suite *ConfigTestSuite) TestLoadConfigAppliesDefaults() {
	path := filepath.Join(suite.T().TempDir(), "minimal.yaml")
	assert.NoError(suite.T(), os.WriteFile(path, []byte("workflow:\n  base_url: http://engine\n"), 0o600))

	config, err := LoadConfig(path)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "localhost", config.Server.Hostname)
	assert.Equal(suite.T(), 8090, config.Server.Port)
	assert.Equal(suite.T(), 5, config.Workflow.RequestTimeout)
	assert.Equal(suite.T(), 10, config.Workflow.AggregationTimeout)
	assert.Equal(suite.T(), 200, config.Workflow.RetryBackoff)
	assert.Equal(suite.T(), 5, config.Workflow.BreakerThreshold)
	assert.Equal(suite.T(), "visible", config.Form.DefaultVisibility)
	assert.Equal(suite.T(), "/metrics", config.Metrics.Path)
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidDefaultVisibility() {
	path := filepath.Join(suite.T().TempDir(), "bad.yaml")
	assert.NoError(suite.T(), os.WriteFile(path, []byte("form:\n  default_visibility: maybe\n"), 0o600))

	config, err := LoadConfig(path)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
	assert.Contains(suite.T(), err.Error(), "default_visibility")
}

func (suite *ConfigTestSuite) TestLoadConfigUnsupportedDatabase() {
	path := filepath.Join(suite.T().TempDir(), "bad.yaml")
	assert.NoError(suite.T(), os.WriteFile(path, []byte("database:\n  history:\n    type: oracle\n"), 0o600))

	config, err := LoadConfig(path)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
}

func (suite *ConfigTestSuite) TestLoadConfigFileNotFound() {
	config, err := LoadConfig(suite.getFilePath("non_existent_config.yaml"))

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
	assert.Contains(suite.T(), err.Error(), "no such file or directory")
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidYAML() {
	config, err := LoadConfig(suite.getFilePath("invalid_deployment.yaml"))

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
}
