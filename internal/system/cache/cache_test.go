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

package cache

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/salesflow/orderdesk/internal/system/config"
)

type CacheTestSuite struct {
	suite.Suite
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (suite *CacheTestSuite) SetupTest() {
	config.ResetServerRuntime()
	resetCaches()
}

func (suite *CacheTestSuite) TearDownTest() {
	config.ResetServerRuntime()
	resetCaches()
}

func (suite *CacheTestSuite) TestDisabledCacheNeverHits() {
	c := newCache[string]("StepCatalogCache", config.CacheConfig{Disabled: true})
	c.Set(CacheKey{Key: "a"}, "alpha")

	_, ok := c.Get(CacheKey{Key: "a"})

	suite.False(ok)
	suite.False(c.IsEnabled())
	suite.Equal(CacheStat{}, c.GetStats())
}

func (suite *CacheTestSuite) TestIndividuallyDisabledCache() {
	cfg := config.CacheConfig{
		Properties: []config.CacheProperty{{Name: "FormSchemaCache", Disabled: true}},
	}

	suite.False(newCache[string]("FormSchemaCache", cfg).IsEnabled())
	suite.True(newCache[string]("StepCatalogCache", cfg).IsEnabled())
}

func (suite *CacheTestSuite) TestPropertyOverridesGlobalSettings() {
	cfg := config.CacheConfig{
		Size:           100,
		EvictionPolicy: "LFU",
		Properties: []config.CacheProperty{
			{Name: "StepCatalogCache", Size: 5, EvictionPolicy: "LRU"},
		},
	}

	c := newCache[string]("StepCatalogCache", cfg)

	suite.Equal(5, c.GetStats().MaxSize)
	suite.Equal(evictionPolicyLRU, c.internal.evictionPolicy)
	suite.Equal(100, newCache[string]("Other", cfg).GetStats().MaxSize)
}

func (suite *CacheTestSuite) TestGetCacheReturnsSameInstance() {
	err := config.InitializeServerRuntime("", &config.Config{})
	suite.Require().NoError(err)

	first := GetCache[string]("StepCatalogCache")
	first.Set(CacheKey{Key: "sales-order-approval"}, "catalog")

	second := GetCache[string]("StepCatalogCache")
	value, ok := second.Get(CacheKey{Key: "sales-order-approval"})

	suite.True(ok)
	suite.Equal("catalog", value)

	other := GetCache[int]("StepCatalogCache")
	_, ok = other.Get(CacheKey{Key: "sales-order-approval"})
	suite.False(ok)
}

func (suite *CacheTestSuite) TestGetEvictionPolicy() {
	suite.Equal(evictionPolicyLRU, getEvictionPolicy(config.CacheConfig{}, config.CacheProperty{}))
	suite.Equal(evictionPolicyLFU, getEvictionPolicy(config.CacheConfig{EvictionPolicy: "LFU"},
		config.CacheProperty{}))
	suite.Equal(evictionPolicyLRU, getEvictionPolicy(config.CacheConfig{EvictionPolicy: "RANDOM"},
		config.CacheProperty{}))
}

func (suite *CacheTestSuite) TestHitRate() {
	suite.Equal(0.0, CacheStat{}.HitRate())
	suite.Equal(0.75, CacheStat{HitCount: 3, MissCount: 1}.HitRate())
}
