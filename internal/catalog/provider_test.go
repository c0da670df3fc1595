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

package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/salesflow/orderdesk/internal/system/cache"
	"github.com/salesflow/orderdesk/internal/system/config"
	"github.com/salesflow/orderdesk/internal/workflow"
	"github.com/salesflow/orderdesk/tests/mocks/workflowmock"
)

// mapCache is a minimal cache.CacheInterface used to observe provider caching.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]*StepCatalog
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]*StepCatalog)}
}

func (c *mapCache) GetName() string { return CacheName }

func (c *mapCache) Set(key cache.CacheKey, value *StepCatalog) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key.ToString()] = value
}

func (c *mapCache) Get(key cache.CacheKey) (*StepCatalog, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key.ToString()]
	return value, ok
}

func (c *mapCache) Delete(key cache.CacheKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key.ToString())
}

func (c *mapCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*StepCatalog)
}

func (c *mapCache) IsEnabled() bool { return true }

func (c *mapCache) GetStats() cache.CacheStat {
	return cache.CacheStat{Enabled: true, Size: len(c.entries)}
}

type ProviderTestSuite struct {
	suite.Suite
	engine *workflowmock.ClientMock
	cache  *mapCache
}

func TestProviderSuite(t *testing.T) {
	suite.Run(t, new(ProviderTestSuite))
}

func (suite *ProviderTestSuite) SetupTest() {
	suite.engine = workflowmock.NewClientMock(suite.T())
	suite.cache = newMapCache()
}

func (suite *ProviderTestSuite) expectDeployedDefinition() {
	suite.engine.On("FindLatestProcessDefinition", mock.Anything, "sales-order-approval").
		Return(&workflow.ProcessDefinition{Key: 42, BPMNProcessID: "sales-order-approval", Version: 3}, nil).Once()
	suite.engine.On("GetProcessDefinitionXML", mock.Anything, "42").Return(salesOrderBPMN, nil).Once()
}

func (suite *ProviderTestSuite) TestEngineCatalogIsCached() {
	suite.expectDeployedDefinition()
	provider := NewProvider(suite.engine, nil, suite.cache)

	first, err := provider.GetCatalog(context.Background(), "sales-order-approval")
	suite.Require().NoError(err)
	second, err := provider.GetCatalog(context.Background(), "sales-order-approval")
	suite.Require().NoError(err)

	suite.Same(first, second)
	suite.Equal("validate", first.Steps()[0].ID)
}

func (suite *ProviderTestSuite) TestInvalidateForcesReload() {
	suite.expectDeployedDefinition()
	suite.expectDeployedDefinition()
	provider := NewProvider(suite.engine, nil, suite.cache)

	_, err := provider.GetCatalog(context.Background(), "sales-order-approval")
	suite.Require().NoError(err)
	provider.Invalidate("sales-order-approval")
	_, err = provider.GetCatalog(context.Background(), "sales-order-approval")
	suite.Require().NoError(err)

	provider.InvalidateAll()
	suite.Empty(suite.cache.entries)
}

func (suite *ProviderTestSuite) TestStaticFallbackIsNotCached() {
	engineErr := errors.New("connection refused")
	suite.engine.On("FindLatestProcessDefinition", mock.Anything, "sales-order-approval").
		Return(nil, engineErr).Twice()
	static := map[string]*StepCatalog{
		"sales-order-approval": NewStepCatalog("sales-order-approval", []StepDefinition{{ID: "validate"}}),
	}
	provider := NewProvider(suite.engine, static, suite.cache)

	for i := 0; i < 2; i++ {
		stepCatalog, err := provider.GetCatalog(context.Background(), "sales-order-approval")
		suite.Require().NoError(err)
		suite.Same(static["sales-order-approval"], stepCatalog)
	}
	suite.Empty(suite.cache.entries)
}

func (suite *ProviderTestSuite) TestNotFoundWithoutFallback() {
	suite.engine.On("FindLatestProcessDefinition", mock.Anything, "unknown").
		Return(nil, workflow.ErrNotFound).Once()
	provider := NewProvider(suite.engine, nil, suite.cache)

	_, err := provider.GetCatalog(context.Background(), "unknown")

	suite.ErrorIs(err, ErrCatalogNotFound)
	suite.ErrorIs(err, workflow.ErrNotFound)
}

func (suite *ProviderTestSuite) TestEmptyProcessID() {
	_, err := NewProvider(suite.engine, nil, suite.cache).GetCatalog(context.Background(), "")
	suite.ErrorIs(err, ErrCatalogNotFound)
}

func (suite *ProviderTestSuite) TestNoEngineUsesStaticCatalog() {
	static := map[string]*StepCatalog{"p": NewStepCatalog("p", []StepDefinition{{ID: "a"}})}

	stepCatalog, err := NewProvider(nil, static, suite.cache).GetCatalog(context.Background(), "p")

	suite.Require().NoError(err)
	suite.True(stepCatalog.Contains("a"))
}

type stubProvider struct {
	catalog     *StepCatalog
	err         error
	invalidated []string
}

func (s *stubProvider) GetCatalog(context.Context, string) (*StepCatalog, error) {
	return s.catalog, s.err
}

func (s *stubProvider) Invalidate(processID string) {
	s.invalidated = append(s.invalidated, processID)
}

func (s *stubProvider) InvalidateAll() {}

type CatalogHandlerTestSuite struct {
	suite.Suite
}

func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerTestSuite))
}

func (suite *CatalogHandlerTestSuite) SetupSuite() {
	config.ResetServerRuntime()
	_ = config.InitializeServerRuntime("", &config.Config{})
}

func (suite *CatalogHandlerTestSuite) TearDownSuite() {
	config.ResetServerRuntime()
}

func (suite *CatalogHandlerTestSuite) serve(provider ProviderInterface, method, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	registerRoutes(mux, newCatalogHandler(provider))
	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
	return recorder
}

func (suite *CatalogHandlerTestSuite) TestGetCatalog() {
	provider := &stubProvider{catalog: NewStepCatalog("p", []StepDefinition{{ID: "a", Name: "A"}})}

	recorder := suite.serve(provider, http.MethodGet, "/catalogs/p")

	suite.Equal(http.StatusOK, recorder.Code)
	suite.JSONEq(`{"processId":"p","steps":[{"id":"a","name":"A"}]}`, recorder.Body.String())
}

func (suite *CatalogHandlerTestSuite) TestGetCatalogNotFound() {
	provider := &stubProvider{err: ErrCatalogNotFound}

	recorder := suite.serve(provider, http.MethodGet, "/catalogs/unknown")

	suite.Equal(http.StatusNotFound, recorder.Code)
	suite.Contains(recorder.Body.String(), ErrorCatalogNotFound.Code)
}

func (suite *CatalogHandlerTestSuite) TestGetCatalogUnexpectedError() {
	provider := &stubProvider{err: errors.New("boom")}

	recorder := suite.serve(provider, http.MethodGet, "/catalogs/p")

	suite.Equal(http.StatusInternalServerError, recorder.Code)
	suite.Contains(recorder.Body.String(), ErrorInternalServerError.Code)
}

func (suite *CatalogHandlerTestSuite) TestInvalidate() {
	provider := &stubProvider{}

	recorder := suite.serve(provider, http.MethodPost, "/catalogs/sales-order-approval/invalidate")

	suite.Equal(http.StatusNoContent, recorder.Code)
	suite.Equal([]string{"sales-order-approval"}, provider.invalidated)
}
