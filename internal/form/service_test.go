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

package form

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/salesflow/orderdesk/internal/system/cache"
	"github.com/salesflow/orderdesk/internal/system/config"
)

type schemaCache struct {
	mu      sync.Mutex
	entries map[string]*FormSchema
	sets    int
}

func newSchemaCache() *schemaCache {
	return &schemaCache{entries: make(map[string]*FormSchema)}
}

func (c *schemaCache) GetName() string { return FormSchemaCacheName }

func (c *schemaCache) Set(key cache.CacheKey, value *FormSchema) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[key.ToString()] = value
}

func (c *schemaCache) Get(key cache.CacheKey) (*FormSchema, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key.ToString()]
	return value, ok
}

func (c *schemaCache) Delete(key cache.CacheKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key.ToString())
}

func (c *schemaCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*FormSchema)
}

func (c *schemaCache) IsEnabled() bool { return true }

func (c *schemaCache) GetStats() cache.CacheStat {
	return cache.CacheStat{Enabled: true, Size: len(c.entries)}
}

type RepositoryTestSuite struct {
	suite.Suite
	dir   string
	cache *schemaCache
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (suite *RepositoryTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
	suite.cache = newSchemaCache()
}

func (suite *RepositoryTestSuite) writeFile(name, content string) {
	suite.Require().NoError(os.WriteFile(filepath.Join(suite.dir, name), []byte(content), 0o600))
}

func (suite *RepositoryTestSuite) TestIndexesValidDocuments() {
	suite.writeFile("sales-order-review.json", salesOrderForm)
	suite.writeFile("credit-check.JSON", `{"id": "credit-check", "name": "Credit check", "supportedLevels": ["APPROVE"],
		"components": []}`)
	suite.writeFile("broken.json", `{"id": "broken"}`)
	suite.writeFile("notes.txt", "not a form")
	suite.Require().NoError(os.Mkdir(filepath.Join(suite.dir, "nested.json"), 0o700))

	repo, err := newFileRepository(suite.dir, suite.cache)
	suite.Require().NoError(err)

	summaries := repo.ListFormSchemas()
	suite.Require().Len(summaries, 2)
	suite.Equal("credit-check", summaries[0].ID)
	suite.Equal([]PermissionLevel{LevelApprove}, summaries[0].SupportedLevels)
	suite.Equal("sales-order-review", summaries[1].ID)
	suite.Equal("approval", summaries[1].TaskType)

	schema, err := repo.GetFormSchema("sales-order-review")
	suite.Require().NoError(err)
	suite.Equal("Review order {{orderNumber}}", schema.Name)

	_, err = repo.GetFormSchema("broken")
	suite.ErrorIs(err, ErrFormNotFound)
}

func (suite *RepositoryTestSuite) TestSummaryDefaultsToAllLevels() {
	suite.writeFile("f.json", `{"id": "f", "name": "F", "components": []}`)

	repo, err := newFileRepository(suite.dir, suite.cache)
	suite.Require().NoError(err)

	suite.Equal([]PermissionLevel{LevelView, LevelEdit, LevelApprove}, repo.ListFormSchemas()[0].SupportedLevels)
}

func (suite *RepositoryTestSuite) TestDuplicateIDKeepsFirstFile() {
	suite.writeFile("a.json", `{"id": "dup", "name": "First", "components": []}`)
	suite.writeFile("b.json", `{"id": "dup", "name": "Second", "components": []}`)

	repo, err := newFileRepository(suite.dir, suite.cache)
	suite.Require().NoError(err)

	schema, err := repo.GetFormSchema("dup")
	suite.Require().NoError(err)
	suite.Equal("First", schema.Name)
	suite.Len(repo.ListFormSchemas(), 1)
}

func (suite *RepositoryTestSuite) TestCacheMissReloadsDocument() {
	suite.writeFile("f.json", `{"id": "f", "name": "F", "components": []}`)
	repo, err := newFileRepository(suite.dir, suite.cache)
	suite.Require().NoError(err)

	suite.cache.Clear()
	suite.writeFile("f.json", `{"id": "f", "name": "F v2", "components": []}`)

	schema, err := repo.GetFormSchema("f")
	suite.Require().NoError(err)
	suite.Equal("F v2", schema.Name)
	suite.Equal(2, suite.cache.sets)

	cached, err := repo.GetFormSchema("f")
	suite.Require().NoError(err)
	suite.Same(schema, cached)
}

func (suite *RepositoryTestSuite) TestRemovedDocumentIsNotFound() {
	suite.writeFile("f.json", `{"id": "f", "name": "F", "components": []}`)
	repo, err := newFileRepository(suite.dir, suite.cache)
	suite.Require().NoError(err)

	suite.cache.Clear()
	suite.Require().NoError(os.Remove(filepath.Join(suite.dir, "f.json")))

	_, err = repo.GetFormSchema("f")
	suite.ErrorIs(err, ErrFormNotFound)
}

func (suite *RepositoryTestSuite) TestMissingDirectoryIsEmpty() {
	repo, err := newFileRepository(filepath.Join(suite.dir, "absent"), suite.cache)
	suite.Require().NoError(err)
	suite.Empty(repo.ListFormSchemas())

	_, err = repo.GetFormSchema("anything")
	suite.ErrorIs(err, ErrFormNotFound)
}

type stubRepository struct {
	schemas map[string]*FormSchema
	err     error
}

func (s *stubRepository) GetFormSchema(key string) (*FormSchema, error) {
	if s.err != nil {
		return nil, s.err
	}
	schema, ok := s.schemas[key]
	if !ok {
		return nil, ErrFormNotFound
	}
	return schema, nil
}

func (s *stubRepository) ListFormSchemas() []FormSummary {
	summaries := make([]FormSummary, 0, len(s.schemas))
	for _, schema := range s.schemas {
		summaries = append(summaries, summarize(schema))
	}
	return summaries
}

type FormServiceTestSuite struct {
	suite.Suite
	service FormServiceInterface
}

func TestFormServiceSuite(t *testing.T) {
	suite.Run(t, new(FormServiceTestSuite))
}

func (suite *FormServiceTestSuite) SetupTest() {
	schema, err := ParseFormSchema([]byte(salesOrderForm))
	suite.Require().NoError(err)
	restricted := &FormSchema{ID: "approve-only", Name: "Approve only",
		SupportedLevels: []PermissionLevel{LevelApprove}, Components: []FormComponent{}}
	suite.service = newFormService(&stubRepository{schemas: map[string]*FormSchema{
		schema.ID:     schema,
		restricted.ID: restricted,
	}}, NewRenderer(DefaultVisibilityVisible))
}

func (suite *FormServiceTestSuite) TestRenderForm() {
	rendered, svcErr := suite.service.RenderForm("sales-order-review", "edit",
		map[string]any{"amount": 5000.0}, map[string]any{"taskId": "t-1"})

	suite.Require().Nil(svcErr)
	suite.Equal(LevelEdit, rendered.PermissionLevel)
	_, ok := findComponent(rendered.Components, "approvalNote")
	suite.True(ok)
}

func (suite *FormServiceTestSuite) TestRenderFormErrors() {
	cases := []struct {
		name  string
		key   string
		level string
		code  string
	}{
		{"invalid level", "sales-order-review", "OWNER", ErrorInvalidPermissionLevel.Code},
		{"invalid level wins over unknown form", "unknown", "", ErrorInvalidPermissionLevel.Code},
		{"unknown form", "unknown", "VIEW", ErrorFormNotFound.Code},
		{"unsupported level", "approve-only", "VIEW", ErrorUnsupportedPermissionLevel.Code},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			rendered, svcErr := suite.service.RenderForm(tc.key, tc.level, nil, nil)
			suite.Nil(rendered)
			suite.Require().NotNil(svcErr)
			suite.Equal(tc.code, svcErr.Code)
		})
	}
}

func (suite *FormServiceTestSuite) TestRepositoryFailure() {
	service := newFormService(&stubRepository{err: errors.New("disk failure")}, NewRenderer(""))

	_, svcErr := service.RenderForm("f", "VIEW", nil, nil)

	suite.Require().NotNil(svcErr)
	suite.Equal(ErrorInternalServerError.Code, svcErr.Code)
}

type FormHandlerTestSuite struct {
	suite.Suite
	mux *http.ServeMux
}

func TestFormHandlerSuite(t *testing.T) {
	suite.Run(t, new(FormHandlerTestSuite))
}

func (suite *FormHandlerTestSuite) SetupSuite() {
	config.ResetServerRuntime()
	_ = config.InitializeServerRuntime("", &config.Config{})
}

func (suite *FormHandlerTestSuite) TearDownSuite() {
	config.ResetServerRuntime()
}

func (suite *FormHandlerTestSuite) SetupTest() {
	schema, err := ParseFormSchema([]byte(salesOrderForm))
	suite.Require().NoError(err)
	suite.mux = http.NewServeMux()
	registerRoutes(suite.mux, newFormHandler(newFormService(
		&stubRepository{schemas: map[string]*FormSchema{schema.ID: schema}}, NewRenderer(DefaultVisibilityVisible))))
}

func (suite *FormHandlerTestSuite) serve(method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	suite.mux.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))
	return recorder
}

func (suite *FormHandlerTestSuite) TestRender() {
	recorder := suite.serve(http.MethodPost, "/forms/sales-order-review/render",
		`{"permissionLevel": "VIEW", "variables": {"orderNumber": "SO-7", "amount": 500}, "taskInfo": {"taskId": "t-9"}}`)

	suite.Equal(http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	suite.Contains(body, `"formName":"Review order SO-7"`)
	suite.Contains(body, `"taskId":"t-9"`)
	suite.NotContains(body, "internalMargin")
	suite.NotContains(body, "approvalNote")
}

func (suite *FormHandlerTestSuite) TestRenderUnknownForm() {
	recorder := suite.serve(http.MethodPost, "/forms/unknown/render", `{"permissionLevel": "VIEW"}`)

	suite.Equal(http.StatusNotFound, recorder.Code)
	suite.Contains(recorder.Body.String(), ErrorFormNotFound.Code)
}

func (suite *FormHandlerTestSuite) TestRenderInvalidLevel() {
	recorder := suite.serve(http.MethodPost, "/forms/sales-order-review/render", `{"permissionLevel": "ROOT"}`)

	suite.Equal(http.StatusBadRequest, recorder.Code)
	suite.Contains(recorder.Body.String(), ErrorInvalidPermissionLevel.Code)
}

func (suite *FormHandlerTestSuite) TestRenderMalformedBody() {
	recorder := suite.serve(http.MethodPost, "/forms/sales-order-review/render", `{"permissionLevel":`)

	suite.Equal(http.StatusBadRequest, recorder.Code)
	suite.Contains(recorder.Body.String(), ErrorInvalidRequestFormat.Code)
}

func (suite *FormHandlerTestSuite) TestListForms() {
	recorder := suite.serve(http.MethodGet, "/forms", "")

	suite.Equal(http.StatusOK, recorder.Code)
	suite.JSONEq(`[{"id":"sales-order-review","name":"Review order {{orderNumber}}","taskType":"approval",
		"supportedLevels":["VIEW","EDIT","APPROVE"]}]`, recorder.Body.String())
}
