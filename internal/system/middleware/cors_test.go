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

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/salesflow/orderdesk/internal/system/config"
)

var approvalRouteOptions = CORSOptions{
	AllowedMethods:   "GET, POST",
	AllowedHeaders:   "Content-Type, Authorization",
	AllowCredentials: true,
}

type CORSMiddlewareTestSuite struct {
	suite.Suite
	mux *http.ServeMux
}

func TestCORSMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(CORSMiddlewareTestSuite))
}

func (suite *CORSMiddlewareTestSuite) SetupTest() {
	config.ResetServerRuntime()
	_ = config.InitializeServerRuntime("/tmp", &config.Config{
		CORS: config.CORSConfig{AllowedOrigins: []string{"https://erp.example.com/", "http://localhost:3000"}},
	})

	suite.mux = http.NewServeMux()
	suite.mux.HandleFunc(WithCORS("GET /process-instances/{key}/approvals",
		func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }, approvalRouteOptions))
	suite.mux.HandleFunc(WithCORS("OPTIONS /process-instances/{key}/approvals", Preflight, approvalRouteOptions))
}

func (suite *CORSMiddlewareTestSuite) TearDownTest() {
	config.ResetServerRuntime()
}

func (suite *CORSMiddlewareTestSuite) do(method, origin string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, "/process-instances/42/approvals", nil)
	if origin != "" {
		request.Header.Set("Origin", origin)
	}
	recorder := httptest.NewRecorder()
	suite.mux.ServeHTTP(recorder, request)
	return recorder
}

func (suite *CORSMiddlewareTestSuite) TestAllowedOrigin() {
	recorder := suite.do(http.MethodGet, "https://erp.example.com")

	suite.Equal(http.StatusOK, recorder.Code)
	header := recorder.Header()
	suite.Equal("https://erp.example.com/", header.Get("Access-Control-Allow-Origin"))
	suite.Equal("GET, POST", header.Get("Access-Control-Allow-Methods"))
	suite.Equal("Content-Type, Authorization", header.Get("Access-Control-Allow-Headers"))
	suite.Equal("true", header.Get("Access-Control-Allow-Credentials"))
	suite.Equal("X-Request-Id", header.Get("Access-Control-Expose-Headers"))
	suite.Equal("Origin", header.Get("Vary"))
	suite.Empty(header.Get("Access-Control-Max-Age"))
}

func (suite *CORSMiddlewareTestSuite) TestDisallowedOriginStillServed() {
	recorder := suite.do(http.MethodGet, "https://evil.example.com")

	suite.Equal(http.StatusOK, recorder.Code)
	suite.Empty(recorder.Header().Get("Access-Control-Allow-Origin"))
	suite.Equal("Origin", recorder.Header().Get("Vary"))
}

func (suite *CORSMiddlewareTestSuite) TestSameOriginRequestHasNoCORSHeaders() {
	recorder := suite.do(http.MethodGet, "")

	suite.Empty(recorder.Header().Get("Access-Control-Allow-Origin"))
	suite.Empty(recorder.Header().Get("Vary"))
}

func (suite *CORSMiddlewareTestSuite) TestPreflight() {
	allowed := suite.do(http.MethodOptions, "http://localhost:3000")
	suite.Equal(http.StatusNoContent, allowed.Code)
	suite.Equal("http://localhost:3000", allowed.Header().Get("Access-Control-Allow-Origin"))
	suite.Equal("600", allowed.Header().Get("Access-Control-Max-Age"))

	denied := suite.do(http.MethodOptions, "http://localhost:4000")
	suite.Equal(http.StatusNoContent, denied.Code)
	suite.Empty(denied.Header().Get("Access-Control-Max-Age"))
}

func (suite *CORSMiddlewareTestSuite) TestAllowedOriginMatching() {
	testCases := []struct {
		name     string
		allowed  []string
		origin   string
		expected string
	}{
		{"NoneConfigured", nil, "https://erp.example.com", ""},
		{"Exact", []string{"https://erp.example.com"}, "https://erp.example.com", "https://erp.example.com"},
		{"TrailingSlash", []string{"https://erp.example.com"}, "https://erp.example.com/", "https://erp.example.com"},
		{"Wildcard", []string{"*"}, "https://any.example.com", "https://any.example.com"},
		{"SchemeMismatch", []string{"https://erp.example.com"}, "http://erp.example.com", ""},
		{"PortMismatch", []string{"http://localhost:3000"}, "http://localhost:3001", ""},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, allowedOrigin(tc.allowed, tc.origin))
		})
	}
}
