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

package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/salesflow/orderdesk/internal/system/error/apierror"
	"github.com/salesflow/orderdesk/internal/system/error/serviceerror"
	"github.com/salesflow/orderdesk/internal/system/log"
)

type approvalBody struct {
	StepID string `json:"stepId"`
	Action string `json:"action"`
}

type HTTPUtilTestSuite struct {
	suite.Suite
}

func TestHTTPUtilSuite(t *testing.T) {
	suite.Run(t, new(HTTPUtilTestSuite))
}

func (suite *HTTPUtilTestSuite) TestWriteJSONResponse() {
	recorder := httptest.NewRecorder()

	WriteJSONResponse(recorder, http.StatusCreated, approvalBody{StepID: "validate", Action: "SUBMIT"},
		log.GetLogger())

	suite.Equal(http.StatusCreated, recorder.Code)
	suite.Equal("application/json", recorder.Header().Get("Content-Type"))
	suite.JSONEq(`{"stepId":"validate","action":"SUBMIT"}`, recorder.Body.String())
}

func (suite *HTTPUtilTestSuite) TestWriteServiceErrorResponse() {
	notFound := serviceerror.ServiceError{
		Code:             "FORM-1001",
		Type:             serviceerror.ClientErrorType,
		Error:            "Form not found",
		ErrorDescription: "No form schema is registered for the given key",
	}
	internal := serviceerror.ServiceError{
		Code:  "FLOW-5000",
		Type:  serviceerror.ServerErrorType,
		Error: "Internal server error",
	}
	testCases := []struct {
		name           string
		svcErr         serviceerror.ServiceError
		clientStatus   int
		expectedStatus int
	}{
		{"ClientStatusIsKept", notFound, http.StatusNotFound, http.StatusNotFound},
		{"ServerErrorIsAlways500", internal, http.StatusBadRequest, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			recorder := httptest.NewRecorder()

			WriteServiceErrorResponse(recorder, tc.clientStatus, &tc.svcErr, log.GetLogger())

			suite.Equal(tc.expectedStatus, recorder.Code)
			var response apierror.ErrorResponse
			suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
			suite.Equal(apierror.ErrorResponse{
				Code:        tc.svcErr.Code,
				Message:     tc.svcErr.Error,
				Description: tc.svcErr.ErrorDescription,
			}, response)
		})
	}
}

func (suite *HTTPUtilTestSuite) TestWriteServiceErrorResponseOmitsEmptyDescription() {
	recorder := httptest.NewRecorder()

	WriteServiceErrorResponse(recorder, http.StatusBadRequest, &serviceerror.ServiceError{
		Code: "HIS-1005", Type: serviceerror.ClientErrorType, Error: "Invalid approval action",
	}, log.GetLogger())

	suite.NotContains(recorder.Body.String(), "description")
}

func (suite *HTTPUtilTestSuite) TestDecodeJSONBody() {
	request := httptest.NewRequest(http.MethodPost, "/process-instances/42/approvals",
		strings.NewReader(`{"stepId":"manager-approve","action":"APPROVE"}`))

	body, err := DecodeJSONBody[approvalBody](request)

	suite.Require().NoError(err)
	suite.Equal(approvalBody{StepID: "manager-approve", Action: "APPROVE"}, *body)
}

func (suite *HTTPUtilTestSuite) TestDecodeJSONBodyFailures() {
	testCases := []struct {
		name string
		body string
	}{
		{"Malformed", `{"stepId":`},
		{"WrongType", `{"stepId":42}`},
		{"Empty", ``},
		{"Oversized", `{"stepId":"` + strings.Repeat("a", 1<<20) + `"}`},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))

			body, err := DecodeJSONBody[approvalBody](request)

			suite.ErrorContains(err, "failed to decode request body")
			suite.Nil(body)
		})
	}
}

func (suite *HTTPUtilTestSuite) TestSanitizeString() {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain", "within budget", "within budget"},
		{"HTML", "<b>approved</b> & 'done'", "&lt;b&gt;approved&lt;/b&gt; &amp; &#39;done&#39;"},
		{"SurroundingWhitespace", "  manager-approve \t", "manager-approve"},
		{"OnlyWhitespace", " \t\n ", ""},
		{"ControlCharacters", "ali\x00ce\x1b", "alice"},
		{"LineBreaksAndTabsKept", "line 1\nline 2\tend", "line 1\nline 2\tend"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, SanitizeString(tc.input))
		})
	}
}
