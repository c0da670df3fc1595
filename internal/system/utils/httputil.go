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

// Package utils provides utility functions for HTTP operations.
package utils

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"unicode"

	"github.com/salesflow/orderdesk/internal/system/constants"
	"github.com/salesflow/orderdesk/internal/system/error/apierror"
	"github.com/salesflow/orderdesk/internal/system/error/serviceerror"
	"github.com/salesflow/orderdesk/internal/system/log"
)

// DecodeJSONBody decodes the JSON request body into a value of the given type.
func DecodeJSONBody[T any](r *http.Request) (*T, error) {
	var data T
	body := http.MaxBytesReader(nil, r.Body, constants.MaxRequestBodySize)
	if err := json.NewDecoder(body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode request body: %w", err)
	}
	return &data, nil
}

// WriteJSONResponse writes the given payload as a JSON response with the given status code.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, payload any, logger *log.Logger) {
	w.Header().Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	if encodeErr := json.NewEncoder(w).Encode(payload); encodeErr != nil {
		logger.Error("Error encoding response", log.Error(encodeErr))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// WriteServiceErrorResponse writes a service error as an API error response.
// Server errors are always reported with status 500 regardless of the given client status.
func WriteServiceErrorResponse(w http.ResponseWriter, clientStatusCode int, svcErr *serviceerror.ServiceError,
	logger *log.Logger) {
	statusCode := clientStatusCode
	if svcErr.Type != serviceerror.ClientErrorType {
		statusCode = http.StatusInternalServerError
	}

	errResp := apierror.ErrorResponse{
		Code:        svcErr.Code,
		Message:     svcErr.Error,
		Description: svcErr.ErrorDescription,
	}
	WriteJSONResponse(w, statusCode, errResp, logger)
}

// SanitizeString trims surrounding whitespace, escapes HTML and drops control characters
// other than tabs and new lines.
func SanitizeString(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r' {
			return -1
		}
		return r
	}, trimmed)

	return html.EscapeString(cleaned)
}
