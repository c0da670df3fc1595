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

import "github.com/salesflow/orderdesk/internal/system/error/serviceerror"

// Client errors for step catalog operations.
var (
	// ErrorInvalidProcessID is the error returned when the process id is missing.
	ErrorInvalidProcessID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "CAT-1001",
		Error:            "Invalid process id",
		ErrorDescription: "A BPMN process id is required",
	}
	// ErrorCatalogNotFound is the error returned when no catalog exists for the process.
	ErrorCatalogNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "CAT-1002",
		Error:            "Step catalog not found",
		ErrorDescription: "No deployed definition or static catalog exists for the process",
	}
)

// Server errors for step catalog operations.
var (
	// ErrorInternalServerError is the error returned when an unexpected error occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "CAT-5000",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
