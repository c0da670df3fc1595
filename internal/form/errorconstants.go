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

import "github.com/salesflow/orderdesk/internal/system/error/serviceerror"

// Client errors for form operations.
var (
	// ErrorFormNotFound is the error returned when no form schema exists for the key.
	ErrorFormNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "FORM-1001",
		Error:            "Form not found",
		ErrorDescription: "No form schema is registered under the given key",
	}
	// ErrorInvalidPermissionLevel is the error returned when the permission level is not recognised.
	ErrorInvalidPermissionLevel = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "FORM-1002",
		Error:            "Invalid permission level",
		ErrorDescription: "The permission level must be one of VIEW, EDIT or APPROVE",
	}
	// ErrorUnsupportedPermissionLevel is the error returned when the form does not support the level.
	ErrorUnsupportedPermissionLevel = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "FORM-1003",
		Error:            "Unsupported permission level",
		ErrorDescription: "The form cannot be rendered at the requested permission level",
	}
	// ErrorInvalidRequestFormat is the error returned when the render request body cannot be decoded.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "FORM-1004",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
)

// Server errors for form operations.
var (
	// ErrorInternalServerError is the error returned when an unexpected error occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "FORM-5000",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
