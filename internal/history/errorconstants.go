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

package history

import "github.com/salesflow/orderdesk/internal/system/error/serviceerror"

// Client errors for approval history operations.
var (
	// ErrorInvalidRequestFormat is the error returned when the request body cannot be decoded.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "HIS-1001",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
	// ErrorInvalidProcessInstanceKey is the error returned when the process instance key is not valid.
	ErrorInvalidProcessInstanceKey = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "HIS-1002",
		Error:            "Invalid process instance key",
		ErrorDescription: "The process instance key must be a positive number",
	}
	// ErrorMissingStepID is the error returned when the step id is missing.
	ErrorMissingStepID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "HIS-1003",
		Error:            "Invalid request format",
		ErrorDescription: "Step id is required",
	}
	// ErrorMissingActorID is the error returned when the actor id is missing.
	ErrorMissingActorID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "HIS-1004",
		Error:            "Invalid request format",
		ErrorDescription: "Actor id is required",
	}
	// ErrorInvalidAction is the error returned for an unsupported approval action.
	ErrorInvalidAction = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "HIS-1005",
		Error:            "Invalid approval action",
		ErrorDescription: "Action must be one of APPROVE, REJECT or SUBMIT",
	}
	// ErrorCommentTooLong is the error returned when the comment exceeds the allowed length.
	ErrorCommentTooLong = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "HIS-1006",
		Error:            "Invalid request format",
		ErrorDescription: "Comment must not exceed 2000 characters",
	}
)

// Server errors for approval history operations.
var (
	// ErrorInternalServerError is the error returned when an unexpected error occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "HIS-5000",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
