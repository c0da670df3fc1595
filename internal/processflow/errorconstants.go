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

package processflow

import "github.com/salesflow/orderdesk/internal/system/error/serviceerror"

// Client errors for process flow operations.
var (
	// ErrorInvalidProcessInstanceKey is the error returned when the process instance key is not valid.
	ErrorInvalidProcessInstanceKey = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "FLOW-1001",
		Error:            "Invalid process instance key",
		ErrorDescription: "The process instance key must be a positive number",
	}
	// ErrorCatalogUnavailable is the error returned when no step catalog can be resolved.
	ErrorCatalogUnavailable = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "FLOW-1002",
		Error:            "Catalog unavailable",
		ErrorDescription: "The step catalog of the process could not be resolved",
	}
)
