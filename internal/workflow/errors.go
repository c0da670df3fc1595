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

package workflow

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	// ErrMalformedResponse is returned when the engine answers with a body that cannot be decoded.
	ErrMalformedResponse = errors.New("malformed response from workflow engine")
	// ErrCircuitOpen is returned without contacting the engine while the circuit breaker is open.
	ErrCircuitOpen = errors.New("workflow engine circuit breaker is open")
	// ErrNotFound is returned when the requested engine resource does not exist.
	ErrNotFound = errors.New("workflow engine resource not found")
	// ErrInvalidKey is returned for keys that are not engine keys.
	ErrInvalidKey = errors.New("invalid workflow engine key")
)

// HTTPError is a non-2xx answer from the engine.
type HTTPError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("workflow engine %s failed with status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// Is reports 404 answers as ErrNotFound.
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// isRetryable classifies an attempt error. Network failures, 5xx and 429 answers are retried,
// any other client error and a cancelled context are final.
func isRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrCircuitOpen) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= http.StatusInternalServerError ||
			httpErr.StatusCode == http.StatusTooManyRequests
	}
	if errors.Is(err, ErrMalformedResponse) {
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr) || errors.Is(err, net.ErrClosed)
}

// countsAsFailure reports whether an attempt error says the engine itself is unhealthy.
func countsAsFailure(err error) bool {
	if err == nil {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= http.StatusInternalServerError ||
			httpErr.StatusCode == http.StatusTooManyRequests
	}
	return !errors.Is(err, context.Canceled)
}
