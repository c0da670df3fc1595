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

// Package middleware provides HTTP middleware functions for request processing.
package middleware

import (
	"net/http"
	"strings"

	"github.com/salesflow/orderdesk/internal/system/config"
	"github.com/salesflow/orderdesk/internal/system/log"
)

// exposedHeaders are the response headers browser clients may read.
const exposedHeaders = log.RequestIDHeader

// preflightMaxAge is how long, in seconds, browsers may cache a preflight answer.
const preflightMaxAge = "600"

// CORSOptions represents the CORS configuration of a route.
type CORSOptions struct {
	AllowedMethods   string
	AllowedHeaders   string
	AllowCredentials bool
}

// WithCORS wraps an HTTP handler with CORS headers based on the provided options.
// It returns the pattern and wrapped handler that can be registered with http.ServeMux.
func WithCORS(pattern string, handler http.HandlerFunc, opts CORSOptions) (string, http.HandlerFunc) {
	return pattern, func(w http.ResponseWriter, r *http.Request) {
		applyCORSHeaders(w, r, opts)
		handler(w, r)
	}
}

// Preflight answers a CORS preflight request with an empty 204 response.
func Preflight(w http.ResponseWriter, _ *http.Request) {
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		w.Header().Set("Access-Control-Max-Age", preflightMaxAge)
	}
	w.WriteHeader(http.StatusNoContent)
}

func applyCORSHeaders(w http.ResponseWriter, r *http.Request, opts CORSOptions) {
	requestOrigin := r.Header.Get("Origin")
	if requestOrigin == "" {
		return
	}
	w.Header().Add("Vary", "Origin")

	allowed := allowedOrigin(config.GetServerRuntime().Config.CORS.AllowedOrigins, requestOrigin)
	if allowed == "" {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CORSMiddleware")).
			Debug("Origin not allowed", log.String("origin", requestOrigin))
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", allowed)
	w.Header().Set("Access-Control-Expose-Headers", exposedHeaders)
	if opts.AllowedMethods != "" {
		w.Header().Set("Access-Control-Allow-Methods", opts.AllowedMethods)
	}
	if opts.AllowedHeaders != "" {
		w.Header().Set("Access-Control-Allow-Headers", opts.AllowedHeaders)
	}
	if opts.AllowCredentials {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
}

// allowedOrigin returns the value for Access-Control-Allow-Origin, or an empty string when the origin is
// not allowed. Origins match ignoring a trailing slash. A "*" entry echoes the request origin.
func allowedOrigin(allowedOrigins []string, requestOrigin string) string {
	origin := strings.TrimSuffix(requestOrigin, "/")
	for _, candidate := range allowedOrigins {
		if candidate == "*" {
			return requestOrigin
		}
		if strings.TrimSuffix(candidate, "/") == origin {
			return candidate
		}
	}
	return ""
}
