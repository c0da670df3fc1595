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

package log

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id of a request. A missing id is generated and echoed back.
const RequestIDHeader = "X-Request-Id"

const healthPathPrefix = "/health/"

// AccessLogHandler logs one structured entry per HTTP request. Health probes are logged at debug level
// and server errors at warn level.
func AccessLogHandler(logger *Logger, next http.Handler) http.Handler {
	accessLogger := logger.With(String(LoggerKeyComponentName, "AccessLog"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
			r.Header.Set(RequestIDHeader, requestID)
		}
		w.Header().Set(RequestIDHeader, requestID)

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)

		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}

		fields := []Field{
			String("requestId", requestID),
			String("remoteHost", host),
			String("method", r.Method),
			String("uri", r.RequestURI),
			Int("status", lrw.statusCode),
			Int("size", lrw.size),
			Int64("elapsedMs", time.Since(start).Milliseconds()),
		}
		switch {
		case lrw.statusCode >= http.StatusInternalServerError:
			accessLogger.Warn("HTTP request failed", fields...)
		case strings.HasPrefix(r.URL.Path, healthPathPrefix):
			accessLogger.Debug("HTTP request served", fields...)
		default:
			accessLogger.Info("HTTP request served", fields...)
		}
	})
}

// loggingResponseWriter records the status and body size written by a handler.
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	size        int
	wroteHeader bool
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	if !lrw.wroteHeader {
		lrw.statusCode = code
		lrw.wroteHeader = true
	}
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	lrw.wroteHeader = true
	size, err := lrw.ResponseWriter.Write(b)
	lrw.size += size
	return size, err
}
