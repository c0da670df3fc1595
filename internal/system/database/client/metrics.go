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

package client

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/salesflow/orderdesk/internal/system/metrics"
)

var (
	statements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "db",
			Name:      "statements_total",
			Help:      "Database statements by query id, kind and outcome.",
		},
		[]string{"query_id", "kind", "outcome"},
	)

	statementDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: "db",
			Name:      "statement_duration_seconds",
			Help:      "Duration of database statements by query id.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"query_id"},
	)
)

func init() {
	metrics.Registry.MustRegister(statements, statementDuration)
}
