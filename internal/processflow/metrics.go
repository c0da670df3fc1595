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

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/salesflow/orderdesk/internal/system/metrics"
)

var (
	sourceFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "processflow",
			Name:      "source_failures_total",
			Help:      "Failed source queries during reconciliation, by source.",
		},
		[]string{"source"},
	)

	unknownSteps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "processflow",
			Name:      "unknown_steps_total",
			Help:      "Live flow nodes dropped because the step catalog does not know them.",
		},
	)

	reconcileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: "processflow",
			Name:      "reconcile_duration_seconds",
			Help:      "Time taken to reconcile a process flow, source queries included.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func init() {
	metrics.Registry.MustRegister(sourceFailures, unknownSteps, reconcileDuration)
}
