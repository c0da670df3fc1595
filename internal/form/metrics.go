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

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/salesflow/orderdesk/internal/system/metrics"
)

var (
	fieldsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "form",
			Name:      "fields_dropped_total",
			Help:      "Form components left out of rendered forms, by reason.",
		},
		[]string{"reason"},
	)

	formsRendered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "form",
			Name:      "renders_total",
			Help:      "Rendered forms, by permission level.",
		},
		[]string{"level"},
	)
)

func init() {
	metrics.Registry.MustRegister(fieldsDropped, formsRendered)
}
