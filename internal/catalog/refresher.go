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

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/salesflow/orderdesk/internal/system/log"
)

// Refresher periodically drops every cached catalog so newly deployed definitions are picked up.
type Refresher struct {
	cron *cron.Cron
}

// NewRefresher schedules InvalidateAll on the given cron spec, for example "@every 10m".
func NewRefresher(schedule string, provider ProviderInterface) (*Refresher, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "StepCatalogRefresher"))

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		provider.InvalidateAll()
		logger.Debug("Cleared cached step catalogs")
	}); err != nil {
		return nil, fmt.Errorf("invalid catalog refresh schedule %q: %w", schedule, err)
	}
	return &Refresher{cron: c}, nil
}

// Start runs the schedule in the background.
func (r *Refresher) Start() {
	r.cron.Start()
}

// Stop halts the schedule. The returned context is done once a running refresh has finished.
func (r *Refresher) Stop() context.Context {
	return r.cron.Stop()
}
