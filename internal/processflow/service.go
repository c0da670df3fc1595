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
	"context"
	"strconv"
	"time"

	"github.com/salesflow/orderdesk/internal/catalog"
	"github.com/salesflow/orderdesk/internal/system/error/serviceerror"
	"github.com/salesflow/orderdesk/internal/system/log"
	"github.com/salesflow/orderdesk/internal/workflow"
)

const serviceLoggerComponentName = "ProcessFlowService"

// ProcessFlowServiceInterface defines the process flow operations.
type ProcessFlowServiceInterface interface {
	GetProcessFlowStatus(ctx context.Context, processInstanceKey string) (
		*ProcessFlowStatus, *serviceerror.ServiceError)
}

// processFlowService resolves the instance and its catalog and then reconciles.
type processFlowService struct {
	engine             EngineClient
	catalogs           catalog.ProviderInterface
	history            HistorySource
	defaultProcessID   string
	aggregationTimeout time.Duration
}

// NewProcessFlowService creates a process flow service. A nil history source reconciles against the
// engine alone.
func NewProcessFlowService(engine EngineClient, catalogs catalog.ProviderInterface, history HistorySource,
	defaultProcessID string, aggregationTimeout time.Duration) ProcessFlowServiceInterface {
	return &processFlowService{
		engine:             engine,
		catalogs:           catalogs,
		history:            history,
		defaultProcessID:   defaultProcessID,
		aggregationTimeout: aggregationTimeout,
	}
}

// GetProcessFlowStatus returns the reconciled step status of a process instance.
// Only an invalid key or a missing catalog are reported as errors; source failures degrade the result.
func (s *processFlowService) GetProcessFlowStatus(ctx context.Context, processInstanceKey string) (
	*ProcessFlowStatus, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName),
		log.String(log.LoggerKeyProcessInstanceKey, processInstanceKey))

	if key, err := strconv.ParseInt(processInstanceKey, 10, 64); err != nil || key <= 0 {
		return nil, &ErrorInvalidProcessInstanceKey
	}

	if s.aggregationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.aggregationTimeout)
		defer cancel()
	}

	var (
		instance    *workflow.ProcessInstance
		instanceErr error
		live        LiveSource
	)
	if s.engine != nil {
		instance, instanceErr = s.engine.GetProcessInstance(ctx, processInstanceKey)
		live = NewLiveSource(s.engine)
	} else {
		instanceErr = errNoEngine
	}
	if instanceErr != nil {
		logger.Warn("Process instance lookup failed, using the default process", log.Error(instanceErr))
	}

	processID := s.defaultProcessID
	currentElementID, assignee := "", ""
	if instanceErr == nil {
		if instance.BPMNProcessID != "" {
			processID = instance.BPMNProcessID
		}
		currentElementID, assignee = instance.CurrentElementID, instance.Assignee
	}
	if processID == "" {
		return nil, serviceerror.CustomServiceError(ErrorCatalogUnavailable,
			"The process of the instance is unknown and no default process is configured")
	}

	stepCatalog, err := s.catalogs.GetCatalog(ctx, processID)
	if err != nil {
		logger.Error("Step catalog unavailable", log.String(log.LoggerKeyProcessID, processID), log.Error(err))
		return nil, &ErrorCatalogUnavailable
	}

	status := Reconcile(ctx, processInstanceKey, currentElementID, assignee, stepCatalog, live, s.history,
		resolvedInstance(instance, instanceErr))
	return &status, nil
}
