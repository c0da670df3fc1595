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
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/salesflow/orderdesk/internal/catalog"
	"github.com/salesflow/orderdesk/internal/system/log"
	"github.com/salesflow/orderdesk/internal/system/tracing"
)

const (
	reconcileLoggerComponentName = "StatusAggregator"

	sourceLive     = "live"
	sourceHistory  = "history"
	sourceInstance = "instance"
)

// liveStep is the resolved live state of one step after collapsing repeated flow node entries.
type liveStep struct {
	status      StepStatus
	completedAt *time.Time
}

// Reconcile merges live engine state, approval history and the step catalog into the status of
// every catalog step. It never fails: a failing source is logged and treated as empty, and an
// unknown process state is reported as ACTIVE. Nil sources are treated as empty.
//
// The three sources are queried concurrently. Callers bound the total time through ctx.
func Reconcile(ctx context.Context, processInstanceKey, currentElementID, assignee string,
	stepCatalog *catalog.StepCatalog, live LiveSource, history HistorySource,
	instance InstanceSource) ProcessFlowStatus {
	start := time.Now()
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, reconcileLoggerComponentName),
		log.String(log.LoggerKeyProcessInstanceKey, processInstanceKey))

	ctx, span := tracing.Tracer("processflow").Start(ctx, "processflow.Reconcile",
		trace.WithAttributes(tracing.StringAttr("process_instance.key", processInstanceKey)))
	defer span.End()

	var (
		wg            sync.WaitGroup
		flowNodes     []FlowNodeState
		records       []HistoryRecord
		instanceState ProcessStatus
		liveErr       error
		historyErr    error
		instanceErr   error
	)
	if live != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			liveErr = fetch(ctx, sourceLive, func(ctx context.Context) (err error) {
				flowNodes, err = live.ListFlowNodeStates(ctx, processInstanceKey)
				return err
			})
		}()
	}
	if history != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			historyErr = fetch(ctx, sourceHistory, func(ctx context.Context) (err error) {
				records, err = history.ListHistory(ctx, processInstanceKey)
				return err
			})
		}()
	}
	if instance != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			instanceErr = fetch(ctx, sourceInstance, func(ctx context.Context) (err error) {
				instanceState, err = instance.GetProcessInstanceState(ctx, processInstanceKey)
				return err
			})
		}()
	}
	wg.Wait()

	if liveErr != nil {
		logger.Warn("Live workflow state unavailable, continuing without it", log.Error(liveErr))
		flowNodes = nil
	}
	if historyErr != nil {
		logger.Warn("Approval history unavailable, continuing without it", log.Error(historyErr))
		records = nil
	}
	if instanceErr != nil {
		logger.Warn("Process instance state unavailable, assuming ACTIVE", log.Error(instanceErr))
	}

	var steps []catalog.StepDefinition
	if stepCatalog != nil {
		steps = stepCatalog.Steps()
	}
	known := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		known[step.ID] = struct{}{}
	}

	liveByID := collapseFlowNodes(flowNodes, currentElementID, known, logger)
	completedByID := latestCompletions(records)

	result := ProcessFlowStatus{
		ProcessInstanceKey: processInstanceKey,
		ProcessStatus:      resolveProcessStatus(instanceState, instanceErr),
		Steps:              make([]Step, 0, len(steps)),
	}
	for _, definition := range steps {
		step := Step{ID: definition.ID, Name: definition.Name}
		historyCompletedAt, inHistory := completedByID[definition.ID]

		switch entry, inLive := liveByID[definition.ID]; {
		case inLive:
			step.Status = entry.status
			if entry.status == StepStatusCompleted {
				step.CompletedAt = entry.completedAt
				if step.CompletedAt == nil && inHistory {
					step.CompletedAt = utcCopy(historyCompletedAt)
				}
			}
		case inHistory:
			step.Status = StepStatusCompleted
			step.CompletedAt = utcCopy(historyCompletedAt)
		default:
			step.Status = fallbackStatus(definition.ID, currentElementID)
		}

		if step.Status == StepStatusCurrent && definition.ID == currentElementID {
			step.Assignee = assignee
		}
		result.Steps = append(result.Steps, step)
	}
	result.CurrentStepID = currentStepID(result.Steps, currentElementID)

	reconcileDuration.Observe(time.Since(start).Seconds())
	logger.Debug("Reconciled process flow", log.Int("steps", len(result.Steps)),
		log.Int("liveEntries", len(flowNodes)), log.Int("historyRecords", len(records)),
		log.String("processStatus", string(result.ProcessStatus)))
	return result
}

// fetch runs one source query in its own span. A panicking source is reported as a failure.
func fetch(ctx context.Context, source string, query func(context.Context) error) (err error) {
	ctx, span := tracing.Tracer("processflow").Start(ctx, "processflow.fetch."+source)
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%s source panicked: %v", source, recovered)
		}
		if err != nil {
			sourceFailures.WithLabelValues(source).Inc()
		}
		tracing.EndSpan(span, err)
	}()
	return query(ctx)
}

// collapseFlowNodes maps live entries, oldest first, to step statuses. When a step was entered
// several times the latest entry wins, except that an entry mapping to PENDING never replaces a
// completed or current one.
func collapseFlowNodes(flowNodes []FlowNodeState, currentElementID string, known map[string]struct{},
	logger *log.Logger) map[string]liveStep {
	liveByID := make(map[string]liveStep, len(flowNodes))
	for _, node := range flowNodes {
		if _, ok := known[node.FlowNodeID]; !ok {
			// Gateways and events are reported as flow nodes too, so this is expected at debug level.
			unknownSteps.Inc()
			logger.Debug("Dropping flow node absent from the step catalog",
				log.String(log.LoggerKeyStepID, node.FlowNodeID), log.String("state", node.State))
			continue
		}

		candidate := liveStep{status: mapLiveState(node.FlowNodeID, node.State, currentElementID)}
		if candidate.status == StepStatusCompleted && node.EndDate != nil {
			candidate.completedAt = utcCopy(*node.EndDate)
		}

		if existing, seen := liveByID[node.FlowNodeID]; !seen || supersedes(candidate, existing) {
			liveByID[node.FlowNodeID] = candidate
		}
	}
	return liveByID
}

// supersedes reports whether a later entry of a step replaces the one kept so far. A reworked step
// that is active again shows as current; of two completions the one that ended last is kept.
func supersedes(later, earlier liveStep) bool {
	switch {
	case later.status == StepStatusPending:
		return earlier.status == StepStatusPending
	case later.status == StepStatusCompleted && earlier.status == StepStatusCompleted:
		return !laterThan(earlier.completedAt, later.completedAt)
	default:
		return true
	}
}

// mapLiveState maps an engine lifecycle state, case-insensitively, to a step status.
func mapLiveState(stepID, state, currentElementID string) StepStatus {
	switch strings.ToUpper(strings.TrimSpace(state)) {
	case "COMPLETED":
		return StepStatusCompleted
	case "ACTIVE", "ACTIVATED":
		return StepStatusCurrent
	case "TERMINATED", "CANCELED":
		return StepStatusPending
	default:
		return fallbackStatus(stepID, currentElementID)
	}
}

func fallbackStatus(stepID, currentElementID string) StepStatus {
	if currentElementID != "" && stepID == currentElementID {
		return StepStatusCurrent
	}
	return StepStatusPending
}

// latestCompletions keeps the newest completion timestamp per step.
func latestCompletions(records []HistoryRecord) map[string]time.Time {
	completed := make(map[string]time.Time, len(records))
	for _, record := range records {
		if existing, ok := completed[record.StepID]; !ok || record.CompletedAt.After(existing) {
			completed[record.StepID] = record.CompletedAt
		}
	}
	return completed
}

func resolveProcessStatus(state ProcessStatus, err error) ProcessStatus {
	if err != nil {
		return ProcessStatusActive
	}
	switch ProcessStatus(strings.ToUpper(string(state))) {
	case ProcessStatusCompleted:
		return ProcessStatusCompleted
	case ProcessStatusCanceled:
		return ProcessStatusCanceled
	default:
		return ProcessStatusActive
	}
}

// currentStepID prefers the engine reported element and falls back to the first CURRENT step.
func currentStepID(steps []Step, currentElementID string) string {
	first := ""
	for _, step := range steps {
		if step.Status != StepStatusCurrent {
			continue
		}
		if step.ID == currentElementID {
			return step.ID
		}
		if first == "" {
			first = step.ID
		}
	}
	return first
}

func laterThan(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	return b == nil || a.After(*b)
}

// utcCopy returns a UTC copy of t, or nil for the zero time.
func utcCopy(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	copied := t.UTC()
	return &copied
}
