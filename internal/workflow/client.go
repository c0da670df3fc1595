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

// Package workflow is the client of the external BPM engine REST API.
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/salesflow/orderdesk/internal/system/config"
	"github.com/salesflow/orderdesk/internal/system/constants"
	syshttp "github.com/salesflow/orderdesk/internal/system/http"
	"github.com/salesflow/orderdesk/internal/system/log"
	"github.com/salesflow/orderdesk/internal/system/tracing"
)

const (
	loggerComponentName = "WorkflowClient"
	maxResponseSize     = 8 << 20
	maxErrorBodyLength  = 512
	// maxSearchPages bounds the pages read for one flow node search.
	maxSearchPages = 20
)

// Client is the set of engine operations the server relies on.
type Client interface {
	// GetProcessInstance returns the process instance together with its active user task, if any.
	GetProcessInstance(ctx context.Context, key string) (*ProcessInstance, error)
	// SearchFlowNodeInstances returns the flow node instances of a process instance, oldest first.
	SearchFlowNodeInstances(ctx context.Context, key string) ([]FlowNodeInstance, error)
	// FindLatestProcessDefinition returns the newest deployed version of a BPMN process.
	FindLatestProcessDefinition(ctx context.Context, bpmnProcessID string) (*ProcessDefinition, error)
	// GetProcessDefinitionXML returns the BPMN XML of a deployed process definition.
	GetProcessDefinitionXML(ctx context.Context, processDefinitionKey string) (string, error)
	// Ping checks the engine answers requests.
	Ping(ctx context.Context) error
}

// engineClient talks to an Operate style REST API. Every call passes the rate limiter and
// the circuit breaker; idempotent calls are retried with exponential backoff.
type engineClient struct {
	baseURL      string
	httpClient   syshttp.HTTPClientInterface
	limiter      *rate.Limiter
	breaker      *circuitBreaker
	maxRetries   int
	retryBackoff time.Duration
	pageSize     int
	username     string
	password     string
	tracer       trace.Tracer
}

// request describes one logical engine call.
type request struct {
	operation string
	method    string
	path      string
	body      any
	accept    string
	retry     bool
}

// NewClient creates an engine client from the workflow configuration.
func NewClient(cfg config.WorkflowConfig, httpClient syshttp.HTTPClientInterface) Client {
	if httpClient == nil {
		httpClient = syshttp.NewHTTPClientWithTimeout(time.Duration(cfg.RequestTimeout) * time.Second)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}
	pageSize := cfg.SearchPageSize
	if pageSize <= 0 {
		pageSize = 200
	}

	return &engineClient{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:   httpClient,
		limiter:      rate.NewLimiter(limit, burst),
		breaker:      newCircuitBreaker(cfg.BreakerThreshold, time.Duration(cfg.BreakerCooldown)*time.Second),
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: time.Duration(cfg.RetryBackoff) * time.Millisecond,
		pageSize:     pageSize,
		username:     cfg.Username,
		password:     cfg.Password,
		tracer:       tracing.Tracer("workflow"),
	}
}

// GetProcessInstance returns the process instance together with its active user task, if any.
// A failure to look up the active task leaves CurrentElementID empty instead of failing the call.
func (c *engineClient) GetProcessInstance(ctx context.Context, key string) (*ProcessInstance, error) {
	instanceKey, err := parseKey(key)
	if err != nil {
		return nil, err
	}

	body, err := c.execute(ctx, request{
		operation: "getProcessInstance",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/v1/process-instances/%d", instanceKey),
		retry:     true,
	})
	if err != nil {
		return nil, err
	}

	instance, err := decodeJSON[ProcessInstance](body)
	if err != nil {
		return nil, err
	}
	if instance.Key == 0 || instance.State == "" {
		return nil, fmt.Errorf("%w: process instance without key or state", ErrMalformedResponse)
	}

	activeTasks, err := c.searchFlowNodes(ctx, "searchActiveUserTasks", flowNodeFilter{
		ProcessInstanceKey: instanceKey,
		State:              FlowNodeStateActive,
		Type:               FlowNodeTypeUserTask,
	})
	if err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Warn("Failed to resolve the active user task", log.String(log.LoggerKeyProcessInstanceKey, key),
				log.Error(err))
		return &instance, nil
	}
	if len(activeTasks) > 0 {
		// Results are oldest first, the newest activation is the current one.
		current := activeTasks[len(activeTasks)-1]
		instance.CurrentElementID = current.FlowNodeID
		instance.Assignee = current.Assignee
	}
	return &instance, nil
}

// SearchFlowNodeInstances returns the flow node instances of a process instance, oldest first.
func (c *engineClient) SearchFlowNodeInstances(ctx context.Context, key string) ([]FlowNodeInstance, error) {
	instanceKey, err := parseKey(key)
	if err != nil {
		return nil, err
	}
	return c.searchFlowNodes(ctx, "searchFlowNodeInstances", flowNodeFilter{ProcessInstanceKey: instanceKey})
}

// searchFlowNodes pages through the matching flow nodes newest first and returns them oldest
// first. When the result exceeds maxSearchPages the oldest entries are the ones left out.
func (c *engineClient) searchFlowNodes(ctx context.Context, operation string,
	filter flowNodeFilter) ([]FlowNodeInstance, error) {
	var (
		nodes  []FlowNodeInstance
		cursor json.RawMessage
		total  int64
	)
	for page := 0; page < maxSearchPages; page++ {
		body, err := c.execute(ctx, request{
			operation: operation,
			method:    http.MethodPost,
			path:      "/v1/flownode-instances/search",
			body: flowNodeSearchRequest{
				Filter:      filter,
				Size:        c.pageSize,
				Sort:        []sortField{{Field: "startDate", Order: "DESC"}},
				SearchAfter: cursor,
			},
			retry: true,
		})
		if err != nil {
			return nil, err
		}

		result, err := decodeJSON[searchResponse[FlowNodeInstance]](body)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, result.Items...)
		total = result.Total
		if len(result.Items) < c.pageSize || int64(len(nodes)) >= total || !hasCursor(result.SortValues) {
			break
		}
		cursor = result.SortValues
	}

	if total > int64(len(nodes)) {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Warn("Flow node search result truncated", log.Int64("total", total),
				log.Int("returned", len(nodes)))
	}
	slices.Reverse(nodes)
	return nodes, nil
}

func hasCursor(sortValues json.RawMessage) bool {
	trimmed := bytes.TrimSpace(sortValues)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) && !bytes.Equal(trimmed, []byte("[]"))
}

// FindLatestProcessDefinition returns the newest deployed version of a BPMN process.
func (c *engineClient) FindLatestProcessDefinition(ctx context.Context,
	bpmnProcessID string) (*ProcessDefinition, error) {
	if strings.TrimSpace(bpmnProcessID) == "" {
		return nil, ErrInvalidKey
	}

	body, err := c.execute(ctx, request{
		operation: "findProcessDefinition",
		method:    http.MethodPost,
		path:      "/v1/process-definitions/search",
		body: processDefinitionSearchRequest{
			Filter: &processDefinitionFilter{BPMNProcessID: bpmnProcessID},
			Size:   1,
			Sort:   []sortField{{Field: "version", Order: "DESC"}},
		},
		retry: true,
	})
	if err != nil {
		return nil, err
	}

	result, err := decodeJSON[searchResponse[ProcessDefinition]](body)
	if err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("process definition %q: %w", bpmnProcessID, ErrNotFound)
	}
	return &result.Items[0], nil
}

// GetProcessDefinitionXML returns the BPMN XML of a deployed process definition.
func (c *engineClient) GetProcessDefinitionXML(ctx context.Context, processDefinitionKey string) (string, error) {
	definitionKey, err := parseKey(processDefinitionKey)
	if err != nil {
		return "", err
	}

	body, err := c.execute(ctx, request{
		operation: "getProcessDefinitionXML",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/v1/process-definitions/%d/xml", definitionKey),
		accept:    constants.ContentTypeXML,
		retry:     true,
	})
	if err != nil {
		return "", err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return "", fmt.Errorf("%w: empty process definition", ErrMalformedResponse)
	}
	return string(body), nil
}

// Ping issues a single, non retried definition search.
func (c *engineClient) Ping(ctx context.Context) error {
	_, err := c.execute(ctx, request{
		operation: "ping",
		method:    http.MethodPost,
		path:      "/v1/process-definitions/search",
		body:      processDefinitionSearchRequest{Size: 1},
	})
	return err
}

// execute runs a request with tracing and metrics around the retry loop.
func (c *engineClient) execute(ctx context.Context, req request) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "workflow."+req.operation,
		trace.WithAttributes(attribute.String("workflow.path", req.path)))
	start := time.Now()

	body, err := c.executeWithRetry(ctx, req)

	engineRequestDuration.WithLabelValues(req.operation).Observe(time.Since(start).Seconds())
	engineRequests.WithLabelValues(req.operation, outcome(err)).Inc()
	tracing.EndSpan(span, err)
	return body, err
}

func (c *engineClient) executeWithRetry(ctx context.Context, req request) ([]byte, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String("operation", req.operation))

	var payload []byte
	if req.body != nil {
		var err error
		if payload, err = json.Marshal(req.body); err != nil {
			return nil, fmt.Errorf("failed to encode %s request: %w", req.operation, err)
		}
	}

	attempts := 1
	if req.retry {
		attempts += c.maxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := computeBackoff(c.retryBackoff, attempt-1)
			logger.Debug("Retrying workflow engine call", log.Int("attempt", attempt+1),
				log.Duration("backoff", delay), log.Error(lastErr))
			if err := waitForBackoff(ctx, delay); err != nil {
				return nil, fmt.Errorf("%w (last error: %w)", err, lastErr)
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("workflow engine rate limit: %w", err)
		}
		if err := c.breaker.allow(); err != nil {
			return nil, err
		}

		body, err := c.attempt(ctx, req, payload)
		c.recordOutcome(err, logger)
		if err == nil {
			return body, nil
		}

		lastErr = err
		if !isRetryable(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *engineClient) recordOutcome(err error, logger *log.Logger) {
	switch {
	case errors.Is(err, context.Canceled):
		c.breaker.release()
	case countsAsFailure(err):
		if c.breaker.recordFailure() {
			breakerOpened.Inc()
			logger.Warn("Workflow engine circuit breaker opened", log.Error(err))
		}
	default:
		c.breaker.recordSuccess()
	}
}

// attempt performs one HTTP exchange and turns non-2xx answers into *HTTPError.
func (c *engineClient) attempt(ctx context.Context, req request, payload []byte) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", req.operation, err)
	}
	if payload != nil {
		httpReq.Header.Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	}
	accept := req.accept
	if accept == "" {
		accept = constants.ContentTypeJSON
	}
	httpReq.Header.Set(constants.AcceptHeaderName, accept)
	if c.username != "" {
		httpReq.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", req.operation, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := string(body)
		if len(message) > maxErrorBodyLength {
			message = message[:maxErrorBodyLength]
		}
		return nil, &HTTPError{Operation: req.operation, StatusCode: resp.StatusCode, Body: message}
	}
	return body, nil
}

func decodeJSON[T any](body []byte) (T, error) {
	var value T
	if err := json.Unmarshal(body, &value); err != nil {
		return value, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return value, nil
}

// parseKey validates an engine key, which is a positive 64 bit integer.
func parseKey(key string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return value, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrCircuitOpen):
		return "rejected"
	default:
		return "failure"
	}
}
