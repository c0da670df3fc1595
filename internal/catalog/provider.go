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
	"errors"
	"fmt"
	"strconv"

	"github.com/salesflow/orderdesk/internal/system/cache"
	"github.com/salesflow/orderdesk/internal/system/log"
	"github.com/salesflow/orderdesk/internal/system/tracing"
	"github.com/salesflow/orderdesk/internal/workflow"
)

const (
	providerLoggerComponentName = "StepCatalogProvider"
	// CacheName is the name of the cache holding catalogs derived from deployed definitions.
	CacheName = "StepCatalogCache"
)

var errNoDefinitionSource = errors.New("no workflow engine configured")

// DefinitionSource reads deployed process definitions from the workflow engine.
type DefinitionSource interface {
	FindLatestProcessDefinition(ctx context.Context, bpmnProcessID string) (*workflow.ProcessDefinition, error)
	GetProcessDefinitionXML(ctx context.Context, processDefinitionKey string) (string, error)
}

// ProviderInterface resolves step catalogs by BPMN process id.
type ProviderInterface interface {
	GetCatalog(ctx context.Context, processID string) (*StepCatalog, error)
	Invalidate(processID string)
	InvalidateAll()
}

// provider resolves catalogs from the cache, then the engine, then the static fallback file.
// Static catalogs are never cached so the engine version takes over as soon as it is reachable.
type provider struct {
	source       DefinitionSource
	static       map[string]*StepCatalog
	catalogCache cache.CacheInterface[*StepCatalog]
}

// NewProvider creates a catalog provider. Both source and static may be nil.
func NewProvider(source DefinitionSource, static map[string]*StepCatalog,
	catalogCache cache.CacheInterface[*StepCatalog]) ProviderInterface {
	return &provider{
		source:       source,
		static:       static,
		catalogCache: catalogCache,
	}
}

// GetCatalog returns the catalog of the latest deployed version of the process.
func (p *provider) GetCatalog(ctx context.Context, processID string) (*StepCatalog, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, providerLoggerComponentName),
		log.String(log.LoggerKeyProcessID, processID))

	if processID == "" {
		return nil, fmt.Errorf("%w: empty process id", ErrCatalogNotFound)
	}

	cacheKey := cache.CacheKey{Key: processID}
	if cached, ok := p.catalogCache.Get(cacheKey); ok {
		catalogResolutions.WithLabelValues(sourceCache).Inc()
		return cached, nil
	}

	stepCatalog, engineErr := p.fromEngine(ctx, processID)
	if engineErr == nil {
		p.catalogCache.Set(cacheKey, stepCatalog)
		catalogResolutions.WithLabelValues(sourceEngine).Inc()
		logger.Debug("Resolved step catalog from the workflow engine", log.Int("steps", stepCatalog.Len()))
		return stepCatalog, nil
	}

	if static, ok := p.static[processID]; ok {
		logger.Warn("Falling back to the static step catalog", log.Error(engineErr))
		catalogResolutions.WithLabelValues(sourceStatic).Inc()
		return static, nil
	}

	catalogResolutions.WithLabelValues(sourceNone).Inc()
	return nil, fmt.Errorf("%w: %q: %w", ErrCatalogNotFound, processID, engineErr)
}

func (p *provider) fromEngine(ctx context.Context, processID string) (stepCatalog *StepCatalog, err error) {
	if p.source == nil {
		return nil, errNoDefinitionSource
	}

	ctx, span := tracing.Tracer("catalog").Start(ctx, "catalog.fromEngine")
	span.SetAttributes(tracing.StringAttr("bpmn.process_id", processID))
	defer func() { tracing.EndSpan(span, err) }()

	definition, err := p.source.FindLatestProcessDefinition(ctx, processID)
	if err != nil {
		return nil, err
	}
	document, err := p.source.GetProcessDefinitionXML(ctx, strconv.FormatInt(definition.Key, 10))
	if err != nil {
		return nil, err
	}
	return ParseBPMN(processID, document)
}

// Invalidate drops the cached catalog of one process.
func (p *provider) Invalidate(processID string) {
	p.catalogCache.Delete(cache.CacheKey{Key: processID})
}

// InvalidateAll drops every cached catalog.
func (p *provider) InvalidateAll() {
	p.catalogCache.Clear()
}
