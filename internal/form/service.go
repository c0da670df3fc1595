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
	"errors"

	"github.com/salesflow/orderdesk/internal/system/error/serviceerror"
	"github.com/salesflow/orderdesk/internal/system/log"
)

const serviceLoggerComponentName = "FormService"

// FormServiceInterface defines the operations of the form service.
type FormServiceInterface interface {
	RenderForm(key, level string, variables, taskInfo map[string]any) (*RenderedForm, *serviceerror.ServiceError)
	ListForms() []FormSummary
}

// formService renders the schemas of a repository.
type formService struct {
	repository FormRepositoryInterface
	renderer   *Renderer
}

func newFormService(repository FormRepositoryInterface, renderer *Renderer) FormServiceInterface {
	return &formService{repository: repository, renderer: renderer}
}

// RenderForm renders the form registered under the key for the given permission level.
func (s *formService) RenderForm(key, level string, variables,
	taskInfo map[string]any) (*RenderedForm, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName),
		log.String(log.LoggerKeyFormKey, key))

	permissionLevel, err := ParsePermissionLevel(level)
	if err != nil {
		return nil, &ErrorInvalidPermissionLevel
	}

	schema, err := s.repository.GetFormSchema(key)
	if err != nil {
		if errors.Is(err, ErrFormNotFound) {
			return nil, &ErrorFormNotFound
		}
		logger.Error("Failed to load form schema", log.Error(err))
		return nil, &ErrorInternalServerError
	}
	if !schema.Supports(permissionLevel) {
		return nil, &ErrorUnsupportedPermissionLevel
	}

	rendered, stats := s.renderer.render(schema, permissionLevel, variables, taskInfo)
	for reason, count := range stats {
		fieldsDropped.WithLabelValues(reason).Add(float64(count))
	}
	formsRendered.WithLabelValues(permissionLevel.String()).Inc()

	if logger.IsDebugEnabled() {
		logger.Debug("Rendered form", log.String("level", permissionLevel.String()),
			log.Int("components", len(rendered.Components)),
			log.Int("droppedByPermission", stats[dropReasonPermission]),
			log.Int("droppedByConditional", stats[dropReasonConditional]))
	}
	return &rendered, nil
}

// ListForms returns the summaries of all known forms.
func (s *formService) ListForms() []FormSummary {
	return s.repository.ListFormSchemas()
}
