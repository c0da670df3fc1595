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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type staticCatalogFile struct {
	Catalogs []staticCatalog `yaml:"catalogs"`
}

type staticCatalog struct {
	ProcessID string           `yaml:"process_id"`
	Steps     []StepDefinition `yaml:"steps"`
}

// LoadStaticCatalogs reads the fallback catalogs from a YAML file, keyed by process id.
func LoadStaticCatalogs(path string) (map[string]*StepCatalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read static catalogs: %w", err)
	}
	return ParseStaticCatalogs(content)
}

// ParseStaticCatalogs decodes YAML catalogs. Every catalog needs a process id and every step an id.
func ParseStaticCatalogs(content []byte) (map[string]*StepCatalog, error) {
	var file staticCatalogFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse static catalogs: %w", err)
	}

	catalogs := make(map[string]*StepCatalog, len(file.Catalogs))
	for i, entry := range file.Catalogs {
		if entry.ProcessID == "" {
			return nil, fmt.Errorf("%w: static catalog %d has no process_id", ErrInvalidDefinition, i)
		}
		if _, dup := catalogs[entry.ProcessID]; dup {
			return nil, fmt.Errorf("%w: duplicate static catalog %q", ErrInvalidDefinition, entry.ProcessID)
		}

		steps := make([]StepDefinition, 0, len(entry.Steps))
		for j, step := range entry.Steps {
			if step.ID == "" {
				return nil, fmt.Errorf("%w: step %d of %q has no id", ErrInvalidDefinition, j, entry.ProcessID)
			}
			steps = append(steps, StepDefinition{ID: step.ID, Name: displayName(step.ID, step.Name)})
		}
		catalogs[entry.ProcessID] = NewStepCatalog(entry.ProcessID, steps)
	}
	return catalogs, nil
}
