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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/salesflow/orderdesk/internal/system/cache"
	"github.com/salesflow/orderdesk/internal/system/log"
)

const (
	// FormSchemaCacheName is the name of the cache holding parsed form schemas.
	FormSchemaCacheName = "FormSchemaCache"

	repositoryLoggerComponentName = "FormRepository"
	formSchemaFileExtension       = ".json"
)

// ErrFormNotFound is returned when no form schema is registered under a key.
var ErrFormNotFound = errors.New("form schema not found")

// FormRepositoryInterface provides access to the form schemas known to the server.
type FormRepositoryInterface interface {
	GetFormSchema(key string) (*FormSchema, error)
	ListFormSchemas() []FormSummary
}

type formIndexEntry struct {
	path    string
	summary FormSummary
}

// fileRepository serves form schemas from the JSON documents of a directory. The directory is
// indexed once and the index is read-only afterwards; documents are parsed again on a cache miss.
type fileRepository struct {
	index map[string]formIndexEntry
	cache cache.CacheInterface[*FormSchema]
}

// newFileRepository indexes the form documents of a directory. Invalid documents are logged and
// skipped. A missing directory yields an empty repository.
func newFileRepository(directory string, schemaCache cache.CacheInterface[*FormSchema]) (*fileRepository, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, repositoryLoggerComponentName))
	repo := &fileRepository{
		index: make(map[string]formIndexEntry),
		cache: schemaCache,
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Form schema directory does not exist", log.String("directory", directory))
			return repo, nil
		}
		return nil, fmt.Errorf("failed to read form schema directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), formSchemaFileExtension) {
			continue
		}
		path := filepath.Join(directory, entry.Name())
		schema, err := readFormSchema(path)
		if err != nil {
			logger.Warn("Skipping invalid form schema", log.String("file", path), log.Error(err))
			continue
		}
		if existing, ok := repo.index[schema.ID]; ok {
			logger.Warn("Skipping form schema with a duplicate id", log.String("file", path),
				log.String(log.LoggerKeyFormKey, schema.ID), log.String("registeredFile", existing.path))
			continue
		}
		repo.index[schema.ID] = formIndexEntry{path: path, summary: summarize(schema)}
		repo.cache.Set(cache.CacheKey{Key: schema.ID}, schema)
	}

	logger.Debug("Indexed form schemas", log.Int("count", len(repo.index)))
	return repo, nil
}

// GetFormSchema returns the schema registered under the key.
func (r *fileRepository) GetFormSchema(key string) (*FormSchema, error) {
	if schema, ok := r.cache.Get(cache.CacheKey{Key: key}); ok {
		return schema, nil
	}

	entry, ok := r.index[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFormNotFound, key)
	}

	schema, err := readFormSchema(entry.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrFormNotFound, key)
		}
		return nil, err
	}
	if schema.ID != key {
		return nil, fmt.Errorf("%w: %q", ErrFormNotFound, key)
	}
	r.cache.Set(cache.CacheKey{Key: key}, schema)
	return schema, nil
}

// ListFormSchemas returns the summaries of the indexed forms ordered by id.
func (r *fileRepository) ListFormSchemas() []FormSummary {
	summaries := make([]FormSummary, 0, len(r.index))
	for _, entry := range r.index {
		summaries = append(summaries, entry.summary)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries
}

func readFormSchema(path string) (*FormSchema, error) {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	return ParseFormSchema(content)
}

func summarize(schema *FormSchema) FormSummary {
	levels := schema.SupportedLevels
	if len(levels) == 0 {
		levels = []PermissionLevel{LevelView, LevelEdit, LevelApprove}
	}
	return FormSummary{
		ID:              schema.ID,
		Name:            schema.Name,
		TaskType:        schema.TaskType,
		SupportedLevels: append([]PermissionLevel(nil), levels...),
	}
}
