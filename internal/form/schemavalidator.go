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
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

const formSchemaURL = "https://orderdesk.salesflow.dev/schemas/form.json"

// ErrInvalidFormSchema is returned when a form document does not describe a valid form.
var ErrInvalidFormSchema = errors.New("invalid form schema")

//go:embed formschema.json
var formSchemaJSON []byte

var compileFormSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	document, err := jsonschema.UnmarshalJSON(bytes.NewReader(formSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshal form schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(formSchemaURL, document); err != nil {
		return nil, fmt.Errorf("add form schema resource: %w", err)
	}
	return compiler.Compile(formSchemaURL)
})

// ParseFormSchema validates a form document against the form JSON Schema and decodes it.
func ParseFormSchema(document []byte) (*FormSchema, error) {
	validator, err := compileFormSchema()
	if err != nil {
		return nil, err
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormSchema, err)
	}
	if err := validator.Validate(instance); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFormSchema, validationErr.Error())
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormSchema, err)
	}

	var schema FormSchema
	if err := json.Unmarshal(document, &schema); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormSchema, err)
	}

	// Component ids must be unique across the whole tree.
	seen := make(map[string]struct{})
	if err := checkComponentIDs(schema.Components, seen); err != nil {
		return nil, err
	}
	return &schema, nil
}

func checkComponentIDs(components []FormComponent, seen map[string]struct{}) error {
	for _, component := range components {
		if _, exists := seen[component.ID]; exists {
			return fmt.Errorf("%w: duplicate component id %q", ErrInvalidFormSchema, component.ID)
		}
		seen[component.ID] = struct{}{}
		if err := checkComponentIDs(component.Components, seen); err != nil {
			return err
		}
	}
	return nil
}
