/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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

package validator

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"github.com/wso2/game-events-processor/internal/events/model"
	errors2 "github.com/wso2/game-events-processor/internal/system/errors"
	"github.com/wso2/game-events-processor/internal/system/log"
)

const schemaResource = "event_schema.json"

// SchemaValidatorInterface checks event envelopes against the event schema.
type SchemaValidatorInterface interface {
	Validate(envelope map[string]interface{}) Result
}

// Result is the verdict for one envelope. Errors is empty when OK is true.
type Result struct {
	OK     bool
	Errors []model.ValidationError
}

// SchemaValidator holds a compiled schema. It is safe for concurrent use.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

// LoadSchemaValidator reads and compiles the schema file at path.
func LoadSchemaValidator(path string) (*SchemaValidator, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.SCHEMA_LOAD.Code,
			Message:     errors2.SCHEMA_LOAD.Message,
			Description: fmt.Sprintf("Failed to read event schema: %s", path),
		}, err)
	}
	v, err := NewSchemaValidator(data)
	if err != nil {
		return nil, err
	}
	log.GetLogger().Info("Loaded event schema", log.String("path", path))
	return v, nil
}

// NewSchemaValidator compiles a JSON Schema document. Documents without $schema are read as draft 2020-12.
func NewSchemaValidator(schemaJSON []byte) (*SchemaValidator, error) {

	document, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, schemaLoadError("Event schema is not valid JSON", err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)
	if err := compiler.AddResource(schemaResource, document); err != nil {
		return nil, schemaLoadError("Event schema cannot be registered", err)
	}
	schema, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, schemaLoadError("Event schema is not a valid JSON Schema document", err)
	}
	return &SchemaValidator{schema: schema}, nil
}

func schemaLoadError(description string, cause error) error {
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.SCHEMA_LOAD.Code,
		Message:     errors2.SCHEMA_LOAD.Message,
		Description: description,
	}, cause)
}

// Validate never fails the record. A mismatch is reported through Result.
func (v *SchemaValidator) Validate(envelope map[string]interface{}) Result {

	err := v.schema.Validate(envelope)
	if err == nil {
		return Result{OK: true}
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return Result{Errors: []model.ValidationError{{SchemaPath: "#", Keyword: "schema", Message: err.Error()}}}
	}
	errs := validationErrors(verr.BasicOutput())
	if len(errs) == 0 {
		errs = append(errs, model.ValidationError{SchemaPath: "#", Keyword: "schema", Message: verr.Error()})
	}
	return Result{Errors: errs}
}

// validationErrors keeps the output units that name a failed keyword. Units produced by
// $ref hops and subschema groups only wrap their causes.
func validationErrors(out *jsonschema.OutputUnit) []model.ValidationError {

	var errs []model.ValidationError
	for _, unit := range out.Errors {
		if unit.Error == nil {
			continue
		}
		path := unit.Error.Kind.KeywordPath()
		if _, isRef := unit.Error.Kind.(*kind.Reference); isRef || len(path) == 0 {
			continue
		}
		errs = append(errs, model.ValidationError{
			InstancePath: unit.InstanceLocation,
			SchemaPath:   "#" + unit.KeywordLocation,
			Keyword:      path[0],
			Message:      unit.Error.String(),
		})
	}
	slices.SortStableFunc(errs, func(a, b model.ValidationError) int {
		if c := strings.Compare(a.InstancePath, b.InstancePath); c != 0 {
			return c
		}
		return strings.Compare(a.SchemaPath, b.SchemaPath)
	})
	return errs
}
