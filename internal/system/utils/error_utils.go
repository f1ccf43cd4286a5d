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

package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// RequestShape describes the JSON object a handler decodes, for client-facing messages.
type RequestShape struct {
	Resource string
	// Fields lists the accepted keys, dotted for nested ones (records[].recordId).
	Fields []string
}

func (s RequestShape) expected() string {
	return strings.Join(s.Fields, ", ")
}

// HandleDecodeError turns an error from decoding a JSON object request body into a client message.
func HandleDecodeError(err error, shape RequestShape) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, io.EOF) {
		return fmt.Sprintf("Request body for %s is empty.", shape.Resource)
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Sprintf("Request body for %s exceeds %d bytes.", shape.Resource, tooLarge.Limit)
	}

	// Reported by json.Decoder.DisallowUnknownFields.
	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return fmt.Sprintf("Unknown field %s in %s request body. Accepted fields: %s.",
			field, shape.Resource, shape.expected())
	}

	var se *json.SyntaxError
	if errors.As(err, &se) {
		return fmt.Sprintf("Malformed JSON at offset %d in %s request body. Expected an object with %s.",
			se.Offset, shape.Resource, shape.expected())
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Sprintf("Truncated JSON in %s request body. Expected an object with %s.",
			shape.Resource, shape.expected())
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		if ute.Field == "" {
			return fmt.Sprintf("Request body for %s must be a JSON object, got %s.", shape.Resource, ute.Value)
		}
		return fmt.Sprintf("Field '%s' in %s request body must be %s, got %s.",
			ute.Field, shape.Resource, jsonKind(ute.Type), ute.Value)
	}

	return fmt.Sprintf("Invalid JSON payload for %s.", shape.Resource)
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	default:
		return "a " + t.Kind().String()
	}
}
