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

package errors

import (
	"errors"
	"fmt"
)

type ErrorMessage struct {
	Code        string `json:"error_code"`
	Message     string `json:"error_message"`
	Description string `json:"error_description"`
}

type ClientError struct {
	ErrorMessage
	StatusCode int
}

type ServerError struct {
	ErrorMessage
	Err error
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
}

func (e *ServerError) Unwrap() error {
	return e.Err
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewServerError(msg ErrorMessage, cause error) *ServerError {
	return &ServerError{
		ErrorMessage: msg,
		Err:          cause,
	}
}

func NewClientError(msg ErrorMessage, code int) *ClientError {
	return &ClientError{
		ErrorMessage: msg,
		StatusCode:   code,
	}
}

// Kind classifies a record-level failure.
type Kind string

const (
	KindMalformedEnvelope       Kind = "MalformedEnvelope"
	KindSchemaMismatch          Kind = "SchemaMismatch"
	KindDuplicateEvent          Kind = "DuplicateEvent"
	KindUnregisteredApplication Kind = "UnregisteredApplication"
	KindBackingStoreFailure     Kind = "BackingStoreFailure"
	KindTransformFailure        Kind = "TransformFailure"
	KindStateSinkFailure        Kind = "StateSinkFailure"
)

// ProcessingError is a failure raised while processing a single record.
type ProcessingError struct {
	ErrorMessage
	Kind Kind
	Err  error
}

func (e *ProcessingError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Kind, e.Description)
	}
	return fmt.Sprintf("[%s] %s: %s: %v", e.Code, e.Kind, e.Description, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// NewProcessingError builds a ProcessingError from a catalogue entry.
func NewProcessingError(kind Kind, msg ErrorMessage, description string, cause error) *ProcessingError {
	msg.Description = description
	return &ProcessingError{
		ErrorMessage: msg,
		Kind:         kind,
		Err:          cause,
	}
}

// BackingStoreFailure wraps a store error for the given operation.
func BackingStoreFailure(msg ErrorMessage, description string, cause error) *ProcessingError {
	return NewProcessingError(KindBackingStoreFailure, msg, description, cause)
}

// KindOf returns the kind of the first ProcessingError in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
