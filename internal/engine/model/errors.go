// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"fmt"
	"strings"
)

// ValidationError is a user-correctable input problem. It may carry
// several messages when produced by a collect-all check.
type ValidationError struct {
	Messages []string
}

func NewValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Messages: msgs}
}

func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Messages: []string{fmt.Sprintf(format, args...)}}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// StateError reports an operation that the version's status forbids.
type StateError struct {
	VersionId string
	Status    MenuVersionStatus
	Op        string
	Err       error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("menu version %s is %s, %s is not allowed", e.VersionId, e.Status, e.Op)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned both for missing ids and for ids owned by
// another account, with the same message.
type NotFoundError struct {
	Resource string
	Id       string
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, Id: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Id)
}

// ExternalPublishError wraps a failed call to the messaging platform.
// Error returns the platform message verbatim when there is one.
type ExternalPublishError struct {
	Op      string
	Code    int
	Message string
	Err     error
}

func (e *ExternalPublishError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed", e.Op)
}

func (e *ExternalPublishError) Unwrap() error {
	return e.Err
}
