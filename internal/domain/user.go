// Copyright 2025 Ehab Terra
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package domain defines the user record and the error kinds shared by the
// storage, service and API layers.
package domain

import "errors"

// User is a stored user record.
type User struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// UserFields holds the values for a record that has no id yet.
type UserFields struct {
	Name  string
	Email string
}

// UserPatch is a partial update. A nil field is left untouched.
type UserPatch struct {
	Name  *string
	Email *string
}

// IsEmpty reports whether the patch supplies no field.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil
}

// Apply merges the supplied fields into u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}

var (
	// ErrNotFound is returned when no record matches the requested id.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidInput is matched by every InputError.
	ErrInvalidInput = errors.New("invalid input")
)

// InputError describes a field that failed validation.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrInvalidInput) true for any InputError.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInputError returns an InputError for field with the given message.
func NewInputError(field, message string) *InputError {
	return &InputError{Field: field, Message: message}
}
