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

// Package service applies the business rules for user records before
// handing them to storage.
package service

import (
	"fmt"
	"strings"

	"github.com/ehabterra/userapi/internal/domain"
	"github.com/ehabterra/userapi/internal/validator"
)

const (
	msgInvalidEmail = "Invalid email format"
	msgEmptyName    = "Name cannot be empty"
)

var msgNameLength = fmt.Sprintf("Name must be between %d and %d characters",
	validator.DefaultMinLength, validator.DefaultMaxLength)

// Repository is the storage the service delegates to.
type Repository interface {
	GetAll() []domain.User
	GetByID(id int) (domain.User, bool)
	Create(fields domain.UserFields) domain.User
	Update(id int, patch domain.UserPatch) (domain.User, bool)
	Delete(id int) bool
}

// UserService enforces validation and normalization of user records.
type UserService struct {
	repo Repository
}

// NewUserService creates a UserService backed by repo.
func NewUserService(repo Repository) *UserService {
	return &UserService{repo: repo}
}

// GetAllUsers returns every stored user ordered by id.
func (s *UserService) GetAllUsers() []domain.User {
	return s.repo.GetAll()
}

// GetUserByID returns domain.ErrNotFound when id is unknown.
func (s *UserService) GetUserByID(id int) (domain.User, error) {
	u, ok := s.repo.GetByID(id)
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

// CreateUser validates and normalizes name and email, then stores them.
func (s *UserService) CreateUser(name, email string) (domain.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return domain.User{}, err
	}
	name, err = normalizeName(name)
	if err != nil {
		return domain.User{}, err
	}
	return s.repo.Create(domain.UserFields{Name: name, Email: email}), nil
}

// UpdateUser applies the supplied fields of patch to the record with id.
// Unknown ids yield domain.ErrNotFound before any field is validated.
func (s *UserService) UpdateUser(id int, patch domain.UserPatch) (domain.User, error) {
	if _, ok := s.repo.GetByID(id); !ok {
		return domain.User{}, domain.ErrNotFound
	}

	var update domain.UserPatch
	if patch.Name != nil {
		name, err := normalizeName(*patch.Name)
		if err != nil {
			return domain.User{}, err
		}
		update.Name = &name
	}
	if patch.Email != nil {
		email, err := normalizeEmail(*patch.Email)
		if err != nil {
			return domain.User{}, err
		}
		update.Email = &email
	}

	u, ok := s.repo.Update(id, update)
	if !ok {
		// deleted after the pre-read
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

// DeleteUser removes the user with id and reports whether it existed.
func (s *UserService) DeleteUser(id int) bool {
	return s.repo.Delete(id)
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.NewInputError("name", msgEmptyName)
	}
	if !validator.ValidateDefaultLength(name) {
		return "", domain.NewInputError("name", msgNameLength)
	}
	return name, nil
}

func normalizeEmail(email string) (string, error) {
	if !validator.ValidateEmail(email) {
		return "", domain.NewInputError("email", msgInvalidEmail)
	}
	return strings.ToLower(email), nil
}
