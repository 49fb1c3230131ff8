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

package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehabterra/userapi/internal/domain"
	"github.com/ehabterra/userapi/internal/repository"
)

func strPtr(s string) *string { return &s }

func newTestService() *UserService {
	return NewUserService(repository.NewUserRepository(repository.DefaultSeed()...))
}

func TestUserService_CreateThenGet(t *testing.T) {
	tests := []struct {
		name      string
		inName    string
		inEmail   string
		wantName  string
		wantEmail string
	}{
		{"plain", "Ana", "ana@example.com", "Ana", "ana@example.com"},
		{"trims name", "  Ana Maria \t", "ana@example.com", "Ana Maria", "ana@example.com"},
		{"lowercases email", "Ana", "ANA@Example.COM", "Ana", "ana@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()

			created, err := svc.CreateUser(tt.inName, tt.inEmail)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, created.Name)
			assert.Equal(t, tt.wantEmail, created.Email)
			assert.True(t, strings.EqualFold(tt.inEmail, created.Email))

			got, err := svc.GetUserByID(created.ID)
			require.NoError(t, err)
			assert.Equal(t, created, got)
		})
	}
}

func TestUserService_CreateInvalid(t *testing.T) {
	tests := []struct {
		name    string
		inName  string
		inEmail string
		field   string
		message string
	}{
		{"empty name", "", "x@y.com", "name", "Name cannot be empty"},
		{"whitespace name", "   ", "x@y.com", "name", "Name cannot be empty"},
		{"long name", strings.Repeat("a", 256), "x@y.com", "name", "Name must be between 1 and 255 characters"},
		{"bad email", "Ana", "not-an-email", "email", "Invalid email format"},
		{"email checked before name", "", "a@b", "email", "Invalid email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()

			_, err := svc.CreateUser(tt.inName, tt.inEmail)
			require.ErrorIs(t, err, domain.ErrInvalidInput)

			var inputErr *domain.InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.field, inputErr.Field)
			assert.Equal(t, tt.message, inputErr.Message)
			assert.Len(t, svc.GetAllUsers(), 2, "invalid input must not be stored")
		})
	}
}

func TestUserService_SequentialCreatesIncreaseIDs(t *testing.T) {
	svc := newTestService()

	a, err := svc.CreateUser("A", "a@example.com")
	require.NoError(t, err)
	b, err := svc.CreateUser("B", "b@example.com")
	require.NoError(t, err)

	assert.Equal(t, 3, a.ID)
	assert.Equal(t, 4, b.ID)
}

func TestUserService_UpdatePartial(t *testing.T) {
	svc := newTestService()

	u, err := svc.UpdateUser(1, domain.UserPatch{Name: strPtr("  Juan  ")})
	require.NoError(t, err)
	assert.Equal(t, "Juan", u.Name)
	assert.Equal(t, "juan@example.com", u.Email)

	u, err = svc.UpdateUser(1, domain.UserPatch{Email: strPtr("JUAN@Mail.com")})
	require.NoError(t, err)
	assert.Equal(t, "Juan", u.Name)
	assert.Equal(t, "juan@mail.com", u.Email)

	u, err = svc.UpdateUser(1, domain.UserPatch{})
	require.NoError(t, err)
	assert.Equal(t, domain.User{ID: 1, Name: "Juan", Email: "juan@mail.com"}, u)
}

func TestUserService_UpdateInvalid(t *testing.T) {
	svc := newTestService()

	_, err := svc.UpdateUser(1, domain.UserPatch{Name: strPtr(" ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateUser(1, domain.UserPatch{Name: strPtr("Ok"), Email: strPtr("bad")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// nothing is written when any supplied field is invalid
	u, err := svc.GetUserByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Juan Pérez", u.Name)
}

func TestUserService_UpdateUnknownBeforeValidation(t *testing.T) {
	svc := newTestService()

	_, err := svc.UpdateUser(99, domain.UserPatch{Email: strPtr("bad")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserService_Delete(t *testing.T) {
	svc := newTestService()

	assert.True(t, svc.DeleteUser(2))
	_, err := svc.GetUserByID(2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, svc.DeleteUser(2))
}

// racingRepo deletes the record between the pre-read and the write.
type racingRepo struct {
	*repository.UserRepository
}

func (r racingRepo) Update(id int, patch domain.UserPatch) (domain.User, bool) {
	r.Delete(id)
	return r.UserRepository.Update(id, patch)
}

func TestUserService_UpdateRecordDeletedConcurrently(t *testing.T) {
	svc := NewUserService(racingRepo{repository.NewUserRepository(repository.DefaultSeed()...)})

	_, err := svc.UpdateUser(1, domain.UserPatch{Name: strPtr("Juan")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
