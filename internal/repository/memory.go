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

// Package repository provides the in-memory user store.
package repository

import (
	"maps"
	"slices"
	"sync"

	"github.com/ehabterra/userapi/internal/domain"
)

// DefaultSeed returns the records a fresh store is started with.
func DefaultSeed() []domain.User {
	return []domain.User{
		{ID: 1, Name: "Juan Pérez", Email: "juan@example.com"},
		{ID: 2, Name: "María García", Email: "maria@example.com"},
	}
}

// UserRepository owns the user records. It performs no validation.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[int]domain.User
	nextID int
}

// NewUserRepository creates a store holding seed. Ids allocated later start
// after the highest seeded id.
func NewUserRepository(seed ...domain.User) *UserRepository {
	r := &UserRepository{
		users:  make(map[int]domain.User, len(seed)),
		nextID: 1,
	}
	for _, u := range seed {
		r.users[u.ID] = u
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}
	return r
}

// GetAll returns every record in insertion order.
func (r *UserRepository) GetAll() []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// ids are allocated monotonically, so id order is insertion order
	users := make([]domain.User, 0, len(r.users))
	for _, id := range slices.Sorted(maps.Keys(r.users)) {
		users = append(users, r.users[id])
	}
	return users
}

// GetByID looks up a record.
func (r *UserRepository) GetByID(id int) (domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	return u, ok
}

// Create stores fields under a freshly allocated id.
func (r *UserRepository) Create(fields domain.UserFields) domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := domain.User{ID: r.nextID, Name: fields.Name, Email: fields.Email}
	r.users[u.ID] = u
	r.nextID++
	return u
}

// Update merges the supplied fields of patch into the record with id.
// It returns false, and creates nothing, when id is unknown.
func (r *UserRepository) Update(id int, patch domain.UserPatch) (domain.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, false
	}
	patch.Apply(&u)
	r.users[id] = u
	return u, true
}

// Delete removes the record with id and reports whether it existed.
func (r *UserRepository) Delete(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false
	}
	delete(r.users, id)
	return true
}

// Len returns the number of stored records.
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
