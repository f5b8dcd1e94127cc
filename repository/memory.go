/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/tomoncle/gameaccounts/query"
	"github.com/tomoncle/gameaccounts/types"
)

// memoryRepository keeps copies of records in a map. Callers never share
// memory with the stored values.
type memoryRepository[T any, P Entity[T]] struct {
	mu      sync.RWMutex
	schema  *query.Schema[T]
	records map[int64]T
	lastID  int64
}

// NewMemoryRepository returns a repository that keeps records in process
// memory. Identifiers start at 1 and are never reused.
func NewMemoryRepository[T any, P Entity[T]](schema *query.Schema[T]) Repository[T] {
	return &memoryRepository[T, P]{
		schema:  schema,
		records: make(map[int64]T),
	}
}

func (r *memoryRepository[T, P]) Schema() *query.Schema[T] { return r.schema }

func (r *memoryRepository[T, P]) Save(_ context.Context, entity *T) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := P(entity).GetID()
	if id == 0 {
		r.lastID++
		id = r.lastID
		P(entity).SetID(id)
	} else if _, ok := r.records[id]; !ok {
		return nil, ErrNotFound
	}
	r.records[id] = *entity
	out := *entity
	return &out, nil
}

func (r *memoryRepository[T, P]) FindByID(_ context.Context, id int64) (*T, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, false, nil
	}
	return &rec, true, nil
}

func (r *memoryRepository[T, P]) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.records[id]
	return ok, nil
}

func (r *memoryRepository[T, P]) FindAll(_ context.Context) ([]*T, error) {
	return r.snapshot(), nil
}

func (r *memoryRepository[T, P]) FindPage(_ context.Context, pageRequest *types.PageRequest, filters ...query.Filter[T]) (*types.Pagination[T], error) {
	return query.Paginate(r.snapshot(), r.schema, pageRequest, filters...)
}

func (r *memoryRepository[T, P]) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, id)
	return nil
}

// snapshot copies every record out in ascending identifier order.
func (r *memoryRepository[T, P]) snapshot() []*T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.records))
	for id := range r.records {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		rec := r.records[id]
		out = append(out, &rec)
	}
	return out
}
