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
	"errors"

	"github.com/tomoncle/gameaccounts/query"
	"github.com/tomoncle/gameaccounts/types"
)

// ErrNotFound is returned by Save when overwriting an identifier that is not
// stored. Save never inserts a record under a caller chosen identifier.
var ErrNotFound = errors.New("record not found")

// Entity is satisfied by pointers to records with a storage assigned identifier.
type Entity[T any] interface {
	*T
	GetID() int64
	SetID(id int64)
}

// CrudRepository defines basic CRUD operations for a generic entity type.
type CrudRepository[T any] interface {
	// Save inserts entity when its identifier is zero, assigning one, and
	// otherwise overwrites the stored record with the same identifier.
	Save(ctx context.Context, entity *T) (*T, error)

	// FindByID returns the record and true, or false when it is absent.
	FindByID(ctx context.Context, id int64) (*T, bool, error)

	ExistsByID(ctx context.Context, id int64) (bool, error)

	// FindAll returns every record in storage order.
	FindAll(ctx context.Context) ([]*T, error)

	// DeleteByID removes the record. Absent identifiers are not an error.
	DeleteByID(ctx context.Context, id int64) error
}

// PageQueryRepository defines paged, optionally filtered scans.
type PageQueryRepository[T any] interface {
	FindPage(ctx context.Context, page *types.PageRequest, filters ...query.Filter[T]) (*types.Pagination[T], error)
}

// Repository combines CRUD and paged scans over one entity schema.
type Repository[T any] interface {
	CrudRepository[T]
	PageQueryRepository[T]
	Schema() *query.Schema[T]
}
