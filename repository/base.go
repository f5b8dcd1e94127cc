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
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/tomoncle/gameaccounts/query"
	"github.com/tomoncle/gameaccounts/types"
)

type baseRepositoryImpl[T any, P Entity[T]] struct {
	db     bun.IDB
	schema *query.Schema[T]
}

// NewRepository returns a generic repository backed by the provided Bun DB or
// transaction.
func NewRepository[T any, P Entity[T]](db bun.IDB, schema *query.Schema[T]) Repository[T] {
	return &baseRepositoryImpl[T, P]{db: db, schema: schema}
}

func (r *baseRepositoryImpl[T, P]) Schema() *query.Schema[T] { return r.schema }

func (r *baseRepositoryImpl[T, P]) idColumn() bun.Ident { return bun.Ident(r.schema.ID().Column) }

func (r *baseRepositoryImpl[T, P]) Save(ctx context.Context, entity *T) (*T, error) {
	if P(entity).GetID() == 0 {
		if _, err := r.db.NewInsert().Model(entity).Exec(ctx); err != nil {
			return nil, err
		}
		return entity, nil
	}

	res, err := r.db.NewUpdate().Model(entity).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return entity, nil
}

func (r *baseRepositoryImpl[T, P]) FindByID(ctx context.Context, id int64) (*T, bool, error) {
	entity := new(T)
	P(entity).SetID(id)
	err := r.db.NewSelect().Model(entity).WherePK().Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return entity, true, nil
}

func (r *baseRepositoryImpl[T, P]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return r.db.NewSelect().
		Model((*T)(nil)).
		Where("? = ?", r.idColumn(), id).
		Exists(ctx)
}

func (r *baseRepositoryImpl[T, P]) FindAll(ctx context.Context) ([]*T, error) {
	entities := make([]*T, 0)
	err := r.db.NewSelect().
		Model(&entities).
		OrderExpr("? ASC", r.idColumn()).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T, P]) FindPage(ctx context.Context, pageRequest *types.PageRequest, filters ...query.Filter[T]) (*types.Pagination[T], error) {
	order, err := r.schema.Resolve(pageRequest)
	if err != nil {
		return nil, err
	}

	entities := make([]*T, 0)
	q := query.ApplyFilters(r.db.NewSelect().Model(&entities), filters)

	pagination := types.NewDefaultPagination[T](pageRequest.GetPage(), pageRequest.GetPageSize())
	total, err := q.Count(ctx)
	if err != nil {
		return nil, err
	}
	pagination.SetTotal(total)
	if total == 0 || pageRequest.GetOffset() >= total {
		return pagination, nil
	}

	err = query.ApplyOrder(q, r.schema, order).
		Offset(pageRequest.GetOffset()).
		Limit(pageRequest.GetPageSize()).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	pagination.Items = entities
	return pagination, nil
}

func (r *baseRepositoryImpl[T, P]) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().
		Model((*T)(nil)).
		Where("? = ?", r.idColumn(), id).
		Exec(ctx)
	return err
}
