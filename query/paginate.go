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

package query

import (
	"slices"

	"github.com/uptrace/bun"

	"github.com/tomoncle/gameaccounts/types"
)

// Paginate applies filters, ordering and the page window to an in-memory
// candidate sequence. The input slice is not reordered.
func Paginate[T any](candidates []*T, schema *Schema[T], req *types.PageRequest, filters ...Filter[T]) (*types.Pagination[T], error) {
	order, err := schema.Resolve(req)
	if err != nil {
		return nil, err
	}

	matched := make([]*T, 0, len(candidates))
	for _, rec := range candidates {
		if MatchAll(rec, filters) {
			matched = append(matched, rec)
		}
	}
	slices.SortStableFunc(matched, func(a, b *T) int {
		return schema.Compare(order, a, b)
	})

	pagination := types.NewDefaultPagination[T](req.GetPage(), req.GetPageSize())
	pagination.SetTotal(len(matched))

	start := req.GetOffset()
	if start >= len(matched) {
		return pagination, nil
	}
	end := min(start+req.GetPageSize(), len(matched))
	pagination.Items = append(pagination.Items, matched[start:end]...)
	return pagination, nil
}

// ApplyFilters adds one WHERE clause per filter to q.
func ApplyFilters[T any](q *bun.SelectQuery, filters []Filter[T]) *bun.SelectQuery {
	for _, f := range filters {
		cond := f.Condition()
		q = q.Where(cond.Schema, cond.Args...)
	}
	return q
}

// ApplyOrder adds the ORDER BY for o followed by the identifier tie-break.
func ApplyOrder[T any](q *bun.SelectQuery, schema *Schema[T], o Order[T]) *bun.SelectQuery {
	q = q.OrderExpr("? "+o.Direction.Name(), bun.Ident(o.Field.Column))
	if o.Field.Column != schema.ID().Column {
		q = q.OrderExpr("? ASC", bun.Ident(schema.ID().Column))
	}
	return q
}
