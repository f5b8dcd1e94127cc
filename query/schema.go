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
	"errors"
	"fmt"

	"github.com/tomoncle/gameaccounts/types"
)

// ErrUnknownSortField is returned when a page descriptor names a field the
// entity does not expose.
var ErrUnknownSortField = errors.New("unknown sort field")

// Schema is the set of fields of an entity plus its default ordering.
type Schema[T any] struct {
	id               Field[T]
	fields           []Field[T]
	defaultSort      Field[T]
	defaultDirection types.Direction
}

// Order is a resolved sort: the field and its direction.
type Order[T any] struct {
	Field     Field[T]
	Direction types.Direction
}

// NewSchema builds a schema. The id field is always sortable and is the
// tie-break for every ordering.
func NewSchema[T any](id Field[T], defaultSort Field[T], direction types.Direction, fields ...Field[T]) *Schema[T] {
	all := make([]Field[T], 0, len(fields)+1)
	all = append(all, id)
	all = append(all, fields...)
	return &Schema[T]{
		id:               id,
		fields:           all,
		defaultSort:      defaultSort,
		defaultDirection: direction,
	}
}

// ID returns the identifier field.
func (s *Schema[T]) ID() Field[T] { return s.id }

// Fields returns every declared field, identifier first.
func (s *Schema[T]) Fields() []Field[T] { return s.fields }

// DefaultOrder returns the ordering used when a request names none.
func (s *Schema[T]) DefaultOrder() Order[T] {
	return Order[T]{Field: s.defaultSort, Direction: s.defaultDirection}
}

// Field looks a field up by name, column or alias.
func (s *Schema[T]) Field(name string) (Field[T], bool) {
	for _, f := range s.fields {
		if f.Is(name) {
			return f, true
		}
	}
	return Field[T]{}, false
}

// Resolve turns the sort part of a page descriptor into an Order.
func (s *Schema[T]) Resolve(req *types.PageRequest) (Order[T], error) {
	order := Order[T]{Field: s.defaultSort, Direction: req.GetDirection(s.defaultDirection)}
	if name := req.GetSort(); name != "" {
		f, ok := s.Field(name)
		if !ok {
			return Order[T]{}, fmt.Errorf("%w: %q", ErrUnknownSortField, name)
		}
		order.Field = f
	}
	return order, nil
}

// Compare orders a and b by o, breaking ties by ascending identifier
// regardless of direction.
func (s *Schema[T]) Compare(o Order[T], a, b *T) int {
	c := o.Field.Compare(a, b)
	if o.Direction == types.Descending {
		c = -c
	}
	if c != 0 {
		return c
	}
	return s.id.Compare(a, b)
}
