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

package types

import "math"

// DefaultPageSize is used when a request carries no positive page size.
const DefaultPageSize = 10

// QueryFilter describes a WHERE clause schema and its argument values.
type QueryFilter struct {
	Schema string
	Args   []interface{}
}

// NewQueryFilter creates a new query filter with schema and args.
func NewQueryFilter(schema string, args ...interface{}) *QueryFilter {
	return &QueryFilter{schema, args}
}

// PageRequest is the page descriptor of a paged query. Page is zero-based.
// Sort and Direction are left empty to select the entity defaults.
type PageRequest struct {
	Page      int
	Size      int
	Sort      string
	Direction string
}

// GetPageSize returns the page size, DefaultPageSize when unset or negative.
func (p *PageRequest) GetPageSize() int {
	if p == nil || p.Size < 1 {
		return DefaultPageSize
	}
	return p.Size
}

// GetPage returns the zero-based page index clamped to zero.
func (p *PageRequest) GetPage() int {
	if p == nil || p.Page < 0 {
		return 0
	}
	return p.Page
}

// GetOffset returns the index of the first record of the page. It saturates
// at math.MaxInt instead of overflowing, so huge page indexes are past the end.
func (p *PageRequest) GetOffset() int {
	page, size := p.GetPage(), p.GetPageSize()
	if page > math.MaxInt/size {
		return math.MaxInt
	}
	return page * size
}

func (p *PageRequest) GetSort() string {
	if p == nil {
		return ""
	}
	return p.Sort
}

// GetDirection resolves the requested direction, falling back to def when the
// request leaves it empty.
func (p *PageRequest) GetDirection(def Direction) Direction {
	if p == nil || p.Direction == "" {
		return def
	}
	return ParseDirection(p.Direction)
}

// NewPageRequest constructs a PageRequest with sort settings.
func NewPageRequest(page int, size int, sort string, direction string) *PageRequest {
	return &PageRequest{Page: page, Size: size, Sort: sort, Direction: direction}
}

// NewDefaultPageRequest constructs a PageRequest that uses the entity's
// default ordering.
func NewDefaultPageRequest(page int, size int) *PageRequest {
	return NewPageRequest(page, size, "", "")
}

// Pagination holds paged result items along with pagination metadata.
type Pagination[T any] struct {
	Page       int
	PageSize   int
	Total      int
	TotalPages int
	Items      []*T
}

// NewDefaultPagination constructs an empty pagination container.
func NewDefaultPagination[T any](page int, pageSize int) *Pagination[T] {
	return &Pagination[T]{Page: page, PageSize: pageSize, Items: make([]*T, 0)}
}

// SetTotal records the candidate count and derives TotalPages from it.
func (p *Pagination[T]) SetTotal(total int) {
	p.Total = total
	p.TotalPages = 0
	if p.PageSize > 0 {
		p.TotalPages = (total + p.PageSize - 1) / p.PageSize
	}
}

// HasNext reports whether a page follows this one.
func (p *Pagination[T]) HasNext() bool {
	return p.Page+1 < p.TotalPages
}
