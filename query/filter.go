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
	"strings"

	"github.com/uptrace/bun"

	"github.com/tomoncle/gameaccounts/types"
)

// Op is a filter comparison.
type Op int

const (
	OpContains Op = iota
	OpAtMost
	OpAtLeast
	OpEqual
)

// likeEscape is the escape character used in LIKE patterns. A backslash is
// avoided because MySQL treats it as a string literal escape.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// Filter is a single predicate over one field of T.
type Filter[T any] struct {
	Field Field[T]
	Op    Op
	Value any
}

// Contains matches records whose text field holds s, ignoring case.
func Contains[T any](f Field[T], s string) Filter[T] {
	return Filter[T]{Field: f, Op: OpContains, Value: s}
}

// AtMost matches records whose numeric field is <= limit.
func AtMost[T any](f Field[T], limit float64) Filter[T] {
	return Filter[T]{Field: f, Op: OpAtMost, Value: limit}
}

// AtLeast matches records whose numeric field is >= limit.
func AtLeast[T any](f Field[T], limit float64) Filter[T] {
	return Filter[T]{Field: f, Op: OpAtLeast, Value: limit}
}

// Equal matches records whose field equals v. On a nullable reference field a
// zero v matches records without a reference.
func Equal[T any](f Field[T], v any) Filter[T] {
	return Filter[T]{Field: f, Op: OpEqual, Value: v}
}

// Match evaluates the predicate against rec.
func (f Filter[T]) Match(rec *T) bool {
	got := f.Field.Value(rec)
	switch f.Op {
	case OpContains:
		text, _ := got.(string)
		needle, _ := f.Value.(string)
		return strings.Contains(strings.ToLower(text), strings.ToLower(needle))
	case OpAtMost, OpAtLeast:
		n, ok := toFloat(got)
		limit, lok := toFloat(f.Value)
		if !ok || !lok {
			return false
		}
		if f.Op == OpAtMost {
			return n <= limit
		}
		return n >= limit
	case OpEqual:
		if a, ok := toFloat(got); ok {
			b, ok := toFloat(f.Value)
			return ok && a == b
		}
		return got == f.Value
	}
	return false
}

// Condition renders the predicate as a WHERE clause.
func (f Filter[T]) Condition() *types.QueryFilter {
	col := bun.Ident(f.Field.Column)
	switch f.Op {
	case OpContains:
		needle, _ := f.Value.(string)
		pattern := "%" + likeReplacer.Replace(strings.ToLower(needle)) + "%"
		return types.NewQueryFilter("LOWER(?) LIKE ? ESCAPE '"+likeEscape+"'", col, pattern)
	case OpAtMost:
		return types.NewQueryFilter("? <= ?", col, f.Value)
	case OpAtLeast:
		return types.NewQueryFilter("? >= ?", col, f.Value)
	default:
		if n, ok := toFloat(f.Value); ok && n == 0 && f.Field.Nullable {
			return types.NewQueryFilter("? IS NULL", col)
		}
		return types.NewQueryFilter("? = ?", col, f.Value)
	}
}

// MatchAll reports whether rec satisfies every filter.
func MatchAll[T any](rec *T, filters []Filter[T]) bool {
	for _, f := range filters {
		if !f.Match(rec) {
			return false
		}
	}
	return true
}
