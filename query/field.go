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
	"cmp"
	"strings"
	"time"
)

// Kind is the value type of a field.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindInt
	KindTime
)

// Field describes one sortable/filterable attribute of T: the public name used
// in page descriptors, the storage column and an accessor for in-memory use.
type Field[T any] struct {
	Name     string
	Column   string
	Aliases  []string
	Kind     Kind
	Nullable bool // zero is stored as NULL
	value    func(*T) any
}

// TextField declares a string attribute.
func TextField[T any](name, column string, get func(*T) string, aliases ...string) Field[T] {
	return Field[T]{Name: name, Column: column, Aliases: aliases, Kind: KindText,
		value: func(t *T) any { return get(t) }}
}

// NumberField declares a floating point attribute.
func NumberField[T any](name, column string, get func(*T) float64, aliases ...string) Field[T] {
	return Field[T]{Name: name, Column: column, Aliases: aliases, Kind: KindNumber,
		value: func(t *T) any { return get(t) }}
}

// IntField declares an integer attribute such as an identifier.
func IntField[T any](name, column string, get func(*T) int64, aliases ...string) Field[T] {
	return Field[T]{Name: name, Column: column, Aliases: aliases, Kind: KindInt,
		value: func(t *T) any { return get(t) }}
}

// ReferenceField declares a foreign identifier. Zero means no reference and is
// stored as NULL.
func ReferenceField[T any](name, column string, get func(*T) int64, aliases ...string) Field[T] {
	f := IntField(name, column, get, aliases...)
	f.Nullable = true
	return f
}

// TimeField declares a timestamp attribute.
func TimeField[T any](name, column string, get func(*T) time.Time, aliases ...string) Field[T] {
	return Field[T]{Name: name, Column: column, Aliases: aliases, Kind: KindTime,
		value: func(t *T) any { return get(t) }}
}

// Value returns the attribute of rec.
func (f Field[T]) Value(rec *T) any {
	return f.value(rec)
}

// Compare orders a and b by this field only.
func (f Field[T]) Compare(a, b *T) int {
	return compareValues(f.value(a), f.value(b))
}

// Is reports whether name refers to this field, ignoring case.
func (f Field[T]) Is(name string) bool {
	if strings.EqualFold(name, f.Name) || strings.EqualFold(name, f.Column) {
		return true
	}
	for _, alias := range f.Aliases {
		if strings.EqualFold(name, alias) {
			return true
		}
	}
	return false
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		return cmp.Compare(av, b.(string))
	case float64:
		return cmp.Compare(av, b.(float64))
	case int64:
		return cmp.Compare(av, b.(int64))
	case time.Time:
		return av.Compare(b.(time.Time))
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
