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

package database

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsSqlError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		is   bool
		kind SQLError
	}{
		{"nil", nil, false, UnknownErr},
		{"no rows", fmt.Errorf("find: %w", sql.ErrNoRows), true, NoRowsErr},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, true, DuplicateKeyErr},
		{"mysql missing table", fmt.Errorf("wrapped: %w", &mysql.MySQLError{Number: 1146}), true, NoTableErr},
		{"mysql foreign key", &mysql.MySQLError{Number: 1452}, true, ForeignKeyViolationErr},
		{"mysql other", &mysql.MySQLError{Number: 2006}, true, UnknownErr},
		{"postgres undefined column", errors.New(`pq: column "rating" does not exist (SQLSTATE 42703)`), true, NoColumnErr},
		{"postgres existing relation", errors.New(`pq: relation "users" already exists`), true, ExistTableErr},
		{"postgres unique", errors.New(`pq: duplicate key value violates unique constraint "users_pkey"`), true, DuplicateKeyErr},
		{"postgres foreign key", errors.New(`pq: insert or update on table "listings" violates foreign key constraint "fk_listings_seller_id"`), true, ForeignKeyViolationErr},
		{"sqlite missing table", errors.New("SQL logic error: no such table: games (1)"), true, NoTableErr},
		{"sqlite existing index", errors.New("index idx_listings_price already exists"), true, ExistIndexErr},
		{"sqlite not null", errors.New("NOT NULL constraint failed: transactions.occurred_at"), true, NotNullViolationErr},
		{"unrelated", errors.New("connection refused"), false, UnknownErr},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			is, kind := IsSqlError(tc.err)
			assert.Equal(t, tc.is, is)
			assert.Equal(t, tc.kind, kind, "got %s", kind)
		})
	}
}
