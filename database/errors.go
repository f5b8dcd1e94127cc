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
	"strings"

	"github.com/go-sql-driver/mysql"
)

type SQLError int

const (
	UnknownErr SQLError = iota
	NoRowsErr
	NoIndexErr
	NoColumnErr
	ExistIndexErr
	ExistColumnErr
	NoTableErr
	ExistTableErr
	DuplicateKeyErr
	NotNullViolationErr
	ForeignKeyViolationErr
	CheckConstraintViolationErr
	DataTruncatedErr
	InvalidTypeCastErr
)

var sqlErrorNames = map[SQLError]string{
	UnknownErr:                  "unknown",
	NoRowsErr:                   "no_rows",
	NoIndexErr:                  "no_index",
	NoColumnErr:                 "no_column",
	ExistIndexErr:               "exist_index",
	ExistColumnErr:              "exist_column",
	NoTableErr:                  "no_table",
	ExistTableErr:               "exist_table",
	DuplicateKeyErr:             "duplicate_key",
	NotNullViolationErr:         "not_null_violation",
	ForeignKeyViolationErr:      "foreign_key_violation",
	CheckConstraintViolationErr: "check_constraint_violation",
	DataTruncatedErr:            "data_truncated",
	InvalidTypeCastErr:          "invalid_type_cast",
}

func (e SQLError) String() string {
	if name, ok := sqlErrorNames[e]; ok {
		return name
	}
	return sqlErrorNames[UnknownErr]
}

var mysqlErrorNumbers = map[uint16]SQLError{
	1091: NoIndexErr,
	1054: NoColumnErr,
	1061: ExistIndexErr,
	1060: ExistColumnErr,
	1146: NoTableErr,
	1050: ExistTableErr,
	1062: DuplicateKeyErr,
	1048: NotNullViolationErr,
	1216: ForeignKeyViolationErr,
	1217: ForeignKeyViolationErr,
	1451: ForeignKeyViolationErr,
	1452: ForeignKeyViolationErr,
	3819: CheckConstraintViolationErr,
	1265: DataTruncatedErr,
	1406: DataTruncatedErr,
}

// messageRule matches when any needle appears in the lowercased message and,
// if set, the qualifier appears too.
type messageRule struct {
	needles   []string
	qualifier string
	kind      SQLError
}

// Order matters: "already exists" needs its qualifier checked before the
// generic table rule.
var messageRules = []messageRule{
	{needles: []string{"sqlstate 42703", "undefined column", "no such column"}, kind: NoColumnErr},
	{needles: []string{"sqlstate 42704", "no such index"}, kind: NoIndexErr},
	{needles: []string{"does not exist"}, qualifier: "index", kind: NoIndexErr},
	{needles: []string{"sqlstate 42p01", "undefined table", "no such table"}, kind: NoTableErr},
	{needles: []string{"already exists"}, qualifier: "index", kind: ExistIndexErr},
	{needles: []string{"already exists"}, qualifier: "table", kind: ExistTableErr},
	{needles: []string{"already exists"}, qualifier: "relation", kind: ExistTableErr},
	{needles: []string{"duplicate key value", "unique constraint failed", "sqlstate 23505"}, kind: DuplicateKeyErr},
	{needles: []string{"not-null constraint", "not null constraint failed", "sqlstate 23502"}, kind: NotNullViolationErr},
	{needles: []string{"foreign key violation", "foreign key constraint failed", "violates foreign key constraint", "sqlstate 23503"}, kind: ForeignKeyViolationErr},
	{needles: []string{"check constraint", "sqlstate 23514"}, kind: CheckConstraintViolationErr},
	{needles: []string{"string data right truncation", "data truncated", "sqlstate 22001"}, kind: DataTruncatedErr},
	{needles: []string{"datatype mismatch", "sqlstate 42804"}, kind: InvalidTypeCastErr},
}

// IsSqlError classifies driver errors. MySQL errors are matched by number,
// postgres and sqlite errors by message.
func IsSqlError(err error) (is bool, sqlErr SQLError) {
	if err == nil {
		return false, UnknownErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return true, NoRowsErr
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		if kind, ok := mysqlErrorNumbers[mysqlErr.Number]; ok {
			return true, kind
		}
		return true, UnknownErr
	}

	s := strings.ToLower(err.Error())
	for _, rule := range messageRules {
		if rule.qualifier != "" && !strings.Contains(s, rule.qualifier) {
			continue
		}
		for _, needle := range rule.needles {
			if strings.Contains(s, needle) {
				return true, rule.kind
			}
		}
	}
	return false, UnknownErr
}
