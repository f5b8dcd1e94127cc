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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForeignKeyGenerateSQL(t *testing.T) {
	fk := ForeignKeyConstraint{
		Table:           "listings",
		Column:          "seller_id",
		ReferenceTable:  "users",
		ReferenceColumn: "id",
		OnDelete:        "set null",
		OnUpdate:        "cascade",
	}
	assert.Equal(t, "fk_listings_seller_id", fk.GenerateConstraintName())
	assert.Equal(t,
		"ALTER TABLE listings ADD CONSTRAINT fk_listings_seller_id FOREIGN KEY (seller_id) REFERENCES users(id) ON DELETE SET NULL ON UPDATE CASCADE",
		fk.GenerateSQL())

	fk.ConstraintName = "listing_owner"
	fk.OnUpdate = ""
	assert.Equal(t,
		"ALTER TABLE listings ADD CONSTRAINT listing_owner FOREIGN KEY (seller_id) REFERENCES users(id) ON DELETE SET NULL",
		fk.GenerateSQL())
}

func TestForeignKeyDefaults(t *testing.T) {
	fkm := NewForeignKeyManager(nil)
	require.Len(t, fkm.ListAllConstraints(), 3)
	assert.Empty(t, fkm.ValidateConstraints())

	listings := fkm.GetConstraintsByTable("LISTINGS")
	require.Len(t, listings, 1)
	assert.Equal(t, "users", listings[0].ReferenceTable)
	assert.Empty(t, fkm.GetConstraintsByTable("games"))
}

func TestForeignKeyValidation(t *testing.T) {
	fkm := NewForeignKeyManager(nil,
		ForeignKeyConstraint{Column: "game_id", ReferenceTable: "games", ReferenceColumn: "id"},
		ForeignKeyConstraint{Table: "listings", Column: "seller_id", ReferenceTable: "users", ReferenceColumn: "id", OnDelete: "EXPLODE"},
		ForeignKeyConstraint{Table: "transactions", Column: "listing_id", ReferenceTable: "listings", ReferenceColumn: "id", OnDelete: "no action"},
	)
	errs := fkm.ValidateConstraints()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "table name cannot be empty")
	assert.Contains(t, errs[1].Error(), "EXPLODE")
}

func TestForeignKeyExportAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "foreign_keys.yaml")

	custom := ForeignKeyConstraint{Table: "game_accounts", Column: "game_id", ReferenceTable: "games", ReferenceColumn: "id", OnDelete: "CASCADE"}
	require.NoError(t, NewForeignKeyManager(nil, custom).Export(path))

	loaded, err := LoadForeignKeyManager(nil, path)
	require.NoError(t, err)
	assert.Equal(t, []ForeignKeyConstraint{custom}, loaded.ListAllConstraints())

	fallback, err := LoadForeignKeyManager(nil, filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultForeignKeyConstraints(), fallback.ListAllConstraints())

	broken := writeFile(t, filepath.Join(dir, "broken.yaml"), "foreign_keys: [nope")
	_, err = LoadForeignKeyManager(nil, broken)
	assert.Error(t, err)
}

func TestForeignKeyConfigFile(t *testing.T) {
	fkm, err := LoadForeignKeyManager(nil, filepath.Join("..", "configs", "foreign_keys.yaml"))
	require.NoError(t, err)
	assert.Len(t, fkm.ListAllConstraints(), 3)
	assert.Empty(t, fkm.ValidateConstraints())
}
