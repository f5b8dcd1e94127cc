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
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type catalogEntry struct {
	bun.BaseModel `bun:"table:catalog_entries"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name"`
}

type catalogSale struct {
	bun.BaseModel `bun:"table:catalog_sales"`

	ID      int64 `bun:"id,pk,autoincrement"`
	EntryID int64 `bun:"entry_id,nullzero"`
}

func registerCatalog() {
	RegisteredModel(NewModelAdapter((*catalogSale)(nil), 20))
	RegisteredModel(NewModelAdapter((*catalogEntry)(nil), 10))
}

func appliedVersions(t *testing.T, mm *MigrationManager) []string {
	t.Helper()
	applied, err := mm.GetAppliedMigrations(context.Background())
	require.NoError(t, err)
	versions := make([]string, 0, len(applied))
	for _, m := range applied {
		versions = append(versions, m.Version)
	}
	return versions
}

func TestModelRegistryOrderAndDedup(t *testing.T) {
	registerCatalog()
	registerCatalog()

	var names []string
	for _, instance := range RegisteredModelInstances() {
		switch instance.(type) {
		case *catalogEntry, *catalogSale:
			names = append(names, modelName(instance))
		}
	}
	assert.Equal(t, []string{"catalogEntry", "catalogSale"}, names)
}

func TestRunMigrationsCreatesTablesOnce(t *testing.T) {
	registerCatalog()
	cfg := memoryConfig()
	manager := connectMemory(t, cfg)
	db := manager.GetDB()
	ctx := context.Background()

	require.NoError(t, manager.RunMigrations(ctx))
	require.NoError(t, manager.RunMigrations(ctx))

	_, err := db.NewInsert().Model(&catalogEntry{Name: "Valorant"}).Exec(ctx)
	require.NoError(t, err)

	mm := NewMigrationManager(db, cfg, nil)
	assert.Equal(t, []string{"001"}, appliedVersions(t, mm))
}

func TestRunMigrationsSkipsForeignKeysOnSQLite(t *testing.T) {
	registerCatalog()
	cfg := memoryConfig()
	cfg.DataMigrateConfig.EnableForeignKey = true

	manager := NewDatabaseManager(cfg)
	logger, buf := bufferLogger()
	manager.SetLogger(logger)
	ctx := context.Background()
	require.NoError(t, manager.Connect(ctx))
	t.Cleanup(func() { _ = manager.Disconnect() })

	require.NoError(t, manager.RunMigrations(ctx))
	assert.Contains(t, buf.String(), "Foreign key migration skipped")

	mm := NewMigrationManager(manager.GetDB(), cfg, logger)
	assert.Equal(t, []string{"001"}, appliedVersions(t, mm))
}

func TestRunMigrationsSeedsData(t *testing.T) {
	registerCatalog()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "common", "001_catalog.sql"),
		"INSERT INTO catalog_entries (name) VALUES ('League of Legends');\nINSERT INTO catalog_entries (name) VALUES ('Fortnite');\n")

	cfg := memoryConfig()
	cfg.DataInitConfig.AutoInitOnMigration = true
	cfg.DataInitConfig.Filepath = root

	manager := connectMemory(t, cfg)
	ctx := context.Background()
	require.NoError(t, manager.RunMigrations(ctx))
	require.NoError(t, manager.RunMigrations(ctx))

	db := manager.GetDB()
	count, err := db.NewSelect().Model((*catalogEntry)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "seed runs once")

	mm := NewMigrationManager(db, cfg, nil)
	assert.Equal(t, []string{"001", "003"}, appliedVersions(t, mm))

	// InitData is not tracked and runs again
	require.NoError(t, manager.InitData(ctx))
	count, err = db.NewSelect().Model((*catalogEntry)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestMigrationFailureIsNotRecorded(t *testing.T) {
	registerCatalog()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "common", "001_bad.sql"), "INSERT INTO nowhere (name) VALUES ('x');\n")

	cfg := memoryConfig()
	cfg.DataInitConfig.AutoInitOnMigration = true
	cfg.DataInitConfig.Filepath = root

	manager := connectMemory(t, cfg)
	err := manager.RunMigrations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "003")

	mm := NewMigrationManager(manager.GetDB(), cfg, nil)
	assert.Equal(t, []string{"001"}, appliedVersions(t, mm))
}
