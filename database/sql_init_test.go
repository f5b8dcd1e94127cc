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

func connectMemory(t *testing.T, cfg *Config) AbstractDatabaseManager {
	t.Helper()
	manager := NewDatabaseManager(cfg)
	logger, _ := bufferLogger()
	manager.SetLogger(logger)
	require.NoError(t, manager.Connect(context.Background()))
	t.Cleanup(func() { _ = manager.Disconnect() })
	return manager
}

func TestParseFileOrder(t *testing.T) {
	assert.Equal(t, 1, parseFileOrder("001_users.sql"))
	assert.Equal(t, 20, parseFileOrder("20_games.sql"))
	assert.Equal(t, 999, parseFileOrder("games.sql"))
	assert.Equal(t, 999, parseFileOrder("v1_games.sql"))
}

func TestSplitSQLStatements(t *testing.T) {
	content := `-- header comment
INSERT INTO games (name, platform)
VALUES ('Valorant', 'PC');

INSERT INTO games (name, platform) VALUES ('Fortnite', 'Multiplataforma');
SELECT 1`
	assert.Equal(t, []string{
		"INSERT INTO games (name, platform) VALUES ('Valorant', 'PC');",
		"INSERT INTO games (name, platform) VALUES ('Fortnite', 'Multiplataforma');",
		"SELECT 1",
	}, splitSQLStatements(content))
	assert.Empty(t, splitSQLStatements("-- only a comment\n\n"))
}

func TestGetSQLFilesOrdering(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "common", "010_games.sql"), "SELECT 1;")
	writeFile(t, filepath.Join(root, "common", "002_users.sql"), "SELECT 1;")
	writeFile(t, filepath.Join(root, "common", "notes.txt"), "ignored")
	writeFile(t, filepath.Join(root, "common", "extra.sql"), "SELECT 1;")
	writeFile(t, filepath.Join(root, "environments", "dev", "001_fixtures.sql"), "SELECT 1;")
	writeFile(t, filepath.Join(root, "environments", "prod", "001_prod.sql"), "SELECT 1;")

	s := NewSQLInitManager(nil, "dev")
	s.SetSQLRootPath(root)
	files, err := s.GetSQLFiles()
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"002_users.sql", "010_games.sql", "extra.sql", "001_fixtures.sql"}, names)
	assert.Equal(t, "dev", files[3].Environment)
}

func TestGetSQLFilesMissingRoot(t *testing.T) {
	s := NewSQLInitManager(nil, "prod")
	s.SetSQLRootPath(filepath.Join(t.TempDir(), "absent"))
	files, err := s.GetSQLFiles()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestRenderTemplate(t *testing.T) {
	t.Setenv("MARKET_ADMIN", "admin@market.com")
	s := NewSQLInitManager(nil, "dev")

	out, err := s.renderTemplate("INSERT INTO users (email) VALUES ('{{.MARKET_ADMIN}}'); -- {{.ENVIRONMENT}}")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO users (email) VALUES ('admin@market.com'); -- dev", out)

	plain := "SELECT '{not a template}'"
	out, err = s.renderTemplate(plain)
	require.NoError(t, err)
	assert.Equal(t, plain, out)

	_, err = s.renderTemplate("SELECT {{.Broken")
	assert.Error(t, err)
}

type seedRow struct {
	bun.BaseModel `bun:"table:seed_rows"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name"`
}

func TestExecuteInitialization(t *testing.T) {
	manager := connectMemory(t, memoryConfig())
	db := manager.GetDB()
	ctx := context.Background()
	_, err := db.NewCreateTable().Model((*seedRow)(nil)).Exec(ctx)
	require.NoError(t, err)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "common", "001_rows.sql"),
		"INSERT INTO seed_rows (name) VALUES ('first');\nINSERT INTO seed_rows (name) VALUES ('{{.ENVIRONMENT}}');\n")
	writeFile(t, filepath.Join(root, "environments", "test", "001_more.sql"),
		"INSERT INTO seed_rows (name) VALUES ('last');\n")

	s := NewSQLInitManager(db, "test")
	s.SetSQLRootPath(root)
	require.NoError(t, s.ExecuteInitialization(ctx))

	var names []string
	require.NoError(t, db.NewSelect().Model((*seedRow)(nil)).Column("name").Order("id").Scan(ctx, &names))
	assert.Equal(t, []string{"first", "test", "last"}, names)
}

func TestExecuteInitializationRollsBackFailedFile(t *testing.T) {
	manager := connectMemory(t, memoryConfig())
	db := manager.GetDB()
	ctx := context.Background()
	_, err := db.NewCreateTable().Model((*seedRow)(nil)).Exec(ctx)
	require.NoError(t, err)

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "common", "001_rows.sql"),
		"INSERT INTO seed_rows (name) VALUES ('kept?');\nINSERT INTO missing_table (name) VALUES ('x');\n")

	s := NewSQLInitManager(db, "test")
	s.SetSQLRootPath(root)
	err = s.ExecuteInitialization(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_rows.sql")

	count, err := db.NewSelect().Model((*seedRow)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
