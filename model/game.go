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

package model

import (
	"github.com/uptrace/bun"

	"github.com/tomoncle/gameaccounts/query"
	"github.com/tomoncle/gameaccounts/types"
)

// Game is reference data: a title and the platform or genre it is sold under.
type Game struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Name     string `bun:"name" json:"name"`
	Platform string `bun:"platform" json:"platform"`
}

func (g *Game) GetID() int64   { return g.ID }
func (g *Game) SetID(id int64) { g.ID = id }

var GameFields = struct {
	ID, Name, Platform query.Field[Game]
}{
	ID:       query.IntField("id", "id", func(g *Game) int64 { return g.ID }),
	Name:     query.TextField("name", "name", func(g *Game) string { return g.Name }, "nome"),
	Platform: query.TextField("platform", "platform", func(g *Game) string { return g.Platform }, "genre", "genero"),
}

var GameSchema = query.NewSchema(GameFields.ID, GameFields.Name, types.Ascending,
	GameFields.Name, GameFields.Platform)
