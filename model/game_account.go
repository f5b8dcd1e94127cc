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

// GameAccount is a playable account of exactly one game.
type GameAccount struct {
	bun.BaseModel `bun:"table:game_accounts,alias:ga"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Login    string `bun:"login" json:"login"`
	Password string `bun:"password" json:"-"`
	GameID   int64  `bun:"game_id,nullzero" json:"game_id"`
}

func (a *GameAccount) GetID() int64   { return a.ID }
func (a *GameAccount) SetID(id int64) { a.ID = id }

var GameAccountFields = struct {
	ID, Login, GameID query.Field[GameAccount]
}{
	ID:     query.IntField("id", "id", func(a *GameAccount) int64 { return a.ID }),
	Login:  query.TextField("login", "login", func(a *GameAccount) string { return a.Login }, "nickname"),
	GameID: query.ReferenceField("gameId", "game_id", func(a *GameAccount) int64 { return a.GameID }),
}

var GameAccountSchema = query.NewSchema(GameAccountFields.ID, GameAccountFields.Login, types.Ascending,
	GameAccountFields.Login, GameAccountFields.GameID)
