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

// User is a marketplace member. Users own listings.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Name     string `bun:"name" json:"name"`
	Email    string `bun:"email" json:"email"`
	Password string `bun:"password" json:"-"`
}

func (u *User) GetID() int64   { return u.ID }
func (u *User) SetID(id int64) { u.ID = id }

// UserFields are the queryable attributes of User.
var UserFields = struct {
	ID, Name, Email query.Field[User]
}{
	ID:    query.IntField("id", "id", func(u *User) int64 { return u.ID }),
	Name:  query.TextField("name", "name", func(u *User) string { return u.Name }, "nome"),
	Email: query.TextField("email", "email", func(u *User) string { return u.Email }),
}

// UserSchema orders users by name ascending unless asked otherwise.
var UserSchema = query.NewSchema(UserFields.ID, UserFields.Name, types.Ascending,
	UserFields.Name, UserFields.Email)
