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

package repository

import (
	"github.com/uptrace/bun"

	"github.com/tomoncle/gameaccounts/model"
)

// Repositories groups the five entity repositories over one store.
type Repositories struct {
	Users        UserRepository
	Games        GameRepository
	Accounts     GameAccountRepository
	Listings     ListingRepository
	Transactions TransactionRepository
}

// NewRepositories builds SQL repositories sharing db.
func NewRepositories(db bun.IDB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(NewRepository[model.User](db, model.UserSchema)),
		Games:        NewGameRepository(NewRepository[model.Game](db, model.GameSchema)),
		Accounts:     NewGameAccountRepository(NewRepository[model.GameAccount](db, model.GameAccountSchema)),
		Listings:     NewListingRepository(NewRepository[model.Listing](db, model.ListingSchema)),
		Transactions: NewTransactionRepository(NewRepository[model.Transaction](db, model.TransactionSchema)),
	}
}

// NewMemoryRepositories builds in-memory repositories.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Users:        NewUserRepository(NewMemoryRepository[model.User](model.UserSchema)),
		Games:        NewGameRepository(NewMemoryRepository[model.Game](model.GameSchema)),
		Accounts:     NewGameAccountRepository(NewMemoryRepository[model.GameAccount](model.GameAccountSchema)),
		Listings:     NewListingRepository(NewMemoryRepository[model.Listing](model.ListingSchema)),
		Transactions: NewTransactionRepository(NewMemoryRepository[model.Transaction](model.TransactionSchema)),
	}
}
