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

package gameaccounts

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/tomoncle/gameaccounts/database"
	"github.com/tomoncle/gameaccounts/model"
	"github.com/tomoncle/gameaccounts/repository"
)

// Market bundles the five entity services over one store.
type Market struct {
	Users        UserService
	Games        GameService
	Accounts     GameAccountService
	Listings     ListingService
	Transactions TransactionService
}

// NewMarket builds services backed by db. The tables must already exist.
func NewMarket(db bun.IDB, opts ...Option) *Market {
	return newMarket(repository.NewRepositories(db), opts...)
}

// NewMemoryMarket builds services over an in-process store.
func NewMemoryMarket(opts ...Option) *Market {
	return newMarket(repository.NewMemoryRepositories(), opts...)
}

// NewDefaultMarket builds services over the database opened by database.InitDB.
func NewDefaultMarket(opts ...Option) (*Market, error) {
	db := database.GetDB()
	if db == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return NewMarket(db, opts...), nil
}

// Open registers the marketplace models, opens the global database with cfg
// and builds a Market on it. Tables are created when cfg enables migrations
// on startup.
func Open(ctx context.Context, cfg *database.Config, opts ...Option) (*Market, error) {
	model.Register()
	db, err := database.InitDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewMarket(db, opts...), nil
}

func newMarket(repos *repository.Repositories, opts ...Option) *Market {
	o := newOptions(opts)
	return &Market{
		Users:        newUserService(repos, o),
		Games:        newGameService(repos, o),
		Accounts:     newGameAccountService(repos, o),
		Listings:     newListingService(repos, o),
		Transactions: newTransactionService(repos, o),
	}
}
