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
	"context"

	"github.com/tomoncle/gameaccounts/model"
	"github.com/tomoncle/gameaccounts/query"
	"github.com/tomoncle/gameaccounts/types"
)

// UserRepository adds the user searches.
type UserRepository interface {
	Repository[model.User]
	FindByNameContaining(ctx context.Context, name string, page *types.PageRequest) (*types.Pagination[model.User], error)
	FindByEmailContaining(ctx context.Context, email string, page *types.PageRequest) (*types.Pagination[model.User], error)
}

type userRepository struct{ Repository[model.User] }

func NewUserRepository(base Repository[model.User]) UserRepository {
	return userRepository{base}
}

func (r userRepository) FindByNameContaining(ctx context.Context, name string, page *types.PageRequest) (*types.Pagination[model.User], error) {
	return r.FindPage(ctx, page, query.Contains(model.UserFields.Name, name))
}

func (r userRepository) FindByEmailContaining(ctx context.Context, email string, page *types.PageRequest) (*types.Pagination[model.User], error) {
	return r.FindPage(ctx, page, query.Contains(model.UserFields.Email, email))
}

// GameRepository adds the game searches.
type GameRepository interface {
	Repository[model.Game]
	FindByNameContaining(ctx context.Context, name string, page *types.PageRequest) (*types.Pagination[model.Game], error)
	FindByPlatformContaining(ctx context.Context, platform string, page *types.PageRequest) (*types.Pagination[model.Game], error)
}

type gameRepository struct{ Repository[model.Game] }

func NewGameRepository(base Repository[model.Game]) GameRepository {
	return gameRepository{base}
}

func (r gameRepository) FindByNameContaining(ctx context.Context, name string, page *types.PageRequest) (*types.Pagination[model.Game], error) {
	return r.FindPage(ctx, page, query.Contains(model.GameFields.Name, name))
}

func (r gameRepository) FindByPlatformContaining(ctx context.Context, platform string, page *types.PageRequest) (*types.Pagination[model.Game], error) {
	return r.FindPage(ctx, page, query.Contains(model.GameFields.Platform, platform))
}

// GameAccountRepository adds login search and the per-game scan.
type GameAccountRepository interface {
	Repository[model.GameAccount]
	FindByLoginContaining(ctx context.Context, login string, page *types.PageRequest) (*types.Pagination[model.GameAccount], error)
	FindByGameID(ctx context.Context, gameID int64, page *types.PageRequest) (*types.Pagination[model.GameAccount], error)
}

type gameAccountRepository struct{ Repository[model.GameAccount] }

func NewGameAccountRepository(base Repository[model.GameAccount]) GameAccountRepository {
	return gameAccountRepository{base}
}

func (r gameAccountRepository) FindByLoginContaining(ctx context.Context, login string, page *types.PageRequest) (*types.Pagination[model.GameAccount], error) {
	return r.FindPage(ctx, page, query.Contains(model.GameAccountFields.Login, login))
}

func (r gameAccountRepository) FindByGameID(ctx context.Context, gameID int64, page *types.PageRequest) (*types.Pagination[model.GameAccount], error) {
	return r.FindPage(ctx, page, query.Equal(model.GameAccountFields.GameID, gameID))
}

// ListingRepository adds description and price searches and the per-seller scan.
type ListingRepository interface {
	Repository[model.Listing]
	FindByDescriptionContaining(ctx context.Context, description string, page *types.PageRequest) (*types.Pagination[model.Listing], error)
	FindByPriceAtMost(ctx context.Context, maxPrice float64, page *types.PageRequest) (*types.Pagination[model.Listing], error)
	FindByPriceAtLeast(ctx context.Context, minPrice float64, page *types.PageRequest) (*types.Pagination[model.Listing], error)
	FindBySellerID(ctx context.Context, sellerID int64, page *types.PageRequest) (*types.Pagination[model.Listing], error)
}

type listingRepository struct{ Repository[model.Listing] }

func NewListingRepository(base Repository[model.Listing]) ListingRepository {
	return listingRepository{base}
}

func (r listingRepository) FindByDescriptionContaining(ctx context.Context, description string, page *types.PageRequest) (*types.Pagination[model.Listing], error) {
	return r.FindPage(ctx, page, query.Contains(model.ListingFields.Description, description))
}

func (r listingRepository) FindByPriceAtMost(ctx context.Context, maxPrice float64, page *types.PageRequest) (*types.Pagination[model.Listing], error) {
	return r.FindPage(ctx, page, query.AtMost(model.ListingFields.Price, maxPrice))
}

func (r listingRepository) FindByPriceAtLeast(ctx context.Context, minPrice float64, page *types.PageRequest) (*types.Pagination[model.Listing], error) {
	return r.FindPage(ctx, page, query.AtLeast(model.ListingFields.Price, minPrice))
}

func (r listingRepository) FindBySellerID(ctx context.Context, sellerID int64, page *types.PageRequest) (*types.Pagination[model.Listing], error) {
	return r.FindPage(ctx, page, query.Equal(model.ListingFields.SellerID, sellerID))
}

// TransactionRepository adds the per-listing scan and the amount search.
type TransactionRepository interface {
	Repository[model.Transaction]
	FindByListingID(ctx context.Context, listingID int64, page *types.PageRequest) (*types.Pagination[model.Transaction], error)
	FindByAmountAtLeast(ctx context.Context, minAmount float64, page *types.PageRequest) (*types.Pagination[model.Transaction], error)
}

type transactionRepository struct{ Repository[model.Transaction] }

func NewTransactionRepository(base Repository[model.Transaction]) TransactionRepository {
	return transactionRepository{base}
}

func (r transactionRepository) FindByListingID(ctx context.Context, listingID int64, page *types.PageRequest) (*types.Pagination[model.Transaction], error) {
	return r.FindPage(ctx, page, query.Equal(model.TransactionFields.ListingID, listingID))
}

func (r transactionRepository) FindByAmountAtLeast(ctx context.Context, minAmount float64, page *types.PageRequest) (*types.Pagination[model.Transaction], error) {
	return r.FindPage(ctx, page, query.AtLeast(model.TransactionFields.Amount, minAmount))
}
