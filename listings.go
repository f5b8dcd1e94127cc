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

	"github.com/tomoncle/gameaccounts/model"
	"github.com/tomoncle/gameaccounts/repository"
	"github.com/tomoncle/gameaccounts/types"
)

// ListingService manages for-sale postings.
type ListingService interface {
	Service[model.Listing]
	SearchByDescription(ctx context.Context, description string, page *types.PageRequest) (*types.Pagination[model.Listing], error)
	// SearchByMaxPrice pages listings priced at or below maxPrice.
	SearchByMaxPrice(ctx context.Context, maxPrice float64, page *types.PageRequest) (*types.Pagination[model.Listing], error)
	// SearchByMinPrice pages listings priced at or above minPrice.
	SearchByMinPrice(ctx context.Context, minPrice float64, page *types.PageRequest) (*types.Pagination[model.Listing], error)
	BySeller(ctx context.Context, userID int64, page *types.PageRequest) (*types.Pagination[model.Listing], error)
	Seller(ctx context.Context, listing *model.Listing) (*model.User, bool, error)
	Transactions(ctx context.Context, listingID int64, page *types.PageRequest) (*types.Pagination[model.Transaction], error)
}

type listingService struct {
	*baseServiceImpl[model.Listing, *model.Listing]
	listings     repository.ListingRepository
	users        repository.UserRepository
	transactions repository.TransactionRepository
}

func newListingService(repos *repository.Repositories, o *options) ListingService {
	check := func(ctx context.Context, l *model.Listing) error {
		return requireRecord[model.User](ctx, repos.Users, "user", l.SellerID)
	}
	return &listingService{
		baseServiceImpl: newBaseService[model.Listing](repos.Listings, "listing", o, check),
		listings:        repos.Listings,
		users:           repos.Users,
		transactions:    repos.Transactions,
	}
}

func (s *listingService) SearchByDescription(ctx context.Context, description string, page *types.PageRequest) (*types.Pagination[model.Listing], error) {
	return s.listings.FindByDescriptionContaining(ctx, description, page)
}

func (s *listingService) SearchByMaxPrice(ctx context.Context, maxPrice float64, page *types.PageRequest) (*types.Pagination[model.Listing], error) {
	return s.listings.FindByPriceAtMost(ctx, maxPrice, page)
}

func (s *listingService) SearchByMinPrice(ctx context.Context, minPrice float64, page *types.PageRequest) (*types.Pagination[model.Listing], error) {
	return s.listings.FindByPriceAtLeast(ctx, minPrice, page)
}

func (s *listingService) BySeller(ctx context.Context, userID int64, page *types.PageRequest) (*types.Pagination[model.Listing], error) {
	return s.listings.FindBySellerID(ctx, userID, page)
}

func (s *listingService) Seller(ctx context.Context, listing *model.Listing) (*model.User, bool, error) {
	if listing == nil {
		return nil, false, nil
	}
	return s.users.FindByID(ctx, listing.SellerID)
}

func (s *listingService) Transactions(ctx context.Context, listingID int64, page *types.PageRequest) (*types.Pagination[model.Transaction], error) {
	return s.transactions.FindByListingID(ctx, listingID, page)
}
