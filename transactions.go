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

// TransactionService manages completed sales.
type TransactionService interface {
	Service[model.Transaction]
	ByListing(ctx context.Context, listingID int64, page *types.PageRequest) (*types.Pagination[model.Transaction], error)
	SearchByMinAmount(ctx context.Context, minAmount float64, page *types.PageRequest) (*types.Pagination[model.Transaction], error)
	Listing(ctx context.Context, tx *model.Transaction) (*model.Listing, bool, error)
}

type transactionService struct {
	*baseServiceImpl[model.Transaction, *model.Transaction]
	transactions repository.TransactionRepository
	listings     repository.ListingRepository
}

func newTransactionService(repos *repository.Repositories, o *options) TransactionService {
	check := func(ctx context.Context, t *model.Transaction) error {
		return requireRecord[model.Listing](ctx, repos.Listings, "listing", t.ListingID)
	}
	return &transactionService{
		baseServiceImpl: newBaseService[model.Transaction](repos.Transactions, "transaction", o, check),
		transactions:    repos.Transactions,
		listings:        repos.Listings,
	}
}

func (s *transactionService) ByListing(ctx context.Context, listingID int64, page *types.PageRequest) (*types.Pagination[model.Transaction], error) {
	return s.transactions.FindByListingID(ctx, listingID, page)
}

func (s *transactionService) SearchByMinAmount(ctx context.Context, minAmount float64, page *types.PageRequest) (*types.Pagination[model.Transaction], error) {
	return s.transactions.FindByAmountAtLeast(ctx, minAmount, page)
}

func (s *transactionService) Listing(ctx context.Context, tx *model.Transaction) (*model.Listing, bool, error) {
	if tx == nil {
		return nil, false, nil
	}
	return s.listings.FindByID(ctx, tx.ListingID)
}
