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

// UserService manages marketplace members.
type UserService interface {
	Service[model.User]
	SearchByName(ctx context.Context, name string, page *types.PageRequest) (*types.Pagination[model.User], error)
	SearchByEmail(ctx context.Context, email string, page *types.PageRequest) (*types.Pagination[model.User], error)
	// Listings pages the listings published by userID.
	Listings(ctx context.Context, userID int64, page *types.PageRequest) (*types.Pagination[model.Listing], error)
}

type userService struct {
	*baseServiceImpl[model.User, *model.User]
	users    repository.UserRepository
	listings repository.ListingRepository
}

func newUserService(repos *repository.Repositories, o *options) UserService {
	return &userService{
		baseServiceImpl: newBaseService[model.User](repos.Users, "user", o, nil),
		users:           repos.Users,
		listings:        repos.Listings,
	}
}

func (s *userService) SearchByName(ctx context.Context, name string, page *types.PageRequest) (*types.Pagination[model.User], error) {
	return s.users.FindByNameContaining(ctx, name, page)
}

func (s *userService) SearchByEmail(ctx context.Context, email string, page *types.PageRequest) (*types.Pagination[model.User], error) {
	return s.users.FindByEmailContaining(ctx, email, page)
}

func (s *userService) Listings(ctx context.Context, userID int64, page *types.PageRequest) (*types.Pagination[model.Listing], error) {
	return s.listings.FindBySellerID(ctx, userID, page)
}
