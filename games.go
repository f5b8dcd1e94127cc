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

// GameService manages the game catalog.
type GameService interface {
	Service[model.Game]
	SearchByName(ctx context.Context, name string, page *types.PageRequest) (*types.Pagination[model.Game], error)
	SearchByPlatform(ctx context.Context, platform string, page *types.PageRequest) (*types.Pagination[model.Game], error)
	// Accounts pages the accounts tied to gameID.
	Accounts(ctx context.Context, gameID int64, page *types.PageRequest) (*types.Pagination[model.GameAccount], error)
}

type gameService struct {
	*baseServiceImpl[model.Game, *model.Game]
	games    repository.GameRepository
	accounts repository.GameAccountRepository
}

func newGameService(repos *repository.Repositories, o *options) GameService {
	return &gameService{
		baseServiceImpl: newBaseService[model.Game](repos.Games, "game", o, nil),
		games:           repos.Games,
		accounts:        repos.Accounts,
	}
}

func (s *gameService) SearchByName(ctx context.Context, name string, page *types.PageRequest) (*types.Pagination[model.Game], error) {
	return s.games.FindByNameContaining(ctx, name, page)
}

func (s *gameService) SearchByPlatform(ctx context.Context, platform string, page *types.PageRequest) (*types.Pagination[model.Game], error) {
	return s.games.FindByPlatformContaining(ctx, platform, page)
}

func (s *gameService) Accounts(ctx context.Context, gameID int64, page *types.PageRequest) (*types.Pagination[model.GameAccount], error) {
	return s.accounts.FindByGameID(ctx, gameID, page)
}
