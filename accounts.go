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

// GameAccountService manages the playable accounts offered for sale.
type GameAccountService interface {
	Service[model.GameAccount]
	SearchByLogin(ctx context.Context, login string, page *types.PageRequest) (*types.Pagination[model.GameAccount], error)
	ByGame(ctx context.Context, gameID int64, page *types.PageRequest) (*types.Pagination[model.GameAccount], error)
	// Game resolves the game an account belongs to.
	Game(ctx context.Context, account *model.GameAccount) (*model.Game, bool, error)
}

type gameAccountService struct {
	*baseServiceImpl[model.GameAccount, *model.GameAccount]
	accounts repository.GameAccountRepository
	games    repository.GameRepository
}

func newGameAccountService(repos *repository.Repositories, o *options) GameAccountService {
	check := func(ctx context.Context, a *model.GameAccount) error {
		return requireRecord[model.Game](ctx, repos.Games, "game", a.GameID)
	}
	return &gameAccountService{
		baseServiceImpl: newBaseService[model.GameAccount](repos.Accounts, "game_account", o, check),
		accounts:        repos.Accounts,
		games:           repos.Games,
	}
}

func (s *gameAccountService) SearchByLogin(ctx context.Context, login string, page *types.PageRequest) (*types.Pagination[model.GameAccount], error) {
	return s.accounts.FindByLoginContaining(ctx, login, page)
}

func (s *gameAccountService) ByGame(ctx context.Context, gameID int64, page *types.PageRequest) (*types.Pagination[model.GameAccount], error) {
	return s.accounts.FindByGameID(ctx, gameID, page)
}

func (s *gameAccountService) Game(ctx context.Context, account *model.GameAccount) (*model.Game, bool, error) {
	if account == nil {
		return nil, false, nil
	}
	return s.games.FindByID(ctx, account.GameID)
}
