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
	"database/sql"
	"fmt"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/tomoncle/gameaccounts/model"
	"github.com/tomoncle/gameaccounts/query"
	"github.com/tomoncle/gameaccounts/types"
)

var sqliteSeq atomic.Int64

func newSQLiteDB(t *testing.T) *bun.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repository_%d?mode=memory&cache=shared", sqliteSeq.Add(1))
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	for _, m := range []interface{}{
		(*model.User)(nil),
		(*model.Game)(nil),
		(*model.GameAccount)(nil),
		(*model.Listing)(nil),
		(*model.Transaction)(nil),
	} {
		_, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx)
		require.NoError(t, err)
	}
	return db
}

// forEachBackend runs fn against the in-memory store and SQLite.
func forEachBackend(t *testing.T, fn func(t *testing.T, repos *Repositories)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryRepositories())
	})
	t.Run("sqlite", func(t *testing.T) {
		fn(t, NewRepositories(newSQLiteDB(t)))
	})
}

func listingIDs(items []*model.Listing) []int64 {
	out := make([]int64, 0, len(items))
	for _, l := range items {
		out = append(out, l.ID)
	}
	return out
}

func prices(items []*model.Listing) []float64 {
	out := make([]float64, 0, len(items))
	for _, l := range items {
		out = append(out, l.Price)
	}
	return out
}

func saveListings(t *testing.T, repo ListingRepository, listings ...model.Listing) []int64 {
	t.Helper()
	ctx := context.Background()
	ids := make([]int64, 0, len(listings))
	for i := range listings {
		saved, err := repo.Save(ctx, &listings[i])
		require.NoError(t, err)
		ids = append(ids, saved.ID)
	}
	return ids
}

func TestSaveAssignsIdentifier(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		ctx := context.Background()
		first, err := repos.Users.Save(ctx, &model.User{Name: "Ana", Email: "ana@email.com", Password: "x"})
		require.NoError(t, err)
		second, err := repos.Users.Save(ctx, &model.User{Name: "Bia", Email: "bia@email.com"})
		require.NoError(t, err)

		assert.NotZero(t, first.ID)
		assert.Greater(t, second.ID, first.ID)

		got, ok, err := repos.Users.FindByID(ctx, first.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Ana", got.Name)
		assert.Equal(t, "ana@email.com", got.Email)
		assert.Equal(t, "x", got.Password)
	})
}

func TestSaveOverwritesExisting(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		ctx := context.Background()
		game, err := repos.Games.Save(ctx, &model.Game{Name: "Valorant", Platform: "PC"})
		require.NoError(t, err)

		_, err = repos.Games.Save(ctx, &model.Game{ID: game.ID, Name: "Valorant", Platform: "Console"})
		require.NoError(t, err)

		// same values again must still count as a match
		_, err = repos.Games.Save(ctx, &model.Game{ID: game.ID, Name: "Valorant", Platform: "Console"})
		require.NoError(t, err)

		got, ok, err := repos.Games.FindByID(ctx, game.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Console", got.Platform)

		all, err := repos.Games.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestSaveUnknownIdentifierDoesNotInsert(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		ctx := context.Background()
		_, err := repos.Games.Save(ctx, &model.Game{ID: 42, Name: "Ghost"})
		assert.ErrorIs(t, err, ErrNotFound)

		exists, err := repos.Games.ExistsByID(ctx, 42)
		require.NoError(t, err)
		assert.False(t, exists)

		all, err := repos.Games.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestFindByIDAbsent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		got, ok, err := repos.Listings.FindByID(context.Background(), 7)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	})
}

func TestDeleteIsIdempotent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		ctx := context.Background()
		require.NoError(t, repos.Users.DeleteByID(ctx, 99))

		u, err := repos.Users.Save(ctx, &model.User{Name: "Caio"})
		require.NoError(t, err)
		require.NoError(t, repos.Users.DeleteByID(ctx, u.ID))
		require.NoError(t, repos.Users.DeleteByID(ctx, u.ID))

		_, ok, err := repos.Users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestFindAllStorageOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		ids := saveListings(t, repos.Listings,
			model.Listing{Description: "c", Price: 3},
			model.Listing{Description: "a", Price: 1},
			model.Listing{Description: "b", Price: 2},
		)
		all, err := repos.Listings.FindAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, ids, listingIDs(all))
	})
}

func TestFindAllEmpty(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		all, err := repos.Transactions.FindAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})
}

func TestFindByPriceAtMost(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		saveListings(t, repos.Listings,
			model.Listing{Description: "mid", Price: 150},
			model.Listing{Description: "high", Price: 300},
			model.Listing{Description: "low", Price: 90},
		)
		page, err := repos.Listings.FindByPriceAtMost(context.Background(), 150, types.NewDefaultPageRequest(0, 10))
		require.NoError(t, err)
		assert.Equal(t, []float64{90, 150}, prices(page.Items))
		assert.Equal(t, 2, page.Total)
		assert.Equal(t, 1, page.TotalPages)
	})
}

func TestFindByPriceAtLeast(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		saveListings(t, repos.Listings,
			model.Listing{Description: "mid", Price: 150},
			model.Listing{Description: "high", Price: 300},
			model.Listing{Description: "low", Price: 90},
		)
		page, err := repos.Listings.FindByPriceAtLeast(context.Background(), 150, types.NewPageRequest(0, 10, "preco", "desc"))
		require.NoError(t, err)
		assert.Equal(t, []float64{300, 150}, prices(page.Items))
	})
}

func TestFindByNameContainingIgnoresCase(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		ctx := context.Background()
		for _, name := range []string{"João Silva", "Maria Santos"} {
			_, err := repos.Users.Save(ctx, &model.User{Name: name})
			require.NoError(t, err)
		}
		page, err := repos.Users.FindByNameContaining(ctx, "mar", types.NewDefaultPageRequest(0, 10))
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Maria Santos", page.Items[0].Name)

		page, err = repos.Users.FindByNameContaining(ctx, "SANTOS", nil)
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
	})
}

func TestContainsTreatsWildcardsLiterally(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		saveListings(t, repos.Listings,
			model.Listing{Description: "Conta 100% upada", Price: 50},
			model.Listing{Description: "Conta 1000 upada", Price: 60},
			model.Listing{Description: "conta_rara", Price: 70},
		)
		ctx := context.Background()
		page, err := repos.Listings.FindByDescriptionContaining(ctx, "0%", nil)
		require.NoError(t, err)
		assert.Equal(t, []float64{50}, prices(page.Items))

		page, err = repos.Listings.FindByDescriptionContaining(ctx, "_", nil)
		require.NoError(t, err)
		assert.Equal(t, []float64{70}, prices(page.Items))

		page, err = repos.Listings.FindByDescriptionContaining(ctx, "CONTA", nil)
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
	})
}

func TestFindBySellerID(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		ctx := context.Background()
		seller, err := repos.Users.Save(ctx, &model.User{Name: "Seller"})
		require.NoError(t, err)
		other, err := repos.Users.Save(ctx, &model.User{Name: "Other"})
		require.NoError(t, err)
		saveListings(t, repos.Listings,
			model.Listing{Description: "a", Price: 30, SellerID: seller.ID},
			model.Listing{Description: "b", Price: 10, SellerID: other.ID},
			model.Listing{Description: "c", Price: 20, SellerID: seller.ID},
		)

		page, err := repos.Listings.FindBySellerID(ctx, seller.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, []float64{20, 30}, prices(page.Items))
	})
}

func TestFindBySellerIDZeroMatchesUnowned(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		ctx := context.Background()
		seller, err := repos.Users.Save(ctx, &model.User{Name: "Seller"})
		require.NoError(t, err)
		saveListings(t, repos.Listings,
			model.Listing{Description: "owned", Price: 30, SellerID: seller.ID},
			model.Listing{Description: "unowned", Price: 10},
		)

		page, err := repos.Listings.FindBySellerID(ctx, 0, nil)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "unowned", page.Items[0].Description)
	})
}

func TestFindByGameID(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		ctx := context.Background()
		lol, err := repos.Games.Save(ctx, &model.Game{Name: "League of Legends", Platform: "PC"})
		require.NoError(t, err)
		for _, login := range []string{"zed", "ahri"} {
			_, err := repos.Accounts.Save(ctx, &model.GameAccount{Login: login, GameID: lol.ID})
			require.NoError(t, err)
		}
		_, err = repos.Accounts.Save(ctx, &model.GameAccount{Login: "orphan"})
		require.NoError(t, err)

		page, err := repos.Accounts.FindByGameID(ctx, lol.ID, nil)
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "ahri", page.Items[0].Login)
		assert.Equal(t, "zed", page.Items[1].Login)
	})
}

func TestTransactionsNewestFirst(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		ctx := context.Background()
		base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
		var oldest int64
		for i, offset := range []time.Duration{48 * time.Hour, 0, 24 * time.Hour} {
			tx, err := repos.Transactions.Save(ctx, &model.Transaction{
				OccurredAt: base.Add(offset),
				Amount:     float64(100 * (i + 1)),
			})
			require.NoError(t, err)
			if offset == 0 {
				oldest = tx.ID
			}
		}

		page, err := repos.Transactions.FindPage(ctx, types.NewDefaultPageRequest(1, 2))
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		assert.Equal(t, 2, page.TotalPages)
		require.Len(t, page.Items, 1)
		assert.Equal(t, oldest, page.Items[0].ID)
		assert.True(t, base.Equal(page.Items[0].OccurredAt), "got %s", page.Items[0].OccurredAt)
	})
}

func TestTransactionLocalTimeStoredAsUTC(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		ctx := context.Background()
		zone := time.FixedZone("BRT", -3*60*60)
		at := time.Date(2025, 5, 2, 21, 30, 0, 0, zone)
		tx, err := repos.Transactions.Save(ctx, &model.Transaction{OccurredAt: at, Amount: 1})
		require.NoError(t, err)

		got, ok, err := repos.Transactions.FindByID(ctx, tx.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, at.Equal(got.OccurredAt))
	})
}

func TestPagesConcatenateWithTies(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		saveListings(t, repos.Listings,
			model.Listing{Description: "a", Price: 200},
			model.Listing{Description: "b", Price: 100},
			model.Listing{Description: "c", Price: 200},
			model.Listing{Description: "d", Price: 100},
			model.Listing{Description: "e", Price: 300},
		)
		ctx := context.Background()
		for _, dir := range []string{"ASC", "DESC"} {
			full, err := repos.Listings.FindPage(ctx, types.NewPageRequest(0, 50, "price", dir))
			require.NoError(t, err)

			var collected []int64
			for p := 0; p < full.Total; p += 2 {
				page, err := repos.Listings.FindPage(ctx, types.NewPageRequest(p/2, 2, "price", dir))
				require.NoError(t, err)
				assert.LessOrEqual(t, len(page.Items), 2)
				collected = append(collected, listingIDs(page.Items)...)
			}
			assert.Equal(t, listingIDs(full.Items), collected, dir)
		}

		asc, err := repos.Listings.FindPage(ctx, types.NewPageRequest(0, 50, "price", "asc"))
		require.NoError(t, err)
		desc, err := repos.Listings.FindPage(ctx, types.NewPageRequest(0, 50, "price", "desc"))
		require.NoError(t, err)
		// ties keep ascending identifiers in both directions
		assert.Equal(t, []int64{2, 4, 1, 3, 5}, listingIDs(asc.Items))
		assert.Equal(t, []int64{5, 1, 3, 2, 4}, listingIDs(desc.Items))
	})
}

func TestFindPageUnknownSort(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		_, err := repos.Games.FindPage(context.Background(), types.NewPageRequest(0, 10, "rating", "ASC"))
		assert.ErrorIs(t, err, query.ErrUnknownSortField)
	})
}

func TestFindPageBeyondLastPage(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		saveListings(t, repos.Listings, model.Listing{Description: "only", Price: 1})
		page, err := repos.Listings.FindPage(context.Background(), types.NewDefaultPageRequest(3, 10))
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.Total)
		assert.Equal(t, 3, page.Page)
	})
}

func TestFindPageHugePageIndex(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos *Repositories) {
		saveListings(t, repos.Listings, model.Listing{Description: "only", Price: 1})
		for _, pageIndex := range []int{math.MaxInt / 5, math.MaxInt} {
			page, err := repos.Listings.FindPage(context.Background(), types.NewDefaultPageRequest(pageIndex, 10))
			require.NoError(t, err)
			assert.Empty(t, page.Items)
			assert.Equal(t, pageIndex, page.Page)
			assert.Equal(t, 1, page.Total)
			assert.Equal(t, 1, page.TotalPages)
		}
	})
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository[model.Game](model.GameSchema)
	ctx := context.Background()
	saved, err := repo.Save(ctx, &model.Game{Name: "Fortnite"})
	require.NoError(t, err)
	saved.Name = "changed"

	got, ok, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Fortnite", got.Name)
}
