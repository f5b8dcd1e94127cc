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
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/tomoncle/gameaccounts/query"
	"github.com/tomoncle/gameaccounts/types"
)

// Transaction records one completed sale of a listing.
type Transaction struct {
	bun.BaseModel `bun:"table:transactions,alias:t"`

	ID         int64     `bun:"id,pk,autoincrement" json:"id"`
	OccurredAt time.Time `bun:"occurred_at,notnull" json:"timestamp"`
	Amount     float64   `bun:"amount" json:"amount"`
	ListingID  int64     `bun:"listing_id,nullzero" json:"listing_id"`
}

func (t *Transaction) GetID() int64   { return t.ID }
func (t *Transaction) SetID(id int64) { t.ID = id }

var _ bun.BeforeAppendModelHook = (*Transaction)(nil)

// BeforeAppendModel stores timestamps in UTC so text-backed dialects order
// them chronologically.
func (t *Transaction) BeforeAppendModel(_ context.Context, q bun.Query) error {
	switch q.(type) {
	case *bun.InsertQuery, *bun.UpdateQuery:
		t.OccurredAt = t.OccurredAt.UTC()
	}
	return nil
}

var TransactionFields = struct {
	ID, Timestamp, Amount, ListingID query.Field[Transaction]
}{
	ID:        query.IntField("id", "id", func(t *Transaction) int64 { return t.ID }),
	Timestamp: query.TimeField("timestamp", "occurred_at", func(t *Transaction) time.Time { return t.OccurredAt }, "occurredAt", "data", "date"),
	Amount:    query.NumberField("amount", "amount", func(t *Transaction) float64 { return t.Amount }, "valor"),
	ListingID: query.ReferenceField("listingId", "listing_id", func(t *Transaction) int64 { return t.ListingID }),
}

// TransactionSchema lists the most recent transactions first by default.
var TransactionSchema = query.NewSchema(TransactionFields.ID, TransactionFields.Timestamp, types.Descending,
	TransactionFields.Timestamp, TransactionFields.Amount, TransactionFields.ListingID)
