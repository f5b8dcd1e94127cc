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
	"github.com/uptrace/bun"

	"github.com/tomoncle/gameaccounts/query"
	"github.com/tomoncle/gameaccounts/types"
)

// Listing is a for-sale posting published by a seller. Price has no upper
// bound and is not checked for sign.
type Listing struct {
	bun.BaseModel `bun:"table:listings,alias:l"`

	ID          int64   `bun:"id,pk,autoincrement" json:"id"`
	Description string  `bun:"description" json:"description"`
	Price       float64 `bun:"price" json:"price"`
	SellerID    int64   `bun:"seller_id,nullzero" json:"seller_id"`
}

func (l *Listing) GetID() int64   { return l.ID }
func (l *Listing) SetID(id int64) { l.ID = id }

var ListingFields = struct {
	ID, Description, Price, SellerID query.Field[Listing]
}{
	ID:          query.IntField("id", "id", func(l *Listing) int64 { return l.ID }),
	Description: query.TextField("description", "description", func(l *Listing) string { return l.Description }, "descricao"),
	Price:       query.NumberField("price", "price", func(l *Listing) float64 { return l.Price }, "preco"),
	SellerID:    query.ReferenceField("sellerId", "seller_id", func(l *Listing) int64 { return l.SellerID }),
}

// ListingSchema orders listings by price ascending unless asked otherwise.
var ListingSchema = query.NewSchema(ListingFields.ID, ListingFields.Price, types.Ascending,
	ListingFields.Description, ListingFields.Price, ListingFields.SellerID)
