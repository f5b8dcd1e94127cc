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
	"sync"

	"github.com/tomoncle/gameaccounts/database"
)

// Table creation order: referenced tables get lower priorities.
const (
	priorityReference = 10
	priorityOwned     = 20
	prioritySale      = 30
)

var registerOnce sync.Once

// Register adds every marketplace model to the database model registry so
// migrations create their tables. It is safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		database.RegisteredModel(database.NewModelAdapter((*User)(nil), priorityReference))
		database.RegisteredModel(database.NewModelAdapter((*Game)(nil), priorityReference))
		database.RegisteredModel(database.NewModelAdapter((*GameAccount)(nil), priorityOwned))
		database.RegisteredModel(database.NewModelAdapter((*Listing)(nil), priorityOwned))
		database.RegisteredModel(database.NewModelAdapter((*Transaction)(nil), prioritySale))
	})
}
