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
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tomoncle/gameaccounts/repository"
	"github.com/tomoncle/gameaccounts/types"
	"github.com/tomoncle/gameaccounts/utils"
)

// ErrMissingReference is returned by Create and Update when reference checks
// are enabled and a referenced record does not exist.
var ErrMissingReference = errors.New("referenced record does not exist")

// Service is the uniform contract shared by every marketplace entity.
type Service[T any] interface {
	// ListAll returns every record in storage order.
	ListAll(ctx context.Context) ([]*T, error)

	// ListPaged returns one page ordered by the request sort, or the entity
	// default when the request leaves it empty.
	ListPaged(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error)

	// FindByID returns the record and true, or false when it is absent.
	FindByID(ctx context.Context, id int64) (*T, bool, error)

	// Create stores a copy of record under a fresh identifier. Any identifier
	// on the input is ignored and the input is left unchanged.
	Create(ctx context.Context, record *T) (*T, error)

	// Update overwrites the record stored under id with the contents of
	// record. It reports false without writing when id is absent.
	Update(ctx context.Context, id int64, record *T) (*T, bool, error)

	// Delete removes the record. Absent identifiers are not an error.
	Delete(ctx context.Context, id int64) error
}

// referenceCheck reports ErrMissingReference for a record whose references
// are not stored.
type referenceCheck[T any] func(ctx context.Context, record *T) error

type baseServiceImpl[T any, P repository.Entity[T]] struct {
	repo   repository.Repository[T]
	entity string
	logger *logrus.Entry
	check  referenceCheck[T]
}

func newBaseService[T any, P repository.Entity[T]](repo repository.Repository[T], entity string, o *options, check referenceCheck[T]) *baseServiceImpl[T, P] {
	s := &baseServiceImpl[T, P]{
		repo:   repo,
		entity: entity,
		logger: o.logger.WithField("entity", entity),
	}
	if o.referenceChecks {
		s.check = check
	}
	return s
}

func (s *baseServiceImpl[T, P]) ListAll(ctx context.Context) ([]*T, error) {
	return s.repo.FindAll(ctx)
}

func (s *baseServiceImpl[T, P]) ListPaged(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error) {
	return s.repo.FindPage(ctx, page)
}

func (s *baseServiceImpl[T, P]) FindByID(ctx context.Context, id int64) (*T, bool, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *baseServiceImpl[T, P]) Create(ctx context.Context, record *T) (*T, error) {
	if record == nil {
		return nil, fmt.Errorf("create %s: nil record", s.entity)
	}
	rec := *record
	P(&rec).SetID(0)

	if err := s.verify(ctx, &rec); err != nil {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, &rec)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("id", P(saved).GetID()).Debug("created")
	return saved, nil
}

func (s *baseServiceImpl[T, P]) Update(ctx context.Context, id int64, record *T) (*T, bool, error) {
	if record == nil {
		return nil, false, fmt.Errorf("update %s %d: nil record", s.entity, id)
	}
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, nil
	}

	rec := *record
	P(&rec).SetID(id)

	if err := s.verify(ctx, &rec); err != nil {
		return nil, false, err
	}
	saved, err := s.repo.Save(ctx, &rec)
	if errors.Is(err, repository.ErrNotFound) {
		// deleted after the existence check
		s.logger.WithField("id", id).Debug("update lost to concurrent delete")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	s.logger.WithField("id", id).Debug("updated")
	return saved, true, nil
}

func (s *baseServiceImpl[T, P]) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("id", id).Debug("deleted")
	return nil
}

func (s *baseServiceImpl[T, P]) verify(ctx context.Context, rec *T) error {
	if s.check == nil {
		return nil
	}
	return s.check(ctx, rec)
}

// requireRecord fails with ErrMissingReference unless id is stored in repo.
func requireRecord[T any](ctx context.Context, repo repository.CrudRepository[T], entity string, id int64) error {
	if id == 0 {
		return fmt.Errorf("%w: %s %d", ErrMissingReference, entity, id)
	}
	ok, err := repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s %d", ErrMissingReference, entity, id)
	}
	return nil
}

// Option configures the services built by NewMarket and its variants.
type Option func(*options)

type options struct {
	logger          *logrus.Logger
	referenceChecks bool
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = utils.NewLogger("MARKET")
	}
	return o
}

// WithLogger sets the logger used by the services.
func WithLogger(logger *logrus.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithReferenceChecks makes Create and Update verify that referenced records
// exist before writing.
func WithReferenceChecks() Option {
	return func(o *options) { o.referenceChecks = true }
}
