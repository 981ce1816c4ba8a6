/*
 * Copyright 2025 Phong.
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

package myexpenses

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/database"
	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/identity"
	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/persistence"
	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/repository"
	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/types"
)

// Service is a convenience facade over the generic repository for callers
// that do not need to batch writes across entity types. Reads go straight
// to the global database connection; every write runs inside its own unit
// of work and is committed before the call returns.
type Service[T any] interface {
	// Get returns a single live entity by its identifier.
	Get(ctx context.Context, id any, opts ...repository.Option) (*T, error)

	// GetOne returns the single live entity matching the predicate.
	GetOne(ctx context.Context, predicate *types.Predicate, opts ...repository.Option) (*T, error)

	// All returns all live entities.
	All(ctx context.Context, opts ...repository.Option) ([]*T, error)

	// Find returns live entities shaped by the transform.
	Find(ctx context.Context, transform repository.SelectTransform, opts ...repository.Option) ([]*T, error)

	// Page returns a paginated list of live entities.
	Page(ctx context.Context, request *types.PageRequest, opts ...repository.Option) (*types.Pagination[T], error)

	// Save inserts one or more new entities and commits.
	Save(ctx context.Context, models ...*T) error

	// Update modifies an existing entity and commits.
	Update(ctx context.Context, model *T) error

	// Delete soft-deletes an entity and commits. The row stays in
	// storage flagged as deleted.
	Delete(ctx context.Context, model *T) error

	// Purge permanently removes an entity row and commits.
	Purge(ctx context.Context, model *T) error

	// DeleteWhere deletes the single entity matching the predicate,
	// softly or permanently, and commits.
	DeleteWhere(ctx context.Context, predicate *types.Predicate, soft bool) error

	// SelectBuilder returns a Bun select query builder for the entity.
	SelectBuilder() *bun.SelectQuery
}

type baseServiceImpl[T any] struct {
	resolver identity.Resolver
}

// NewService returns a Service backed by the global database connection.
// The resolver identifies the acting user for audit stamping; pass nil to
// resolve the user from each call's context.
func NewService[T any](resolver identity.Resolver) Service[T] {
	if resolver == nil {
		resolver = identity.ContextResolver{}
	}
	return &baseServiceImpl[T]{resolver: resolver}
}

func (s *baseServiceImpl[T]) readRepo() repository.Repository[T] {
	return repository.New[T](persistence.NewContext(database.GetDB(), s.resolver))
}

// write runs fn inside a fresh unit of work and commits its pending
// changes before returning.
func (s *baseServiceImpl[T]) write(ctx context.Context, fn func(repo repository.Repository[T]) error) error {
	return persistence.Run(ctx, database.GetDB(), s.resolver, func(ctx context.Context, uow *persistence.UnitOfWork) error {
		if err := fn(repository.For[T](uow)); err != nil {
			return err
		}
		_, err := uow.SaveChanges(ctx)
		return err
	})
}

func (s *baseServiceImpl[T]) Get(ctx context.Context, id any, opts ...repository.Option) (*T, error) {
	return s.readRepo().Get(ctx, id, opts...)
}

func (s *baseServiceImpl[T]) GetOne(ctx context.Context, predicate *types.Predicate, opts ...repository.Option) (*T, error) {
	return s.readRepo().GetOne(ctx, predicate, opts...)
}

func (s *baseServiceImpl[T]) All(ctx context.Context, opts ...repository.Option) ([]*T, error) {
	return s.readRepo().All(ctx, opts...)
}

func (s *baseServiceImpl[T]) Find(ctx context.Context, transform repository.SelectTransform, opts ...repository.Option) ([]*T, error) {
	return s.readRepo().Find(ctx, transform, opts...)
}

func (s *baseServiceImpl[T]) Page(ctx context.Context, request *types.PageRequest, opts ...repository.Option) (*types.Pagination[T], error) {
	return s.readRepo().Page(ctx, request, opts...)
}

func (s *baseServiceImpl[T]) Save(ctx context.Context, models ...*T) error {
	// A zero-arg call leaves the variadic slice nil; saving nothing is a
	// no-op, not an error.
	if models == nil {
		models = []*T{}
	}
	return s.write(ctx, func(repo repository.Repository[T]) error {
		_, err := repo.InsertMany(models)
		return err
	})
}

func (s *baseServiceImpl[T]) Update(ctx context.Context, model *T) error {
	return s.write(ctx, func(repo repository.Repository[T]) error {
		_, err := repo.Update(model)
		return err
	})
}

func (s *baseServiceImpl[T]) Delete(ctx context.Context, model *T) error {
	return s.write(ctx, func(repo repository.Repository[T]) error {
		return repo.Delete(model, true)
	})
}

func (s *baseServiceImpl[T]) Purge(ctx context.Context, model *T) error {
	return s.write(ctx, func(repo repository.Repository[T]) error {
		return repo.Delete(model, false)
	})
}

func (s *baseServiceImpl[T]) DeleteWhere(ctx context.Context, predicate *types.Predicate, soft bool) error {
	return s.write(ctx, func(repo repository.Repository[T]) error {
		return repo.DeleteWhere(ctx, predicate, soft)
	})
}

func (s *baseServiceImpl[T]) SelectBuilder() *bun.SelectQuery {
	return s.readRepo().NewSelect()
}
