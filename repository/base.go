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

package repository

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/persistence"
	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/types"
)

type baseRepositoryImpl[T any] struct {
	pc *persistence.Context
}

// New returns a generic repository bound to the given persistence
// context. All repositories sharing one context share one commit
// boundary.
func New[T any](pc *persistence.Context) Repository[T] {
	return &baseRepositoryImpl[T]{pc: pc}
}

// For binds a repository to the persistence context owned by uow.
func For[T any](uow *persistence.UnitOfWork) Repository[T] {
	return New[T](uow.Context())
}

func (r *baseRepositoryImpl[T]) NewSelect() *bun.SelectQuery {
	return r.pc.DB().NewSelect()
}

// withVisibility applies the shared soft-delete filter policy: the
// default excludes any row whose is_deleted flag is set.
func withVisibility(q *bun.SelectQuery, s settings) *bun.SelectQuery {
	if s.includeDeleted {
		return q
	}
	return q.Where("?TableAlias.is_deleted = ?", false)
}

func (r *baseRepositoryImpl[T]) Get(ctx context.Context, id any, opts ...Option) (*T, error) {
	var entities []*T
	q := r.pc.DB().NewSelect().
		Model(&entities).
		Where("?TableAlias.id = ?", id).
		Limit(2)
	if err := withVisibility(q, applyOptions(opts)).Scan(ctx); err != nil {
		return nil, err
	}
	return single(entities)
}

func (r *baseRepositoryImpl[T]) GetOne(ctx context.Context, predicate *types.Predicate, opts ...Option) (*T, error) {
	if predicate == nil {
		return nil, ErrNilPredicate
	}
	var entities []*T
	q := r.pc.DB().NewSelect().
		Model(&entities).
		Where(predicate.Expr, predicate.Args...).
		Limit(2)
	if err := withVisibility(q, applyOptions(opts)).Scan(ctx); err != nil {
		return nil, err
	}
	return single(entities)
}

func (r *baseRepositoryImpl[T]) All(ctx context.Context, opts ...Option) ([]*T, error) {
	var entities []*T
	q := withVisibility(r.pc.DB().NewSelect().Model(&entities), applyOptions(opts))
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) Find(ctx context.Context, transform SelectTransform, opts ...Option) ([]*T, error) {
	var entities []*T
	// Visibility first, caller shaping second: a transform narrows the
	// visible set, it never widens it.
	q := withVisibility(r.pc.DB().NewSelect().Model(&entities), applyOptions(opts))
	if transform != nil {
		q = transform(q)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) Page(ctx context.Context, request *types.PageRequest, opts ...Option) (*types.Pagination[T], error) {
	if request == nil {
		request = types.NewDefaultPageRequest(1, 10)
	}
	var entities []*T
	q := withVisibility(r.pc.DB().NewSelect().Model(&entities), applyOptions(opts))
	if p := request.GetPredicate(); p != nil {
		q = q.Where(p.Expr, p.Args...)
	}
	pagination := types.NewDefaultPagination[T](request.GetPage(), request.GetPageSize())
	total, err := q.Count(ctx)
	if err != nil || total == 0 {
		return pagination, err
	}
	err = q.
		Offset(request.GetOffset()).
		Limit(request.GetPageSize()).
		Order(request.GetOrders()...).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	pagination.Total = total
	pagination.Items = entities
	return pagination, nil
}

func (r *baseRepositoryImpl[T]) Insert(entity *T) (*T, error) {
	if entity == nil {
		return nil, ErrNilEntity
	}
	// Identifiers are assigned at construction and audit fields at
	// commit; registration queues the row and nothing else.
	if err := r.pc.RegisterInsert(entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *baseRepositoryImpl[T]) InsertMany(entities []*T) ([]*T, error) {
	if entities == nil {
		return nil, ErrNilEntity
	}
	if len(entities) == 0 {
		return []*T{}, nil
	}
	models := make([]any, len(entities))
	for i, e := range entities {
		models[i] = e
	}
	if err := r.pc.RegisterInsert(models...); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) Update(entity *T) (*T, error) {
	if entity == nil {
		return nil, ErrNilEntity
	}
	if err := r.pc.RegisterUpdate(entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *baseRepositoryImpl[T]) Delete(entity *T, soft bool) error {
	if entity == nil {
		return ErrNilEntity
	}
	if !soft {
		// Physical removal ignores the current soft-delete flag.
		return r.pc.RegisterRemove(entity)
	}
	a, ok := types.AsAuditable(entity)
	if !ok {
		return ErrNotAuditable
	}
	if a.Deleted() {
		return nil
	}
	a.MarkDeleted()
	return r.pc.RegisterUpdate(entity)
}

func (r *baseRepositoryImpl[T]) DeleteWhere(ctx context.Context, predicate *types.Predicate, soft bool) error {
	if predicate == nil {
		return ErrNilPredicate
	}
	// The lookup always spans soft-deleted rows so a hard delete can
	// reach a row that was soft-deleted earlier. Soft-deleting an
	// already-deleted match stays a no-op.
	entity, err := r.GetOne(ctx, predicate, IncludeDeleted())
	if err != nil {
		return err
	}
	if entity == nil {
		return nil
	}
	return r.Delete(entity, soft)
}

func single[T any](entities []*T) (*T, error) {
	switch len(entities) {
	case 0:
		return nil, nil
	case 1:
		return entities[0], nil
	default:
		return nil, ErrAmbiguousMatch
	}
}
