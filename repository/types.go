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

	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/types"
)

// SelectTransform lets a caller reshape a query (filter, sort, eager
// relations) after the soft-delete filter has been applied. It is the
// escape hatch that keeps entity-specific repositories from sprouting
// one method per query shape.
type SelectTransform func(*bun.SelectQuery) *bun.SelectQuery

// Option adjusts read behavior. The default for every read excludes
// soft-deleted rows.
type Option func(*settings)

type settings struct {
	includeDeleted bool
}

// IncludeDeleted makes a read return soft-deleted rows as well.
func IncludeDeleted() Option {
	return func(s *settings) { s.includeDeleted = true }
}

func applyOptions(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ReadRepository defines soft-delete-aware read operations for one
// entity type. Absent rows are (nil, nil), never an error; a
// single-entity query matching more than one row is ErrAmbiguousMatch.
type ReadRepository[T any] interface {
	Get(ctx context.Context, id any, opts ...Option) (*T, error)

	GetOne(ctx context.Context, predicate *types.Predicate, opts ...Option) (*T, error)

	All(ctx context.Context, opts ...Option) ([]*T, error)

	Find(ctx context.Context, transform SelectTransform, opts ...Option) ([]*T, error)

	Page(ctx context.Context, request *types.PageRequest, opts ...Option) (*types.Pagination[T], error)
}

// WriteRepository defines write operations. Writes only queue changes
// into the shared persistence context; nothing reaches storage until
// the unit of work commits.
type WriteRepository[T any] interface {
	Insert(entity *T) (*T, error)

	InsertMany(entities []*T) ([]*T, error)

	Update(entity *T) (*T, error)

	Delete(entity *T, soft bool) error

	DeleteWhere(ctx context.Context, predicate *types.Predicate, soft bool) error
}

// Repository combines reads and writes over one entity type and exposes
// the raw select builder for fully manual queries.
type Repository[T any] interface {
	ReadRepository[T]
	WriteRepository[T]
	NewSelect() *bun.SelectQuery
}
