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

package persistence

import (
	"context"
	"sync"

	"github.com/uptrace/bun"

	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/identity"
)

// UnitOfWork is the single commit boundary for all repositories sharing
// one persistence context. It owns exactly one context for its lifetime
// and releases it exactly once.
type UnitOfWork struct {
	pc        *Context
	closeOnce sync.Once
	closeErr  error
}

// NewUnitOfWork acquires a fresh persistence context over db.
func NewUnitOfWork(db *bun.DB, resolver identity.Resolver) *UnitOfWork {
	return &UnitOfWork{pc: NewContext(db, resolver)}
}

// Context returns the owned persistence context. Repositories bound to
// it share this unit of work's commit boundary.
func (u *UnitOfWork) Context() *Context { return u.pc }

// SaveChanges commits all pending changes. Repository operations alone
// never write through to storage; this is the only durability point.
func (u *UnitOfWork) SaveChanges(ctx context.Context) (int64, error) {
	return u.pc.Commit(ctx)
}

// Close releases the owned context. Safe to call multiple times; the
// release happens once.
func (u *UnitOfWork) Close() error {
	u.closeOnce.Do(func() {
		u.closeErr = u.pc.Close()
	})
	return u.closeErr
}

// Run executes fn within a scoped unit of work, releasing the context
// on every exit path.
func Run(ctx context.Context, db *bun.DB, resolver identity.Resolver, fn func(ctx context.Context, uow *UnitOfWork) error) error {
	uow := NewUnitOfWork(db, resolver)
	defer func() { _ = uow.Close() }()
	return fn(ctx, uow)
}
