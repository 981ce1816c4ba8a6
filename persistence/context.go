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
	"database/sql"
	"fmt"
	"reflect"
	"time"

	"github.com/uptrace/bun"

	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/database"
	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/identity"
	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/types"
)

// entry is one tracked change. The model field keeps the concrete
// struct pointer for Bun; audit is the same pointer seen through the
// stamping contract.
type entry struct {
	model any
	audit types.Auditable
	state types.EntityState
}

// Context tracks in-memory changes to entities and applies audit
// stamping immediately before they flush to storage. It is bound to one
// logical operation at a time and is not safe for concurrent use.
type Context struct {
	db       *bun.DB
	resolver identity.Resolver
	entries  []*entry
	index    map[types.Auditable]*entry
	closed   bool
}

// NewContext creates a persistence context over the given database.
// The resolver supplies the acting principal at commit time.
func NewContext(db *bun.DB, resolver identity.Resolver) *Context {
	return &Context{
		db:       db,
		resolver: resolver,
		index:    make(map[types.Auditable]*entry),
	}
}

// DB exposes the underlying Bun handle for read paths.
func (c *Context) DB() *bun.DB { return c.db }

// RegisterInsert marks models as pending-insert in one batch. The whole
// batch is validated before any model is tracked.
func (c *Context) RegisterInsert(models ...any) error {
	if c.closed {
		return ErrContextClosed
	}
	audits, err := c.validate(models)
	if err != nil {
		return err
	}
	for i, m := range models {
		if _, tracked := c.index[audits[i]]; tracked {
			continue
		}
		c.track(m, audits[i], types.StatePendingInsert)
	}
	return nil
}

// RegisterUpdate marks a model as pending-update. A model already
// pending insert keeps that state so its first commit still stamps the
// created_* fields.
func (c *Context) RegisterUpdate(model any) error {
	if c.closed {
		return ErrContextClosed
	}
	audits, err := c.validate([]any{model})
	if err != nil {
		return err
	}
	if _, tracked := c.index[audits[0]]; tracked {
		return nil
	}
	c.track(model, audits[0], types.StatePendingUpdate)
	return nil
}

// RegisterRemove marks a model for physical removal, overriding any
// previously tracked state.
func (c *Context) RegisterRemove(model any) error {
	if c.closed {
		return ErrContextClosed
	}
	audits, err := c.validate([]any{model})
	if err != nil {
		return err
	}
	if e, tracked := c.index[audits[0]]; tracked {
		e.state = types.StatePendingDelete
		return nil
	}
	c.track(model, audits[0], types.StatePendingDelete)
	return nil
}

// StateOf reports how the tracker currently sees the model.
func (c *Context) StateOf(model any) types.EntityState {
	a, ok := types.AsAuditable(model)
	if !ok {
		return types.StateDetached
	}
	if e, tracked := c.index[a]; tracked {
		return e.state
	}
	return types.StateDetached
}

// Pending returns the number of tracked changes awaiting commit.
func (c *Context) Pending() int { return len(c.entries) }

// Commit stamps audit fields on every pending change and flushes the
// change set to storage in one transaction. It returns the total
// affected row count. Stamping is part of every commit, no matter which
// repository queued the change; stamped-but-unflushed state stays in
// memory when the flush is cancelled or fails, and the change set is
// retained for a retry.
func (c *Context) Commit(ctx context.Context) (int64, error) {
	if c.closed {
		return 0, ErrContextClosed
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(c.entries) == 0 {
		return 0, nil
	}

	principal, err := c.resolver.CurrentUserID(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolve principal: %w", err)
	}
	if principal == "" {
		return 0, fmt.Errorf("resolve principal: %w", identity.ErrNoPrincipal)
	}

	now := time.Now().UTC()
	for _, e := range c.entries {
		switch e.state {
		case types.StatePendingInsert:
			e.audit.StampCreated(principal, now)
		case types.StatePendingUpdate:
			e.audit.StampUpdated(principal, now)
		}
	}

	var affected int64
	err = c.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, e := range c.entries {
			var res sql.Result
			var execErr error
			switch e.state {
			case types.StatePendingInsert:
				res, execErr = tx.NewInsert().Model(e.model).Exec(ctx)
			case types.StatePendingUpdate:
				res, execErr = tx.NewUpdate().Model(e.model).WherePK().Exec(ctx)
			case types.StatePendingDelete:
				res, execErr = tx.NewDelete().Model(e.model).WherePK().Exec(ctx)
			default:
				continue
			}
			if execErr != nil {
				return execErr
			}
			if n, raErr := res.RowsAffected(); raErr == nil {
				affected += n
			}
		}
		return nil
	})
	if err != nil {
		// Storage failures surface untouched; classification is for
		// diagnostics only.
		if is, kind := database.IsSqlError(err); is {
			database.GetLogger().Debug("Commit flush failed", "sql_error", kind.Name(), "error", err.Error())
		}
		return 0, err
	}

	c.clear()
	return affected, nil
}

// Close releases the context. Pending uncommitted changes are dropped.
func (c *Context) Close() error {
	if c.closed {
		return ErrContextClosed
	}
	c.closed = true
	c.clear()
	return nil
}

func (c *Context) track(model any, audit types.Auditable, state types.EntityState) {
	e := &entry{model: model, audit: audit, state: state}
	c.entries = append(c.entries, e)
	c.index[audit] = e
}

func (c *Context) validate(models []any) ([]types.Auditable, error) {
	audits := make([]types.Auditable, len(models))
	for i, m := range models {
		if m == nil || isNilPointer(m) {
			return nil, ErrNilEntity
		}
		a, ok := types.AsAuditable(m)
		if !ok {
			return nil, ErrNotAuditable
		}
		audits[i] = a
	}
	return audits, nil
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func (c *Context) clear() {
	c.entries = nil
	c.index = make(map[types.Auditable]*entry)
}
