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

package persistence_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/identity"
	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/persistence"
	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/types"
)

type Expense struct {
	bun.BaseModel `bun:"table:expenses,alias:e"`
	types.Entity

	Title  string  `bun:"title,notnull"`
	Amount float64 `bun:"amount,notnull"`
}

func newExpense(title string, amount float64) *Expense {
	return &Expense{Entity: types.NewEntity(), Title: title, Amount: amount}
}

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	// one connection keeps the in-memory database alive across queries
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	_, err = db.NewCreateTable().Model((*Expense)(nil)).IfNotExists().Exec(context.Background())
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRegisterInsertTracksState(t *testing.T) {
	pc := persistence.NewContext(newTestDB(t), identity.Static("user-1"))
	expense := newExpense("Coffee", 4.50)

	assert.Equal(t, types.StateDetached, pc.StateOf(expense))

	require.NoError(t, pc.RegisterInsert(expense))
	assert.Equal(t, types.StatePendingInsert, pc.StateOf(expense))
	assert.Equal(t, 1, pc.Pending())

	// registering again is a no-op
	require.NoError(t, pc.RegisterInsert(expense))
	assert.Equal(t, 1, pc.Pending())
}

func TestRegisterInsertRejectsWholeBatch(t *testing.T) {
	pc := persistence.NewContext(newTestDB(t), identity.Static("user-1"))
	valid := newExpense("Coffee", 4.50)

	err := pc.RegisterInsert(valid, (*Expense)(nil))
	assert.ErrorIs(t, err, persistence.ErrNilEntity)
	assert.Equal(t, 0, pc.Pending())
	assert.Equal(t, types.StateDetached, pc.StateOf(valid))
}

func TestRegisterInsertNotAuditable(t *testing.T) {
	pc := persistence.NewContext(newTestDB(t), identity.Static("user-1"))

	type plain struct{ Name string }
	err := pc.RegisterInsert(&plain{Name: "x"})
	assert.ErrorIs(t, err, persistence.ErrNotAuditable)
}

func TestRegisterUpdateKeepsPendingInsert(t *testing.T) {
	pc := persistence.NewContext(newTestDB(t), identity.Static("user-1"))
	expense := newExpense("Coffee", 4.50)

	require.NoError(t, pc.RegisterInsert(expense))
	require.NoError(t, pc.RegisterUpdate(expense))

	// the first commit must still stamp created_*
	assert.Equal(t, types.StatePendingInsert, pc.StateOf(expense))
}

func TestRegisterRemoveOverridesState(t *testing.T) {
	pc := persistence.NewContext(newTestDB(t), identity.Static("user-1"))
	expense := newExpense("Coffee", 4.50)

	require.NoError(t, pc.RegisterUpdate(expense))
	require.NoError(t, pc.RegisterRemove(expense))
	assert.Equal(t, types.StatePendingDelete, pc.StateOf(expense))
	assert.Equal(t, 1, pc.Pending())
}

func TestCommitStampsInsert(t *testing.T) {
	db := newTestDB(t)
	pc := persistence.NewContext(db, identity.Static("user-1"))
	expense := newExpense("Coffee", 4.50)

	require.NoError(t, pc.RegisterInsert(expense))
	affected, err := pc.Commit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	assert.Equal(t, "user-1", expense.CreatedBy)
	assert.Equal(t, "user-1", expense.UpdatedBy)
	assert.False(t, expense.CreatedTime.IsZero())
	assert.Equal(t, expense.CreatedTime, expense.UpdatedTime)

	// tracker is clean after a successful commit
	assert.Equal(t, 0, pc.Pending())
	assert.Equal(t, types.StateDetached, pc.StateOf(expense))

	var stored Expense
	err = db.NewSelect().Model(&stored).Where("id = ?", expense.ID).Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Coffee", stored.Title)
	assert.Equal(t, "user-1", stored.CreatedBy)
}

func TestCommitStampsUpdateOnly(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	pc := persistence.NewContext(db, identity.Static("user-1"))
	expense := newExpense("Coffee", 4.50)
	require.NoError(t, pc.RegisterInsert(expense))
	_, err := pc.Commit(ctx)
	require.NoError(t, err)

	created := expense.CreatedTime

	pc2 := persistence.NewContext(db, identity.Static("user-2"))
	expense.Amount = 5.00
	require.NoError(t, pc2.RegisterUpdate(expense))
	affected, err := pc2.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	assert.Equal(t, "user-1", expense.CreatedBy)
	assert.Equal(t, created, expense.CreatedTime)
	assert.Equal(t, "user-2", expense.UpdatedBy)
	assert.True(t, expense.UpdatedTime.After(created))

	var stored Expense
	err = db.NewSelect().Model(&stored).Where("id = ?", expense.ID).Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5.00, stored.Amount)
	assert.Equal(t, "user-1", stored.CreatedBy)
	assert.Equal(t, "user-2", stored.UpdatedBy)
}

func TestCommitDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	pc := persistence.NewContext(db, identity.Static("user-1"))
	expense := newExpense("Coffee", 4.50)
	require.NoError(t, pc.RegisterInsert(expense))
	_, err := pc.Commit(ctx)
	require.NoError(t, err)

	require.NoError(t, pc.RegisterRemove(expense))
	affected, err := pc.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	count, err := db.NewSelect().Model((*Expense)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCommitEmptyChangeSet(t *testing.T) {
	pc := persistence.NewContext(newTestDB(t), identity.Static("user-1"))
	affected, err := pc.Commit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestCommitNoPrincipal(t *testing.T) {
	pc := persistence.NewContext(newTestDB(t), identity.ContextResolver{})
	expense := newExpense("Coffee", 4.50)
	require.NoError(t, pc.RegisterInsert(expense))

	_, err := pc.Commit(context.Background())
	assert.ErrorIs(t, err, identity.ErrNoPrincipal)

	// nothing was stamped and the change set survives for a retry
	assert.Empty(t, expense.CreatedBy)
	assert.Equal(t, 1, pc.Pending())

	_, err = pc.Commit(identity.WithUser(context.Background(), "user-1"))
	require.NoError(t, err)
	assert.Equal(t, "user-1", expense.CreatedBy)
}

func TestCommitCancelledContext(t *testing.T) {
	pc := persistence.NewContext(newTestDB(t), identity.Static("user-1"))
	expense := newExpense("Coffee", 4.50)
	require.NoError(t, pc.RegisterInsert(expense))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pc.Commit(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, pc.Pending())
}

func TestClosedContext(t *testing.T) {
	pc := persistence.NewContext(newTestDB(t), identity.Static("user-1"))
	require.NoError(t, pc.Close())

	assert.ErrorIs(t, pc.RegisterInsert(newExpense("Coffee", 4.50)), persistence.ErrContextClosed)
	assert.ErrorIs(t, pc.RegisterUpdate(newExpense("Tea", 3.00)), persistence.ErrContextClosed)
	assert.ErrorIs(t, pc.RegisterRemove(newExpense("Cake", 6.00)), persistence.ErrContextClosed)

	_, err := pc.Commit(context.Background())
	assert.ErrorIs(t, err, persistence.ErrContextClosed)

	assert.ErrorIs(t, pc.Close(), persistence.ErrContextClosed)
}
