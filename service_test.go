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

package myexpenses_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	myexpenses "github.com/My-Expenses-by-Phong/MyExpenses.Repository"
	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/database"
	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/identity"
	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/repository"
	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/types"
)

type Expense struct {
	bun.BaseModel `bun:"table:expenses,alias:e"`
	types.Entity

	Title    string  `bun:"title,notnull"`
	Category string  `bun:"category"`
	Amount   float64 `bun:"amount,notnull"`
}

func newExpense(title, category string, amount float64) *Expense {
	return &Expense{Entity: types.NewEntity(), Title: title, Category: category, Amount: amount}
}

func setupGlobalDB(t *testing.T) {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	_, err = db.NewCreateTable().Model((*Expense)(nil)).IfNotExists().Exec(context.Background())
	require.NoError(t, err)

	database.DB = db
	t.Cleanup(func() {
		database.DB = nil
		_ = db.Close()
	})
}

func TestServiceLifecycle(t *testing.T) {
	setupGlobalDB(t)
	ctx := context.Background()
	svc := myexpenses.NewService[Expense](identity.Static("user-1"))

	coffee := newExpense("Coffee", "food", 4.50)
	require.NoError(t, svc.Save(ctx, coffee))
	assert.Equal(t, "user-1", coffee.CreatedBy)

	got, err := svc.Get(ctx, coffee.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Coffee", got.Title)

	coffee.Amount = 5.00
	require.NoError(t, svc.Update(ctx, coffee))

	got, err = svc.Get(ctx, coffee.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 5.00, got.Amount)
	assert.Equal(t, "user-1", got.UpdatedBy)

	require.NoError(t, svc.Delete(ctx, coffee))

	got, err = svc.Get(ctx, coffee.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = svc.Get(ctx, coffee.ID, repository.IncludeDeleted())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsDeleted)

	require.NoError(t, svc.Purge(ctx, coffee))
	got, err = svc.Get(ctx, coffee.ID, repository.IncludeDeleted())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestServiceSaveNothingIsNoOp(t *testing.T) {
	setupGlobalDB(t)
	ctx := context.Background()
	svc := myexpenses.NewService[Expense](identity.Static("user-1"))

	require.NoError(t, svc.Save(ctx))

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestServiceContextResolver(t *testing.T) {
	setupGlobalDB(t)
	svc := myexpenses.NewService[Expense](nil)

	coffee := newExpense("Coffee", "food", 4.50)

	// no principal in the context: the commit refuses to stamp
	err := svc.Save(context.Background(), coffee)
	assert.ErrorIs(t, err, identity.ErrNoPrincipal)

	ctx := identity.WithUser(context.Background(), "user-2")
	coffee = newExpense("Coffee", "food", 4.50)
	require.NoError(t, svc.Save(ctx, coffee))
	assert.Equal(t, "user-2", coffee.CreatedBy)
}

func TestServiceQueries(t *testing.T) {
	setupGlobalDB(t)
	ctx := context.Background()
	svc := myexpenses.NewService[Expense](identity.Static("user-1"))

	require.NoError(t, svc.Save(ctx,
		newExpense("Coffee", "food", 4.50),
		newExpense("Lunch", "food", 12.00),
		newExpense("Metro", "transport", 2.40)))

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	metro, err := svc.GetOne(ctx, types.NewPredicate("title = ?", "Metro"))
	require.NoError(t, err)
	require.NotNil(t, metro)
	assert.Equal(t, "transport", metro.Category)

	food, err := svc.Find(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("category = ?", "food").Order("amount ASC")
	})
	require.NoError(t, err)
	require.Len(t, food, 2)
	assert.Equal(t, "Coffee", food[0].Title)

	page, err := svc.Page(ctx, types.NewPageRequest(1, 2, nil, []string{"amount DESC"}))
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Lunch", page.Items[0].Title)

	require.NoError(t, svc.DeleteWhere(ctx, types.NewPredicate("title = ?", "Metro"), true))
	all, err = svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
