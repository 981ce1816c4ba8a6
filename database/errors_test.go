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

package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsSqlErrorMySQLNumbers(t *testing.T) {
	cases := []struct {
		number uint16
		want   SQLError
	}{
		{1054, NoColumnErr},
		{1050, ExistTableErr},
		{1062, DuplicateKeyErr},
		{1048, NotNullViolationErr},
		{1451, ForeignKeyViolationErr},
		{1452, ForeignKeyViolationErr},
		{3819, CheckConstraintViolationErr},
		{1265, DataTruncatedErr},
		{1146, NoTableErr},
		{9999, UnknownErr},
	}

	for _, c := range cases {
		err := &mysql.MySQLError{Number: c.number, Message: "test"}
		is, kind := IsSqlError(err)
		assert.True(t, is, "number %d", c.number)
		assert.Equal(t, c.want, kind, "number %d", c.number)
	}
}

func TestIsSqlErrorWrapped(t *testing.T) {
	inner := &mysql.MySQLError{Number: 1062, Message: "duplicate"}
	is, kind := IsSqlError(fmt.Errorf("commit failed: %w", inner))
	assert.True(t, is)
	assert.Equal(t, DuplicateKeyErr, kind)
}

func TestIsSqlErrorTextMatching(t *testing.T) {
	cases := []struct {
		message string
		want    SQLError
	}{
		{"ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)", DuplicateKeyErr},
		{"UNIQUE constraint failed: expenses.id", DuplicateKeyErr},
		{"NOT NULL constraint failed: expenses.title", NotNullViolationErr},
		{"FOREIGN KEY constraint failed", ForeignKeyViolationErr},
		{"no such table: expenses", NoTableErr},
		{"no such column: amount_cents", NoColumnErr},
		{"ERROR: relation \"expenses\" already exists (SQLSTATE 42P07)", ExistTableErr},
		{"CHECK constraint failed: amount_positive", CheckConstraintViolationErr},
		{"ERROR: value too long for type (SQLSTATE 22001)", DataTruncatedErr},
		{"datatype mismatch", InvalidTypeCastErr},
	}

	for _, c := range cases {
		is, kind := IsSqlError(errors.New(c.message))
		assert.True(t, is, c.message)
		assert.Equal(t, c.want, kind, c.message)
	}
}

func TestIsSqlErrorNonStorage(t *testing.T) {
	is, kind := IsSqlError(errors.New("dial tcp: connection refused"))
	assert.False(t, is)
	assert.Equal(t, UnknownErr, kind)

	is, _ = IsSqlError(nil)
	assert.False(t, is)
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, IsDuplicateKey(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsDuplicateKey(errors.New("no such table: expenses")))
	assert.False(t, IsDuplicateKey(nil))
}

func TestSQLErrorName(t *testing.T) {
	assert.Equal(t, "duplicate_key", DuplicateKeyErr.Name())
	assert.Equal(t, "foreign_key_violation", ForeignKeyViolationErr.Name())
	assert.Equal(t, "unknown", UnknownErr.Name())
	assert.Equal(t, "unknown", SQLError(99).Name())
}
