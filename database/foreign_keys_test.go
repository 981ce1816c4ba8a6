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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConstraintName(t *testing.T) {
	fk := ForeignKeyConstraint{Table: "expenses", Column: "category_id"}
	assert.Equal(t, "fk_expenses_category_id", fk.GenerateConstraintName())

	fk.ConstraintName = "fk_custom"
	assert.Equal(t, "fk_custom", fk.GenerateConstraintName())
}

func TestGenerateSQL(t *testing.T) {
	fk := ForeignKeyConstraint{
		Table:           "expenses",
		Column:          "category_id",
		ReferenceTable:  "categories",
		ReferenceColumn: "id",
		OnDelete:        "RESTRICT",
		OnUpdate:        "CASCADE",
	}

	sql := fk.GenerateSQL()
	assert.Equal(t,
		"ALTER TABLE expenses ADD CONSTRAINT fk_expenses_category_id FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE RESTRICT ON UPDATE CASCADE",
		sql)
}

func TestValidateConstraints(t *testing.T) {
	fkm := &ForeignKeyManager{
		constraints: []ForeignKeyConstraint{
			{Table: "expenses", Column: "category_id", ReferenceTable: "categories", ReferenceColumn: "id"},
			{Table: "", Column: "", ReferenceTable: "", ReferenceColumn: "", OnDelete: "EXPLODE"},
		},
	}

	errs := fkm.ValidateConstraints()
	assert.Len(t, errs, 5)
}

func TestGetConstraintsByTable(t *testing.T) {
	fkm := &ForeignKeyManager{
		constraints: []ForeignKeyConstraint{
			{Table: "expenses", Column: "category_id"},
			{Table: "Expenses", Column: "account_id"},
			{Table: "budgets", Column: "category_id"},
		},
	}

	assert.Len(t, fkm.GetConstraintsByTable("expenses"), 2)
	assert.Len(t, fkm.GetConstraintsByTable("budgets"), 1)
	assert.Empty(t, fkm.GetConstraintsByTable("accounts"))
}

func TestConfigurableForeignKeyManagerFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foreign_keys.yaml")
	content := `foreign_keys:
  - table: expenses
    column: category_id
    reference_table: categories
    reference_column: id
    on_delete: RESTRICT
    on_update: CASCADE
    description: expense category link
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	manager, err := NewConfigurableForeignKeyManager(nil, path)
	require.NoError(t, err)

	constraints := manager.ListAllConstraints()
	require.Len(t, constraints, 1)
	assert.Equal(t, "expenses", constraints[0].Table)
	assert.Equal(t, "RESTRICT", constraints[0].OnDelete)
	assert.Empty(t, manager.ValidateConstraints())
}

func TestConfigurableForeignKeyManagerMissingFileFallsBack(t *testing.T) {
	manager, err := NewConfigurableForeignKeyManager(nil, "does/not/exist.yaml")
	require.NoError(t, err)
	assert.Empty(t, manager.ListAllConstraints())
}
