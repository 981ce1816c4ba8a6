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

package types

import (
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expenseRecord struct {
	Entity
	Title  string
	Amount float64
}

func TestNewEntity(t *testing.T) {
	e := NewEntity()
	require.NotEmpty(t, e.ID)

	parsed, err := uuid.Parse(e.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	assert.False(t, e.IsDeleted)
	assert.Empty(t, e.CreatedBy)
	assert.Empty(t, e.UpdatedBy)
	assert.True(t, e.CreatedTime.IsZero())
	assert.True(t, e.UpdatedTime.IsZero())
}

func TestNewIDTimeOrdered(t *testing.T) {
	ids := make([]string, 0, 64)
	for i := 0; i < 64; i++ {
		ids = append(ids, NewID())
	}

	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, len(ids))

	// UUIDv7 encodes a millisecond timestamp prefix, so ids generated in
	// sequence sort in generation order.
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	assert.Equal(t, ids, sorted)
}

func TestStampCreated(t *testing.T) {
	record := &expenseRecord{Entity: NewEntity(), Title: "Coffee", Amount: 4.50}
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	record.StampCreated("user-1", at)

	assert.Equal(t, "user-1", record.CreatedBy)
	assert.Equal(t, "user-1", record.UpdatedBy)
	assert.Equal(t, at, record.CreatedTime)
	assert.Equal(t, at, record.UpdatedTime)
}

func TestStampUpdatedKeepsCreated(t *testing.T) {
	record := &expenseRecord{Entity: NewEntity(), Title: "Coffee", Amount: 4.50}
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	record.StampCreated("user-1", created)
	record.StampUpdated("user-2", updated)

	assert.Equal(t, "user-1", record.CreatedBy)
	assert.Equal(t, created, record.CreatedTime)
	assert.Equal(t, "user-2", record.UpdatedBy)
	assert.Equal(t, updated, record.UpdatedTime)
}

func TestMarkDeleted(t *testing.T) {
	record := &expenseRecord{Entity: NewEntity()}
	assert.False(t, record.Deleted())
	record.MarkDeleted()
	assert.True(t, record.Deleted())
}

func TestAsAuditable(t *testing.T) {
	record := &expenseRecord{Entity: NewEntity()}
	a, ok := AsAuditable(record)
	require.True(t, ok)
	assert.Equal(t, record.ID, a.EntityID())

	_, ok = AsAuditable("not an entity")
	assert.False(t, ok)

	// A value (not pointer) does not expose the stamping contract.
	_, ok = AsAuditable(expenseRecord{})
	assert.False(t, ok)
}
