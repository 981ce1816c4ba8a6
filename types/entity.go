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
	"time"

	"github.com/google/uuid"
)

// Entity is the embeddable base carried by every persistent record: a
// client-generated identifier, the soft-delete flag, and the four audit
// fields. Audit fields are never written by callers; the persistence
// context stamps them during commit.
type Entity struct {
	ID          string    `bun:"id,pk" json:"id"`
	IsDeleted   bool      `bun:"is_deleted,notnull,default:false" json:"is_deleted"`
	CreatedBy   string    `bun:"created_by" json:"created_by"`
	UpdatedBy   string    `bun:"updated_by" json:"updated_by"`
	CreatedTime time.Time `bun:"created_time,nullzero" json:"created_time"`
	UpdatedTime time.Time `bun:"updated_time,nullzero" json:"updated_time"`
}

// NewEntity returns a base with a freshly generated identifier and no
// audit fields set.
func NewEntity() Entity {
	return Entity{ID: NewID()}
}

// NewID generates a UUIDv7 identifier. The time-ordered prefix keeps
// primary key index locality for insert-heavy tables.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Auditable is the capability contract the persistence context works
// through. Any struct embedding Entity satisfies it via its pointer.
type Auditable interface {
	EntityID() string
	Deleted() bool
	MarkDeleted()
	StampCreated(by string, at time.Time)
	StampUpdated(by string, at time.Time)
}

// AsAuditable reports whether v participates in audit stamping.
func AsAuditable(v any) (Auditable, bool) {
	a, ok := v.(Auditable)
	return a, ok
}

func (e *Entity) EntityID() string { return e.ID }

func (e *Entity) Deleted() bool { return e.IsDeleted }

func (e *Entity) MarkDeleted() { e.IsDeleted = true }

// StampCreated sets all four audit fields. It runs once, at the first
// commit after construction.
func (e *Entity) StampCreated(by string, at time.Time) {
	e.CreatedBy = by
	e.CreatedTime = at
	e.UpdatedBy = by
	e.UpdatedTime = at
}

// StampUpdated touches only the updated_* pair; created_* stays as
// written by the first commit.
func (e *Entity) StampUpdated(by string, at time.Time) {
	e.UpdatedBy = by
	e.UpdatedTime = at
}
