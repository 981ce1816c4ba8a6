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

// Common illegal/default values used by enums.
const (
	IllegalValue = -1
	IllegalName  = "unknown"
)

// BaseEnum represents a basic enum contract used by domain types.
type BaseEnum interface {
	IsValid() bool
	Number() int
	String() string
	Name() string
}

// EntityState describes how the change tracker sees an entity between
// registration and commit.
type EntityState int

const (
	StateDetached EntityState = iota
	StatePendingInsert
	StatePendingUpdate
	StatePendingDelete
)

var _ BaseEnum = StateDetached

func (s EntityState) IsValid() bool {
	return s >= StateDetached && s <= StatePendingDelete
}

func (s EntityState) Number() int {
	if !s.IsValid() {
		return IllegalValue
	}
	return int(s)
}

func (s EntityState) Name() string {
	switch s {
	case StateDetached:
		return "detached"
	case StatePendingInsert:
		return "pending_insert"
	case StatePendingUpdate:
		return "pending_update"
	case StatePendingDelete:
		return "pending_delete"
	default:
		return IllegalName
	}
}

func (s EntityState) String() string { return s.Name() }
