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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityStateName(t *testing.T) {
	assert.Equal(t, "detached", StateDetached.Name())
	assert.Equal(t, "pending_insert", StatePendingInsert.Name())
	assert.Equal(t, "pending_update", StatePendingUpdate.Name())
	assert.Equal(t, "pending_delete", StatePendingDelete.Name())
	assert.Equal(t, IllegalName, EntityState(42).Name())
}

func TestEntityStateNumber(t *testing.T) {
	assert.Equal(t, 0, StateDetached.Number())
	assert.Equal(t, 3, StatePendingDelete.Number())
	assert.Equal(t, IllegalValue, EntityState(-5).Number())
}

func TestEntityStateIsValid(t *testing.T) {
	assert.True(t, StatePendingInsert.IsValid())
	assert.False(t, EntityState(99).IsValid())
}

func TestPageRequestDefaults(t *testing.T) {
	request := NewDefaultPageRequest(0, 0)
	assert.Equal(t, 1, request.GetPage())
	assert.Equal(t, 10, request.GetPageSize())
	assert.Equal(t, 0, request.GetOffset())

	request = NewDefaultPageRequest(3, 20)
	assert.Equal(t, 40, request.GetOffset())
}
