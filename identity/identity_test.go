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

package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextResolver(t *testing.T) {
	resolver := ContextResolver{}

	ctx := WithUser(context.Background(), "user-1")
	id, err := resolver.CurrentUserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)

	_, err = resolver.CurrentUserID(context.Background())
	assert.ErrorIs(t, err, ErrNoPrincipal)

	_, err = resolver.CurrentUserID(WithUser(context.Background(), ""))
	assert.ErrorIs(t, err, ErrNoPrincipal)
}

func TestStaticResolver(t *testing.T) {
	id, err := Static("batch-job").CurrentUserID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "batch-job", id)

	_, err = Static("").CurrentUserID(context.Background())
	assert.ErrorIs(t, err, ErrNoPrincipal)
}

func TestUserFromContext(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)

	id, ok := UserFromContext(WithUser(context.Background(), "user-2"))
	assert.True(t, ok)
	assert.Equal(t, "user-2", id)
}
