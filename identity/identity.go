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

// Package identity resolves the acting principal for audit stamping.
// Authentication itself lives in the application layer; this package
// only carries an already-established user id to the commit path.
package identity

import (
	"context"
	"errors"
)

// ErrNoPrincipal is returned when no acting user can be resolved.
// Commits must fail on it rather than stamp an undefined identifier.
var ErrNoPrincipal = errors.New("identity: no principal resolvable")

// Resolver yields the identifier of the current acting principal.
type Resolver interface {
	CurrentUserID(ctx context.Context) (string, error)
}

type ctxKey struct{}

// WithUser returns a context carrying the acting user's identifier.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserFromContext extracts the user id placed by WithUser.
func UserFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// ContextResolver resolves the principal from the request context. It
// is the default: identity flows explicitly through the call chain
// instead of living in package-global state.
type ContextResolver struct{}

func (ContextResolver) CurrentUserID(ctx context.Context) (string, error) {
	id, ok := UserFromContext(ctx)
	if !ok {
		return "", ErrNoPrincipal
	}
	return id, nil
}

// Static returns a resolver that always yields the given id. Intended
// for batch jobs and tests.
func Static(userID string) Resolver {
	return staticResolver(userID)
}

type staticResolver string

func (s staticResolver) CurrentUserID(context.Context) (string, error) {
	if s == "" {
		return "", ErrNoPrincipal
	}
	return string(s), nil
}
