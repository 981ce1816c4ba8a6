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

package repository

import (
	"errors"

	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/persistence"
)

var (
	// ErrAmbiguousMatch signals that a single-entity query matched more
	// than one row, which points at a data-integrity problem upstream.
	ErrAmbiguousMatch = errors.New("repository: query matched more than one row")

	// ErrNilPredicate rejects a nil predicate for predicate-driven
	// operations.
	ErrNilPredicate = errors.New("repository: predicate cannot be nil")

	// Re-exported persistence errors so callers only import one package
	// for the write-path taxonomy.
	ErrNilEntity    = persistence.ErrNilEntity
	ErrNotAuditable = persistence.ErrNotAuditable
)
