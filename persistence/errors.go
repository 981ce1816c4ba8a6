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

package persistence

import "errors"

var (
	// ErrNilEntity rejects a nil entity handed to a write operation.
	// Raised before any state mutation or I/O.
	ErrNilEntity = errors.New("persistence: entity cannot be nil")

	// ErrNotAuditable rejects a model that does not embed types.Entity
	// and therefore cannot receive audit stamps.
	ErrNotAuditable = errors.New("persistence: model does not implement the audit contract")

	// ErrContextClosed rejects use of a released persistence context.
	ErrContextClosed = errors.New("persistence: context has been released")
)
