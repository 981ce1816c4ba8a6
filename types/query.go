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

// Predicate is a boolean expression over entity columns: a WHERE
// fragment plus its bind arguments. Single-entity lookups require it to
// match at most one row.
type Predicate struct {
	Expr string
	Args []interface{}
}

// NewPredicate creates a predicate from an expression and its args.
func NewPredicate(expr string, args ...interface{}) *Predicate {
	return &Predicate{Expr: expr, Args: args}
}

// PageRequest describes pagination, an optional predicate, and ordering.
type PageRequest struct {
	page      int
	pageSize  int
	predicate *Predicate
	orders    []string // "amount DESC", "created_time ASC"
}

func (p *PageRequest) GetPageSize() int {
	if p.pageSize < 1 {
		p.pageSize = 10
	}
	return p.pageSize
}

func (p *PageRequest) GetPage() int {
	if p.page < 1 {
		p.page = 1
	}
	return p.page
}

func (p *PageRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

func (p *PageRequest) GetPredicate() *Predicate {
	return p.predicate
}

func (p *PageRequest) GetOrders() []string {
	return p.orders
}

// NewPageRequest constructs a PageRequest with predicate and ordering.
func NewPageRequest(page int, pageSize int, predicate *Predicate, orders []string) *PageRequest {
	return &PageRequest{page, pageSize, predicate, orders}
}

// NewDefaultPageRequest constructs a PageRequest with no predicate or
// ordering.
func NewDefaultPageRequest(page int, pageSize int) *PageRequest {
	return NewPageRequest(page, pageSize, nil, make([]string, 0))
}

// Pagination holds paged result items along with pagination metadata.
type Pagination[T any] struct {
	Page     int
	PageSize int
	Total    int
	Items    []*T
}

// NewDefaultPagination constructs an empty pagination container.
func NewDefaultPagination[T any](page int, pageSize int) *Pagination[T] {
	return &Pagination[T]{page, pageSize, 0, make([]*T, 0)}
}
