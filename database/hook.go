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
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/uptrace/bun"

	"github.com/My-Expenses-by-Phong/MyExpenses.Repository/utils"
)

const (
	ansiReset    = "\x1b[0m"
	ansiRed      = "\x1b[31m"
	ansiYellow   = "\x1b[33m"
	ansiGreen    = "\x1b[32m"
	ansiBlue     = "\x1b[34m"
	ansiMagenta  = "\x1b[35m"
	ansiCyan     = "\x1b[36m"
	ansiBGRed    = "\x1b[41;97m"
	ansiBGYellow = "\x1b[43;97m"
)

var sqlSilentMode bool

// EnableSqlSilent suppresses query hook output, e.g. during migrations.
func EnableSqlSilent(b bool) {
	sqlSilentMode = b
}

func colorWrap(s, code string) string { return code + s + ansiReset }

// QueryHook prints every executed query with a per-operation color.
// The MYEXPENSES_QUERY_LOG environment variable overrides the
// configured state at runtime: unset it to keep the config, "0"/""
// disables, "2" adds successful queries too.
type QueryHook struct {
	envName string
	enabled bool
	verbose bool
	writer  io.Writer
}

var _ bun.QueryHook = (*QueryHook)(nil)

// NewQueryHook creates a colored query hook writing to stderr.
func NewQueryHook(enabled bool) *QueryHook {
	return &QueryHook{
		envName: "MYEXPENSES_QUERY_LOG",
		enabled: enabled,
		verbose: utils.EnvDefaultBool("MYEXPENSES_QUERY_LOG_VERBOSE", false),
		writer:  os.Stderr,
	}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if sqlSilentMode {
		return
	}
	enabled := h.enabled
	verbose := h.verbose
	if env, ok := os.LookupEnv(h.envName); ok {
		enabled = env != "" && env != "0"
		verbose = env == "2"
	}

	if !enabled {
		return
	}

	if !verbose {
		switch {
		case event.Err == nil, errors.Is(event.Err, sql.ErrNoRows), errors.Is(event.Err, sql.ErrTxDone):
			return
		}
	}

	now := time.Now()
	dur := now.Sub(event.StartTime)

	args := []interface{}{
		now.Format("2006-01-02 15:04:05.000"),
		colorWrap(fmt.Sprintf("%10s", "[SQL]"), ansiCyan),
		fmt.Sprintf("%15s", dur.Round(time.Microsecond)),
		"  ", formatOperationColor(event),
	}

	if event.Err != nil {
		typ := reflect.TypeOf(event.Err).String()
		args = append(args,
			"\t",
			color.New(color.BgRed).Sprintf(" %s ", typ+": "+event.Err.Error()),
		)
	}
	_, _ = fmt.Fprintln(h.writer, args...)
}

func formatOperationColor(event *bun.QueryEvent) string {
	switch event.Operation() {
	case "SELECT":
		return colorWrap(event.Query, ansiGreen)
	case "INSERT":
		return colorWrap(event.Query, ansiBlue)
	case "UPDATE":
		return colorWrap(event.Query, ansiYellow)
	case "DELETE":
		return colorWrap(event.Query, ansiMagenta)
	default:
		return colorWrap(event.Query, ansiRed)
	}
}

// SlowQueryHook flags successful queries that exceed a threshold.
type SlowQueryHook struct {
	envName  string
	enabled  bool
	slowTime time.Duration
	writer   io.Writer
}

var _ bun.QueryHook = (*SlowQueryHook)(nil)

// NewSlowQueryHook creates a slow-query hook with the given threshold.
// The MYEXPENSES_SLOW_QUERY_LOG environment variable ("1") overrides
// the configured state.
func NewSlowQueryHook(slowTime time.Duration) *SlowQueryHook {
	return &SlowQueryHook{
		envName:  "MYEXPENSES_SLOW_QUERY_LOG",
		enabled:  true,
		slowTime: slowTime,
		writer:   os.Stderr,
	}
}

func (h *SlowQueryHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *SlowQueryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if sqlSilentMode || event.Err != nil {
		return
	}
	enabled := h.enabled
	if env, ok := os.LookupEnv(h.envName); ok {
		enabled = strings.TrimSpace(env) == "1"
	}
	if !enabled {
		return
	}

	duration := time.Since(event.StartTime)
	if duration > h.slowTime {
		args := []interface{}{
			time.Now().Format("2006-01-02 15:04:05.000"),
			colorWrap(fmt.Sprintf("%10s", "[SLOW]"), ansiBGYellow),
			fmt.Sprintf("%15s", duration.Round(time.Microsecond)),
			"  ", colorWrap(event.Query, ansiBGRed),
		}
		_, _ = fmt.Fprintln(h.writer, args...)
	}
}
