package intercept

import (
	"context"
	"database/sql/driver"
	"errors"
	"time"
)

// Category classifies an intercepted call.
type Category string

// Categories of intercepted calls.
const (
	CategoryPing      Category = "ping"
	CategoryExec      Category = "exec"
	CategoryQuery     Category = "query"
	CategoryPrepare   Category = "prepare"
	CategoryStmtExec  Category = "stmt.exec"
	CategoryStmtQuery Category = "stmt.query"
	CategoryBegin     Category = "begin"
	CategoryCommit    Category = "commit"
	CategoryRollback  Category = "rollback"
)

// Event describes one intercepted call on a wrapped connection.
type Event struct {
	// ConnectionID is unique per wrapped connection within an Engine.
	ConnectionID int64
	Category     Category
	// Query is empty for calls that do not carry a statement, such as ping or commit.
	Query   string
	Args    []driver.NamedValue
	Start   time.Time
	Elapsed time.Duration
	Err     error
}

// eventRecorder emits an Event when the returned func is called.
type eventRecorder interface {
	Record(ctx context.Context, category Category, query string, args []driver.NamedValue) func(err error)
}

type connRecorder struct {
	connID int64
	emit   func(ctx context.Context, e Event)
}

func (r connRecorder) Record(ctx context.Context, category Category, query string, args []driver.NamedValue) func(err error) {
	start := time.Now()

	return func(err error) {
		// The driver asks database/sql to retry another way, nothing was executed.
		if errors.Is(err, driver.ErrSkip) {
			return
		}

		r.emit(ctx, Event{
			ConnectionID: r.connID,
			Category:     category,
			Query:        query,
			Args:         args,
			Start:        start,
			Elapsed:      time.Since(start),
			Err:          err,
		})
	}
}
