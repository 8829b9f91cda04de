package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// fakeConnector hands out a single fakeConn and counts checkouts.
type fakeConnector struct {
	mu         sync.Mutex
	conn       *fakeConn
	acquireErr error
	acquired   int
}

func newFakeConnector() *fakeConnector {
	return &fakeConnector{conn: &fakeConn{}}
}

func (f *fakeConnector) Acquire(ctx context.Context) (Conn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.acquireErr != nil {
		return nil, f.acquireErr
	}
	f.acquired++
	return f.conn, nil
}

type execCall struct {
	sql  string
	args []any
}

type fakeConn struct {
	execs    []execCall
	execErr  error
	queries  []string
	rows     [][]any
	queryErr error
	released int
}

func (c *fakeConn) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.execs = append(c.execs, execCall{sql: sql, args: args})
	if c.execErr != nil {
		return pgconn.CommandTag{}, c.execErr
	}
	return pgconn.NewCommandTag("CALL"), nil
}

func (c *fakeConn) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	c.queries = append(c.queries, sql)
	if c.queryErr != nil {
		return nil, c.queryErr
	}
	return &fakeRows{data: c.rows}, nil
}

func (c *fakeConn) QueryRow(context.Context, string, ...any) pgx.Row {
	return fakeRow{}
}

func (c *fakeConn) Release() { c.released++ }

type fakeRow struct{}

func (fakeRow) Scan(...any) error { return errors.New("not implemented") }

// fakeRows serves canned values. A nil cell scans as SQL NULL.
type fakeRows struct {
	data   [][]any
	pos    int
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.closed || r.pos >= len(r.data) {
		r.Close()
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.pos-1], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *pgtype.Int4:
			v, ok := row[i].(int32)
			*p = pgtype.Int4{Int32: v, Valid: ok}
		case *pgtype.Text:
			v, ok := row[i].(string)
			*p = pgtype.Text{String: v, Valid: ok}
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}
	return nil
}
