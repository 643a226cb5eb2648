// Package sql streams the rows of a database query.
package sql

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/shpandrak/shpansample/internal/util"
	"github.com/shpandrak/shpansample/stream"
)

// StreamSqlQuery creates a lazy stream of the rows returned by query, each row converted by scanner.
// The query runs when the stream is materialized and the rows are released when it closes,
// so a table can be sampled without loading it.
func StreamSqlQuery[T any](
	dbProvider func() (*sql.DB, error),
	query string,
	paramVals []any,
	scanner func(*sql.Rows) (T, error),
) stream.Stream[T] {
	db, err := dbProvider()
	if err != nil {
		return stream.Error[T](errors.Wrap(err, "failed to get db for sql query stream"))
	}
	return stream.NewStream[T](&sqlQueryStreamProvider[T]{
		db:        db,
		query:     query,
		paramVals: paramVals,
		scanner:   scanner,
	})
}

type sqlQueryStreamProvider[T any] struct {
	db        *sql.DB
	query     string
	paramVals []any
	rows      *sql.Rows
	scanner   func(*sql.Rows) (T, error)
}

func (s *sqlQueryStreamProvider[T]) Open(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, s.query, s.paramVals...)
	if err != nil {
		return errors.Wrap(err, "failed opening sql query stream")
	}
	s.rows = rows
	return nil
}

func (s *sqlQueryStreamProvider[T]) Close() {
	if s.rows != nil {
		if err := s.rows.Close(); err != nil {
			slog.Warn(fmt.Sprintf("error closing sql query stream rows: %v", err))
		}
		s.rows = nil
	}
}

func (s *sqlQueryStreamProvider[T]) Emit(ctx context.Context) (T, error) {
	if ctx.Err() != nil {
		return util.DefaultValue[T](), ctx.Err()
	}
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return util.DefaultValue[T](), errors.Wrap(err, "error reading from sql query stream")
		}
		return util.DefaultValue[T](), io.EOF
	}
	v, err := s.scanner(s.rows)
	if err != nil {
		return util.DefaultValue[T](), errors.Wrap(err, "failed scanning sql query stream row")
	}
	return v, nil
}
