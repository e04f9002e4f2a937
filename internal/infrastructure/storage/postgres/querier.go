package postgres

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"offerstock/internal/core/apperror"
)

var tracer = otel.Tracer("offerstock/postgres")

// Querier is the subset of pgx used by repositories. *Pool and pgx.Tx satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ErrSequenceConsumed is yielded when a one-shot result sequence is ranged over again.
var ErrSequenceConsumed = errors.New("result sequence already consumed")

// Builder returns a squirrel builder with PostgreSQL placeholder format.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func startSpan(ctx context.Context, op, sql string) (context.Context, trace.Span) {
	return tracer.Start(ctx, op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", op),
			attribute.String("db.statement", sql),
		))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Stream runs query lazily: nothing is sent to the database until the
// returned sequence is ranged over. Each row is scanned into T by its "db"
// tags. The sequence is finite and one-shot; ranging over it a second time
// yields a single ErrSequenceConsumed. Stopping early closes the rows.
func Stream[T any](ctx context.Context, q Querier, op string, query squirrel.Sqlizer) iter.Seq2[T, error] {
	var used atomic.Bool

	return func(yield func(T, error) bool) {
		var zero T
		if used.Swap(true) {
			yield(zero, ErrSequenceConsumed)
			return
		}

		sql, args, err := query.ToSql()
		if err != nil {
			yield(zero, fmt.Errorf("build %s: %w", op, err))
			return
		}

		ctx, span := startSpan(ctx, op, sql)
		var iterErr error
		defer func() { endSpan(span, iterErr) }()

		rows, err := q.Query(ctx, sql, args...)
		if err != nil {
			iterErr = apperror.NewDatabase(op, err)
			yield(zero, iterErr)
			return
		}
		defer rows.Close()

		iterErr = scanRows(rows, op, yield)
	}
}

func scanRows[T any](rows pgx.Rows, op string, yield func(T, error) bool) error {
	scanner := pgxscan.NewRowScanner(rows)
	for rows.Next() {
		var item T
		if err := scanner.Scan(&item); err != nil {
			err = fmt.Errorf("scan %s: %w", op, err)
			yield(item, err)
			return err
		}
		if !yield(item, nil) {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		var zero T
		appErr := apperror.NewDatabase(op, err)
		yield(zero, appErr)
		return appErr
	}
	return nil
}

// FindOne runs query and scans the first row into T.
// It returns nil, nil when the query matches nothing.
// Driver failures in Stream, FindOne and Exec are returned as DATABASE_ERROR app errors.
func FindOne[T any](ctx context.Context, q Querier, op string, query squirrel.Sqlizer) (*T, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}

	ctx, span := startSpan(ctx, op, sql)
	var item T
	err = pgxscan.Get(ctx, q, &item, sql, args...)
	if pgxscan.NotFound(err) {
		endSpan(span, nil)
		return nil, nil
	}
	endSpan(span, err)
	if err != nil {
		return nil, apperror.NewDatabase(op, err)
	}
	return &item, nil
}

// Exec runs a statement built with squirrel.
func Exec(ctx context.Context, q Querier, op string, stmt squirrel.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := stmt.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("build %s: %w", op, err)
	}

	ctx, span := startSpan(ctx, op, sql)
	tag, err := q.Exec(ctx, sql, args...)
	endSpan(span, err)
	if err != nil {
		return tag, apperror.NewDatabase(op, err)
	}
	return tag, nil
}
