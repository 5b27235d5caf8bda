package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"

	"nutrisur/infras/otel"
	"nutrisur/infras/postgres"
	"nutrisur/shared/constant"
	"nutrisur/shared/dto"
	"nutrisur/shared/logger"

	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("refusing to run without a filter")

// Joiner is implemented by models whose select spans more than one table.
type Joiner interface {
	JoinClause() string
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

// Repository is the CRUD base embedded by every domain repository.
type Repository[T any] struct {
	db       *postgres.Connection
	otel     otel.Otel
	entity   string
	table    string
	primary  string
	join     string
	columns  []column
	writable []string
}

func NewRepository[T any](entity, table, primary string, db *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns := scanColumns(table, reflect.TypeOf(zero))

	repo := Repository[T]{
		db:       db,
		otel:     otl,
		entity:   entity,
		table:    table,
		primary:  primary,
		columns:  columns,
		writable: writableColumns(table, columns),
	}

	if joiner, ok := any(zero).(Joiner); ok {
		repo.join = joiner.JoinClause()
	}

	return repo
}

func (repo *Repository[T]) span(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, op))
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s %s: %w", action, repo.entity, err)
}

// read prepares query on the read pool and hands the statement to fn.
func (repo *Repository[T]) read(ctx context.Context, scope otel.Scope, action, query string, fn func(stmt *sqlx.NamedStmt) error) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare "+action, err)
	}
	defer stmt.Close()

	if err = fn(stmt); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) exec(ctx context.Context, scope otel.Scope, exec execer, action, query string, arg any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.InsertTx(ctx, nil, model)
}

// InsertTx writes through tx, or the write pool when tx is nil.
func (repo *Repository[T]) InsertTx(ctx context.Context, tx *sqlx.Tx, model T) error {
	ctx, scope := repo.span(ctx, "Insert")
	defer scope.End()

	return repo.exec(ctx, scope, repo.writer(tx), "insert", insertStatement(repo.table, repo.writable), model)
}

func (repo *Repository[T]) InsertBulk(ctx context.Context, models []T) error {
	return repo.InsertBulkTx(ctx, nil, models)
}

func (repo *Repository[T]) InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []T) error {
	ctx, scope := repo.span(ctx, "InsertBulk")
	defer scope.End()

	if len(models) == 0 {
		return nil
	}

	return repo.exec(ctx, scope, repo.writer(tx), "bulk insert", insertStatement(repo.table, repo.writable), models)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.span(ctx, "Exist")
	defer scope.End()

	where, args := whereClause(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	exist := false
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)

	err := repo.read(ctx, scope, "check", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &exist, args) //nolint:wrapcheck
	})

	return exist, err
}

// Get returns the zero value, not an error, when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.span(ctx, "Get")
	defer scope.End()

	var model T

	where, args := whereClause(filter)
	query := compact("SELECT", selectList(repo.columns, columns...), "FROM", repo.table, repo.join, where, "LIMIT 1")

	err := repo.read(ctx, scope, "get", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &model, args) //nolint:wrapcheck
	})

	return model, err
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.span(ctx, "GetAll")
	defer scope.End()

	models := []T{}

	where, args := whereClause(filter)
	query := compact(
		"SELECT", selectList(repo.columns, columns...), "FROM", repo.table, repo.join, where,
		orderClause(repo.table, repo.columns, params),
		pageClause(params, args),
	)

	err := repo.read(ctx, scope, "list", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args) //nolint:wrapcheck
	})

	return models, err
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.span(ctx, "Count")
	defer scope.End()

	count := 0

	where, args := whereClause(filter)
	query := compact(fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s", repo.table, repo.primary, repo.table), repo.join, where)

	err := repo.read(ctx, scope, "count", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args) //nolint:wrapcheck
	})

	return count, err
}

func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) error {
	return repo.UpdateTx(ctx, nil, fields, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, tx *sqlx.Tx, fields map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, "Update")
	defer scope.End()

	where, args := whereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	maps.Copy(args, fields)

	return repo.exec(ctx, scope, repo.writer(tx), "update", compact("UPDATE", repo.table, "SET", setClause(fields), where), args)
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.DeleteTx(ctx, nil, filter)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, tx *sqlx.Tx, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, "Delete")
	defer scope.End()

	where, args := whereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	return repo.exec(ctx, scope, repo.writer(tx), "delete", compact("DELETE FROM", repo.table, where), args)
}

func (repo *Repository[T]) writer(tx *sqlx.Tx) execer {
	if tx != nil {
		return tx
	}

	return repo.db.Write
}
