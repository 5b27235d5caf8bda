package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"nutrisur/infras/otel"
	"nutrisur/infras/postgres"
	"nutrisur/internal/domains/order/model"
	"nutrisur/shared"
	"nutrisur/shared/constant"
	gDto "nutrisur/shared/dto"
	gRepo "nutrisur/shared/repository"
	"nutrisur/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Order interface {
	Insert(ctx context.Context, model model.Order) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Order, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Order, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	// Items returns the lines of an order in insertion order, with product names joined in.
	Items(ctx context.Context, orderID string) ([]model.OrderItem, error)
	// ReplaceItems swaps the lines of an order and stores the new total atomically.
	ReplaceItems(ctx context.Context, orderID string, items []model.OrderItem, total float64, user string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Order]
	items gRepo.Repository[model.OrderItem]
	db    *postgres.Connection
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Order {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Order](model.EntityName, model.TableName, model.FieldID, db, otel),
		items:      gRepo.NewRepository[model.OrderItem](model.ItemEntityName, model.ItemTableName, model.ItemFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) Items(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".order.Items")
	defer scope.End()

	params := gDto.QueryParams{
		SortBy:  model.ItemTableName + ".created_at",
		SortDir: gDto.SortDirAsc,
	}

	return r.items.GetAll(ctx, params, shared.FilterByID(orderID, model.ItemFieldOrderID, model.ItemTableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) ReplaceItems(ctx context.Context, orderID string, items []model.OrderItem, total float64, user string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".order.ReplaceItems")
	defer scope.End()

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.items.DeleteTx(ctx, tx, shared.FilterByID(orderID, model.ItemFieldOrderID, model.ItemTableName)); err != nil {
			return err //nolint:wrapcheck
		}

		if len(items) > 0 {
			if err := r.items.InsertBulkTx(ctx, tx, items); err != nil {
				return err //nolint:wrapcheck
			}
		}

		fields := map[string]any{
			model.FieldTotal:         total,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		return r.UpdateTx(ctx, tx, fields, shared.FilterByID(orderID, model.FieldID, model.TableName)) //nolint:wrapcheck
	})
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to replace order items: %w", err)
	}

	return nil
}
