package model

import (
	"fmt"
	"strings"

	"nutrisur/shared/model"
)

const (
	TableName  = "orders"
	EntityName = "order"

	FieldID     = "id"
	FieldUserID = "user_id"
	FieldStatus = "status"
	FieldTotal  = "total"

	ItemTableName  = "order_items"
	ItemEntityName = "order item"

	ItemFieldID      = "id"
	ItemFieldOrderID = "order_id"
)

const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

type Order struct {
	ID     string  `db:"id"`
	UserID string  `db:"user_id"`
	Status string  `db:"status"`
	Total  float64 `db:"total"`
	model.Metadata
}

type OrderItem struct {
	ID          string  `db:"id"`
	OrderID     string  `db:"order_id"`
	ProductID   string  `db:"product_id"`
	ProductName string  `column:"name"       db:"product_name" table:"products"`
	Quantity    int     `db:"quantity"`
	UnitPrice   float64 `db:"unit_price"`
	model.Metadata
}

func (OrderItem) JoinClause() string {
	return "JOIN products ON products.id = order_items.product_id"
}

func (i OrderItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// AddLine merges item into items, summing quantities when the product is already present.
func AddLine(items []OrderItem, item OrderItem) []OrderItem {
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity

			return items
		}
	}

	return append(items, item)
}

// RemoveLine takes quantity units of the product out of items.
// A quantity of zero or less removes the whole line.
func RemoveLine(items []OrderItem, productID string, quantity int) ([]OrderItem, bool) {
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}

		if quantity > 0 && items[i].Quantity > quantity {
			items[i].Quantity -= quantity

			return items, true
		}

		return append(items[:i], items[i+1:]...), true
	}

	return items, false
}

func Total(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}

	return total
}

// Summary renders one line per item, e.g. "2 x Green bowl = 15.00".
func Summary(items []OrderItem) string {
	if len(items) == 0 {
		return ""
	}

	lines := make([]string, 0, len(items)+1)
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%d x %s = %.2f", item.Quantity, item.ProductName, item.Subtotal()))
	}

	lines = append(lines, fmt.Sprintf("Total: %.2f", Total(items)))

	return strings.Join(lines, "\n")
}
