package model

import "nutrisur/shared/model"

const (
	TableName  = "products"
	EntityName = "product"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldImage       = "image"
	FieldActive      = "active"
)

type Product struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Image       string  `db:"image"`
	Active      bool    `db:"active"`
	model.Metadata
}
