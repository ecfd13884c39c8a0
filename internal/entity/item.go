package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one line of an order. Discount is a legacy per-line percentage kept
// for display; it never takes part in the totals.
type Item struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"        validate:"max=50"`
	NCM         string          `json:"ncm"         validate:"max=20"`
	Description string          `json:"description" validate:"required,max=2000"`
	Unit        string          `json:"unit"        validate:"max=10"`
	Weight      decimal.Decimal `json:"weight"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}
