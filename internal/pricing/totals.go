// Package pricing derives order aggregates from items and commercial terms.
//
// Every function here is pure. Inputs are coerced rather than rejected:
// negative amounts count as zero and an unusable exchange rate yields a zero
// converted total.
package pricing

import (
	"goldenorders/internal/entity"

	"github.com/shopspring/decimal"
)

var centTolerance = decimal.New(1, -2)

type Input struct {
	Items         []*entity.Item
	DiscountTotal decimal.Decimal
	FreightValue  decimal.Decimal
	Currency      entity.Currency
	ExchangeRate  decimal.Decimal
	DownPayment   decimal.Decimal
}

type Totals struct {
	GlobalValue1 decimal.Decimal `json:"global_value1"`
	GlobalValue2 decimal.Decimal `json:"global_value2"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	TotalInBRL   decimal.Decimal `json:"total_in_brl"`
	TotalWeight  decimal.Decimal `json:"total_weight"`
	BalanceDue   decimal.Decimal `json:"balance_due"`
}

// LineTotal is quantity times unit price. The line discount is not applied;
// discounts exist only at order level.
func LineTotal(item *entity.Item) decimal.Decimal {
	if item == nil {
		return decimal.Zero
	}
	return nonNegative(item.Quantity).Mul(nonNegative(item.UnitPrice))
}

// Recalculate rewrites every item total from its quantity and unit price.
func Recalculate(items []*entity.Item) {
	for _, item := range items {
		if item != nil {
			item.Total = LineTotal(item)
		}
	}
}

// Compute derives the order aggregates. Foreign-currency amounts are divided by
// the exchange rate to obtain the real equivalent.
func Compute(in Input) Totals {
	var t Totals

	for _, item := range in.Items {
		if item == nil {
			continue
		}
		t.GlobalValue1 = t.GlobalValue1.Add(LineTotal(item))
		t.TotalWeight = t.TotalWeight.Add(nonNegative(item.Weight).Mul(nonNegative(item.Quantity)))
	}

	t.GlobalValue2 = nonNegative(
		t.GlobalValue1.Sub(nonNegative(in.DiscountTotal)).Add(nonNegative(in.FreightValue)),
	)

	switch {
	case in.Currency == entity.CurrencyReal || in.Currency == "":
		t.ExchangeRate = decimal.NewFromInt(1)
		t.TotalInBRL = t.GlobalValue2
	case in.ExchangeRate.IsPositive():
		t.ExchangeRate = in.ExchangeRate
		t.TotalInBRL = t.GlobalValue2.DivRound(in.ExchangeRate, 8)
	default:
		t.ExchangeRate = nonNegative(in.ExchangeRate)
		t.TotalInBRL = decimal.Zero
	}

	t.BalanceDue = BalanceDue(t.TotalInBRL, in.DownPayment)

	return t
}

// BalanceDue is what remains of totalInBRL after the down payment, never
// below zero.
func BalanceDue(totalInBRL, downPayment decimal.Decimal) decimal.Decimal {
	return nonNegative(nonNegative(totalInBRL).Sub(nonNegative(downPayment)))
}

// InputFrom collects the engine input from an order.
func InputFrom(order *entity.Order) Input {
	return Input{
		Items:         order.Items,
		DiscountTotal: order.DiscountTotal,
		FreightValue:  order.FreightValue,
		Currency:      order.Currency,
		ExchangeRate:  order.ExchangeRate,
		DownPayment:   order.DownPayment,
	}
}

// Apply recomputes line totals and writes every derived field into order.
func Apply(order *entity.Order) Totals {
	Recalculate(order.Items)
	t := Compute(InputFrom(order))

	order.GlobalValue1 = t.GlobalValue1
	order.GlobalValue2 = t.GlobalValue2
	order.ExchangeRate = t.ExchangeRate
	order.TotalInBRL = t.TotalInBRL
	order.TotalWeight = t.TotalWeight
	order.TotalAmount = t.GlobalValue2
	order.BalanceDue = t.BalanceDue

	return t
}

// Drift lists the derived fields whose persisted value differs from the
// recomputed one by more than a cent. Item totals are reported as "items".
func Drift(persisted *entity.Order) []string {
	var drift []string

	for _, item := range persisted.Items {
		if item != nil && differs(item.Total, LineTotal(item)) {
			drift = append(drift, "items")
			break
		}
	}

	t := Compute(InputFrom(persisted))
	fields := []struct {
		name      string
		persisted decimal.Decimal
		computed  decimal.Decimal
	}{
		{"global_value1", persisted.GlobalValue1, t.GlobalValue1},
		{"global_value2", persisted.GlobalValue2, t.GlobalValue2},
		{"total_in_brl", persisted.TotalInBRL, t.TotalInBRL},
		{"total_weight", persisted.TotalWeight, t.TotalWeight},
		{"total_amount", persisted.TotalAmount, t.GlobalValue2},
	}
	for _, f := range fields {
		if differs(f.persisted, f.computed) {
			drift = append(drift, f.name)
		}
	}

	return drift
}

func differs(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().GreaterThan(centTolerance)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
