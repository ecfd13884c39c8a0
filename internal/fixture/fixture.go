//nolint:mnd
// Package fixture builds realistic order drafts for the importer and tests.
package fixture

import (
	"fmt"
	"strings"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/pkg/brdoc"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

var states = []string{"SP", "RJ", "MG", "PR", "SC", "RS", "BA", "PE", "GO", "DF"}

func Address() entity.Address {
	return entity.Address{
		Street:       gofakeit.Street(),
		Number:       gofakeit.StreetNumber(),
		Neighborhood: gofakeit.Word(),
		City:         gofakeit.City(),
		State:        gofakeit.RandomString(states),
		ZipCode:      fmt.Sprintf("%08d", gofakeit.Number(1000000, 99999999)),
	}
}

func Item() *entity.Item {
	return &entity.Item{
		Code:        fmt.Sprintf("GLD-%04d", gofakeit.Number(1, 9999)),
		NCM:         "9018.19.80",
		Description: gofakeit.ProductName(),
		Unit:        "UN",
		Weight:      decimal.NewFromFloat(gofakeit.Float64Range(0.5, 40)).Round(3),
		Quantity:    decimal.NewFromInt(int64(gofakeit.Number(1, 10))),
		UnitPrice:   decimal.NewFromFloat(gofakeit.Price(500, 80000)).Round(2),
	}
}

// Order returns a draft owned by owner that passes order validation.
func Order(owner string, now time.Time) *entity.Order {
	itemsCount := gofakeit.Number(1, 5)
	items := make([]*entity.Item, 0, itemsCount)
	for range itemsCount {
		items = append(items, Item())
	}

	classes := make([]string, 0, len(entity.Classifications))
	for _, c := range entity.Classifications {
		classes = append(classes, string(c))
	}
	class := entity.Classification(gofakeit.RandomString(classes))

	order := &entity.Order{
		Date:           now.Format(time.DateOnly),
		Salesperson:    gofakeit.Name(),
		Classification: class,
		Customer: entity.CustomerInfo{
			Name:           gofakeit.Company(),
			Document:       brdoc.CompleteCNPJ(fmt.Sprintf("%08d0001", gofakeit.Number(1, 99999999))),
			Phone:          fmt.Sprintf("11%d", gofakeit.Number(910000000, 999999999)),
			Email:          gofakeit.Email(),
			BillingAddress: Address(),
		},
		Contacts: []*entity.Contact{{
			Name:     gofakeit.Name(),
			JobTitle: gofakeit.JobTitle(),
			Email:    gofakeit.Email(),
		}},
		Items:         items,
		FreightValue:  decimal.NewFromInt(int64(gofakeit.Number(0, 500))),
		Currency:      entity.CurrencyReal,
		PaymentTerms:  "28 DDL",
		DeliveryTime:  fmt.Sprintf("%d dias úteis", gofakeit.Number(5, 45)),
		Validity:      "30 dias",
		ShippingType:  entity.ShippingCIF,
		PaymentMethod: "Boleto",
		CreatedBy:     strings.ToLower(owner),
	}
	if class == entity.ClassificationOther {
		order.ClassificationOther = gofakeit.Word()
	}
	return order
}
