package service

import (
	"context"
	"fmt"
	"strings"

	"goldenorders/internal/entity"
	"goldenorders/pkg/brdoc"
	"goldenorders/pkg/viacep"

	"github.com/shopspring/decimal"
)

// ExchangeRate is nil when no quote could be obtained.
type ExchangeRate struct {
	Currency entity.Currency  `json:"currency"`
	Pair     string           `json:"pair"`
	Rate     *decimal.Decimal `json:"rate"`
}

// FieldCheck is the outcome of validating a single form value.
type FieldCheck struct {
	Kind      string `json:"kind"`
	Valid     bool   `json:"valid"`
	Formatted string `json:"formatted,omitempty"`
}

// LookupService wraps the external helpers used while filling an order.
type LookupService struct {
	addresses AddressLookup
	rates     RateSource
	assistant Assistant
}

func NewLookupService(addresses AddressLookup, rates RateSource, assistant Assistant) *LookupService {
	return &LookupService{addresses: addresses, rates: rates, assistant: assistant}
}

func (ls *LookupService) Address(ctx context.Context, cep string) (viacep.Result, error) {
	res, err := ls.addresses.Lookup(ctx, cep)
	if err != nil {
		return viacep.Result{}, fmt.Errorf("service.Address: %w", err)
	}
	return res, nil
}

// ExchangeRate quotes currency against the real. The real itself is always 1.
func (ls *LookupService) ExchangeRate(ctx context.Context, currency string) (ExchangeRate, error) {
	cur, err := parseCurrency(currency)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("service.ExchangeRate: %w", err)
	}

	out := ExchangeRate{Currency: cur}
	pair, foreign := cur.PairCode()
	if !foreign {
		one := decimal.NewFromInt(1)
		out.Rate = &one
		return out, nil
	}

	out.Pair = pair
	if rate, ok := ls.rates.Rate(ctx, pair); ok {
		out.Rate = &rate
	}
	return out, nil
}

func (ls *LookupService) RewriteDescription(ctx context.Context, description string) string {
	return ls.assistant.RewriteDescription(ctx, description)
}

// Check validates value as a document, phone or cep.
func (ls *LookupService) Check(kind, value string) (FieldCheck, error) {
	out := FieldCheck{Kind: kind}

	switch kind {
	case "document":
		out.Valid = brdoc.IsValidDocument(value)
		if out.Valid {
			out.Formatted = brdoc.FormatDocument(value)
		}
	case "phone":
		out.Valid = brdoc.ValidatePhone(value)
		if out.Valid {
			out.Formatted = brdoc.FormatPhone(value)
		}
	case "cep":
		out.Valid = brdoc.ValidateCEP(value)
		if out.Valid {
			out.Formatted = brdoc.FormatCEP(value)
		}
	default:
		return FieldCheck{}, fmt.Errorf("service.Check: unknown kind %q: %w", kind, entity.ErrInvalidData)
	}

	return out, nil
}

// parseCurrency accepts the stored names and ISO codes.
func parseCurrency(s string) (entity.Currency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "REAL", "BRL", "R$":
		return entity.CurrencyReal, nil
	case "EURO", "EUR":
		return entity.CurrencyEuro, nil
	case "US$", "USD", "DOLLAR":
		return entity.CurrencyDollar, nil
	default:
		return "", fmt.Errorf("currency %q: %w", s, entity.ErrInvalidData)
	}
}
