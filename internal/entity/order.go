package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	Classification string
	Status         string
	Currency       string
	ShippingType   string
)

const (
	ClassificationSale        Classification = "Venda"
	ClassificationDemo        Classification = "Demonstração"
	ClassificationExhibition  Classification = "Exposição"
	ClassificationConsignment Classification = "Consignação"
	ClassificationDonation    Classification = "Doação"
	ClassificationOther       Classification = "Outros"
)

// Classifications lists the purposes in form order.
var Classifications = []Classification{
	ClassificationSale,
	ClassificationDemo,
	ClassificationExhibition,
	ClassificationConsignment,
	ClassificationDonation,
	ClassificationOther,
}

const (
	StatusDraft     Status = "draft"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

const (
	CurrencyReal   Currency = "Real"
	CurrencyEuro   Currency = "Euro"
	CurrencyDollar Currency = "US$"
)

const (
	ShippingCIF ShippingType = "CIF"
	ShippingFOB ShippingType = "FOB"
)

// Symbol is the prefix used when printing amounts in this currency.
func (c Currency) Symbol() string {
	switch c {
	case CurrencyDollar:
		return "US$"
	case CurrencyEuro:
		return "€"
	default:
		return "R$"
	}
}

// PairCode returns the FX pair quoted against the real, e.g. "USD-BRL".
// The second result is false for the real itself.
func (c Currency) PairCode() (string, bool) {
	switch c {
	case CurrencyDollar:
		return "USD-BRL", true
	case CurrencyEuro:
		return "EUR-BRL", true
	default:
		return "", false
	}
}

type Order struct {
	ID                  string         `json:"id"`
	Date                string         `json:"date"                 validate:"required,datetime=2006-01-02"`
	Salesperson         string         `json:"salesperson"          validate:"max=255"`
	Classification      Classification `json:"classification"       validate:"required,oneof=Venda Demonstração Exposição Consignação Doação Outros"`
	ClassificationOther string         `json:"classification_other" validate:"required_if=Classification Outros,max=255"`
	Status              Status         `json:"status"               validate:"omitempty,oneof=draft confirmed cancelled"`

	Customer CustomerInfo `json:"customer"`
	Contacts []*Contact   `json:"contacts" validate:"dive,required"`
	Items    []*Item      `json:"items"    validate:"required,min=1,dive,required"`

	GlobalValue1    decimal.Decimal `json:"global_value1"`
	DiscountTotal   decimal.Decimal `json:"discount_total"`
	FreightValue    decimal.Decimal `json:"freight_value"`
	GlobalValue2    decimal.Decimal `json:"global_value2"`
	Currency        Currency        `json:"currency"          validate:"required,oneof=Real Euro US$"`
	ExchangeRate    decimal.Decimal `json:"exchange_rate"`
	TotalInBRL      decimal.Decimal `json:"total_in_brl"`
	MinBilling      bool            `json:"min_billing"`
	MinBillingValue decimal.Decimal `json:"min_billing_value"`
	DownPayment     decimal.Decimal `json:"down_payment"`
	FinalCustomer   bool            `json:"final_customer"`
	TotalWeight     decimal.Decimal `json:"total_weight"`
	TotalAmount     decimal.Decimal `json:"total_amount"`

	PaymentTerms  string       `json:"payment_terms"  validate:"max=500"`
	DeliveryTime  string       `json:"delivery_time"  validate:"max=255"`
	Validity      string       `json:"validity"       validate:"max=255"`
	ValidUntil    string       `json:"valid_until"    validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string       `json:"payment_method" validate:"max=100"`
	Carrier       string       `json:"carrier"        validate:"max=255"`
	ShippingType  ShippingType `json:"shipping_type"  validate:"omitempty,oneof=CIF FOB"`

	BiddingNumber    string `json:"bidding_number"    validate:"max=100"`
	BiddingDate      string `json:"bidding_date"      validate:"omitempty,datetime=2006-01-02"`
	CommitmentNumber string `json:"commitment_number" validate:"max=100"`
	CommitmentDate   string `json:"commitment_date"   validate:"omitempty,datetime=2006-01-02"`
	Notes            string `json:"notes"             validate:"max=5000"`

	PDFURL         string     `json:"pdf_url,omitempty"`
	PDFGeneratedAt *time.Time `json:"pdf_generated_at,omitempty"`
	CreatedBy      string     `json:"created_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Not persisted.
	BalanceDue  decimal.Decimal `json:"balance_due"`
	TotalsDrift []string        `json:"totals_drift,omitempty"`
}

// IsForeign reports whether totals need an exchange rate.
func (o *Order) IsForeign() bool {
	return o.Currency != "" && o.Currency != CurrencyReal
}

// OwnedBy reports whether email created the order.
func (o *Order) OwnedBy(email string) bool {
	return o.CreatedBy != "" && o.CreatedBy == email
}
