package entity

import "github.com/google/uuid"

type AddressKind string

const (
	AddressBilling    AddressKind = "billing"
	AddressCollection AddressKind = "collection"
	AddressDelivery   AddressKind = "delivery"
)

type Address struct {
	Street       string `json:"street"       validate:"max=255"`
	Number       string `json:"number"       validate:"max=20"`
	Complement   string `json:"complement"   validate:"max=100"`
	Neighborhood string `json:"neighborhood" validate:"max=100"`
	City         string `json:"city"         validate:"max=100"`
	State        string `json:"state"        validate:"omitempty,len=2"`
	ZipCode      string `json:"zip_code"     validate:"omitempty,cep"`
}

func (a Address) IsZero() bool {
	return a == Address{}
}

type CustomerInfo struct {
	Name                  string  `json:"name"                   validate:"required,max=255"`
	Document              string  `json:"document"               validate:"required,cpfcnpj"`
	RG                    string  `json:"rg"                     validate:"max=30"`
	StateRegistration     string  `json:"state_registration"     validate:"max=30"`
	MunicipalRegistration string  `json:"municipal_registration" validate:"max=30"`
	Phone                 string  `json:"phone"                  validate:"omitempty,brphone"`
	Email                 string  `json:"email"                  validate:"omitempty,email,max=255"`
	BillingAddress        Address `json:"billing_address"`
	CollectionAddress     Address `json:"collection_address"`
	DeliveryAddress       Address `json:"delivery_address"`
}

// Addresses returns the non-empty addresses keyed by kind.
func (c *CustomerInfo) Addresses() map[AddressKind]Address {
	out := make(map[AddressKind]Address, 3)
	for kind, addr := range map[AddressKind]Address{
		AddressBilling:    c.BillingAddress,
		AddressCollection: c.CollectionAddress,
		AddressDelivery:   c.DeliveryAddress,
	} {
		if !addr.IsZero() {
			out[kind] = addr
		}
	}
	return out
}

func (c *CustomerInfo) SetAddress(kind AddressKind, addr Address) {
	switch kind {
	case AddressBilling:
		c.BillingAddress = addr
	case AddressCollection:
		c.CollectionAddress = addr
	case AddressDelivery:
		c.DeliveryAddress = addr
	}
}

type Contact struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"       validate:"required,max=255"`
	JobTitle   string    `json:"job_title"  validate:"max=100"`
	Department string    `json:"department" validate:"max=100"`
	Phone      string    `json:"phone"      validate:"omitempty,brphone"`
	Email      string    `json:"email"      validate:"omitempty,email,max=255"`
}
