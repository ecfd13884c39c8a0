package entity

import "time"

type AcceptanceRequest struct {
	SignerName     string `json:"signer_name"     validate:"required,max=255"`
	SignerEmail    string `json:"signer_email"    validate:"omitempty,email,max=255"`
	SignerDocument string `json:"signer_document" validate:"required"`
	Signature      string `json:"signature"       validate:"required,max=255"`
	Agreed         bool   `json:"agreed"`
	UserAgent      string `json:"-"`
	IPAddress      string `json:"-"`
}

type AcceptanceLog struct {
	ID               int64     `json:"id"`
	OrderID          string    `json:"order_id"`
	CustomerName     string    `json:"customer_name"`
	CustomerDocument string    `json:"customer_document"`
	SignerName       string    `json:"signer_name"`
	SignerEmail      string    `json:"signer_email"`
	SignatureHash    string    `json:"signature_hash"`
	UserAgent        string    `json:"user_agent"`
	IPAddress        string    `json:"ip_address"`
	CreatedAt        time.Time `json:"created_at"`
}

type AcceptanceDocument struct {
	ID          int64     `json:"id"`
	OrderID     string    `json:"order_id"`
	PDFURL      string    `json:"pdf_url"`
	SignerName  string    `json:"signer_name"`
	SignerEmail string    `json:"signer_email"`
	CreatedAt   time.Time `json:"created_at"`
}

// AcceptanceReceipt is the outcome of a signed acceptance. Warning is set when
// the log was stored but the receipt could not be rendered or archived.
type AcceptanceReceipt struct {
	LogID          int64  `json:"log_id"`
	IntegrityToken string `json:"integrity_token"`
	FileName       string `json:"file_name"`
	PDFURL         string `json:"pdf_url,omitempty"`
	Warning        string `json:"warning,omitempty"`
	PDF            []byte `json:"-"`
}
