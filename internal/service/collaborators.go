package service

import (
	"context"
	"time"

	"goldenorders/internal/document"
	"goldenorders/internal/entity"
	"goldenorders/pkg/storage/sqlite"
	"goldenorders/pkg/token"
	"goldenorders/pkg/viacep"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=collaborators.go -destination=mock/collaborators.go -package=mock_service

type (
	// OrderReader loads assembled orders and drops stale cached copies.
	OrderReader interface {
		GetOrder(ctx context.Context, id string) (*entity.Order, error)
		Invalidate(id string)
	}

	// PendingStore keeps orders that could not be written to Postgres.
	PendingStore interface {
		Put(ctx context.Context, id string, payload []byte, reason string) error
		List(ctx context.Context) ([]sqlite.Record, error)
		MarkAttempt(ctx context.Context, id string, reason string) error
		Delete(ctx context.Context, id string) error
	}

	Renderer interface {
		Spreadsheet(order *entity.Order) ([]byte, error)
		OrderPDF(order *entity.Order) ([]byte, error)
		AcceptanceReceiptPDF(order *entity.Order, signer document.Signer, token string) ([]byte, error)
	}

	ObjectStore interface {
		Upload(ctx context.Context, name, contentType string, data []byte) (string, error)
	}

	SessionStore interface {
		Register(ctx context.Context, tokenID, email string, ttl time.Duration) error
		Active(ctx context.Context, tokenID string) (string, bool, error)
		Revoke(ctx context.Context, tokenID string) error
	}

	TokenIssuer interface {
		Issue(subject, name, role string) (token.Issued, error)
		Parse(raw string) (*token.Claims, error)
		TTL() time.Duration
	}

	AddressLookup interface {
		Lookup(ctx context.Context, cep string) (viacep.Result, error)
	}

	RateSource interface {
		Rate(ctx context.Context, pair string) (decimal.Decimal, bool)
	}

	Assistant interface {
		RewriteDescription(ctx context.Context, description string) string
		ProposalMessage(ctx context.Context, customer string, total decimal.Decimal, items []string) string
	}
)
