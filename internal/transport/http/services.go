package httpt

import (
	"context"

	"goldenorders/internal/entity"
	"goldenorders/internal/service"
	"goldenorders/pkg/viacep"
)

//go:generate mockgen -source=services.go -destination=mock/services.go -package=mock_httpt

type (
	OrderService interface {
		CreateOrder(ctx context.Context, caller entity.Authenticated, order *entity.Order) (*entity.Order, error)
		UpdateOrder(
			ctx context.Context,
			caller entity.Authenticated,
			id string,
			order *entity.Order,
		) (*entity.Order, error)
		GetOrderFor(ctx context.Context, caller entity.Authenticated, id string) (*entity.Order, error)
		ListOrders(ctx context.Context, caller entity.Authenticated) ([]*entity.Order, error)
		DeleteOrder(ctx context.Context, caller entity.Authenticated, id string) error
		ReplayPending(ctx context.Context) (service.ReplayReport, error)
	}

	ExportService interface {
		Spreadsheet(ctx context.Context, caller entity.Authenticated, id string) (*service.File, error)
		PDF(ctx context.Context, caller entity.Authenticated, id string) (*service.File, error)
		ArchivePDF(ctx context.Context, caller entity.Authenticated, id string) (*entity.Order, error)
		ShareLinks(ctx context.Context, caller entity.Authenticated, id, body string) (*service.ShareLinks, error)
		ProposalMessage(ctx context.Context, caller entity.Authenticated, id string) (string, error)
	}

	AcceptanceService interface {
		Accept(ctx context.Context, orderID string, req entity.AcceptanceRequest) (*entity.AcceptanceReceipt, error)
		Documents(
			ctx context.Context,
			caller entity.Authenticated,
			orderID string,
		) ([]*entity.AcceptanceDocument, error)
	}

	AuthService interface {
		SignUp(ctx context.Context, email, password string) error
		SignIn(ctx context.Context, email, password string) (*service.SignInResult, error)
		SignOut(ctx context.Context, caller entity.Authenticated) error
		Session(ctx context.Context, raw string) entity.Session
	}

	UserService interface {
		ListUsers(ctx context.Context) ([]*entity.User, error)
		CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
		UpdateUser(ctx context.Context, email string, user *entity.User) (*entity.User, error)
		DeleteUser(ctx context.Context, caller entity.Authenticated, email string) error
	}

	LookupService interface {
		Address(ctx context.Context, cep string) (viacep.Result, error)
		ExchangeRate(ctx context.Context, currency string) (service.ExchangeRate, error)
		RewriteDescription(ctx context.Context, description string) string
		Check(kind, value string) (service.FieldCheck, error)
	}
)

// Services groups everything the HTTP layer calls into.
type Services struct {
	Orders     OrderService
	Exports    ExportService
	Acceptance AcceptanceService
	Auth       AuthService
	Users      UserService
	Lookup     LookupService
}
