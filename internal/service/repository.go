package service

import (
	"context"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/pkg/storage/postgres"
)

//go:generate mockgen -source=repository.go -destination=../repository/mock/repository.go -package=mock_repository

type (
	OrderRepository interface {
		Upsert(
			ctx context.Context,
			queryExecuter postgres.QueryExecuter,
			order *entity.Order,
		) (createdAt, updatedAt time.Time, err error)
		GetByID(ctx context.Context, id string) (*entity.Order, error)
		List(ctx context.Context, createdBy string) ([]*entity.Order, error)
		Exists(ctx context.Context, id string) (bool, error)
		Delete(ctx context.Context, queryExecuter postgres.QueryExecuter, id string) error
		UpdatePDF(
			ctx context.Context,
			queryExecuter postgres.QueryExecuter,
			id, url string,
			generatedAt time.Time,
		) error
		UpdateStatus(
			ctx context.Context,
			queryExecuter postgres.QueryExecuter,
			id string,
			status entity.Status,
		) error
	}

	ItemRepository interface {
		Replace(
			ctx context.Context,
			queryExecuter postgres.QueryExecuter,
			orderID string,
			items []*entity.Item,
		) error
		ListByOrderID(ctx context.Context, orderID string) ([]*entity.Item, error)
	}

	ContactRepository interface {
		Replace(
			ctx context.Context,
			queryExecuter postgres.QueryExecuter,
			orderID string,
			contacts []*entity.Contact,
		) error
		ListByOrderID(ctx context.Context, orderID string) ([]*entity.Contact, error)
	}

	AddressRepository interface {
		Replace(
			ctx context.Context,
			queryExecuter postgres.QueryExecuter,
			orderID string,
			customer *entity.CustomerInfo,
		) error
		ListByOrderID(ctx context.Context, orderID string) (map[entity.AddressKind]entity.Address, error)
	}

	UserRepository interface {
		List(ctx context.Context) ([]*entity.User, error)
		GetByEmail(ctx context.Context, email string) (*entity.User, error)
		Create(ctx context.Context, queryExecuter postgres.QueryExecuter, user *entity.User) (*entity.User, error)
		Update(ctx context.Context, queryExecuter postgres.QueryExecuter, user *entity.User) (*entity.User, error)
		Delete(ctx context.Context, queryExecuter postgres.QueryExecuter, email string) error
		TouchLastLogin(ctx context.Context, email string, at time.Time) error
	}

	CredentialRepository interface {
		Create(ctx context.Context, queryExecuter postgres.QueryExecuter, credential *entity.Credential) error
		GetByEmail(ctx context.Context, email string) (*entity.Credential, error)
	}

	AcceptanceRepository interface {
		CreateLog(
			ctx context.Context,
			queryExecuter postgres.QueryExecuter,
			log *entity.AcceptanceLog,
		) (*entity.AcceptanceLog, error)
		CreateDocument(
			ctx context.Context,
			queryExecuter postgres.QueryExecuter,
			document *entity.AcceptanceDocument,
		) (*entity.AcceptanceDocument, error)
		ListDocuments(ctx context.Context, orderID string) ([]*entity.AcceptanceDocument, error)
	}
)
