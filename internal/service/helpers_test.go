package service_test

import (
	"context"
	"testing"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/internal/pricing"
	mock_repository "goldenorders/internal/repository/mock"
	"goldenorders/internal/service"
	mock_service "goldenorders/internal/service/mock"
	mock_cache "goldenorders/pkg/cache/mock"
	mock_logger "goldenorders/pkg/logger/mock"
	mock_metric "goldenorders/pkg/metric/mock"
	"goldenorders/pkg/storage/postgres"
	mock_transaction "goldenorders/pkg/storage/postgres/transaction/mock"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	_validCPF  = "529.982.247-25"
	_validCNPJ = "11.222.333/0001-81"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v, err := service.NewValidator()
	require.NoError(t, err)
	return v
}

func generateFakeItem() *entity.Item {
	return &entity.Item{
		Code:        gofakeit.DigitN(6),
		NCM:         gofakeit.DigitN(8),
		Description: gofakeit.ProductName(),
		Unit:        "UN",
		Weight:      decimal.NewFromInt(int64(gofakeit.Number(1, 20))),
		Quantity:    decimal.NewFromInt(int64(gofakeit.Number(1, 10))),
		UnitPrice:   decimal.NewFromInt(int64(gofakeit.Number(10, 5000))),
	}
}

func generateFakeOrder() *entity.Order {
	itemsCount := gofakeit.Number(1, 5)
	items := make([]*entity.Item, 0, itemsCount)
	for range itemsCount {
		items = append(items, generateFakeItem())
	}

	return &entity.Order{
		ID:             "PED-" + gofakeit.DigitN(6),
		Date:           gofakeit.Date().Format("2006-01-02"),
		Salesperson:    gofakeit.Name(),
		Classification: entity.ClassificationSale,
		Customer: entity.CustomerInfo{
			Name:     gofakeit.Company(),
			Document: _validCNPJ,
			Phone:    "(11) 98765-4321",
			Email:    gofakeit.Email(),
			BillingAddress: entity.Address{
				Street:  gofakeit.Street(),
				Number:  gofakeit.StreetNumber(),
				City:    gofakeit.City(),
				State:   "SP",
				ZipCode: "01310-100",
			},
		},
		Contacts: []*entity.Contact{
			{Name: gofakeit.Name(), JobTitle: gofakeit.JobTitle(), Phone: "(11) 3333-4444"},
		},
		Items:        items,
		Currency:     entity.CurrencyReal,
		FreightValue: decimal.NewFromInt(50),
		CreatedBy:    "vendas@goldenpr.com.br",
	}
}

// persistedOrder is an order as it comes back from the database: header
// totals consistent with its items.
func persistedOrder() *entity.Order {
	order := generateFakeOrder()
	order.Status = entity.StatusDraft
	pricing.Apply(order)
	order.CreatedAt = time.Now().Add(-time.Hour)
	order.UpdatedAt = order.CreatedAt
	return order
}

func caller(email string, role entity.Role) entity.Authenticated {
	return entity.Authenticated{
		User:    entity.User{Email: email, Name: "Caller", Role: role},
		Role:    role,
		TokenID: gofakeit.UUID(),
	}
}

func passthroughTx(txManager *mock_transaction.MockManager, opName string) *gomock.Call {
	return txManager.EXPECT().ExecuteInTransaction(
		gomock.Any(), opName, gomock.Any(),
	).DoAndReturn(func(
		ctx context.Context,
		opName string,
		txFunc func(postgres.QueryExecuter) error,
	) error {
		return txFunc(nil)
	})
}

func allowLogs(logger *mock_logger.MockLogger) {
	logger.EXPECT().Ctx(gomock.Any()).Return(logger).AnyTimes()
	logger.EXPECT().LogAttrs(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Debugw(gomock.Any(), gomock.Any()).AnyTimes()
}

type orderMocks struct {
	orderRepo   *mock_repository.MockOrderRepository
	itemRepo    *mock_repository.MockItemRepository
	contactRepo *mock_repository.MockContactRepository
	addressRepo *mock_repository.MockAddressRepository
	txManager   *mock_transaction.MockManager
	pending     *mock_service.MockPendingStore
	logger      *mock_logger.MockLogger
	metrics     *mock_metric.MockOrder
	cache       *mock_cache.MockCache[string, *entity.Order]
}

func newOrderService(t *testing.T) (*service.OrderService, *orderMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &orderMocks{
		orderRepo:   mock_repository.NewMockOrderRepository(ctrl),
		itemRepo:    mock_repository.NewMockItemRepository(ctrl),
		contactRepo: mock_repository.NewMockContactRepository(ctrl),
		addressRepo: mock_repository.NewMockAddressRepository(ctrl),
		txManager:   mock_transaction.NewMockManager(ctrl),
		pending:     mock_service.NewMockPendingStore(ctrl),
		logger:      mock_logger.NewMockLogger(ctrl),
		metrics:     mock_metric.NewMockOrder(ctrl),
		cache:       mock_cache.NewMockCache[string, *entity.Order](ctrl),
	}

	m.cache.EXPECT().SetOnEvicted(gomock.Any()).Times(1)

	svc := service.NewOrderService(
		m.orderRepo,
		m.itemRepo,
		m.contactRepo,
		m.addressRepo,
		m.txManager,
		m.pending,
		newValidator(t),
		m.logger,
		m.metrics,
		m.cache,
		time.Minute,
	)

	return svc, m
}
