package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"goldenorders/internal/document"
	"goldenorders/internal/entity"
	mock_repository "goldenorders/internal/repository/mock"
	"goldenorders/internal/service"
	mock_service "goldenorders/internal/service/mock"
	mock_logger "goldenorders/pkg/logger/mock"
	mock_metric "goldenorders/pkg/metric/mock"
	mock_transaction "goldenorders/pkg/storage/postgres/transaction/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type acceptanceMocks struct {
	orders         *mock_service.MockOrderReader
	orderRepo      *mock_repository.MockOrderRepository
	acceptanceRepo *mock_repository.MockAcceptanceRepository
	txManager      *mock_transaction.MockManager
	renderer       *mock_service.MockRenderer
	store          *mock_service.MockObjectStore
	logger         *mock_logger.MockLogger
	metrics        *mock_metric.MockDocument
}

func newAcceptanceService(t *testing.T) (*service.AcceptanceService, *acceptanceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &acceptanceMocks{
		orders:         mock_service.NewMockOrderReader(ctrl),
		orderRepo:      mock_repository.NewMockOrderRepository(ctrl),
		acceptanceRepo: mock_repository.NewMockAcceptanceRepository(ctrl),
		txManager:      mock_transaction.NewMockManager(ctrl),
		renderer:       mock_service.NewMockRenderer(ctrl),
		store:          mock_service.NewMockObjectStore(ctrl),
		logger:         mock_logger.NewMockLogger(ctrl),
		metrics:        mock_metric.NewMockDocument(ctrl),
	}
	allowLogs(m.logger)

	svc := service.NewAcceptanceService(
		m.orders, m.orderRepo, m.acceptanceRepo, m.txManager, m.renderer, m.store,
		newValidator(t), m.logger, m.metrics,
	)
	return svc, m
}

func validAcceptance() entity.AcceptanceRequest {
	return entity.AcceptanceRequest{
		SignerName:     "Maria da Silva",
		SignerEmail:    "maria@hospital.com.br",
		SignerDocument: "11222333000181",
		Signature:      "Maria da Silva",
		Agreed:         true,
		UserAgent:      "Mozilla/5.0",
		IPAddress:      "10.0.0.1",
	}
}

// expectAcceptedLog wires the acceptance transaction and returns the stored
// log id.
func expectAcceptedLog(m *acceptanceMocks, order *entity.Order) {
	m.orders.EXPECT().GetOrder(gomock.Any(), order.ID).Return(order, nil)
	passthroughTx(m.txManager, "AcceptOrder").Times(1)
	m.acceptanceRepo.EXPECT().CreateLog(gomock.Any(), nil, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, log *entity.AcceptanceLog) (*entity.AcceptanceLog, error) {
			stored := *log
			stored.ID = 7
			return &stored, nil
		})
	m.orderRepo.EXPECT().UpdateStatus(gomock.Any(), nil, order.ID, entity.StatusConfirmed).Return(nil)
	m.orders.EXPECT().Invalidate(order.ID).Times(1)
}

func TestAcceptanceService_Accept(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.UnixMilli(1700000000000).UTC()
	const url = "https://files.example.com/receipts/Aceite.pdf"

	testCases := []struct {
		desc    string
		mocks   func(m *acceptanceMocks, order *entity.Order)
		pdfURL  string
		warning string
	}{
		{
			desc: "Success",
			mocks: func(m *acceptanceMocks, order *entity.Order) {
				expectAcceptedLog(m, order)
				m.renderer.EXPECT().AcceptanceReceiptPDF(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(o *entity.Order, signer document.Signer, token string) ([]byte, error) {
						assert.Equal(t, entity.StatusConfirmed, o.Status)
						assert.Equal(t, "11222333000181", signer.Document)
						assert.True(t, strings.HasSuffix(token, ".LOG7"), token)
						return []byte("%PDF-1.3"), nil
					})
				m.metrics.EXPECT().Rendered("receipt_pdf", gomock.Any())
				m.store.EXPECT().Upload(gomock.Any(), gomock.Any(), service.ContentTypePDF, []byte("%PDF-1.3")).
					Return(url, nil)
				passthroughTx(m.txManager, "RecordAcceptanceDocument").Times(1)
				m.acceptanceRepo.EXPECT().CreateDocument(gomock.Any(), nil, gomock.Any()).
					DoAndReturn(func(
						_ context.Context, _ any, doc *entity.AcceptanceDocument,
					) (*entity.AcceptanceDocument, error) {
						assert.Equal(t, url, doc.PDFURL)
						assert.Equal(t, "maria@hospital.com.br", doc.SignerEmail)
						return doc, nil
					})
			},
			pdfURL: url,
		},
		{
			desc: "RenderFailure",
			mocks: func(m *acceptanceMocks, order *entity.Order) {
				expectAcceptedLog(m, order)
				m.renderer.EXPECT().AcceptanceReceiptPDF(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("gofpdf: font missing"))
				m.metrics.EXPECT().RenderFailed("receipt_pdf")
			},
			warning: service.WarningReceiptNotRendered,
		},
		{
			desc: "UploadFailure",
			mocks: func(m *acceptanceMocks, order *entity.Order) {
				expectAcceptedLog(m, order)
				m.renderer.EXPECT().AcceptanceReceiptPDF(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]byte("%PDF-1.3"), nil)
				m.metrics.EXPECT().Rendered("receipt_pdf", gomock.Any())
				m.store.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("s3: timeout"))
			},
			warning: service.WarningReceiptNotArchived,
		},
		{
			desc: "DocumentRecordFailure",
			mocks: func(m *acceptanceMocks, order *entity.Order) {
				expectAcceptedLog(m, order)
				m.renderer.EXPECT().AcceptanceReceiptPDF(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]byte("%PDF-1.3"), nil)
				m.metrics.EXPECT().Rendered("receipt_pdf", gomock.Any())
				m.store.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(url, nil)
				m.txManager.EXPECT().ExecuteInTransaction(gomock.Any(), "RecordAcceptanceDocument", gomock.Any()).
					Return(errors.New("connection reset"))
			},
			warning: service.WarningReceiptNotArchived,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			svc, m := newAcceptanceService(t)
			svc.SetNow(func() time.Time { return now })
			order := persistedOrder()
			order.ID = "PED-123456"
			tc.mocks(m, order)

			receipt, err := svc.Accept(ctx, order.ID, validAcceptance())
			require.NoError(t, err)

			assert.Equal(t, int64(7), receipt.LogID)
			assert.True(t, strings.HasPrefix(receipt.IntegrityToken, "SHA."), receipt.IntegrityToken)
			assert.True(t, strings.HasSuffix(receipt.IntegrityToken, ".LOG7"), receipt.IntegrityToken)
			assert.Equal(t, "Aceite_Pedido_PED-123456_Maria_1700000000000.pdf", receipt.FileName)
			assert.Equal(t, tc.pdfURL, receipt.PDFURL)
			assert.Equal(t, tc.warning, receipt.Warning)
		})
	}
}

func TestAcceptanceService_Accept_Rejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	testCases := []struct {
		desc     string
		modify   func(*entity.AcceptanceRequest)
		mocks    func(m *acceptanceMocks, order *entity.Order)
		expected error
	}{
		{
			desc:     "NotAgreed",
			modify:   func(r *entity.AcceptanceRequest) { r.Agreed = false },
			mocks:    func(*acceptanceMocks, *entity.Order) {},
			expected: entity.ErrInvalidData,
		},
		{
			desc:     "MissingSignature",
			modify:   func(r *entity.AcceptanceRequest) { r.Signature = "   " },
			mocks:    func(*acceptanceMocks, *entity.Order) {},
			expected: entity.ErrInvalidData,
		},
		{
			desc:     "InvalidDocument",
			modify:   func(r *entity.AcceptanceRequest) { r.SignerDocument = "111.111.111-11" },
			mocks:    func(*acceptanceMocks, *entity.Order) {},
			expected: entity.ErrInvalidData,
		},
		{
			desc:     "InvalidEmail",
			modify:   func(r *entity.AcceptanceRequest) { r.SignerEmail = "not-an-email" },
			mocks:    func(*acceptanceMocks, *entity.Order) {},
			expected: entity.ErrInvalidData,
		},
		{
			desc:   "OrderNotFound",
			modify: func(*entity.AcceptanceRequest) {},
			mocks: func(m *acceptanceMocks, order *entity.Order) {
				m.orders.EXPECT().GetOrder(ctx, order.ID).Return(nil, entity.ErrDataNotFound)
			},
			expected: entity.ErrDataNotFound,
		},
		{
			desc:   "OrderNotConfirmed",
			modify: func(*entity.AcceptanceRequest) {},
			mocks: func(m *acceptanceMocks, order *entity.Order) {
				m.orders.EXPECT().GetOrder(ctx, order.ID).Return(order, nil)
				m.txManager.EXPECT().ExecuteInTransaction(ctx, "AcceptOrder", gomock.Any()).
					Return(errors.New("acceptance_logs: permission denied"))
				m.txManager.EXPECT().ExecuteInTransaction(ctx, "ConfirmOrder", gomock.Any()).
					Return(entity.ErrDataNotFound)
			},
			expected: entity.ErrDataNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			svc, m := newAcceptanceService(t)
			order := persistedOrder()
			tc.mocks(m, order)

			req := validAcceptance()
			tc.modify(&req)

			receipt, err := svc.Accept(ctx, order.ID, req)
			require.ErrorIs(t, err, tc.expected)
			assert.Nil(t, receipt)
		})
	}
}

func TestAcceptanceService_Accept_RepresentativeSigner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, m := newAcceptanceService(t)
	order := persistedOrder()

	req := validAcceptance()
	req.SignerName = "João Representante"
	req.SignerDocument = _validCPF

	expectAcceptedLog(m, order)
	m.renderer.EXPECT().AcceptanceReceiptPDF(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ *entity.Order, signer document.Signer, _ string) ([]byte, error) {
			assert.Equal(t, "52998224725", signer.Document)
			return nil, errors.New("gofpdf: font missing")
		})
	m.metrics.EXPECT().RenderFailed("receipt_pdf")

	receipt, err := svc.Accept(ctx, order.ID, req)
	require.NoError(t, err)
	assert.Equal(t, int64(7), receipt.LogID)
}

func TestAcceptanceService_Accept_LogNotStored(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.UnixMilli(1700000000000).UTC()

	svc, m := newAcceptanceService(t)
	svc.SetNow(func() time.Time { return now })
	order := persistedOrder()

	m.orders.EXPECT().GetOrder(ctx, order.ID).Return(order, nil)
	m.txManager.EXPECT().ExecuteInTransaction(ctx, "AcceptOrder", gomock.Any()).
		Return(errors.New("acceptance_logs: permission denied"))
	passthroughTx(m.txManager, "ConfirmOrder").Times(1)
	m.orderRepo.EXPECT().UpdateStatus(ctx, nil, order.ID, entity.StatusConfirmed).Return(nil)
	m.orders.EXPECT().Invalidate(order.ID).Times(1)
	m.renderer.EXPECT().AcceptanceReceiptPDF(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ *entity.Order, _ document.Signer, token string) ([]byte, error) {
			assert.NotContains(t, token, ".LOG")
			return nil, errors.New("gofpdf: font missing")
		})
	m.metrics.EXPECT().RenderFailed("receipt_pdf")

	receipt, err := svc.Accept(ctx, order.ID, validAcceptance())
	require.NoError(t, err)
	assert.Zero(t, receipt.LogID)
	assert.True(t, strings.HasPrefix(receipt.IntegrityToken, "SHA."), receipt.IntegrityToken)
	assert.NotContains(t, receipt.IntegrityToken, ".LOG")
	assert.Equal(t, service.WarningReceiptNotRendered, receipt.Warning)
}

func TestAcceptanceService_Documents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	docs := []*entity.AcceptanceDocument{
		{ID: 2, OrderID: "PED-123456", PDFURL: "https://files.example.com/b.pdf"},
		{ID: 1, OrderID: "PED-123456", PDFURL: "https://files.example.com/a.pdf"},
	}

	testCases := []struct {
		desc     string
		caller   entity.Authenticated
		mocks    func(m *acceptanceMocks)
		expected error
	}{
		{
			desc:   "Owner",
			caller: caller("vendas@goldenpr.com.br", entity.RoleUser),
			mocks: func(m *acceptanceMocks) {
				m.acceptanceRepo.EXPECT().ListDocuments(ctx, "PED-123456").Return(docs, nil)
			},
		},
		{
			desc:   "Admin",
			caller: caller("admin@goldenpr.com.br", entity.RoleAdmin),
			mocks: func(m *acceptanceMocks) {
				m.acceptanceRepo.EXPECT().ListDocuments(ctx, "PED-123456").Return(docs, nil)
			},
		},
		{
			desc:     "OtherSeller",
			caller:   caller("outro@goldenpr.com.br", entity.RoleUser),
			mocks:    func(*acceptanceMocks) {},
			expected: entity.ErrForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			svc, m := newAcceptanceService(t)
			order := persistedOrder()
			order.ID = "PED-123456"
			m.orders.EXPECT().GetOrder(ctx, order.ID).Return(order, nil)
			tc.mocks(m)

			got, err := svc.Documents(ctx, tc.caller, order.ID)
			if tc.expected != nil {
				require.ErrorIs(t, err, tc.expected)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, docs, got)
		})
	}
}
