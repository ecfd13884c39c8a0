package service

import (
	"context"
	"fmt"
	"time"

	"goldenorders/internal/document"
	"goldenorders/internal/entity"
	"goldenorders/pkg/assist"
	"goldenorders/pkg/logger"
	"goldenorders/pkg/metric"
	"goldenorders/pkg/storage/postgres"
	"goldenorders/pkg/storage/postgres/transaction"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	_kindSpreadsheet = "spreadsheet"
	_kindOrderPDF    = "order_pdf"
	_kindReceiptPDF  = "receipt_pdf"
)

// File is a rendered document ready to be downloaded.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type ShareLinks struct {
	WhatsApp string `json:"whatsapp"`
	Mailto   string `json:"mailto"`
}

// ExportService renders orders into the documents handed to customers.
type ExportService struct {
	orders    OrderReader
	orderRepo OrderRepository
	txManager transaction.Manager
	renderer  Renderer
	store     ObjectStore
	assistant Assistant
	logger    logger.Logger
	metrics   metric.Document
	now       func() time.Time
}

func NewExportService(
	orders OrderReader,
	orderRepo OrderRepository,
	txManager transaction.Manager,
	renderer Renderer,
	store ObjectStore,
	assistant Assistant,
	logger logger.Logger,
	metrics metric.Document,
) *ExportService {
	return &ExportService{
		orders:    orders,
		orderRepo: orderRepo,
		txManager: txManager,
		renderer:  renderer,
		store:     store,
		assistant: assistant,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

func (es *ExportService) Spreadsheet(ctx context.Context, caller entity.Authenticated, id string) (*File, error) {
	const op = "service.Spreadsheet"

	order, err := es.load(ctx, caller, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := es.render(ctx, _kindSpreadsheet, order, es.renderer.Spreadsheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &File{Name: document.SpreadsheetFileName(order.ID), ContentType: ContentTypeXLSX, Data: data}, nil
}

func (es *ExportService) PDF(ctx context.Context, caller entity.Authenticated, id string) (*File, error) {
	const op = "service.PDF"

	order, err := es.load(ctx, caller, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := es.render(ctx, _kindOrderPDF, order, es.renderer.OrderPDF)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &File{Name: document.PDFFileName(order.ID), ContentType: ContentTypePDF, Data: data}, nil
}

// ArchivePDF renders the order PDF, uploads it and records its public URL on
// the order.
func (es *ExportService) ArchivePDF(
	ctx context.Context,
	caller entity.Authenticated,
	id string,
) (*entity.Order, error) {
	const op = "service.ArchivePDF"
	log := es.logger.Ctx(ctx)

	order, err := es.load(ctx, caller, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := es.render(ctx, _kindOrderPDF, order, es.renderer.OrderPDF)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	at := es.now().UTC()
	url, err := es.store.Upload(ctx, document.ArchiveFileName(order.ID, at), ContentTypePDF, data)
	if err != nil {
		return nil, fmt.Errorf("%s: upload: %w", op, err)
	}

	err = es.txManager.ExecuteInTransaction(ctx, "ArchivePDF", func(tx postgres.QueryExecuter) error {
		if err := es.orderRepo.UpdatePDF(ctx, tx, order.ID, url, at); err != nil {
			return transaction.HandleError("ArchivePDF", "update pdf url", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	es.orders.Invalidate(order.ID)

	log.LogAttrs(ctx, logger.InfoLevel, "order pdf archived",
		logger.String("op", op),
		logger.String("order_id", order.ID),
		logger.String("url", url),
	)

	archived := *order
	archived.PDFURL = url
	archived.PDFGeneratedAt = &at
	return &archived, nil
}

// ShareLinks builds the WhatsApp and e-mail links for an order. An empty body
// uses the standard proposal greeting.
func (es *ExportService) ShareLinks(
	ctx context.Context,
	caller entity.Authenticated,
	id, body string,
) (*ShareLinks, error) {
	const op = "service.ShareLinks"

	order, err := es.load(ctx, caller, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if body == "" {
		body = assist.FallbackProposal
	}

	phone, email := order.Customer.Phone, order.Customer.Email
	for _, c := range order.Contacts {
		if phone == "" && c.Phone != "" {
			phone = c.Phone
		}
		if email == "" && c.Email != "" {
			email = c.Email
		}
	}

	return &ShareLinks{
		WhatsApp: document.WhatsAppLink(order, phone),
		Mailto:   document.MailtoLink(order, email, body),
	}, nil
}

// ProposalMessage drafts the e-mail body that accompanies the order.
func (es *ExportService) ProposalMessage(
	ctx context.Context,
	caller entity.Authenticated,
	id string,
) (string, error) {
	const op = "service.ProposalMessage"

	order, err := es.load(ctx, caller, id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	items := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, item.Description)
	}

	return es.assistant.ProposalMessage(ctx, order.Customer.Name, order.GlobalValue2, items), nil
}

// load returns the order when caller may see it.
func (es *ExportService) load(ctx context.Context, caller entity.Authenticated, id string) (*entity.Order, error) {
	order, err := es.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = authorizeOrder(caller, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (es *ExportService) render(
	ctx context.Context,
	kind string,
	order *entity.Order,
	fn func(*entity.Order) ([]byte, error),
) ([]byte, error) {
	startTime := time.Now()

	data, err := fn(order)
	if err != nil {
		es.metrics.RenderFailed(kind)
		es.logger.Ctx(ctx).LogAttrs(ctx, logger.ErrorLevel, "document rendering failed",
			logger.String("kind", kind),
			logger.String("order_id", order.ID),
			logger.Err(err),
		)
		return nil, err
	}

	es.metrics.Rendered(kind, time.Since(startTime))
	return data, nil
}
