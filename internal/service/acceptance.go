package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"goldenorders/internal/document"
	"goldenorders/internal/entity"
	"goldenorders/pkg/brdoc"
	"goldenorders/pkg/logger"
	"goldenorders/pkg/metric"
	"goldenorders/pkg/storage/postgres"
	"goldenorders/pkg/storage/postgres/transaction"

	"github.com/go-playground/validator/v10"
)

const (
	WarningReceiptNotRendered = "aceite registrado, mas o comprovante não pôde ser gerado"
	WarningReceiptNotArchived = "aceite registrado, mas o comprovante não pôde ser arquivado"
)

// AcceptanceService records customers' digital acceptance of orders.
type AcceptanceService struct {
	orders         OrderReader
	orderRepo      OrderRepository
	acceptanceRepo AcceptanceRepository
	txManager      transaction.Manager
	renderer       Renderer
	store          ObjectStore
	validate       *validator.Validate
	logger         logger.Logger
	metrics        metric.Document
	now            func() time.Time
}

func NewAcceptanceService(
	orders OrderReader,
	orderRepo OrderRepository,
	acceptanceRepo AcceptanceRepository,
	txManager transaction.Manager,
	renderer Renderer,
	store ObjectStore,
	validate *validator.Validate,
	logger logger.Logger,
	metrics metric.Document,
) *AcceptanceService {
	return &AcceptanceService{
		orders:         orders,
		orderRepo:      orderRepo,
		acceptanceRepo: acceptanceRepo,
		txManager:      txManager,
		renderer:       renderer,
		store:          store,
		validate:       validate,
		logger:         logger,
		metrics:        metrics,
		now:            time.Now,
	}
}

// Accept stores the signature log, confirms the order and produces the
// signed receipt. The signer may be any representative holding a valid
// CPF/CNPJ. When the log cannot be stored the order is still confirmed and
// the token carries no log suffix. Receipt failures are reported in the
// returned receipt's Warning instead of as an error.
func (as *AcceptanceService) Accept(
	ctx context.Context,
	orderID string,
	req entity.AcceptanceRequest,
) (*entity.AcceptanceReceipt, error) {
	const op = "service.Accept"
	log := as.logger.Ctx(ctx)

	if err := as.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%s: validate request: %w", op, err)
	}

	order, err := as.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: get order: %w", op, err)
	}

	signedAt := as.now().UTC()
	baseToken := document.NewIntegrityToken(signedAt, 0)

	receipt := &entity.AcceptanceReceipt{
		IntegrityToken: baseToken,
		FileName:       document.ReceiptFileName(order.ID, req.SignerName, signedAt),
	}

	stored, err := as.recordAcceptance(ctx, order, req, baseToken)
	if err != nil {
		log.LogAttrs(ctx, logger.WarnLevel, "acceptance log not stored, confirming without it",
			logger.String("op", op),
			logger.String("order_id", order.ID),
			logger.Err(err),
		)
		if err = as.confirm(ctx, order.ID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else {
		receipt.LogID = stored.ID
		receipt.IntegrityToken = document.WithLogID(baseToken, stored.ID)
	}
	as.orders.Invalidate(order.ID)

	log.LogAttrs(ctx, logger.InfoLevel, "order accepted",
		logger.String("op", op),
		logger.String("order_id", order.ID),
		logger.Int64("log_id", receipt.LogID),
	)

	signer := document.Signer{
		Name:      strings.TrimSpace(req.SignerName),
		Document:  brdoc.Digits(req.SignerDocument),
		Signature: strings.TrimSpace(req.Signature),
		SignedAt:  signedAt,
	}
	as.attachReceipt(ctx, order, signer, receipt, req.SignerEmail)

	return receipt, nil
}

// recordAcceptance stores the signature log and confirms the order in one
// transaction.
func (as *AcceptanceService) recordAcceptance(
	ctx context.Context,
	order *entity.Order,
	req entity.AcceptanceRequest,
	token string,
) (*entity.AcceptanceLog, error) {
	var stored *entity.AcceptanceLog
	err := as.txManager.ExecuteInTransaction(ctx, "AcceptOrder", func(tx postgres.QueryExecuter) error {
		var err error
		stored, err = as.acceptanceRepo.CreateLog(ctx, tx, &entity.AcceptanceLog{
			OrderID:          order.ID,
			CustomerName:     order.Customer.Name,
			CustomerDocument: order.Customer.Document,
			SignerName:       strings.TrimSpace(req.SignerName),
			SignerEmail:      strings.TrimSpace(req.SignerEmail),
			SignatureHash:    token,
			UserAgent:        req.UserAgent,
			IPAddress:        req.IPAddress,
		})
		if err != nil {
			return transaction.HandleError("AcceptOrder", "create log", err)
		}

		if err = as.orderRepo.UpdateStatus(ctx, tx, order.ID, entity.StatusConfirmed); err != nil {
			return transaction.HandleError("AcceptOrder", "confirm order", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (as *AcceptanceService) confirm(ctx context.Context, orderID string) error {
	return as.txManager.ExecuteInTransaction(ctx, "ConfirmOrder", func(tx postgres.QueryExecuter) error {
		if err := as.orderRepo.UpdateStatus(ctx, tx, orderID, entity.StatusConfirmed); err != nil {
			return transaction.HandleError("ConfirmOrder", "confirm order", err)
		}
		return nil
	})
}

func (as *AcceptanceService) attachReceipt(
	ctx context.Context,
	order *entity.Order,
	signer document.Signer,
	receipt *entity.AcceptanceReceipt,
	signerEmail string,
) {
	const op = "service.attachReceipt"
	log := as.logger.Ctx(ctx)

	confirmed := *order
	confirmed.Status = entity.StatusConfirmed

	startTime := time.Now()
	data, err := as.renderer.AcceptanceReceiptPDF(&confirmed, signer, receipt.IntegrityToken)
	if err != nil {
		as.metrics.RenderFailed(_kindReceiptPDF)
		log.LogAttrs(ctx, logger.ErrorLevel, "acceptance receipt rendering failed",
			logger.String("op", op),
			logger.String("order_id", order.ID),
			logger.Err(err),
		)
		receipt.Warning = WarningReceiptNotRendered
		return
	}
	as.metrics.Rendered(_kindReceiptPDF, time.Since(startTime))
	receipt.PDF = data

	url, err := as.store.Upload(ctx, receipt.FileName, ContentTypePDF, data)
	if err != nil {
		log.LogAttrs(ctx, logger.ErrorLevel, "acceptance receipt upload failed",
			logger.String("op", op),
			logger.String("order_id", order.ID),
			logger.Err(err),
		)
		receipt.Warning = WarningReceiptNotArchived
		return
	}

	err = as.txManager.ExecuteInTransaction(ctx, "RecordAcceptanceDocument", func(tx postgres.QueryExecuter) error {
		_, err := as.acceptanceRepo.CreateDocument(ctx, tx, &entity.AcceptanceDocument{
			OrderID:     order.ID,
			PDFURL:      url,
			SignerName:  signer.Name,
			SignerEmail: strings.TrimSpace(signerEmail),
		})
		if err != nil {
			return transaction.HandleError("RecordAcceptanceDocument", "create document", err)
		}
		return nil
	})
	if err != nil {
		log.LogAttrs(ctx, logger.ErrorLevel, "acceptance document record failed",
			logger.String("op", op),
			logger.String("order_id", order.ID),
			logger.Err(err),
		)
		receipt.Warning = WarningReceiptNotArchived
		return
	}

	receipt.PDFURL = url
}

// Documents lists the receipts archived for an order the caller may see.
func (as *AcceptanceService) Documents(
	ctx context.Context,
	caller entity.Authenticated,
	orderID string,
) ([]*entity.AcceptanceDocument, error) {
	const op = "service.AcceptanceDocuments"

	order, err := as.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = authorizeOrder(caller, order); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	docs, err := as.acceptanceRepo.ListDocuments(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return docs, nil
}

func (as *AcceptanceService) validateRequest(req entity.AcceptanceRequest) error {
	var errs []error

	if !req.Agreed {
		errs = append(errs, invalid("agreed", "é necessário concordar com os termos"))
	}
	if strings.TrimSpace(req.Signature) == "" {
		errs = append(errs, invalid("signature", "assinatura é obrigatória"))
	}
	if doc := brdoc.Digits(req.SignerDocument); len(doc) < 11 || !brdoc.IsValidDocument(doc) {
		errs = append(errs, invalid("signer_document", "CPF/CNPJ inválido"))
	}
	if strings.TrimSpace(req.SignerName) == "" {
		errs = append(errs, invalid("signer_name", "nome é obrigatório"))
	}

	if err := as.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %w", entity.ErrInvalidData, err)
		}
		for _, fe := range fieldErrs {
			if fe.Tag() == "required" {
				continue
			}
			errs = append(errs, invalid(fe.Field(), describe(fe)))
		}
	}

	return errors.Join(errs...)
}
