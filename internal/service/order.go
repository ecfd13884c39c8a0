package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"goldenorders/internal/entity"
	"goldenorders/internal/pricing"
	"goldenorders/pkg/cache"
	"goldenorders/pkg/logger"
	"goldenorders/pkg/metric"
	"goldenorders/pkg/storage/postgres"
	"goldenorders/pkg/storage/postgres/transaction"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	_defaultContextTimeout = 500 * time.Millisecond
	_slowOperation         = 200 * time.Millisecond
	_maxIDAttempts         = 5
	_orderIDPrefix         = "PED-"
)

type OrderService struct {
	orderRepo   OrderRepository
	itemRepo    ItemRepository
	contactRepo ContactRepository
	addressRepo AddressRepository
	txManager   transaction.Manager
	pending     PendingStore
	validate    *validator.Validate
	logger      logger.Logger
	metrics     metric.Order
	cache       cache.Cache[string, *entity.Order]
	cacheTTL    time.Duration
	now         func() time.Time
}

func NewOrderService(
	orderRepo OrderRepository,
	itemRepo ItemRepository,
	contactRepo ContactRepository,
	addressRepo AddressRepository,
	txManager transaction.Manager,
	pending PendingStore,
	validate *validator.Validate,
	logger logger.Logger,
	metrics metric.Order,
	cache cache.Cache[string, *entity.Order],
	cacheTTL time.Duration,
) *OrderService {
	cache.SetOnEvicted(func(key string, value *entity.Order) {
		logger.Debugw("cache eviction",
			"key", key,
			"type", fmt.Sprintf("%T", value),
		)
	})

	return &OrderService{
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		contactRepo: contactRepo,
		addressRepo: addressRepo,
		txManager:   txManager,
		pending:     pending,
		validate:    validate,
		logger:      logger,
		metrics:     metrics,
		cache:       cache,
		cacheTTL:    cacheTTL,
		now:         time.Now,
	}
}

// CreateOrder assigns a fresh id and stores order on behalf of caller.
func (os *OrderService) CreateOrder(
	ctx context.Context,
	caller entity.Authenticated,
	order *entity.Order,
) (*entity.Order, error) {
	order.ID = ""
	order.CreatedBy = caller.User.Email
	for _, item := range order.Items {
		item.ID = uuid.New()
	}
	for _, ct := range order.Contacts {
		ct.ID = uuid.New()
	}
	return os.SaveOrder(ctx, order, "http")
}

// UpdateOrder replaces the order stored under id. Authorship and the archived
// PDF of an existing order are kept; a missing order is created under caller.
func (os *OrderService) UpdateOrder(
	ctx context.Context,
	caller entity.Authenticated,
	id string,
	order *entity.Order,
) (*entity.Order, error) {
	const op = "service.UpdateOrder"

	order.ID = id
	existing, err := os.orderRepo.GetByID(ctx, id)
	switch {
	case err == nil:
		if authErr := authorizeOrder(caller, existing); authErr != nil {
			os.logger.Ctx(ctx).LogAttrs(ctx, logger.WarnLevel, "order update denied",
				logger.String("op", op),
				logger.String("order_id", id),
			)
			return nil, fmt.Errorf("%s: %w", op, authErr)
		}
		order.CreatedBy = existing.CreatedBy
		order.PDFURL = existing.PDFURL
		order.PDFGeneratedAt = existing.PDFGeneratedAt
	case errors.Is(err, entity.ErrDataNotFound):
		order.CreatedBy = caller.User.Email
	default:
		os.logger.Ctx(ctx).LogAttrs(ctx, logger.WarnLevel, "could not load existing order before save",
			logger.String("op", op),
			logger.String("order_id", id),
			logger.Err(err),
		)
		if order.CreatedBy == "" {
			order.CreatedBy = caller.User.Email
		}
	}

	return os.SaveOrder(ctx, order, "http")
}

// SaveOrder validates order, derives its totals and writes it with all of its
// children in one transaction. An order without id gets one. When the
// database write fails the order is kept in the pending store and the
// returned error wraps entity.ErrStoredLocally.
func (os *OrderService) SaveOrder(
	ctx context.Context,
	order *entity.Order,
	source string,
) (*entity.Order, error) {
	const op = "service.SaveOrder"
	log := os.logger.Ctx(ctx)

	if order.Status == "" {
		order.Status = entity.StatusDraft
	}

	if err := validateOrder(os.validate, order); err != nil {
		log.LogAttrs(ctx, logger.WarnLevel, "order validation failed",
			logger.String("op", op),
			logger.String("order_id", order.ID),
			logger.Err(err),
		)
		return nil, fmt.Errorf("%s: validate order: %w", op, err)
	}

	if order.ID == "" {
		id, err := os.nextID(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: assign id: %w", op, err)
		}
		order.ID = id
	}

	log.LogAttrs(ctx, logger.InfoLevel, "save order started",
		logger.String("op", op),
		logger.String("order_id", order.ID),
		logger.String("source", source),
		logger.Int("items_count", len(order.Items)),
	)

	startTime := time.Now()
	defer os.warnIfSlow(ctx, op, order.ID, startTime)

	pricing.Apply(order)

	if err := os.saveOrderWithTransaction(ctx, order); err != nil {
		log.LogAttrs(ctx, logger.ErrorLevel, "order save failed",
			logger.String("op", op),
			logger.String("order_id", order.ID),
			logger.Err(err),
		)
		if errors.Is(err, entity.ErrInvalidData) || errors.Is(err, entity.ErrConflictingData) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return nil, os.storeLocally(ctx, op, order, err)
	}

	os.cache.Put(order.ID, order, os.cacheTTL)
	os.metrics.Saved(source)

	log.LogAttrs(ctx, logger.InfoLevel, "order saved successfully",
		logger.String("op", op),
		logger.String("order_id", order.ID),
		logger.String("duration", time.Since(startTime).String()),
	)

	return order, nil
}

func (os *OrderService) saveOrderWithTransaction(ctx context.Context, order *entity.Order) error {
	return os.txManager.ExecuteInTransaction(
		ctx,
		"SaveOrder",
		func(tx postgres.QueryExecuter) error {
			createdAt, updatedAt, err := os.orderRepo.Upsert(ctx, tx, order)
			if err != nil {
				return transaction.HandleError("SaveOrder", "upsert order", err)
			}
			order.CreatedAt, order.UpdatedAt = createdAt, updatedAt

			if err = os.itemRepo.Replace(ctx, tx, order.ID, order.Items); err != nil {
				return transaction.HandleError("SaveOrder", "replace items", err)
			}

			if err = os.contactRepo.Replace(ctx, tx, order.ID, order.Contacts); err != nil {
				return transaction.HandleError("SaveOrder", "replace contacts", err)
			}

			if err = os.addressRepo.Replace(ctx, tx, order.ID, &order.Customer); err != nil {
				return transaction.HandleError("SaveOrder", "replace addresses", err)
			}

			return nil
		},
	)
}

func (os *OrderService) storeLocally(ctx context.Context, op string, order *entity.Order, cause error) error {
	log := os.logger.Ctx(ctx)

	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("%s: %w", op, errors.Join(cause, err))
	}

	if err = os.pending.Put(context.WithoutCancel(ctx), order.ID, payload, cause.Error()); err != nil {
		log.LogAttrs(ctx, logger.ErrorLevel, "local fallback store failed",
			logger.String("op", op),
			logger.String("order_id", order.ID),
			logger.Err(err),
		)
		return fmt.Errorf("%s: %w", op, errors.Join(cause, err))
	}

	os.metrics.StoredLocally()
	log.LogAttrs(ctx, logger.WarnLevel, "order kept in local fallback store",
		logger.String("op", op),
		logger.String("order_id", order.ID),
	)

	return fmt.Errorf("%s: %w: %w", op, entity.ErrStoredLocally, cause)
}

// nextID derives PED-<last six digits of unix ms>, stepping forward on
// collision. When the lookup itself fails the candidate is used as is so the
// order can still reach the fallback store.
func (os *OrderService) nextID(ctx context.Context) (string, error) {
	const op = "service.nextID"

	base := os.now().UnixMilli()
	for attempt := range _maxIDAttempts {
		id := formatOrderID(base + int64(attempt))

		exists, err := os.orderRepo.Exists(ctx, id)
		if err != nil {
			os.logger.Ctx(ctx).LogAttrs(ctx, logger.WarnLevel, "order id collision check failed",
				logger.String("op", op),
				logger.String("order_id", id),
				logger.Err(err),
			)
			return id, nil
		}
		if !exists {
			return id, nil
		}
	}

	return "", fmt.Errorf("%s: %d candidates taken: %w", op, _maxIDAttempts, entity.ErrConflictingData)
}

func formatOrderID(ms int64) string {
	s := strconv.FormatInt(ms, 10)
	if len(s) > 6 {
		s = s[len(s)-6:]
	}
	return _orderIDPrefix + s
}

// GetOrderFor loads the order for caller. Only admins and the order's
// creator may read it.
func (os *OrderService) GetOrderFor(
	ctx context.Context,
	caller entity.Authenticated,
	id string,
) (*entity.Order, error) {
	order, err := os.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = authorizeOrder(caller, order); err != nil {
		return nil, fmt.Errorf("service.GetOrderFor: %w", err)
	}
	return order, nil
}

func authorizeOrder(caller entity.Authenticated, order *entity.Order) error {
	if caller.IsAdmin() || order.OwnedBy(caller.User.Email) {
		return nil
	}
	return entity.ErrForbidden
}

func (os *OrderService) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	const op = "service.GetOrder"
	log := os.logger.Ctx(ctx)

	log.LogAttrs(ctx, logger.InfoLevel, "get order requested",
		logger.String("op", op),
		logger.String("order_id", id),
	)

	startTime := time.Now()
	defer os.warnIfSlow(ctx, op, id, startTime)

	if cached, found := os.cache.Get(id); found {
		log.LogAttrs(ctx, logger.InfoLevel, "order served from cache",
			logger.String("op", op),
			logger.String("order_id", id),
			logger.String("duration", time.Since(startTime).String()),
		)
		return cached, nil
	}

	log.LogAttrs(ctx, logger.DebugLevel, "cache miss",
		logger.String("op", op),
		logger.String("order_id", id),
	)

	order, err := os.fetchOrderFromDB(ctx, id)
	if err != nil {
		log.LogAttrs(ctx, logger.ErrorLevel, "failed to get order from database",
			logger.String("op", op),
			logger.Err(err),
			logger.String("order_id", id),
		)
		return nil, err
	}

	os.reconcileTotals(ctx, order)
	os.cache.Put(id, order, os.cacheTTL)

	log.LogAttrs(ctx, logger.InfoLevel, "order served from database",
		logger.String("op", op),
		logger.String("order_id", id),
		logger.Int("items_count", len(order.Items)),
		logger.String("duration", time.Since(startTime).String()),
	)

	return order, nil
}

// reconcileTotals records which persisted totals disagree with the items and
// replaces them with the recomputed values.
func (os *OrderService) reconcileTotals(ctx context.Context, order *entity.Order) {
	drift := pricing.Drift(order)
	if len(drift) > 0 {
		for _, field := range drift {
			os.metrics.TotalsDrift(field)
		}
		os.logger.Ctx(ctx).LogAttrs(ctx, logger.WarnLevel, "persisted totals drift",
			logger.String("order_id", order.ID),
			logger.Any("fields", drift),
		)
	}

	pricing.Apply(order)
	order.TotalsDrift = drift
}

func (os *OrderService) fetchOrderFromDB(ctx context.Context, id string) (*entity.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, _defaultContextTimeout)
	defer cancel()

	order, err := os.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		items     []*entity.Item
		contacts  []*entity.Contact
		addresses map[entity.AddressKind]entity.Address
	)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		items, err = os.itemRepo.ListByOrderID(gCtx, id)
		if err != nil {
			return fmt.Errorf("service.getItems: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		contacts, err = os.contactRepo.ListByOrderID(gCtx, id)
		if err != nil {
			return fmt.Errorf("service.getContacts: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		addresses, err = os.addressRepo.ListByOrderID(gCtx, id)
		if err != nil {
			return fmt.Errorf("service.getAddresses: %w", err)
		}
		return nil
	})

	if err = g.Wait(); err != nil {
		return nil, err
	}

	order.Items = items
	order.Contacts = contacts
	for kind, addr := range addresses {
		order.Customer.SetAddress(kind, addr)
	}

	return order, nil
}

// ListOrders returns order headers newest first. Only admins see orders
// created by others.
func (os *OrderService) ListOrders(ctx context.Context, caller entity.Authenticated) ([]*entity.Order, error) {
	const op = "service.ListOrders"

	createdBy := caller.User.Email
	if caller.IsAdmin() {
		createdBy = ""
	}

	orders, err := os.orderRepo.List(ctx, createdBy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, order := range orders {
		order.BalanceDue = pricing.BalanceDue(order.TotalInBRL, order.DownPayment)
	}

	return orders, nil
}

// DeleteOrder removes the order and its children. Only admins and the
// order's creator may delete it.
func (os *OrderService) DeleteOrder(ctx context.Context, caller entity.Authenticated, id string) error {
	const op = "service.DeleteOrder"
	log := os.logger.Ctx(ctx)

	order, err := os.orderRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: get order: %w", op, err)
	}

	if authorizeOrder(caller, order) != nil {
		log.LogAttrs(ctx, logger.WarnLevel, "order deletion denied",
			logger.String("op", op),
			logger.String("order_id", id),
			logger.String("caller", caller.User.Email),
		)
		return fmt.Errorf("%s: %w", op, entity.ErrForbidden)
	}

	err = os.txManager.ExecuteInTransaction(ctx, "DeleteOrder", func(tx postgres.QueryExecuter) error {
		if err := os.orderRepo.Delete(ctx, tx, id); err != nil {
			return transaction.HandleError("DeleteOrder", "delete order", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	os.cache.Remove(id)

	log.LogAttrs(ctx, logger.InfoLevel, "order deleted",
		logger.String("op", op),
		logger.String("order_id", id),
		logger.String("caller", caller.User.Email),
	)

	return nil
}

// Invalidate drops the cached copy of an order changed outside SaveOrder.
func (os *OrderService) Invalidate(id string) {
	os.cache.Remove(id)
}

type ReplayReport struct {
	Replayed int `json:"replayed"`
	Failed   int `json:"failed"`
}

// ReplayPending retries every order kept in the local fallback store. Stored
// orders are removed once written; failures stay for the next run.
func (os *OrderService) ReplayPending(ctx context.Context) (ReplayReport, error) {
	const op = "service.ReplayPending"
	log := os.logger.Ctx(ctx)

	var report ReplayReport

	records, err := os.pending.List(ctx)
	if err != nil {
		return report, fmt.Errorf("%s: list pending: %w", op, err)
	}

	if len(records) == 0 {
		log.LogAttrs(ctx, logger.DebugLevel, "no pending orders to replay")
		return report, nil
	}

	for _, record := range records {
		if err = os.replay(ctx, record.Payload); err != nil {
			report.Failed++
			os.metrics.Replayed(false)
			log.LogAttrs(ctx, logger.WarnLevel, "pending order replay failed",
				logger.String("op", op),
				logger.String("order_id", record.ID),
				logger.Int("attempts", record.Attempts+1),
				logger.Err(err),
			)
			if markErr := os.pending.MarkAttempt(ctx, record.ID, err.Error()); markErr != nil {
				return report, fmt.Errorf("%s: mark attempt: %w", op, markErr)
			}
			continue
		}

		if err = os.pending.Delete(ctx, record.ID); err != nil {
			return report, fmt.Errorf("%s: delete pending: %w", op, err)
		}
		os.cache.Remove(record.ID)
		os.metrics.Replayed(true)
		os.metrics.Saved("replay")
		report.Replayed++
	}

	log.LogAttrs(ctx, logger.InfoLevel, "pending orders replay finished",
		logger.String("op", op),
		logger.Int("replayed", report.Replayed),
		logger.Int("failed", report.Failed),
	)

	return report, nil
}

func (os *OrderService) replay(ctx context.Context, payload []byte) error {
	var order entity.Order
	if err := json.Unmarshal(payload, &order); err != nil {
		return fmt.Errorf("decode pending order: %w", err)
	}
	return os.saveOrderWithTransaction(ctx, &order)
}

func (os *OrderService) warnIfSlow(ctx context.Context, op, id string, startTime time.Time) {
	duration := time.Since(startTime)
	if duration > _slowOperation {
		os.logger.Ctx(ctx).LogAttrs(ctx, logger.WarnLevel, "slow service operation",
			logger.String("op", op),
			logger.String("order_id", id),
			logger.String("duration", duration.String()),
		)
	}
}
