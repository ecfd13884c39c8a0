package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"goldenorders/internal/config"
	"goldenorders/internal/document"
	"goldenorders/internal/entity"
	"goldenorders/internal/repository"
	"goldenorders/internal/service"
	httpt "goldenorders/internal/transport/http"
	kafkat "goldenorders/internal/transport/kafka"
	"goldenorders/migrations"
	"goldenorders/pkg/assist"
	"goldenorders/pkg/cache"
	"goldenorders/pkg/fxrate"
	"goldenorders/pkg/kafka"
	"goldenorders/pkg/kafka/dlq"
	"goldenorders/pkg/logger"
	"goldenorders/pkg/metric"
	"goldenorders/pkg/objectstore"
	"goldenorders/pkg/session"
	"goldenorders/pkg/storage/postgres"
	"goldenorders/pkg/storage/postgres/transaction"
	"goldenorders/pkg/storage/sqlite"
	"goldenorders/pkg/token"
	"goldenorders/pkg/viacep"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type services struct {
	orders     *service.OrderService
	exports    *service.ExportService
	acceptance *service.AcceptanceService
	auth       *service.AuthService
	users      *service.UserService
	lookup     *service.LookupService
}

func Run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	eg, ctx := errgroup.WithContext(ctx)

	metrics := initMetrics(ctx, eg, &cfg.Metrics, log)

	db, dbErr := initDatabase(ctx, &cfg.Postgres, cfg.App.Name, log)
	if dbErr != nil {
		return dbErr
	}
	defer closeDB(db)

	txManager, txErr := initTransactionManager(db, &cfg.Postgres, log, metrics)
	if txErr != nil {
		return txErr
	}

	orderCache, cacheErr := cache.NewLRUCache[string, *entity.Order](
		"orders",
		cfg.Cache.Capacity,
		log.With("component", "order cache"),
		metrics.Cache(),
	)
	if cacheErr != nil {
		return fmt.Errorf("app.Run: order cache: %w", cacheErr)
	}
	eg.Go(func() error {
		orderCache.RunCleanup(ctx, cfg.Cache.CleanupInterval)
		return nil
	})

	pending, pendingErr := initPendingStore(&cfg.Fallback)
	if pendingErr != nil {
		return pendingErr
	}
	defer closeQuietly(log, "pending store", pending.Close)

	sessions := session.NewStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.KeyPrefix)
	defer closeQuietly(log, "session store", sessions.Close)
	if err := sessions.Ping(ctx); err != nil {
		log.Warnw("session store unreachable, sign-in will fail until it recovers", "error", err)
	}

	svc, svcErr := initServices(ctx, cfg, db, txManager, orderCache, pending, sessions, log, metrics)
	if svcErr != nil {
		return svcErr
	}

	replayPending(ctx, svc.orders, log)

	initHTTPServer(ctx, eg, cfg, svc, log, metrics)

	if cfg.Kafka.Enabled {
		if kafkaErr := initKafkaComponents(ctx, eg, cfg, svc.orders, log, metrics); kafkaErr != nil {
			return kafkaErr
		}
	}

	return waitForShutdown(eg)
}

func initMetrics(
	ctx context.Context,
	eg *errgroup.Group,
	cfg *config.Metrics,
	log logger.Logger,
) metric.Factory {
	metrics := metric.NewFactory()

	metricsServer := httpt.NewServer("metrics", net.JoinHostPort(cfg.Host, cfg.Port), metrics.Handler(),
		log.With("component", "metrics server"),
		httpt.ReadTimeouts(cfg.ReadTimeout, cfg.ReadHeaderTimeout),
		httpt.WriteTimeout(cfg.WriteTimeout),
	)

	eg.Go(func() error {
		return metricsServer.Start(ctx)
	})

	return metrics
}

func initDatabase(
	ctx context.Context,
	cfg *config.Postgres,
	appName string,
	log logger.Logger,
) (*postgres.Postgres, error) {
	db, err := postgres.NewPostgres(
		ctx,
		cfg,
		log.With("component", "database"),
		postgres.MaxPoolSize(cfg.PoolMax),
		postgres.ConnectRetry(cfg.ConnAttempts, cfg.BaseRetryDelay, cfg.MaxRetryDelay),
		postgres.ApplicationName(appName),
	)
	if err != nil {
		return nil, fmt.Errorf("app.initDatabase: %w", err)
	}

	applied, err := db.Migrate(ctx, migrations.FS)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("app.initDatabase: %w", err)
	}
	if len(applied) > 0 {
		log.Infow("database migrations applied", "versions", applied)
	}

	return db, nil
}

func closeDB(db *postgres.Postgres) {
	if db != nil {
		db.Close()
	}
}

func closeQuietly(log logger.Logger, what string, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Warnw("close failed", "component", what, "error", err)
	}
}

func initTransactionManager(
	db *postgres.Postgres,
	cfg *config.Postgres,
	log logger.Logger,
	metrics metric.Factory,
) (transaction.Manager, error) {
	txManager, err := transaction.NewManager(
		db,
		log.With("component", "transaction manager"),
		metrics.Transaction(),
		transaction.MaxAttempts(cfg.TxMaxAttempts),
		transaction.Backoff(cfg.TxBaseRetryDelay, cfg.TxMaxRetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("app.initTransactionManager: %w", err)
	}
	return txManager, nil
}

func initPendingStore(cfg *config.Fallback) (*sqlite.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
		return nil, fmt.Errorf("app.initPendingStore: create directory: %w", err)
	}

	store, err := sqlite.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("app.initPendingStore: %w", err)
	}
	return store, nil
}

func initServices(
	ctx context.Context,
	cfg *config.Config,
	db *postgres.Postgres,
	txManager transaction.Manager,
	orderCache cache.Cache[string, *entity.Order],
	pending *sqlite.Store,
	sessions *session.Store,
	log logger.Logger,
	metrics metric.Factory,
) (*services, error) {
	const op = "app.initServices"

	validate, err := service.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	issuer, err := token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	store, err := objectstore.NewS3(ctx, objectstore.Config{
		Endpoint:      cfg.Storage.Endpoint,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
		Region:        cfg.Storage.Region,
		AccessKeyID:   cfg.Storage.AccessKeyID,
		SecretKey:     cfg.Storage.SecretKey,
		Bucket:        cfg.Storage.OrderBucket,
		UsePathStyle:  cfg.Storage.UsePathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	assistant, err := initAssistant(ctx, &cfg.Assist, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rateCache, err := cache.NewLRUCache[string, decimal.Decimal](
		"fx_rates",
		cfg.Lookup.FXCacheSize,
		log.With("component", "fx cache"),
		metrics.Cache(),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: rate cache: %w", op, err)
	}

	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	renderer := document.NewRenderer(cfg.Document.LogoPath, cfg.Document.CompanyName, log.With("component", "renderer"))
	policy := service.AccessPolicy{
		CorporateDomain: cfg.Auth.CorporateDomain,
		RootAdminEmail:  cfg.Auth.RootAdminEmail,
		BcryptCost:      cfg.Auth.BcryptCost,
		MinPasswordLen:  cfg.Auth.MinPasswordLen,
	}

	orders := service.NewOrderService(
		orderRepo,
		repository.NewItemRepository(db),
		repository.NewContactRepository(db),
		repository.NewAddressRepository(db),
		txManager,
		pending,
		validate,
		log.With("component", "order service"),
		metrics.Order(),
		orderCache,
		cfg.Cache.TTL,
	)

	return &services{
		orders: orders,
		exports: service.NewExportService(
			orders, orderRepo, txManager, renderer, store, assistant,
			log.With("component", "export service"), metrics.Document(),
		),
		acceptance: service.NewAcceptanceService(
			orders, orderRepo, repository.NewAcceptanceRepository(db), txManager, renderer, store, validate,
			log.With("component", "acceptance service"), metrics.Document(),
		),
		auth: service.NewAuthService(
			userRepo, repository.NewCredentialRepository(db), txManager, issuer, sessions, policy,
			log.With("component", "auth service"), metrics.Auth(),
		),
		users: service.NewUserService(userRepo, txManager, validate, policy, log.With("component", "user service")),
		lookup: service.NewLookupService(
			viacep.NewClient(cfg.Lookup.ViaCEPURL, cfg.Lookup.Timeout),
			fxrate.NewClient(cfg.Lookup.FXURL, cfg.Lookup.Timeout, rateCache, cfg.Lookup.FXCacheTTL,
				log.With("component", "fx client")),
			assistant,
		),
	}, nil
}

func initAssistant(ctx context.Context, cfg *config.Assist, log logger.Logger) (*assist.Assistant, error) {
	gemini, err := assist.NewGemini(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, err
	}

	var gen assist.Generator
	if gemini != nil {
		gen = gemini
	} else {
		log.Infow("assistant disabled, fixed texts will be used")
	}
	return assist.New(gen, cfg.Timeout, log.With("component", "assistant")), nil
}

// replayPending retries orders left in the local store by earlier outages.
func replayPending(ctx context.Context, orders *service.OrderService, log logger.Logger) {
	report, err := orders.ReplayPending(ctx)
	if err != nil {
		log.Errorw("replay pending orders", "error", err)
		return
	}
	if report.Replayed > 0 || report.Failed > 0 {
		log.Infow("pending orders replayed", "replayed", report.Replayed, "failed", report.Failed)
	}
}

func initHTTPServer(
	ctx context.Context,
	eg *errgroup.Group,
	cfg *config.Config,
	svc *services,
	log logger.Logger,
	metrics metric.Factory,
) {
	handler := httpt.NewHandler(httpt.Services{
		Orders:     svc.orders,
		Exports:    svc.exports,
		Acceptance: svc.acceptance,
		Auth:       svc.auth,
		Users:      svc.users,
		Lookup:     svc.lookup,
	}, log.With("component", "http"), metrics.HTTP(), cfg.HTTP.MaxBodyBytes)

	httpServer := httpt.NewServer("api", net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port), handler.Engine(),
		log.With("component", "http server"),
		httpt.ReadTimeouts(cfg.HTTP.ReadTimeout, cfg.HTTP.ReadHeaderTimeout),
		httpt.WriteTimeout(cfg.HTTP.WriteTimeout),
		httpt.IdleTimeout(cfg.HTTP.IdleTimeout),
		httpt.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
	)

	eg.Go(func() error {
		return httpServer.Start(ctx)
	})
}

func initKafkaComponents(
	ctx context.Context,
	eg *errgroup.Group,
	cfg *config.Config,
	orders *service.OrderService,
	log logger.Logger,
	metrics metric.Factory,
) error {
	kafkaReader, err := kafka.NewReader(ctx, kafka.ReaderConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	}, log.With("component", "kafka reader"))
	if err != nil {
		return fmt.Errorf("app.initKafkaComponents: kafka reader creation: %w", err)
	}

	dlqReader, err := kafka.NewReader(ctx, kafka.ReaderConfig{
		Brokers: cfg.DLQ.Brokers,
		Topic:   cfg.DLQ.Topic,
		GroupID: cfg.DLQ.GroupID,
	}, log.With("component", "dlq reader"))
	if err != nil {
		return fmt.Errorf("app.initKafkaComponents: dlq reader creation: %w", err)
	}

	deadLetterQueue, err := dlq.NewDLQ(
		cfg.DLQ,
		log.With("component", "dlq"),
		metrics.DLQ(),
		dlq.WithRetryPolicy(dlq.RetryPolicy{
			MaxAttempts: cfg.DLQ.MaxRetryCount,
			BaseDelay:   cfg.DLQ.RetryDelay,
			MaxDelay:    cfg.DLQ.MaxRetryDelay,
		}),
	)
	if err != nil {
		return fmt.Errorf("app.initKafkaComponents: dead letter queue creation: %w", err)
	}

	orderConsumer := kafkat.NewOrderConsumer(
		kafkaReader,
		deadLetterQueue,
		deadLetterQueue.Policy(),
		orders,
		metrics.Kafka(),
		log.With("component", "order consumer"),
	)
	eg.Go(func() error {
		return orderConsumer.Start(ctx)
	})

	dlqProcessor := kafkat.NewDLQProcessor(
		dlqReader,
		deadLetterQueue,
		orders,
		cfg.DLQ.MaxRetryCount,
		metrics.DLQ(),
		log.With("component", "dlq processor"),
	)
	eg.Go(func() error {
		defer closeQuietly(log, "dlq writer", deadLetterQueue.Close)
		return dlqProcessor.Start(ctx)
	})

	return nil
}

func waitForShutdown(eg *errgroup.Group) error {
	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("app.waitForShutdown: application failed: %w", err)
	}
	return nil
}
