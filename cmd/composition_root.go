package cmd

import (
	"context"
	"errors"
	"fmt"

	"bookstore/api"
	httpadapter "bookstore/internal/adapters/in/http"
	"bookstore/internal/adapters/out/conversationlog"
	"bookstore/internal/adapters/out/metrics"
	"bookstore/internal/adapters/out/nats/turnpublisher"
	"bookstore/internal/adapters/out/nlu/gemini"
	"bookstore/internal/adapters/out/nlu/rules"
	"bookstore/internal/adapters/out/postgres"
	"bookstore/internal/adapters/out/postgres/bookrepo"
	"bookstore/internal/adapters/out/postgres/conversationrepo"
	"bookstore/internal/adapters/out/postgres/sessionrepo"
	redissessions "bookstore/internal/adapters/out/redis/sessionrepo"
	"bookstore/internal/core/application/dispatcher"
	"bookstore/internal/core/application/orderflow"
	"bookstore/internal/core/application/sessionstore"
	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/ports"
	"bookstore/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const redisKeyPrefix = "bookstore:"

type CompositionRoot struct {
	cfg    Config
	logger *zap.Logger

	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	books      ports.CatalogRepository
	metrics    *metrics.DialogMetrics

	sessions *sessionstore.Store
	recorder *conversationlog.Recorder
	history  httpadapter.HistoryReader
	analyzer ports.Analyzer

	closers []func(ctx context.Context) error
}

// NewCompositionRoot connects the configured session backend, conversation
// sink and language understanding provider. Close releases them.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		books:      bookrepo.NewGormBookRepository(gormDB),
		metrics:    metrics.NewDialogMetrics(),
	}

	steps := []func(context.Context) error{
		c.initSessions,
		c.initConversationLog,
		c.initAnalyzer,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return nil, errors.Join(err, c.Close(ctx))
		}
	}
	return c, nil
}

func (c *CompositionRoot) initSessions(ctx context.Context) error {
	var repo ports.SessionRepository
	switch c.cfg.SessionBackend {
	case SessionBackendRedis:
		opt, err := redis.ParseURL(c.cfg.RedisURL)
		if err != nil {
			c.logger.Warn("failed to parse REDIS_URL, using it as address", zap.Error(err))
			opt = &redis.Options{Addr: c.cfg.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if err = rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return fmt.Errorf("connect redis: %w", err)
		}
		c.closers = append(c.closers, func(context.Context) error { return rdb.Close() })
		repo = redissessions.NewRedisSessionRepository(rdb, redisKeyPrefix, c.cfg.SessionIdleTTL)
	default:
		repo = sessionrepo.NewGormSessionRepository(c.gormDB)
	}

	c.sessions = sessionstore.New(repo, c.cfg.SessionCacheTTL, c.logger)
	c.logger.Info("session store ready", zap.String("backend", c.cfg.SessionBackend))
	return nil
}

func (c *CompositionRoot) initConversationLog(_ context.Context) error {
	var sink ports.ConversationLog
	switch c.cfg.ConversationSink {
	case SinkNATS:
		publisher, err := turnpublisher.NewPublisher(c.cfg.NATSURL, c.logger)
		if err != nil {
			return fmt.Errorf("connect nats: %w", err)
		}
		c.closers = append(c.closers, func(context.Context) error {
			publisher.Close()
			return nil
		})
		sink = publisher
	case SinkFile:
		fileLog := conversationlog.NewFileLog(c.cfg.ConversationLogPath)
		c.closers = append(c.closers, func(context.Context) error { return fileLog.Sync() })
		sink = fileLog
	default:
		gormLog := conversationrepo.NewGormConversationLog(c.gormDB)
		c.history = gormLog
		sink = gormLog
	}

	// Registered after the sink so Close flushes the queue before the sink goes away.
	c.recorder = conversationlog.NewRecorder(sink, c.cfg.ConversationBuffer, c.logger)
	c.closers = append(c.closers, c.recorder.Close)
	c.logger.Info("conversation log ready", zap.String("sink", c.cfg.ConversationSink))
	return nil
}

func (c *CompositionRoot) initAnalyzer(ctx context.Context) error {
	var extractor ports.EntityExtractor = rules.NewExtractor(c.books)

	if c.cfg.NLUProvider == NLUProviderGemini {
		model, err := gemini.NewExtractor(ctx, c.cfg.GeminiAPIKey, c.cfg.GeminiModel, extractor, c.logger)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, func(context.Context) error { return model.Close() })
		extractor = model
	}

	c.analyzer = rules.NewAnalyzer(rules.NewClassifier(c.cfg.NLUThreshold), extractor, c.logger)
	c.logger.Info("language understanding ready", zap.String("provider", c.cfg.NLUProvider))
	return nil
}

// Close releases resources in reverse order of acquisition.
func (c *CompositionRoot) Close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() *commands.PlaceOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	handler := commands.NewPlaceOrderCommandHandler(f)
	return &handler
}

func (c *CompositionRoot) CreateOrderFlowMachine() *orderflow.Machine {
	return orderflow.NewMachine(c.sessions, c.books, c.CreatePlaceOrderCommandHandler(), c.metrics, c.logger)
}

func (c *CompositionRoot) CreateDispatcher() *dispatcher.Dispatcher {
	return dispatcher.New(dispatcher.Config{
		Analyzer: c.analyzer,
		Sessions: c.sessions,
		Machine:  c.CreateOrderFlowMachine(),
		Books:    c.books,
		Notifier: c.recorder,
		Metrics:  c.metrics,
		Logger:   c.logger,
	})
}

func (c *CompositionRoot) CreateListBooksQueryHandler() queries.ListBooksQueryHandler {
	return queries.NewListBooksQueryHandler(c.books)
}

func (c *CompositionRoot) CreateGetBookQueryHandler() queries.GetBookQueryHandler {
	return queries.NewGetBookQueryHandler(c.books)
}

func (c *CompositionRoot) CreateSearchBooksQueryHandler() queries.SearchBooksQueryHandler {
	return queries.NewSearchBooksQueryHandler(c.books)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the echo instance serving the API, metrics and
// the OpenAPI document.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	doc, err := api.Load()
	if err != nil {
		return nil, err
	}
	if err = api.RegisterSwagger(doc); err != nil {
		return nil, err
	}

	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return nil, err
	}

	chat := c.CreateDispatcher()
	server := httpadapter.NewServer(httpadapter.Handlers{
		Chat:        chat,
		Sessions:    chat,
		ListBooks:   c.CreateListBooksQueryHandler(),
		GetBook:     c.CreateGetBookQueryHandler(),
		SearchBooks: c.CreateSearchBooksQueryHandler(),
		GetOrder:    c.CreateGetOrderQueryHandler(),
		History:     c.history,
		DB:          sqlDB,
	}, c.logger)

	return httpadapter.NewRouter(server, httpadapter.RouterOptions{
		Metrics:      c.metrics.Handler(),
		OpenAPI:      doc,
		AllowOrigins: c.cfg.CORSAllowOrigins,
	}, c.logger), nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewSessionExpiryJob(c.sessions, c.metrics, c.cfg.SessionIdleTTL, c.cfg.SessionSweepSpec, c.logger),
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
