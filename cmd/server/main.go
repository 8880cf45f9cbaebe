package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/planner/api/handler"
	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/internal/config"
	"github.com/fastygo/planner/internal/i18n"
	"github.com/fastygo/planner/internal/infrastructure/buffer"
	"github.com/fastygo/planner/internal/infrastructure/monitor"
	"github.com/fastygo/planner/internal/infrastructure/objectstore"
	"github.com/fastygo/planner/internal/middleware"
	"github.com/fastygo/planner/internal/router"
	"github.com/fastygo/planner/internal/services"
	"github.com/fastygo/planner/internal/services/lifecycle"
	"github.com/fastygo/planner/pkg/httpcontext"
	"github.com/fastygo/planner/pkg/logger"
	"github.com/fastygo/planner/repository/memory"
	"github.com/fastygo/planner/usecase"
	attachmentUC "github.com/fastygo/planner/usecase/attachment"
	authUC "github.com/fastygo/planner/usecase/auth"
	dataUC "github.com/fastygo/planner/usecase/data"
	meetingUC "github.com/fastygo/planner/usecase/meeting"
	messageUC "github.com/fastygo/planner/usecase/message"
	prefsUC "github.com/fastygo/planner/usecase/preferences"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	catalog := i18n.MustLoad()

	notifier := usecase.NewNotifier(cfg.Notifier.History, zapLogger)
	notifier.Subscribe("audit_log", func(_ context.Context, change domain.Change) {
		zapLogger.Debug("store changed",
			zap.Int64("version", change.Version),
			zap.String("store", change.Store),
			zap.String("operation", change.Operation),
			zap.String("entity_id", change.EntityID))
	})

	storage, pinger, err := openLocalStorage(appCtx, cfg, manager, zapLogger)
	if err != nil {
		zapLogger.Fatal("local storage unavailable", zap.Error(err))
	}

	var bufferStore *buffer.Store
	if cfg.Storage.Remote() {
		bufferStore, err = buffer.Open(cfg.Buffer.Path, "buffer")
		if err != nil {
			zapLogger.Fatal("failed to open buffer store", zap.Error(err))
		}
		manager.Register("buffer", func(ctx context.Context) error {
			return bufferStore.Close()
		})
	}

	mon := monitor.New(cfg.Storage.Driver, pinger, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	authOpts := []authUC.Option{authUC.WithPublisher(notifier)}
	if bufferStore != nil {
		bufferProcessor := services.NewBufferProcessor(
			bufferStore,
			mon,
			storage,
			zapLogger,
			services.ProcessorConfig{
				Interval:   cfg.Buffer.SyncInterval,
				BatchSize:  50,
				MaxRetries: cfg.Buffer.MaxRetry,
				Retention:  time.Duration(cfg.Buffer.RetentionHours) * time.Hour,
			},
		)
		bufferProcessor.Start()
		manager.Register("buffer_processor", func(ctx context.Context) error {
			bufferProcessor.Stop(ctx)
			return bufferProcessor.Drain(ctx)
		})
		authOpts = append(authOpts, authUC.WithBuffer(services.NewBufferBridge(bufferProcessor)))
	}

	sessionStore := authUC.New(appCtx, storage, zapLogger.Named("session"), authOpts...)

	dataStore := dataUC.New(
		memory.NewTaskRepository(),
		memory.NewUserRepository(),
		memory.NewEventRepository(),
		zapLogger.Named("data"),
		dataUC.WithPublisher(notifier),
	)
	meetingStore := meetingUC.New(memory.NewMeetingRepository(), sessionStore, zapLogger.Named("meetings"), meetingUC.WithPublisher(notifier))
	messageStore := messageUC.New(memory.NewConversationRepository(), sessionStore, dataStore, zapLogger.Named("messages"), messageUC.WithPublisher(notifier))
	prefsStore := prefsUC.New(catalog, cfg.DefaultLanguage, zapLogger.Named("preferences"), prefsUC.WithPublisher(notifier))

	if cfg.SeedDemoData {
		if err := dataStore.SeedDemoData(appCtx); err != nil {
			zapLogger.Fatal("seeding demo data failed", zap.Error(err))
		}
		if err := meetingStore.SeedDemoData(appCtx); err != nil {
			zapLogger.Fatal("seeding demo meetings failed", zap.Error(err))
		}
		zapLogger.Info("demo data seeded")
	}

	var presigner attachmentUC.Presigner
	if cfg.S3.Enabled() {
		p, err := objectstore.NewPresigner(appCtx, cfg.S3, zapLogger)
		if err != nil {
			zapLogger.Warn("attachment uploads disabled", zap.Error(err))
		} else {
			presigner = p
		}
	}
	attachmentService := attachmentUC.New(presigner, dataStore, meetingStore, zapLogger.Named("attachments"))

	jwtSecret := cfg.JWT.Secret
	if jwtSecret == "" {
		jwtSecret = uuid.NewString()
		zapLogger.Warn("JWT_SECRET not set; tokens will not survive a restart")
	}
	tokens := middleware.NewTokens(jwtSecret, cfg.JWT.Issuer, cfg.JWT.TTL)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout, func(accept string) string {
		if accept == "" {
			return ""
		}
		return catalog.Negotiate(accept, prefsStore.Language())
	})
	localizer := &apiHandler.Localizer{Catalog: catalog, Preferences: prefsStore}

	handlers := router.Handlers{
		Auth:        apiHandler.NewAuthHandler(sessionStore, tokens, ctxAdapter, localizer, zapLogger),
		Task:        apiHandler.NewTaskHandler(dataStore, ctxAdapter, localizer, zapLogger),
		User:        apiHandler.NewUserHandler(dataStore, sessionStore, ctxAdapter, localizer, zapLogger),
		Event:       apiHandler.NewEventHandler(dataStore, ctxAdapter, localizer, zapLogger),
		Meeting:     apiHandler.NewMeetingHandler(meetingStore, ctxAdapter, localizer, zapLogger),
		Message:     apiHandler.NewMessageHandler(messageStore, ctxAdapter, localizer, zapLogger),
		Attachment:  apiHandler.NewAttachmentHandler(attachmentService, ctxAdapter, localizer, zapLogger),
		Preferences: apiHandler.NewPreferencesHandler(prefsStore, ctxAdapter, localizer, zapLogger),
		Changes:     apiHandler.NewChangesHandler(notifier, ctxAdapter, localizer, zapLogger),
		Health:      apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(tokens, sessionStore, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:            r.Handler,
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		Concurrency:        cfg.HTTP.MaxConn,
		MaxRequestBodySize: cfg.HTTP.MaxBodySize,
		Name:               cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("storage", cfg.Storage.Driver),
			zap.Bool("uploads", presigner != nil))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
