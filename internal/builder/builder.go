package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/flowcraft-backend/internal/api"
	sessionapi "github.com/futig/flowcraft-backend/internal/api/session"
	"github.com/futig/flowcraft-backend/internal/config"
	"github.com/futig/flowcraft-backend/internal/integration/llm"
	"github.com/futig/flowcraft-backend/internal/pkg/formatter"
	"github.com/futig/flowcraft-backend/internal/pkg/logger"
	"github.com/futig/flowcraft-backend/internal/repository"
	"github.com/futig/flowcraft-backend/internal/usecase/session"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	handler, err := BuildHandler(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      handler,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	log.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: log,
	}, nil
}

// BuildHandler wires storage, the generation connector and the use case into the HTTP router.
func BuildHandler(ctx context.Context, cfg *config.Config, log *zap.Logger) (http.Handler, error) {
	sessionRepo, err := setupSessionRepository(cfg.StorageCfg, log)
	if err != nil {
		return nil, fmt.Errorf("setup session storage: %w", err)
	}

	var llmConnector session.LLMConnector
	if cfg.EnableMocks {
		log.Info("Using mock connector for the generation service")
		llmConnector = llm.NewMockConnector(log)
	} else {
		log.Info("Using real connector for the generation service",
			zap.String("provider", cfg.LLMConnectorCfg.Provider),
			zap.String("model", cfg.LLMConnectorCfg.Model),
		)
		llmConnector, err = llm.NewConnector(ctx, cfg.LLMConnectorCfg, log)
		if err != nil {
			return nil, fmt.Errorf("setup llm connector: %w", err)
		}
	}

	if err := formatter.SetupDOCXLicense(cfg.DOCXLicenseKey); err != nil {
		log.Warn("DOCX export unavailable", zap.Error(err))
	}

	sessionUC := session.NewUsecase(sessionRepo, llmConnector, log)
	log.Info("Use cases initialized")

	sessionHandler := sessionapi.NewHandler(sessionUC)

	router := api.SetupRouter(api.RouterConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
	}, sessionHandler, log)
	log.Info("HTTP router configured")

	return router, nil
}

func setupSessionRepository(cfg config.StorageConfig, log *zap.Logger) (repository.SessionRepository, error) {
	switch cfg.Driver {
	case config.StorageDriverMemory:
		log.Info("Using in-memory session storage")
		return repository.NewSessionMemory(), nil
	case config.StorageDriverFile:
		repo, err := repository.NewSessionFile(cfg.Dir)
		if err != nil {
			return nil, err
		}
		log.Info("Using file session storage", zap.String("dir", cfg.Dir))
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
