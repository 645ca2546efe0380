package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nilecare/advisory-backend/internal/api"
	advisoryapi "github.com/nilecare/advisory-backend/internal/api/advisory"
	authapi "github.com/nilecare/advisory-backend/internal/api/auth"
	documentapi "github.com/nilecare/advisory-backend/internal/api/document"
	"github.com/nilecare/advisory-backend/internal/api/system"
	"github.com/nilecare/advisory-backend/internal/config"
	"github.com/nilecare/advisory-backend/internal/integration/openai"
	"github.com/nilecare/advisory-backend/internal/integration/translate"
	"github.com/nilecare/advisory-backend/internal/integration/weather"
	"github.com/nilecare/advisory-backend/internal/pkg/formatter"
	pkglogger "github.com/nilecare/advisory-backend/internal/pkg/logger"
	"github.com/nilecare/advisory-backend/internal/pkg/textract"
	"github.com/nilecare/advisory-backend/internal/pkg/validator"
	"github.com/nilecare/advisory-backend/internal/repository"
	"github.com/nilecare/advisory-backend/internal/telegram"
	"github.com/nilecare/advisory-backend/internal/usecase/advisory"
	"github.com/nilecare/advisory-backend/internal/usecase/auth"
	"github.com/nilecare/advisory-backend/internal/usecase/document"
	"go.uber.org/zap"
)

// core holds what every binary needs: config, logger, database and the advisory pipeline
type core struct {
	cfg        *config.Config
	logger     *zap.Logger
	db         *pgxpool.Pool
	documents  *repository.DocumentPostgres
	users      *repository.UserPostgres
	llm        advisory.LLMConnector
	validator  *validator.Validator
	advisoryUC *advisory.AdvisoryUsecase
}

func buildCore(ctx context.Context) (*core, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := pkglogger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("building application",
		zap.String("environment", cfg.Environment),
		zap.Bool("mocks", cfg.EnableMocks),
	)

	if err := textract.SetLicenseKey(cfg.FileUploadCfg.UniDocLicenseKey); err != nil {
		logger.Warn(".docx uploads will fail without a valid unioffice license", zap.Error(err))
	}

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	documents := repository.NewDocumentPostgres(db)
	users := repository.NewUserPostgres(db)

	var (
		translator    advisory.Translator
		llmConnector  advisory.LLMConnector
		weatherClient advisory.WeatherConnector
	)
	if cfg.EnableMocks {
		logger.Info("using mock connectors for external services")
		translator = translate.NewMockConnector(logger)
		llmConnector = openai.NewMockConnector(cfg.AdvisoryCfg.EmbedDim, logger)
		weatherClient = weather.NewMockConnector(logger)
	} else {
		logger.Info("using real connectors for external services")
		translator = translate.NewConnector(cfg.TranslateCfg, logger)
		llmConnector = openai.NewConnector(cfg.OpenAICfg, logger)
		weatherClient = weather.NewConnector(cfg.WeatherCfg, logger)
	}

	advisoryUC := advisory.NewUsecase(
		cfg.AdvisoryCfg,
		translator,
		llmConnector,
		weatherClient,
		documents,
		formatter.NewFactory(),
		logger,
	)

	return &core{
		cfg:        cfg,
		logger:     logger,
		db:         db,
		documents:  documents,
		users:      users,
		llm:        llmConnector,
		validator:  validator.New(cfg.FileUploadCfg),
		advisoryUC: advisoryUC,
	}, nil
}

// Build assembles the HTTP API and the ingestion worker
func Build() (*App, error) {
	c, err := buildCore(context.Background())
	if err != nil {
		return nil, err
	}

	authUC := auth.NewUsecase(c.cfg.AuthCfg, c.users, c.logger)
	documentUC := document.NewUsecase(c.cfg.FileUploadCfg, c.documents, c.validator, c.logger)
	ingestor := document.NewIngestor(c.cfg.IngestCfg, c.cfg.AdvisoryCfg.EmbedDim, c.documents, c.llm, c.logger)

	router := api.SetupRouter(api.Handlers{
		System:   system.NewHandler(c.documents),
		Advisory: advisoryapi.NewHandler(c.advisoryUC, c.validator),
		Auth:     authapi.NewHandler(authUC),
		Document: documentapi.NewHandler(documentUC, c.cfg.FileUploadCfg),
	}, authUC, c.cfg.CORSCfg, c.logger)

	server := &http.Server{
		Addr:         c.cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	c.logger.Info("application built", zap.String("server_addr", c.cfg.ServerAddr))

	return &App{
		server:   server,
		ingestor: ingestor,
		db:       c.db,
		logger:   c.logger,
	}, nil
}

// BuildTelegramBot creates the Telegram front-end over the same pipeline.
// The returned cleanup closes the database pool.
func BuildTelegramBot() (telegram.Bot, *zap.Logger, func(), error) {
	c, err := buildCore(context.Background())
	if err != nil {
		return nil, nil, nil, err
	}

	bot, err := telegram.NewBot(c.cfg.TelegramCfg, c.advisoryUC, c.validator, c.logger)
	if err != nil {
		c.db.Close()
		return nil, nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	return bot, c.logger, c.db.Close, nil
}

// BuildUserAdmin returns the auth usecase for provisioning users from the CLI
func BuildUserAdmin() (*auth.AuthUsecase, *zap.Logger, func(), error) {
	c, err := buildCore(context.Background())
	if err != nil {
		return nil, nil, nil, err
	}

	return auth.NewUsecase(c.cfg.AuthCfg, c.users, c.logger), c.logger, c.db.Close, nil
}
