package telegram

import (
	"context"
	"fmt"

	"github.com/nilecare/advisory-backend/internal/config"
	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/nilecare/advisory-backend/internal/telegram/bot"
	"github.com/nilecare/advisory-backend/internal/telegram/handlers"
	"github.com/nilecare/advisory-backend/internal/telegram/state"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot wires the Telegram front-end to the advisory pipeline
func NewBot(
	cfg config.TelegramConfig,
	advisoryUC handlers.AdvisoryUsecase,
	validator handlers.RequestValidator,
	logger *zap.Logger,
) (Bot, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}

	logger = logger.With(zap.String("component", "telegram"))

	api, err := bot.NewAPI(cfg.BotToken, logger)
	if err != nil {
		return nil, err
	}

	prefs := state.NewManager(state.NewCacheStorage(cfg.PreferencesTTL), entity.LanguageCode(cfg.DefaultLang))
	handler := handlers.NewHandler(api, prefs, advisoryUC, validator, logger)

	logger.Info("telegram bot initialized")

	return bot.New(api, cfg, handler, logger), nil
}
