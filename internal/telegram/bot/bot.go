package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/nilecare/advisory-backend/internal/config"
	"github.com/nilecare/advisory-backend/internal/telegram/middleware"
	"go.uber.org/zap"
)

// UpdateHandler handles routed updates
type UpdateHandler interface {
	HandleMessage(ctx context.Context, msg *tgbotapi.Message)
	HandleCallback(ctx context.Context, query *tgbotapi.CallbackQuery)
}

// Bot long-polls Telegram and dispatches updates through the middleware chain
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         config.TelegramConfig
	handler     UpdateHandler
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// NewAPI authorizes the bot token
func NewAPI(token string, logger *zap.Logger) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return api, nil
}

func New(api *tgbotapi.BotAPI, cfg config.TelegramConfig, handler UpdateHandler, logger *zap.Logger) *Bot {
	return &Bot{
		api:         api,
		cfg:         cfg,
		handler:     handler,
		logger:      logger,
		loggingMW:   middleware.NewLoggingMiddleware(logger),
		recoveryMW:  middleware.NewRecoveryMiddleware(logger, api),
		rateLimitMW: middleware.NewRateLimiterMiddleware(cfg.RateLimitPerMinute, cfg.RateLimitBurst, api, logger),
		stopChan:    make(chan struct{}),
	}
}

// Start begins receiving updates; it returns immediately
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	b.updatesChan = b.api.GetUpdatesChan(u)

	go b.processUpdates(ctxzap.ToContext(ctx, b.logger))

	b.logger.Info("telegram bot started")
	return nil
}

// Stop stops polling and waits for in-flight updates up to the shutdown timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	b.stopOnce.Do(func() {
		close(b.stopChan)
		b.api.StopReceivingUpdates()
	})

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("telegram bot stopped")
		return nil
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some updates may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}
}

func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				return
			}
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.dispatch(ctx, u)
			}(update)
		}
	}
}

// dispatch runs rate limit, logging and recovery before the handler
func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u tgbotapi.Update) {
			b.recoveryMW.Handle(u, func(u tgbotapi.Update) {
				b.route(ctx, u)
			})
		})
	})
}

func (b *Bot) route(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handler.HandleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handler.HandleMessage(ctx, update.Message)
	}
}
