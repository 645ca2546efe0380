package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/nilecare/advisory-backend/internal/entity"
	"github.com/nilecare/advisory-backend/internal/pkg/logger"
	"github.com/nilecare/advisory-backend/internal/telegram/keyboard"
	"github.com/nilecare/advisory-backend/internal/telegram/render"
	"github.com/nilecare/advisory-backend/internal/telegram/state"
	"go.uber.org/zap"
)

// Handler turns Telegram messages into advisory questions
type Handler struct {
	bot       BotAPI
	sender    *MessageSender
	prefs     *state.Manager
	advisory  AdvisoryUsecase
	validator RequestValidator
	keyboard  *keyboard.Builder
	logger    *zap.Logger
}

func NewHandler(
	bot BotAPI,
	prefs *state.Manager,
	advisory AdvisoryUsecase,
	validator RequestValidator,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:       bot,
		sender:    NewMessageSender(bot, logger),
		prefs:     prefs,
		advisory:  advisory,
		validator: validator,
		keyboard:  keyboard.NewBuilder(),
		logger:    logger,
	}
}

// HandleMessage routes commands, shared locations and questions
func (h *Handler) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	ctx = logger.AddFields(ctx,
		zap.Int64("user_id", msg.From.ID),
		zap.Int64("chat_id", msg.Chat.ID),
	)

	switch {
	case msg.IsCommand():
		h.handleCommand(ctx, msg)
	case msg.Location != nil:
		h.handleLocation(ctx, msg)
	case strings.TrimSpace(msg.Text) != "":
		h.handleQuestion(ctx, msg)
	default:
		h.reply(ctx, msg.Chat.ID, render.MsgTextOnly, nil)
	}
}

// HandleCallback processes inline keyboard presses
func (h *Handler) HandleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		h.sender.AnswerCallback(query.ID, "")
		return
	}

	chatID := query.Message.Chat.ID
	ctx = logger.AddFields(ctx,
		zap.Int64("user_id", query.From.ID),
		zap.Int64("chat_id", chatID),
	)

	cb, err := keyboard.ParseCallback(query.Data)
	if err != nil {
		ctxzap.Warn(ctx, "invalid callback data", zap.String("data", query.Data), zap.Error(err))
		h.sender.AnswerCallback(query.ID, "❌")
		return
	}

	switch cb.Action {
	case keyboard.ActionLanguage:
		lang := entity.LanguageCode(cb.Value)
		if !lang.IsValid() {
			h.sender.AnswerCallback(query.ID, "❌")
			return
		}
		h.prefs.SetLanguage(ctx, query.From.ID, lang)
		h.sender.AnswerCallback(query.ID, "✅")
		h.reply(ctx, chatID, render.RenderLanguageSet(lang), nil)
	case keyboard.ActionLocation:
		h.prefs.ClearLocation(ctx, query.From.ID)
		h.sender.AnswerCallback(query.ID, "✅")
		h.reply(ctx, chatID, render.MsgLocationCleared, h.keyboard.LocationKeyboard())
	default:
		h.sender.AnswerCallback(query.ID, "❌")
	}
}

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	command := msg.Command()
	ctxzap.Info(ctx, "command received", zap.String("command", command))

	switch command {
	case "start":
		h.reply(ctx, msg.Chat.ID, render.MsgWelcome, h.keyboard.LocationKeyboard())
	case "help":
		h.reply(ctx, msg.Chat.ID, render.MsgHelp, nil)
	case "lang":
		h.handleLanguageCommand(ctx, msg)
	case "forget":
		prefs := h.prefs.Get(ctx, msg.From.ID)
		if !prefs.HasLocation() {
			h.reply(ctx, msg.Chat.ID, render.MsgNoLocation, nil)
			return
		}
		h.prefs.ClearLocation(ctx, msg.From.ID)
		h.reply(ctx, msg.Chat.ID, render.MsgLocationCleared, h.keyboard.LocationKeyboard())
	default:
		h.reply(ctx, msg.Chat.ID, render.ErrUnknownCommand, nil)
	}
}

func (h *Handler) handleLanguageCommand(ctx context.Context, msg *tgbotapi.Message) {
	arg := strings.ToLower(strings.TrimSpace(msg.CommandArguments()))
	if arg == "" {
		h.reply(ctx, msg.Chat.ID, render.MsgChooseLanguage, h.keyboard.LanguageKeyboard())
		return
	}

	lang := entity.LanguageCode(arg)
	if !lang.IsValid() {
		h.reply(ctx, msg.Chat.ID, render.RenderUnknownLanguage(arg), h.keyboard.LanguageKeyboard())
		return
	}

	h.prefs.SetLanguage(ctx, msg.From.ID, lang)
	h.reply(ctx, msg.Chat.ID, render.RenderLanguageSet(lang), nil)
}

func (h *Handler) handleLocation(ctx context.Context, msg *tgbotapi.Message) {
	h.prefs.SetLocation(ctx, msg.From.ID, msg.Location.Latitude, msg.Location.Longitude)
	ctxzap.Info(ctx, "location stored")
	h.reply(ctx, msg.Chat.ID, render.MsgLocationSaved, h.keyboard.ForgetLocationKeyboard())
}

func (h *Handler) handleQuestion(ctx context.Context, msg *tgbotapi.Message) {
	prefs := h.prefs.Get(ctx, msg.From.ID)

	req := &entity.AskRequest{
		Question:  strings.TrimSpace(msg.Text),
		Lang:      prefs.Lang,
		Latitude:  prefs.Latitude,
		Longitude: prefs.Longitude,
	}
	if err := h.validator.ValidateAsk(req); err != nil {
		ctxzap.Info(ctx, "question rejected", zap.Error(err))
		h.reply(ctx, msg.Chat.ID, render.RenderError(err), nil)
		return
	}

	typing := NewTypingNotifier(h.bot, msg.Chat.ID, h.logger)
	typing.Start(ctx)
	resp, err := h.advisory.Ask(ctx, req)
	typing.Stop()

	if err != nil {
		ctxzap.Error(ctx, "advisory request failed", zap.String("kind", string(entity.KindOf(err))), zap.Error(err))
		h.reply(ctx, msg.Chat.ID, render.RenderError(err), nil)
		return
	}

	h.reply(ctx, msg.Chat.ID, render.RenderAnswer(resp), nil)
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string, markup any) {
	if err := h.sender.Send(chatID, text, markup); err != nil {
		ctxzap.Error(ctx, "failed to reply", zap.Error(err))
	}
}
