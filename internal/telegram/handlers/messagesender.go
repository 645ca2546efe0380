package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nilecare/advisory-backend/internal/telegram/render"
	"go.uber.org/zap"
)

// MessageSender sends text messages, splitting those over Telegram's size limit
type MessageSender struct {
	bot    BotAPI
	logger *zap.Logger
}

func NewMessageSender(bot BotAPI, logger *zap.Logger) *MessageSender {
	return &MessageSender{
		bot:    bot,
		logger: logger,
	}
}

// Send sends text to the chat. The markup is attached to the last part only.
func (s *MessageSender) Send(chatID int64, text string, markup any) error {
	parts := render.SplitMessage(text, render.MaxMessageLength)
	for i, part := range parts {
		msg := tgbotapi.NewMessage(chatID, part)
		if markup != nil && i == len(parts)-1 {
			msg.ReplyMarkup = markup
		}

		if _, err := s.bot.Send(msg); err != nil {
			s.logger.Error("failed to send message",
				zap.Error(err),
				zap.Int64("chat_id", chatID),
				zap.Int("part", i+1),
				zap.Int("parts", len(parts)),
			)
			return err
		}
	}
	return nil
}

// AnswerCallback acknowledges a callback query so the client stops its spinner
func (s *MessageSender) AnswerCallback(callbackID, text string) {
	if _, err := s.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		s.logger.Warn("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}
