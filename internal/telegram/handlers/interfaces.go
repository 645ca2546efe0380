package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nilecare/advisory-backend/internal/entity"
)

type AdvisoryUsecase interface {
	Ask(ctx context.Context, req *entity.AskRequest) (*entity.AskResponse, error)
}

type RequestValidator interface {
	ValidateAsk(req *entity.AskRequest) error
}

// BotAPI is the subset of *tgbotapi.BotAPI used by the handlers
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}
