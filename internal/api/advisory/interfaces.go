package advisory

import (
	"context"

	"github.com/nilecare/advisory-backend/internal/entity"
)

type AdvisoryUsecase interface {
	Ask(ctx context.Context, req *entity.AskRequest) (*entity.AskResponse, error)
	Export(ctx context.Context, req *entity.AskRequest, format entity.ResultFormat) (*entity.ExportedAnswer, error)
}

type RequestValidator interface {
	ValidateAsk(req *entity.AskRequest) error
}
