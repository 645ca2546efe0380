package document

import (
	"context"

	"github.com/nilecare/advisory-backend/internal/entity"
)

type DocumentUsecase interface {
	Upload(ctx context.Context, req *entity.UploadRequest) (*entity.UploadResponse, error)
	List(ctx context.Context) ([]entity.DocumentSummary, error)
}
