package documents

import (
	"context"

	"docvault/internal/domain"
)

// DocumentRepositoryInterface is the metadata store used by the pipelines
type DocumentRepositoryInterface interface {
	Create(ctx context.Context, d *domain.Document) error
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	List(ctx context.Context, category string) ([]*domain.Document, error)
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}
