package catalog

import (
	"context"

	"errorfree/internal/domain"
)

type ServiceRepository interface {
	ListActive(ctx context.Context) ([]domain.Service, error)
	GetByID(ctx context.Context, id string) (*domain.Service, error)
}
