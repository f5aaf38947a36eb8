package catalog

import (
	"context"
	"errors"

	"errorfree/internal/repository"
)

var ErrNotFound = errors.New("service not found")

type Service struct {
	services ServiceRepository
	currency string
}

func NewService(services ServiceRepository, currency string) *Service {
	return &Service{services: services, currency: currency}
}

func (s *Service) ListServices(ctx context.Context) ([]ServiceResponse, error) {
	rows, err := s.services.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ServiceResponse, 0, len(rows))
	for _, svc := range rows {
		out = append(out, toServiceResponse(svc, s.currency))
	}
	return out, nil
}

func (s *Service) GetService(ctx context.Context, id string) (*ServiceResponse, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	resp := toServiceResponse(*svc, s.currency)
	return &resp, nil
}
