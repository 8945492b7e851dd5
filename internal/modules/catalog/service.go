package catalog

import (
	"context"

	"salonagenda/internal/domain"
)

// Repository is the read side of the service catalog.
type Repository interface {
	ListActive(ctx context.Context) ([]domain.Service, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Service, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Service{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Service, error) {
	return s.repo.GetService(ctx, id)
}
