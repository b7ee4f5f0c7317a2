package eventtype

import (
	"context"
)

type Service interface {
	List(ctx context.Context) ([]EventType, error)
	Registry(ctx context.Context) (Registry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]EventType, error) {
	return s.repo.List(ctx)
}

func (s *service) Registry(ctx context.Context) (Registry, error) {
	types, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewRegistry(types), nil
}
