package service

import (
	"context"

	"github.com/campusbites/campusbites-api/internal/model"
	"github.com/campusbites/campusbites-api/internal/repository"
)

type OrderService struct {
	repo *repository.OrderRepository
}

func NewOrderService(repo *repository.OrderRepository) *OrderService {
	return &OrderService{repo: repo}
}

func (s *OrderService) List(ctx context.Context, userID string, limit, offset int) ([]model.Order, int, error) {
	orders, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *OrderService) Get(ctx context.Context, userID, orderID string) (*model.Order, error) {
	return s.repo.FindByID(ctx, userID, orderID)
}
