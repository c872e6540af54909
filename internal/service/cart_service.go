package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campusbites/campusbites-api/internal/model"
	"github.com/campusbites/campusbites-api/internal/repository"
)

type CartService struct {
	cartRepo *repository.CartRepository
	menuRepo *repository.MenuRepository
}

func NewCartService(cartRepo *repository.CartRepository, menuRepo *repository.MenuRepository) *CartService {
	return &CartService{cartRepo: cartRepo, menuRepo: menuRepo}
}

func (s *CartService) AddItem(ctx context.Context, userID, menuItemID string, quantity int) error {
	item, err := s.menuRepo.FindByID(ctx, menuItemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &validationErr{field: "menu_item_id", message: fmt.Sprintf("menu item '%s' not found", menuItemID)}
		}
		return fmt.Errorf("look up menu item: %w", err)
	}
	if !item.Available {
		return ErrItemUnavailable
	}

	return s.cartRepo.Upsert(ctx, userID, menuItemID, quantity)
}

// SetQuantity updates a cart line; quantity 0 removes it.
func (s *CartService) SetQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	if quantity == 0 {
		_, err := s.cartRepo.Delete(ctx, userID, itemID)
		return err
	}

	affected, err := s.cartRepo.SetQuantity(ctx, userID, itemID, quantity)
	if err != nil {
		return err
	}
	if affected == 0 {
		return &validationErr{field: "item_id", message: "cart item not found"}
	}
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) error {
	affected, err := s.cartRepo.Delete(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return &validationErr{field: "item_id", message: "cart item not found"}
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.cartRepo.Clear(ctx, userID)
}

// Get returns the cart lines and their subtotal at current menu prices.
func (s *CartService) Get(ctx context.Context, userID string) ([]model.CartLine, float64, error) {
	lines, err := s.cartRepo.Lines(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	var subtotal float64
	for _, l := range lines {
		subtotal += l.LineTotal
	}
	return lines, subtotal, nil
}
