package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/campusbites/campusbites-api/internal/model"
	"github.com/campusbites/campusbites-api/internal/repository"
)

type MenuService struct {
	repo *repository.MenuRepository
}

func NewMenuService(repo *repository.MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

// List fetches one page of menu items and the filtered total in parallel.
func (s *MenuService) List(ctx context.Context, category string, limit, offset int) ([]model.MenuItem, int, error) {
	g, gctx := errgroup.WithContext(ctx)

	var items []model.MenuItem
	var total int

	g.Go(func() error {
		var err error
		items, err = s.repo.List(gctx, category, limit, offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, category)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *MenuService) Get(ctx context.Context, id string) (*model.MenuItem, error) {
	return s.repo.FindByID(ctx, id)
}
