package category

import (
	"context"
	"strings"

	"github.com/sampledev-eng/freshcart-express-backend/internal/servererrors"
)

type storer interface {
	createOne(ctx context.Context, name string) (*Category, error)
	findByName(ctx context.Context, name string) (*Category, error)
	findAll(ctx context.Context) ([]*Category, error)
}

type service struct {
	store storer
}

func NewService(store storer) *service {
	return &service{
		store: store,
	}
}

func (s *service) createCategory(ctx context.Context, newCategory *CreateCategoryRequest) (*Category, error) {
	newCategory.Name = strings.TrimSpace(newCategory.Name)

	existing, err := s.store.findByName(ctx, newCategory.Name)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, servererrors.ErrCategoryAlreadyExists
	}

	return s.store.createOne(ctx, newCategory.Name)
}

func (s *service) getAllCategories(ctx context.Context) ([]*Category, error) {
	return s.store.findAll(ctx)
}
