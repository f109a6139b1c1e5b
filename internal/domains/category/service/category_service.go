package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"academy-backend/internal/domains/category"
	"academy-backend/pkg/cache"
	"academy-backend/pkg/logger"
)

type categoryServiceImpl struct {
	repository category.CategoryRepository
	cache      cache.Cache
	listTTL    time.Duration
}

func NewCategoryService(repo category.CategoryRepository, c cache.Cache, listTTL time.Duration) category.CategoryService {
	return &categoryServiceImpl{
		repository: repo,
		cache:      c,
		listTTL:    listTTL,
	}
}

func (s *categoryServiceImpl) Create(ctx context.Context, name string, description *string) (*category.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, category.ErrInvalidName
	}

	created, err := s.repository.Create(ctx, &category.Category{Name: name, Description: description})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	if err := s.cache.Delete(ctx, category.ListCacheKey()); err != nil {
		logger.Warn("Failed to invalidate category list cache", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return created, nil
}

func (s *categoryServiceImpl) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *categoryServiceImpl) List(ctx context.Context) (*category.CategoryListResp, error) {
	categories, err := cache.GetOrCompute(ctx, s.cache, category.ListCacheKey(), s.listTTL,
		func(ctx context.Context) ([]category.Category, error) {
			return s.repository.List(ctx)
		})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return &category.CategoryListResp{
		Categories: categories,
		Total:      len(categories),
	}, nil
}

func (s *categoryServiceImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repository.Exists(ctx, id)
}
