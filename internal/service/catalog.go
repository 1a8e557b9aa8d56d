package service

import (
	"context"
	"fmt"
	"time"

	"campus-commerce/internal/model"
	"campus-commerce/internal/repository"

	"github.com/google/uuid"
)

type CatalogService interface {
	// ListActive returns the catalogs currently purchasable by the
	// school, applying the visibility rules per catalog at read time.
	ListActive(ctx context.Context, schoolID string, now time.Time) ([]*model.Catalog, error)
	Save(ctx context.Context, catalog *model.Catalog) (string, error)
}

type catalogServiceImpl struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogServiceImpl{
		catalogRepo: catalogRepo,
	}
}

func (s *catalogServiceImpl) ListActive(ctx context.Context, schoolID string, now time.Time) ([]*model.Catalog, error) {
	catalogs, err := s.catalogRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}

	active := make([]*model.Catalog, 0, len(catalogs))
	for _, catalog := range catalogs {
		if CatalogVisible(catalog, schoolID, now) {
			active = append(active, catalog)
		}
	}

	return active, nil
}

func (s *catalogServiceImpl) Save(ctx context.Context, catalog *model.Catalog) (string, error) {
	if err := ValidateCatalogWindow(catalog); err != nil {
		return "", err
	}

	if catalog.ID == "" {
		catalog.ID = uuid.NewString()
	}
	if err := s.catalogRepo.Upsert(ctx, catalog); err != nil {
		return "", fmt.Errorf("save catalog: %w", err)
	}

	return catalog.ID, nil
}
