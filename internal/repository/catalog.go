package repository

import (
	"context"
	"time"

	"campus-commerce/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CatalogRepository interface {
	Upsert(ctx context.Context, catalog *model.Catalog) error
	Get(ctx context.Context, catalogID string) (*model.Catalog, error)
	ListAll(ctx context.Context) ([]*model.Catalog, error)
}

type catalogRepoImpl struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepoImpl{
		db: db,
	}
}

func (r *catalogRepoImpl) Upsert(ctx context.Context, catalog *model.Catalog) error {
	catalog.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		UpdateAll: true,
	}).Create(&catalog).Error
}

func (r *catalogRepoImpl) Get(ctx context.Context, catalogID string) (*model.Catalog, error) {
	var catalog model.Catalog
	err := r.db.WithContext(ctx).
		Where("id = ?", catalogID).
		First(&catalog).Error

	if err != nil {
		return nil, err
	}

	return &catalog, nil
}

func (r *catalogRepoImpl) ListAll(ctx context.Context) ([]*model.Catalog, error) {
	var catalogs []*model.Catalog
	err := r.db.WithContext(ctx).Find(&catalogs).Error
	if err != nil {
		return nil, err
	}

	return catalogs, nil
}
