package repository

import (
	"context"

	"campus-commerce/internal/model"

	"gorm.io/gorm"
)

type ProviderRepository interface {
	Get(ctx context.Context, providerID string) (*model.Provider, error)
}

type providerRepoImpl struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) ProviderRepository {
	return &providerRepoImpl{
		db: db,
	}
}

func (r *providerRepoImpl) Get(ctx context.Context, providerID string) (*model.Provider, error) {
	var provider model.Provider
	err := r.db.WithContext(ctx).
		Where("id = ?", providerID).
		First(&provider).Error

	if err != nil {
		return nil, err
	}

	return &provider, nil
}
