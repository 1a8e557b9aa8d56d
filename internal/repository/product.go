package repository

import (
	"context"
	"errors"

	"campus-commerce/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStockConflict means a compare-and-set stock decrement found fewer
// units than requested. The caller decides how to surface it.
var ErrStockConflict = errors.New("stock conflict")

type ProductRepository interface {
	Seed(ctx context.Context) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error)
	// DecrementStock atomically subtracts quantity, failing with
	// ErrStockConflict when available stock is insufficient. Must run
	// inside the commit transaction.
	DecrementStock(ctx context.Context, tx *gorm.DB, productID string, quantity int) error
	GetStock(ctx context.Context, tx *gorm.DB, productID string) (int, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Seed(ctx context.Context) error {
	products := []model.Product{
		{ID: "sandwich_ham", ProviderID: "provider-cafeteria", Name: "Ham Sandwich", Price: decimal.NewFromFloat(3.50), Stock: 40},
		{ID: "juice_orange", ProviderID: "provider-cafeteria", Name: "Orange Juice", Price: decimal.NewFromFloat(1.75), Stock: 60},
		{ID: "lunch_daily", ProviderID: "provider-cafeteria", Name: "Daily Lunch Menu", Price: decimal.NewFromFloat(6.00), Stock: 120},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) DecrementStock(ctx context.Context, tx *gorm.DB, productID string, quantity int) error {
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStockConflict
	}

	return nil
}

func (r *productRepoImpl) GetStock(ctx context.Context, tx *gorm.DB, productID string) (int, error) {
	var product model.Product
	err := tx.WithContext(ctx).
		Select("stock").
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return 0, err
	}

	return product.Stock, nil
}
