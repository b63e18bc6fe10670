package repository

import (
	"context"

	"bereschoon_backend/internal/model"

	"gorm.io/gorm"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// ListActive returns the products that are visible in the shop.
func (r *GormProductRepository) ListActive(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Select("id", "name", "slug", "updated_at").
		Where("active = ?", true).
		Order("id").
		Find(&products).Error
	return products, err
}
