package repository

import (
	"context"

	"bereschoon_backend/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindByTrackingCode(ctx context.Context, code string) (*model.Order, error)
	FindByOrderNumber(ctx context.Context, number string) (*model.Order, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	AddTrackingHistory(ctx context.Context, entry *model.OrderTrackingHistory) error
	// WithTracking loads the order plus its items and history, newest entry first.
	WithTracking(ctx context.Context, id string) (*model.Order, error)
}

type AdminRepository interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type GormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GormOrderRepository) FindByTrackingCode(ctx context.Context, code string) (*model.Order, error) {
	return r.first(ctx, "tracking_code = ?", code)
}

func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, number string) (*model.Order, error) {
	return r.first(ctx, "order_number = ?", number)
}

func (r *GormOrderRepository) first(ctx context.Context, query string, arg string) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).First(&order, query, arg).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *GormOrderRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormOrderRepository) AddTrackingHistory(ctx context.Context, entry *model.OrderTrackingHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormOrderRepository) WithTracking(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("TrackingHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc")
		}).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

type GormAdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

func (r *GormAdminRepository) IsAdmin(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AdminUser{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}
