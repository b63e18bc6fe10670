package repository

import (
	"context"
	"errors"

	"bereschoon_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository interface {
	// LatestByEmail returns the newest submission whose email matches the
	// normalized address case-insensitively, or nil when there is none.
	LatestByEmail(ctx context.Context, normalizedEmail string) (*model.Submission, error)
	Create(ctx context.Context, submission *model.Submission) error
	FindByID(ctx context.Context, id string) (*model.Submission, error)
}

type CostLedger interface {
	Record(ctx context.Context, entry *model.GenerationCost) error
}

type GormSubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *GormSubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

func (r *GormSubmissionRepository) LatestByEmail(ctx context.Context, normalizedEmail string) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.WithContext(ctx).
		Select("id", "created_at").
		Where("LOWER(email) = ?", normalizedEmail).
		Order("created_at desc").
		Limit(1).
		Take(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *GormSubmissionRepository) Create(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *GormSubmissionRepository) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	var submission model.Submission
	if err := r.db.WithContext(ctx).First(&submission, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &submission, nil
}

type GormCostLedger struct {
	db *gorm.DB
}

func NewCostLedger(db *gorm.DB) *GormCostLedger {
	return &GormCostLedger{db: db}
}

func (l *GormCostLedger) Record(ctx context.Context, entry *model.GenerationCost) error {
	return l.db.WithContext(ctx).Create(entry).Error
}
