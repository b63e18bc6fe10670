package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const CostSourceSubmission = "submission"

// GenerationCost is an append-only cost ledger row.
type GenerationCost struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Amount    float64   `json:"amount" gorm:"type:numeric(10,4);not null"`
	Source    string    `json:"source" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (GenerationCost) TableName() string {
	return "generation_costs"
}

func (c *GenerationCost) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
