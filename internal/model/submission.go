package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceType string

const (
	ServiceTerras ServiceType = "terras"
	ServiceGevel  ServiceType = "gevel"
	ServiceDak    ServiceType = "dak"
	ServiceOverig ServiceType = "overig"
)

var validServices = map[ServiceType]bool{
	ServiceTerras: true,
	ServiceGevel:  true,
	ServiceDak:    true,
	ServiceOverig: true,
}

// ParseService normalizes a raw form value. Unknown values come back as nil
// rather than an error: the field is advisory.
func ParseService(raw string) *string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" || !validServices[ServiceType(value)] {
		return nil
	}
	return &value
}

// Submission is one configurator lead: contact details, the service the
// visitor is interested in and a photo of the surface to be cleaned.
type Submission struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null;index"`
	Address   *string   `json:"address"`
	Phone     *string   `json:"phone"`
	Service   *string   `json:"service" gorm:"check:service IS NULL OR service IN ('terras','gevel','dak','overig')"`
	PhotoURL  string    `json:"photo_url" gorm:"column:photo_url;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (Submission) TableName() string {
	return "driveway_submissions"
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// NormalizeEmail is the key used for rate limiting. Stored rows keep the
// address as typed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// OptionalString trims and maps blank input to nil.
func OptionalString(raw string) *string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	return &value
}
