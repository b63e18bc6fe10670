package model

import "time"

// AdminUser marks an auth user id as a shop administrator.
type AdminUser struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}
