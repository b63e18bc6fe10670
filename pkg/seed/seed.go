package seed

import (
	"strings"

	"bereschoon_backend/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedAdminUsers makes sure every listed auth user id has an admin row.
func SeedAdminUsers(db *gorm.DB, userIDs []string, log *zap.Logger) {
	seeded := 0
	for _, id := range userIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}

		admin := model.AdminUser{UserID: id}
		result := db.FirstOrCreate(&admin, model.AdminUser{UserID: id})
		if result.Error != nil {
			log.Error("error seeding admin user", zap.String("user_id", id), zap.Error(result.Error))
			continue
		}
		seeded++
	}

	if seeded > 0 {
		log.Info("admin users seeded", zap.Int("count", seeded))
	}
}
