package app

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ssnnee/theo-afrique-website/internal/domain"
)

// checkAdmin makes sure the configured admin email owns an admin account.
// An existing user is promoted; a missing one is created so the first magic
// link already signs in with the admin role.
func (a *Application) checkAdmin() {
	adminEmail := strings.ToLower(strings.TrimSpace(a.appConfig.Store.AdminEmail))
	if adminEmail == "" {
		return
	}

	var user domain.User
	err := a.gormDB.Where("email = ?", adminEmail).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.User{
			ID:    uuid.NewString(),
			Name:  "Admin User",
			Email: adminEmail,
			Role:  domain.RoleAdmin,
		}).Error; err != nil {
			zap.L().Error("failed to create admin user", zap.Error(err))
			return
		}
		zap.L().Info("initialized admin account", zap.String("email", adminEmail))
	case err != nil:
		zap.L().Error("failed to query admin user", zap.Error(err))
	case user.Role != domain.RoleAdmin:
		if err := a.gormDB.Model(&domain.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{"role": domain.RoleAdmin, "updated_at": time.Now()}).Error; err != nil {
			zap.L().Error("failed to promote admin user", zap.Error(err))
			return
		}
		zap.L().Warn("promoted existing user to admin", zap.String("email", adminEmail))
	}
}

type settingSchema struct {
	Key         string
	Default     string
	Description string
}

var defaultSettings = []settingSchema{
	{"store.whatsapp_phone", "", "Destination number for WhatsApp orders (falls back to config)"},
	{"store.currency", "CFA", "Display currency"},
	{"store.latest_count", "8", "Number of products on the latest listing"},
	{"audit.retention_days", "365", "Days to keep admin audit logs"},
}

// checkSettings initializes missing settings rows with their defaults.
func (a *Application) checkSettings() {
	for sortid, schema := range defaultSettings {
		parts := strings.SplitN(schema.Key, ".", 2)
		if len(parts) != 2 {
			zap.L().Warn("invalid setting key format", zap.String("key", schema.Key))
			continue
		}
		category, name := parts[0], parts[1]

		var count int64
		a.gormDB.Model(&domain.Setting{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)
		if count == 0 {
			a.gormDB.Create(&domain.Setting{
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized setting",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
	a.settings.reload()
}
