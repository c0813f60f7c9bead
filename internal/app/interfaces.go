package app

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/Ssnnee/theo-afrique-website/config"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides system settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, name string) string
	GetSettingsInt64Value(category, name string) int64
	GetSettingsBoolValue(category, name string) bool
	SetSettingsValue(category, name, value string) error
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines the provider interfaces for full application context.
// Services should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	SettingsProvider
	SchedulerProvider

	MigrateDB() error
	InitDb()
	DropAll()
}
