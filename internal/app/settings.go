package app

import (
	"errors"
	"sync"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ssnnee/theo-afrique-website/internal/domain"
)

// SettingsManager caches the sys_config table in memory. Writes go through
// Set, which updates both the row and the cache.
type SettingsManager struct {
	db    *gorm.DB
	mu    sync.RWMutex
	cache map[string]string
}

func NewSettingsManager(db *gorm.DB) *SettingsManager {
	m := &SettingsManager{db: db, cache: make(map[string]string)}
	m.reload()
	return m
}

func settingKey(category, name string) string {
	return category + "." + name
}

func (m *SettingsManager) reload() {
	var rows []domain.Setting
	if err := m.db.Find(&rows).Error; err != nil {
		zap.L().Error("failed to load settings", zap.Error(err))
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = make(map[string]string, len(rows))
	for _, row := range rows {
		m.cache[settingKey(row.Type, row.Name)] = row.Value
	}
}

func (m *SettingsManager) get(category, name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cache[settingKey(category, name)]
}

func (m *SettingsManager) GetString(category, name string) string {
	return m.get(category, name)
}

func (m *SettingsManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.get(category, name))
}

func (m *SettingsManager) GetBool(category, name string) bool {
	return cast.ToBool(m.get(category, name))
}

// Set updates or creates a setting row and refreshes the cache entry.
func (m *SettingsManager) Set(category, name, value string) error {
	var row domain.Setting
	err := m.db.Where("type = ? AND name = ?", category, name).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := m.db.Create(&domain.Setting{
			ID:    0,
			Type:  category,
			Name:  name,
			Value: value,
		}).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if err := m.db.Model(&domain.Setting{}).
			Where("id = ?", row.ID).
			Update("value", value).Error; err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.cache[settingKey(category, name)] = value
	m.mu.Unlock()
	return nil
}
