// Package audit records admin mutations. Logging is best effort: a failed
// audit insert is reported to the logger but never fails the request that
// triggered it.
package audit

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ssnnee/theo-afrique-website/internal/domain"
	"github.com/Ssnnee/theo-afrique-website/pkg/common"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

const (
	ResourceAnnouncement = "announcement"
	ResourceProduct      = "product"
	ResourceCategory     = "category"
	ResourceUser         = "user"
)

type Entry struct {
	UserID     string
	Action     string
	Resource   string
	ResourceID string
	Details    map[string]interface{}
	IPAddress  string
	UserAgent  string
}

type Logger struct {
	db *gorm.DB
}

func NewLogger(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(e Entry) {
	details := ""
	if e.Details != nil {
		if data, err := json.Marshal(e.Details); err == nil {
			details = string(data)
		}
	}
	row := domain.AdminLog{
		ID:         common.UUIDint64(),
		UserID:     e.UserID,
		Action:     e.Action,
		Resource:   e.Resource,
		ResourceID: e.ResourceID,
		Details:    details,
		IPAddress:  e.IPAddress,
		UserAgent:  e.UserAgent,
		CreatedAt:  time.Now(),
	}
	if err := l.db.Create(&row).Error; err != nil {
		zap.L().Error("failed to write admin audit log",
			zap.String("action", e.Action),
			zap.String("resource", e.Resource),
			zap.Error(err))
	}
}

// List returns audit rows newest first with a total count for pagination.
func (l *Logger) List(page, pageSize int) ([]domain.AdminLog, int64, error) {
	var total int64
	if err := l.db.Model(&domain.AdminLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []domain.AdminLog
	err := l.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&rows).Error
	return rows, total, err
}
