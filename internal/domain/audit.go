package domain

import "time"

// AdminLog records an admin mutation for the audit trail.
type AdminLog struct {
	ID         int64     `gorm:"primaryKey" json:"id,string"`
	UserID     string    `gorm:"size:64;index" json:"userId"`
	Action     string    `gorm:"size:32" json:"action"`
	Resource   string    `gorm:"size:32;index:admin_log_resource_idx" json:"resource"`
	ResourceID string    `gorm:"size:64;index:admin_log_resource_idx" json:"resourceId"`
	Details    string    `json:"details"`
	IPAddress  string    `gorm:"size:64" json:"ipAddress"`
	UserAgent  string    `gorm:"size:512" json:"userAgent"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}

func (AdminLog) TableName() string {
	return "admin_log"
}
