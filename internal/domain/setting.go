package domain

import "time"

// Setting is an admin-editable configuration value, keyed by category and
// name ("store.whatsapp_phone").
type Setting struct {
	ID        int64     `json:"id,string"`
	Sort      int       `json:"sort"`
	Type      string    `gorm:"index" json:"type"`
	Name      string    `gorm:"index" json:"name"`
	Value     string    `json:"value"`
	Remark    string    `json:"remark"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Setting) TableName() string {
	return "sys_config"
}
