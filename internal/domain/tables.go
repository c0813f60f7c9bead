package domain

var Tables = []interface{}{
	// System
	&Setting{},
	// Accounts
	&User{},
	&LoginToken{},
	// Catalog
	&Product{},
	&Category{},
	&ProductToCategory{},
	// Promotions
	&Announcement{},
	&AnnouncementToProduct{},
	&AnnouncementToCategory{},
	// Audit
	&AdminLog{},
}
