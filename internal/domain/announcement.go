package domain

import "time"

// Announcement display classification. Display-only, never used when
// resolving the active announcement.
const (
	AnnouncementTypeSale      = "sale"
	AnnouncementTypePromotion = "promotion"
	AnnouncementTypeInfo      = "info"
	AnnouncementTypeWarning   = "warning"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Scope controls which products an announcement's discount can reach.
const (
	ScopeGlobal   = "global"
	ScopeCategory = "category"
	ScopeProduct  = "product"
)

// Announcement is a time-bounded promotional rule. At most one announcement
// is in effect at any instant: the highest priority among those whose
// activation flag is set and whose window contains the current time.
type Announcement struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string    `gorm:"size:256" json:"title"`
	Message       string    `json:"message"`
	Type          string    `gorm:"size:32;default:info" json:"type"`
	DiscountType  string    `gorm:"size:32;default:percentage" json:"discountType"`
	DiscountValue int64     `json:"discountValue"`
	StartDate     time.Time `gorm:"index:announcement_active_dates_idx,priority:2" json:"startDate"`
	EndDate       time.Time `gorm:"index:announcement_active_dates_idx,priority:3" json:"endDate"`
	IsActive      bool      `gorm:"index:announcement_active_dates_idx,priority:1" json:"isActive"`
	Scope         string    `gorm:"size:32;default:global" json:"scope"`
	Priority      int       `gorm:"index" json:"priority"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// Targeting sets resolved from the join tables on read. Only meaningful
	// for the product and category scopes respectively.
	TargetProductIDs  []int64 `gorm:"-" json:"productIds,omitempty"`
	TargetCategoryIDs []int64 `gorm:"-" json:"categoryIds,omitempty"`
}

func (Announcement) TableName() string {
	return "announcement"
}

// AnnouncementToProduct links a product-scoped announcement to a product.
type AnnouncementToProduct struct {
	AnnouncementID int64     `gorm:"primaryKey;index:announcement_product_idx" json:"announcementId"`
	ProductID      int64     `gorm:"primaryKey;index:announcement_product_idx" json:"productId"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (AnnouncementToProduct) TableName() string {
	return "announcements_to_products"
}

// AnnouncementToCategory links a category-scoped announcement to a category.
type AnnouncementToCategory struct {
	AnnouncementID int64     `gorm:"primaryKey;index:announcement_category_idx" json:"announcementId"`
	CategoryID     int64     `gorm:"primaryKey;index:announcement_category_idx" json:"categoryId"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (AnnouncementToCategory) TableName() string {
	return "announcements_to_categories"
}
