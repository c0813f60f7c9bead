package catalog

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Ssnnee/theo-afrique-website/internal/domain"
)

// Repository is the read-side storage contract of the storefront.
type Repository interface {
	AllProducts(ctx context.Context) ([]domain.Product, error)
	LatestProducts(ctx context.Context, limit int) ([]domain.Product, error)
	ProductByID(ctx context.Context, id int64) (*domain.Product, error)
	ProductsByCategory(ctx context.Context, categoryName string) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	// CategoryLinks returns the category id sets for all given products in a
	// single query, keyed by product id.
	CategoryLinks(ctx context.Context, productIDs []int64) (map[int64][]int64, error)
	// CandidateAnnouncements returns announcements plausibly in effect at
	// now, with their targeting sets resolved. The date filter is only a
	// row-count optimization; eligibility is decided by the resolver.
	CandidateAnnouncements(ctx context.Context, now time.Time) ([]domain.Announcement, error)
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

var _ Repository = (*GormRepository)(nil)

func (r *GormRepository) AllProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Find(&products).Error
	return products, err
}

func (r *GormRepository) LatestProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&products).Error
	return products, err
}

func (r *GormRepository) ProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepository) ProductsByCategory(ctx context.Context, categoryName string) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Joins("JOIN products_to_categories ptc ON ptc.product_id = product.id").
		Joins("JOIN category c ON c.id = ptc.category_id").
		Where("c.name = ?", categoryName).
		Find(&products).Error
	return products, err
}

func (r *GormRepository) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *GormRepository) CategoryLinks(ctx context.Context, productIDs []int64) (map[int64][]int64, error) {
	links := make(map[int64][]int64, len(productIDs))
	if len(productIDs) == 0 {
		return links, nil
	}
	var rows []domain.ProductToCategory
	if err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		links[row.ProductID] = append(links[row.ProductID], row.CategoryID)
	}
	return links, nil
}

func (r *GormRepository) CandidateAnnouncements(ctx context.Context, now time.Time) ([]domain.Announcement, error) {
	var anns []domain.Announcement
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Order("priority DESC, id ASC").
		Find(&anns).Error; err != nil {
		return nil, err
	}
	if err := r.loadTargets(ctx, anns); err != nil {
		return nil, err
	}
	return anns, nil
}

// loadTargets fills the targeting sets for a batch of announcements.
func (r *GormRepository) loadTargets(ctx context.Context, anns []domain.Announcement) error {
	if len(anns) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(anns))
	index := make(map[int64]*domain.Announcement, len(anns))
	for i := range anns {
		ids = append(ids, anns[i].ID)
		index[anns[i].ID] = &anns[i]
	}

	var productLinks []domain.AnnouncementToProduct
	if err := r.db.WithContext(ctx).Where("announcement_id IN ?", ids).Find(&productLinks).Error; err != nil {
		return err
	}
	for _, link := range productLinks {
		a := index[link.AnnouncementID]
		a.TargetProductIDs = append(a.TargetProductIDs, link.ProductID)
	}

	var categoryLinks []domain.AnnouncementToCategory
	if err := r.db.WithContext(ctx).Where("announcement_id IN ?", ids).Find(&categoryLinks).Error; err != nil {
		return err
	}
	for _, link := range categoryLinks {
		a := index[link.AnnouncementID]
		a.TargetCategoryIDs = append(a.TargetCategoryIDs, link.CategoryID)
	}
	return nil
}
