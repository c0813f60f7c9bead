// Package catalog serves the public product listings with discount
// annotation. The active announcement is resolved once per call and reused
// across the whole listing, and the product to category links are fetched
// in one batched query instead of per product.
package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Ssnnee/theo-afrique-website/internal/domain"
	"github.com/Ssnnee/theo-afrique-website/internal/promo"
)

const latestProductCount = 8

// Clock supplies the current time; injected so announcement resolution is
// deterministic in tests.
type Clock func() time.Time

type Service struct {
	repo Repository
	now  Clock
}

func NewService(repo Repository, clock Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{repo: repo, now: clock}
}

// ActiveAnnouncement resolves the single announcement currently in effect,
// or nil when none is.
func (s *Service) ActiveAnnouncement(ctx context.Context) (*domain.Announcement, error) {
	candidates, err := s.repo.CandidateAnnouncements(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return promo.ResolveActive(s.now(), candidates), nil
}

// ListProducts returns all products annotated against one announcement
// snapshot.
func (s *Service) ListProducts(ctx context.Context) ([]domain.PricedProduct, error) {
	products, err := s.repo.AllProducts(ctx)
	if err != nil {
		return nil, err
	}
	return s.priceProducts(ctx, products)
}

// LatestProducts returns the most recently created products.
func (s *Service) LatestProducts(ctx context.Context) ([]domain.PricedProduct, error) {
	products, err := s.repo.LatestProducts(ctx, latestProductCount)
	if err != nil {
		return nil, err
	}
	return s.priceProducts(ctx, products)
}

// LimitedProducts returns up to limit products; limit is clamped to 1..100.
func (s *Service) LimitedProducts(ctx context.Context, limit int) ([]domain.PricedProduct, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}
	products, err := s.repo.LatestProducts(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.priceProducts(ctx, products)
}

// ProductsByCategory returns the products of a category by its name.
func (s *Service) ProductsByCategory(ctx context.Context, categoryName string) ([]domain.PricedProduct, error) {
	products, err := s.repo.ProductsByCategory(ctx, categoryName)
	if err != nil {
		return nil, err
	}
	return s.priceProducts(ctx, products)
}

// Product returns one product with discount annotation.
func (s *Service) Product(ctx context.Context, id int64) (*domain.PricedProduct, error) {
	p, err := s.repo.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	priced, err := s.priceProducts(ctx, []domain.Product{*p})
	if err != nil {
		return nil, err
	}
	return &priced[0], nil
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.Categories(ctx)
}

// priceProducts resolves the active announcement once, batch-fetches the
// category links, and applies the discount per product.
func (s *Service) priceProducts(ctx context.Context, products []domain.Product) ([]domain.PricedProduct, error) {
	now := s.now()
	candidates, err := s.repo.CandidateAnnouncements(ctx, now)
	if err != nil {
		return nil, err
	}
	active := promo.ResolveActive(now, candidates)

	var links map[int64][]int64
	if active != nil && active.Scope == domain.ScopeCategory {
		ids := make([]int64, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}
		links, err = s.repo.CategoryLinks(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	if active != nil {
		zap.L().Debug("applying active announcement",
			zap.Int64("announcement_id", active.ID),
			zap.String("scope", active.Scope),
			zap.Int("products", len(products)))
	}
	return promo.ApplyAll(products, active, links), nil
}
