package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/Ssnnee/theo-afrique-website/internal/domain"
)

type fakeRepo struct {
	products      []domain.Product
	categories    []domain.Category
	links         map[int64][]int64
	announcements []domain.Announcement

	candidateCalls int
	linkCalls      int
	lastLinkQuery  []int64
}

func (f *fakeRepo) AllProducts(ctx context.Context) ([]domain.Product, error) {
	return f.products, nil
}

func (f *fakeRepo) LatestProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit > len(f.products) {
		limit = len(f.products)
	}
	return f.products[:limit], nil
}

func (f *fakeRepo) ProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, context.Canceled
}

func (f *fakeRepo) ProductsByCategory(ctx context.Context, name string) ([]domain.Product, error) {
	return f.products, nil
}

func (f *fakeRepo) Categories(ctx context.Context) ([]domain.Category, error) {
	return f.categories, nil
}

func (f *fakeRepo) CategoryLinks(ctx context.Context, productIDs []int64) (map[int64][]int64, error) {
	f.linkCalls++
	f.lastLinkQuery = productIDs
	return f.links, nil
}

func (f *fakeRepo) CandidateAnnouncements(ctx context.Context, now time.Time) ([]domain.Announcement, error) {
	f.candidateCalls++
	return f.announcements, nil
}

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "pagne", Price: 1000},
		{ID: 2, Name: "chemise", Price: 2500},
		{ID: 3, Name: "robe", Price: 4000},
	}
}

func TestListProductsResolvesAnnouncementOnce(t *testing.T) {
	repo := &fakeRepo{
		products: testProducts(),
		links:    map[int64][]int64{1: {7}, 2: {1}, 3: {7}},
		announcements: []domain.Announcement{{
			ID: 1, IsActive: true, Scope: domain.ScopeCategory,
			DiscountType: domain.DiscountTypePercentage, DiscountValue: 10,
			StartDate: fixedNow.Add(-time.Hour), EndDate: fixedNow.Add(time.Hour),
			TargetCategoryIDs: []int64{7},
		}},
	}
	svc := NewService(repo, fixedClock)

	priced, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if repo.candidateCalls != 1 {
		t.Fatalf("announcement resolved %d times for one listing, want 1", repo.candidateCalls)
	}
	if repo.linkCalls != 1 {
		t.Fatalf("category links fetched %d times, want a single batched query", repo.linkCalls)
	}
	if len(repo.lastLinkQuery) != 3 {
		t.Fatalf("batched link query covered %d products, want 3", len(repo.lastLinkQuery))
	}

	if !priced[0].HasDiscount || priced[1].HasDiscount || !priced[2].HasDiscount {
		t.Fatalf("unexpected discount spread: %v %v %v",
			priced[0].HasDiscount, priced[1].HasDiscount, priced[2].HasDiscount)
	}
	if *priced[0].DiscountedPrice != 900 {
		t.Fatalf("10%% off 1000 = %d, want 900", *priced[0].DiscountedPrice)
	}
}

func TestListProductsSkipsLinkFetchOutsideCategoryScope(t *testing.T) {
	repo := &fakeRepo{
		products: testProducts(),
		announcements: []domain.Announcement{{
			ID: 1, IsActive: true, Scope: domain.ScopeGlobal,
			DiscountType: domain.DiscountTypeFixed, DiscountValue: 500,
			StartDate: fixedNow.Add(-time.Hour), EndDate: fixedNow.Add(time.Hour),
		}},
	}
	svc := NewService(repo, fixedClock)

	priced, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if repo.linkCalls != 0 {
		t.Fatalf("global scope fetched category links %d times, want 0", repo.linkCalls)
	}
	for _, pp := range priced {
		if !pp.HasDiscount {
			t.Fatalf("global announcement must discount product %d", pp.ID)
		}
	}
}

func TestListProductsNoActiveAnnouncement(t *testing.T) {
	repo := &fakeRepo{products: testProducts()}
	svc := NewService(repo, fixedClock)

	priced, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, pp := range priced {
		if pp.HasDiscount || pp.DiscountedPrice != nil {
			t.Fatalf("product %d discounted without an announcement", pp.ID)
		}
	}
}

func TestActiveAnnouncementPicksHighestPriority(t *testing.T) {
	window := []domain.Announcement{
		{ID: 1, IsActive: true, Priority: 5, Scope: domain.ScopeGlobal,
			StartDate: fixedNow.Add(-time.Hour), EndDate: fixedNow.Add(time.Hour)},
		{ID: 2, IsActive: true, Priority: 10, Scope: domain.ScopeGlobal,
			StartDate: fixedNow.Add(-time.Hour), EndDate: fixedNow.Add(time.Hour)},
	}
	repo := &fakeRepo{announcements: window}
	svc := NewService(repo, fixedClock)

	active, err := svc.ActiveAnnouncement(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if active == nil || active.ID != 2 {
		t.Fatalf("expected announcement 2, got %+v", active)
	}
}

func TestLimitedProductsClampsLimit(t *testing.T) {
	repo := &fakeRepo{products: testProducts()}
	svc := NewService(repo, fixedClock)

	priced, err := svc.LimitedProducts(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(priced) != 1 {
		t.Fatalf("limit 0 must clamp to 1, got %d products", len(priced))
	}
}
