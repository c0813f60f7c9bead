package promo

import (
	"reflect"
	"testing"
	"time"

	"github.com/Ssnnee/theo-afrique-website/internal/domain"
)

func product(id, price int64) domain.Product {
	return domain.Product{ID: id, Name: "boubou", Price: price, Stock: 5}
}

func activeAnn(scope, discountType string, value int64) *domain.Announcement {
	return &domain.Announcement{
		ID:            1,
		DiscountType:  discountType,
		DiscountValue: value,
		StartDate:     testNow.Add(-time.Hour),
		EndDate:       testNow.Add(time.Hour),
		IsActive:      true,
		Scope:         scope,
		Priority:      1,
	}
}

func TestCalculateDiscount(t *testing.T) {
	tests := []struct {
		name         string
		price        int64
		discountType string
		value        int64
		wantPrice    int64
		wantPct      int64
	}{
		{"percentage 20 off 1000", 1000, domain.DiscountTypePercentage, 20, 800, 20},
		{"percentage rounds to nearest", 999, domain.DiscountTypePercentage, 15, 849, 15},
		{"percentage zero value", 1000, domain.DiscountTypePercentage, 0, 1000, 0},
		{"percentage full", 1000, domain.DiscountTypePercentage, 100, 0, 100},
		{"fixed simple", 3000, domain.DiscountTypeFixed, 500, 2500, 17},
		{"fixed floors at zero", 3000, domain.DiscountTypeFixed, 5000, 0, 100},
		{"fixed zero price guarded", 0, domain.DiscountTypeFixed, 500, 0, 0},
		{"fixed exact price", 2000, domain.DiscountTypeFixed, 2000, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotPrice, gotPct := CalculateDiscount(tt.price, tt.discountType, tt.value)
			if gotPrice != tt.wantPrice || gotPct != tt.wantPct {
				t.Fatalf("CalculateDiscount(%d, %s, %d) = (%d, %d), want (%d, %d)",
					tt.price, tt.discountType, tt.value, gotPrice, gotPct, tt.wantPrice, tt.wantPct)
			}
		})
	}
}

func TestApplyNoActiveAnnouncement(t *testing.T) {
	p := product(1, 1000)
	got := Apply(p, nil, []int64{1, 2})
	if got.HasDiscount {
		t.Fatal("expected no discount without an active announcement")
	}
	if got.DiscountedPrice != nil || got.DiscountPercentage != nil {
		t.Fatal("discount fields must be absent when not discounted")
	}
	if got.Price != 1000 {
		t.Fatalf("base price changed: %d", got.Price)
	}
}

func TestApplyGlobalScope(t *testing.T) {
	a := activeAnn(domain.ScopeGlobal, domain.DiscountTypePercentage, 20)
	got := Apply(product(1, 1000), a, nil)
	if !got.HasDiscount {
		t.Fatal("global scope must apply to every product")
	}
	if *got.DiscountedPrice != 800 || *got.DiscountPercentage != 20 {
		t.Fatalf("got price=%d pct=%d, want 800/20", *got.DiscountedPrice, *got.DiscountPercentage)
	}
}

func TestApplyFixedFloorsAtZero(t *testing.T) {
	a := activeAnn(domain.ScopeGlobal, domain.DiscountTypeFixed, 5000)
	got := Apply(product(1, 3000), a, nil)
	if !got.HasDiscount || *got.DiscountedPrice != 0 || *got.DiscountPercentage != 100 {
		t.Fatalf("got %+v, want price 0 and 100%%", got)
	}
}

func TestApplyZeroPriceFixed(t *testing.T) {
	a := activeAnn(domain.ScopeGlobal, domain.DiscountTypeFixed, 500)
	got := Apply(product(1, 0), a, nil)
	if !got.HasDiscount {
		t.Fatal("global scope still applies at zero price")
	}
	if *got.DiscountedPrice != 0 || *got.DiscountPercentage != 0 {
		t.Fatalf("zero price must yield 0/0%%, got price=%d pct=%d",
			*got.DiscountedPrice, *got.DiscountPercentage)
	}
}

func TestApplyProductScope(t *testing.T) {
	a := activeAnn(domain.ScopeProduct, domain.DiscountTypePercentage, 10)
	a.TargetProductIDs = []int64{42}

	if got := Apply(product(42, 1000), a, nil); !got.HasDiscount {
		t.Fatal("product 42 is targeted, discount expected")
	}
	if got := Apply(product(43, 1000), a, nil); got.HasDiscount {
		t.Fatal("product 43 is not targeted, no discount expected")
	}
}

func TestApplyCategoryScope(t *testing.T) {
	a := activeAnn(domain.ScopeCategory, domain.DiscountTypePercentage, 10)
	a.TargetCategoryIDs = []int64{7}

	if got := Apply(product(1, 1000), a, []int64{1, 2}); got.HasDiscount {
		t.Fatal("no category overlap, discount must not apply")
	}
	if got := Apply(product(1, 1000), a, []int64{2, 7}); !got.HasDiscount {
		t.Fatal("category 7 overlaps, discount expected")
	}
	if got := Apply(product(1, 1000), a, nil); got.HasDiscount {
		t.Fatal("product without categories must not match category scope")
	}
}

func TestApplyCategoryScopeEmptyTargets(t *testing.T) {
	// A category-scoped announcement with no linked categories reaches nothing.
	a := activeAnn(domain.ScopeCategory, domain.DiscountTypePercentage, 10)
	if got := Apply(product(1, 1000), a, []int64{1, 2, 3}); got.HasDiscount {
		t.Fatal("empty targeting set must never match")
	}
}

func TestApplyAllIsOrderIndependentAndIdempotent(t *testing.T) {
	a := activeAnn(domain.ScopeCategory, domain.DiscountTypePercentage, 25)
	a.TargetCategoryIDs = []int64{3}

	products := []domain.Product{
		product(1, 1000), product(2, 2000), product(3, 400),
		product(4, 0), product(5, 99),
	}
	links := map[int64][]int64{1: {3}, 2: {1}, 3: {3}, 5: {2, 3}}

	first := ApplyAll(products, a, links)

	// Reversed input yields the same per-product results.
	reversed := make([]domain.Product, len(products))
	for i, p := range products {
		reversed[len(products)-1-i] = p
	}
	second := ApplyAll(reversed, a, links)

	byID := make(map[int64]domain.PricedProduct)
	for _, pp := range second {
		byID[pp.ID] = pp
	}
	for _, pp := range first {
		if !reflect.DeepEqual(pp, byID[pp.ID]) {
			t.Fatalf("product %d differs across input orders", pp.ID)
		}
	}

	// Repeated invocation is a pure recomputation.
	third := ApplyAll(products, a, links)
	if !reflect.DeepEqual(first, third) {
		t.Fatal("repeated application produced different results")
	}

	if !first[0].HasDiscount || first[1].HasDiscount || !first[2].HasDiscount {
		t.Fatal("unexpected scope matching across the batch")
	}
	if *first[0].DiscountedPrice != 750 {
		t.Fatalf("25%% off 1000 = %d, want 750", *first[0].DiscountedPrice)
	}
}
