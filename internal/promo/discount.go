package promo

import (
	"math"

	"github.com/Ssnnee/theo-afrique-website/internal/domain"
)

// CalculateDiscount computes the discounted price and the displayed discount
// percentage for a base price in whole CFA units.
//
// percentage: the percentage is echoed back verbatim and the price is
// reduced proportionally, rounded to the nearest unit.
// fixed: the amount is subtracted with a floor at zero, and the percentage
// is derived from the actual reduction. A zero base price would make that
// ratio undefined, so it reports 0%.
func CalculateDiscount(price int64, discountType string, discountValue int64) (discountedPrice, discountPercentage int64) {
	if discountType == domain.DiscountTypeFixed {
		discountedPrice = price - discountValue
		if discountedPrice < 0 {
			discountedPrice = 0
		}
		if price == 0 {
			return 0, 0
		}
		discountPercentage = roundToInt64(float64(price-discountedPrice) / float64(price) * 100)
		return discountedPrice, discountPercentage
	}

	discountPercentage = discountValue
	discountedPrice = roundToInt64(float64(price) * (1 - float64(discountValue)/100))
	return discountedPrice, discountPercentage
}

// AppliesTo reports whether the announcement's discount reaches the given
// product. categoryIDs is the product's own category membership, consulted
// only for the category scope.
func AppliesTo(a *domain.Announcement, productID int64, categoryIDs []int64) bool {
	if a == nil {
		return false
	}
	switch a.Scope {
	case domain.ScopeGlobal:
		return true
	case domain.ScopeProduct:
		for _, id := range a.TargetProductIDs {
			if id == productID {
				return true
			}
		}
	case domain.ScopeCategory:
		for _, cid := range categoryIDs {
			for _, id := range a.TargetCategoryIDs {
				if id == cid {
					return true
				}
			}
		}
	}
	return false
}

// Apply annotates a product with the discount of the active announcement,
// or with HasDiscount false when active is nil or out of scope. The input
// product is never mutated; each call returns a fresh value, so Apply is
// safe to invoke concurrently across a listing.
func Apply(p domain.Product, active *domain.Announcement, categoryIDs []int64) domain.PricedProduct {
	out := domain.PricedProduct{Product: p}
	if !AppliesTo(active, p.ID, categoryIDs) {
		return out
	}
	price, pct := CalculateDiscount(p.Price, active.DiscountType, active.DiscountValue)
	out.HasDiscount = true
	out.DiscountedPrice = &price
	out.DiscountPercentage = &pct
	return out
}

// ApplyAll applies one resolved announcement to a whole listing. Resolving
// once and reusing the result keeps every row of a page on the same
// announcement snapshot even if the clock crosses a window boundary while
// the page is being built.
func ApplyAll(products []domain.Product, active *domain.Announcement, categoryIDs map[int64][]int64) []domain.PricedProduct {
	out := make([]domain.PricedProduct, 0, len(products))
	for _, p := range products {
		out = append(out, Apply(p, active, categoryIDs[p.ID]))
	}
	return out
}

// roundToInt64 rounds half away from zero, matching the rounding the
// storefront has always displayed.
func roundToInt64(v float64) int64 {
	return int64(math.Round(v))
}
