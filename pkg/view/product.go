package view

import (
	"homura.shop/app/internal/storefront"
	"homura.shop/app/templates/shared"
)

type ProductVariant struct {
	ID        string
	Label     string
	Price     string
	Available bool
}

type ProductDetailPage struct {
	Product  storefront.Product
	Price    string
	Variants []ProductVariant
}

// NewProductDetailPage flattens variants for the add-to-cart form.
// A single "Default Title" variant is labelled with the product title.
func NewProductDetailPage(p storefront.Product) ProductDetailPage {
	page := ProductDetailPage{
		Product: p,
		Price:   shared.FormatMoney(p.PriceRange.MinVariantPrice),
	}
	if p.Variants == nil {
		return page
	}
	for _, v := range p.Variants.Nodes {
		label := v.Title
		if label == "Default Title" {
			label = p.Title
		}
		page.Variants = append(page.Variants, ProductVariant{
			ID:        v.ID,
			Label:     label,
			Price:     shared.FormatMoney(v.Price),
			Available: v.AvailableForSale,
		})
	}
	return page
}

// Purchasable reports whether any variant can be added to the cart.
func (p ProductDetailPage) Purchasable() bool {
	for _, v := range p.Variants {
		if v.Available {
			return true
		}
	}
	return false
}
