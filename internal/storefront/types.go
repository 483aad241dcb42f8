package storefront

import (
	"time"

	"github.com/shopspring/decimal"
)

type Image struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// Money mirrors MoneyV2. Amount arrives as a decimal string ("19.0").
type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Collection struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Description string `json:"description,omitempty"`
	Image       *Image `json:"image"`
	Products    *struct {
		Nodes []Product `json:"nodes"`
	} `json:"products,omitempty"`
}

type PriceRange struct {
	MinVariantPrice Money `json:"minVariantPrice"`
}

type Product struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Handle      string     `json:"handle"`
	Description string     `json:"description,omitempty"`
	Vendor      string     `json:"vendor,omitempty"`
	PriceRange  PriceRange `json:"priceRange"`
	Images      struct {
		Nodes []Image `json:"nodes"`
	} `json:"images"`
	Variants *struct {
		Nodes []ProductVariant `json:"nodes"`
	} `json:"variants,omitempty"`
}

// FirstImage returns the product's first image, or nil.
func (p Product) FirstImage() *Image {
	if len(p.Images.Nodes) == 0 {
		return nil
	}
	return &p.Images.Nodes[0]
}

type ProductRef struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Title  string `json:"title"`
}

type ProductVariant struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	AvailableForSale bool             `json:"availableForSale"`
	Price            Money            `json:"price"`
	CompareAtPrice   *Money           `json:"compareAtPrice"`
	Image            *Image           `json:"image"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
	Product          *ProductRef      `json:"product,omitempty"`
}

type MenuItem struct {
	ID         string     `json:"id"`
	ResourceID string     `json:"resourceId"`
	Title      string     `json:"title"`
	Type       string     `json:"type"`
	URL        string     `json:"url"`
	Items      []MenuItem `json:"items"`
}

type Menu struct {
	ID    string     `json:"id"`
	Items []MenuItem `json:"items"`
}

type Shop struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	PrimaryDomain *struct {
		URL string `json:"url"`
	} `json:"primaryDomain"`
	Brand *struct {
		Logo *struct {
			Image *struct {
				URL string `json:"url"`
			} `json:"image"`
		} `json:"logo"`
	} `json:"brand"`
}

// PrimaryDomainURL is empty when the shop has no primary domain.
func (s Shop) PrimaryDomainURL() string {
	if s.PrimaryDomain == nil {
		return ""
	}
	return s.PrimaryDomain.URL
}

// LogoURL is empty when no brand logo is configured.
func (s Shop) LogoURL() string {
	if s.Brand == nil || s.Brand.Logo == nil || s.Brand.Logo.Image == nil {
		return ""
	}
	return s.Brand.Logo.Image.URL
}

// Header is the result of the Header query.
type Header struct {
	Shop Shop  `json:"shop"`
	Menu *Menu `json:"menu"`
}

// Footer is the result of the Footer query.
type Footer struct {
	Menu *Menu `json:"menu"`
}

type CartLineCost struct {
	TotalAmount       Money `json:"totalAmount"`
	AmountPerQuantity Money `json:"amountPerQuantity"`
}

type CartLine struct {
	ID          string         `json:"id"`
	Quantity    int            `json:"quantity"`
	Cost        CartLineCost   `json:"cost"`
	Merchandise ProductVariant `json:"merchandise"`
}

type CartCost struct {
	SubtotalAmount Money  `json:"subtotalAmount"`
	TotalAmount    Money  `json:"totalAmount"`
	TotalTaxAmount *Money `json:"totalTaxAmount"`
}

type Cart struct {
	ID            string   `json:"id"`
	CheckoutURL   string   `json:"checkoutUrl"`
	TotalQuantity int      `json:"totalQuantity"`
	Cost          CartCost `json:"cost"`
	Lines         struct {
		Nodes []CartLine `json:"nodes"`
	} `json:"lines"`
	Note string `json:"note"`
}

type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
	Code    string   `json:"code"`
}

type Customer struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type CustomerAccessToken struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Query results.

type FeaturedCollectionResult struct {
	Collections struct {
		Nodes []Collection `json:"nodes"`
	} `json:"collections"`
}

type RecommendedProductsResult struct {
	Products struct {
		Nodes []Product `json:"nodes"`
	} `json:"products"`
}

type CollectionsResult struct {
	Collections struct {
		Nodes []Collection `json:"nodes"`
	} `json:"collections"`
}

type CollectionResult struct {
	Collection *Collection `json:"collection"`
}

type ProductResult struct {
	Product *Product `json:"product"`
}

type CartResult struct {
	Cart *Cart `json:"cart"`
}

// CartPayload is the common shape of every cart mutation payload.
type CartPayload struct {
	Cart       *Cart       `json:"cart"`
	UserErrors []UserError `json:"userErrors"`
}

type CartCreateResult struct {
	CartCreate CartPayload `json:"cartCreate"`
}

type CartLinesAddResult struct {
	CartLinesAdd CartPayload `json:"cartLinesAdd"`
}

type CartLinesUpdateResult struct {
	CartLinesUpdate CartPayload `json:"cartLinesUpdate"`
}

type CartLinesRemoveResult struct {
	CartLinesRemove CartPayload `json:"cartLinesRemove"`
}

type CustomerAccessTokenCreateResult struct {
	CustomerAccessTokenCreate struct {
		CustomerAccessToken *CustomerAccessToken `json:"customerAccessToken"`
		CustomerUserErrors  []UserError          `json:"customerUserErrors"`
	} `json:"customerAccessTokenCreate"`
}

type CustomerAccessTokenDeleteResult struct {
	CustomerAccessTokenDelete struct {
		DeletedAccessToken string      `json:"deletedAccessToken"`
		UserErrors         []UserError `json:"userErrors"`
	} `json:"customerAccessTokenDelete"`
}

type CustomerResult struct {
	Customer *Customer `json:"customer"`
}
