package generator

import (
	"context"

	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/shopspring/decimal"
)

// Catalog is read-only view of a store's catalog opened for single feed run.
type Catalog interface {
	Products
	Localizer
	Pricing
	Currencies
	Media
	Measures
}

// Products queries store's products, categories and manufacturers.
type Products interface {
	// Store returns the store catalog belongs to.
	Store(ctx context.Context) (models.Store, error)
	// Languages returns store's active languages.
	Languages(ctx context.Context) ([]models.Language, error)
	// VisibleProducts calls fn for every individually visible product in catalog order.
	// It stops on the first error returned by fn.
	VisibleProducts(ctx context.Context, fn func(models.Product) error) error
	// AssociatedProducts returns child products of grouped product.
	AssociatedProducts(ctx context.Context, productID int) ([]models.Product, error)
	// TotalStockQuantity returns product's stock quantity summed over warehouses.
	TotalStockQuantity(ctx context.Context, productID int) (int, error)
	// FirstCategoryID returns ID of the first category product is assigned to.
	FirstCategoryID(ctx context.Context, productID int) (int, bool, error)
	// Breadcrumb returns localized category path separated by " > ".
	Breadcrumb(ctx context.Context, categoryID, languageID int) (string, error)
	// FirstManufacturer returns the first manufacturer product is assigned to or nil.
	FirstManufacturer(ctx context.Context, productID int) (*models.Manufacturer, error)
	// Slug returns product's canonical SEO name.
	Slug(ctx context.Context, productID, languageID int) (string, error)
}

// Localizer provides localized entity fields.
type Localizer interface {
	// Localized returns field value for language or fallback if field isn't localized.
	Localized(ctx context.Context, key models.LocaleKey, languageID int, fallback string) (string, error)
}

// Pricing calculates product prices.
type Pricing interface {
	// FinalPrice returns price of quantity units considering special prices, tier prices and discounts.
	FinalPrice(ctx context.Context, product models.Product, quantity int) (decimal.Decimal, error)
	// PriceWithTax returns price adjusted by store tax display rules.
	PriceWithTax(ctx context.Context, product models.Product, price decimal.Decimal) (decimal.Decimal, error)
	// RoundPrice rounds price for display in currency.
	RoundPrice(ctx context.Context, price decimal.Decimal, currency models.Currency) (decimal.Decimal, error)
}

// Currencies provides currencies and conversions.
type Currencies interface {
	// CurrencyByID returns currency or nil if it doesn't exist.
	CurrencyByID(ctx context.Context, id int) (*models.Currency, error)
	// PrimaryCurrency returns store's primary currency.
	PrimaryCurrency(ctx context.Context) (models.Currency, error)
	// ConvertFromPrimary converts amount from primary store currency to currency.
	ConvertFromPrimary(ctx context.Context, amount decimal.Decimal, currency models.Currency) (decimal.Decimal, error)
}

// Media provides picture urls.
type Media interface {
	// PictureURLs returns up to limit product picture urls in stored order.
	PictureURLs(ctx context.Context, productID, limit, size int) ([]string, error)
	// DefaultPictureURL returns placeholder picture url.
	DefaultPictureURL(ctx context.Context, size int) (string, error)
}

// Measures provides store's base measures.
type Measures interface {
	// BaseWeightKeyword returns system keyword of base weight unit.
	BaseWeightKeyword(ctx context.Context) (string, error)
	// BaseDimensionKeyword returns system keyword of base dimension unit.
	BaseDimensionKeyword(ctx context.Context) (string, error)
}
