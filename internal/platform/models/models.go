package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// GoogleProductRecord is Google Shopping metadata of single catalog product.
type GoogleProductRecord struct {
	ID          int    `json:"id"`
	ProductID   int    `json:"productId"`
	Taxonomy    string `json:"taxonomy"`
	Gender      string `json:"gender"`
	AgeGroup    string `json:"ageGroup"`
	Color       string `json:"color"`
	Size        string `json:"size"`
	CustomGoods bool   `json:"customGoods"`
}

// FeedSettings is store scoped feed configuration.
type FeedSettings struct {
	CurrencyID                 int
	DefaultGoogleCategory      string
	ProductPictureSize         int
	PassShippingInfoWeight     bool
	PassShippingInfoDimensions bool
	PricesConsiderPromotions   bool
	StaticFileName             string
	ExpirationNumberOfDays     int
}

// ProductType is catalog product type.
type ProductType int

const (
	// ProductTypeOther is any product type which is neither simple nor grouped.
	ProductTypeOther ProductType = iota
	// ProductTypeSimple is a single sellable product.
	ProductTypeSimple
	// ProductTypeGrouped is a family of associated child products.
	ProductTypeGrouped
)

// InventoryMethod is product's inventory tracking method.
type InventoryMethod int

const (
	InventoryMethodNone InventoryMethod = iota
	InventoryMethodManageStock
	InventoryMethodManageStockByAttributes
)

// BackorderMode is product's backorder policy.
type BackorderMode int

const (
	BackorderModeNoBackorders BackorderMode = iota
	BackorderModeAllowQtyBelowZero
	BackorderModeAllowQtyBelowZeroAndNotify
)

// Product is read-only catalog product view.
type Product struct {
	ID                   int
	Type                 ProductType
	Name                 string
	ShortDescription     string
	FullDescription      string
	Price                decimal.Decimal
	Weight               decimal.Decimal
	Length               decimal.Decimal
	Width                decimal.Decimal
	Height               decimal.Decimal
	InventoryMethod      InventoryMethod
	BackorderMode        BackorderMode
	GTIN                 string
	MPN                  string
	HasTierPrices        bool
	AssociatedProductIDs []int
}

// Store is catalog store.
type Store struct {
	ID                int
	Name              string
	URL               string
	SSLEnabled        bool
	DefaultLanguageID int
}

// Location returns store's base URL with scheme resolved from SSL flag and trailing slash.
func (s Store) Location() string {
	host := s.URL
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	host = strings.TrimSuffix(host, "/")

	scheme := "http://"
	if s.SSLEnabled {
		scheme = "https://"
	}

	return scheme + host + "/"
}

// Language is store language.
type Language struct {
	ID      int
	Name    string
	Culture string
}

// Currency is store currency. Decimals is number of fraction digits prices are displayed with.
type Currency struct {
	ID        int
	Code      string
	Rate      decimal.Decimal
	Published bool
	Decimals  int32
}

// Manufacturer is product manufacturer.
type Manufacturer struct {
	ID   int
	Name string
}

// LocaleKey identifies localizable field of an entity.
type LocaleKey struct {
	Entity   string
	EntityID int
	Field    string
}

// GeneratedFile is static feed file materialized in export directory.
type GeneratedFile struct {
	StoreID     int       `json:"storeId"`
	Name        string    `json:"name"`
	Path        string    `json:"-"`
	URL         string    `json:"url"`
	Items       int       `json:"items,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// RunResult is result of feed generation for single store.
type RunResult struct {
	StoreID int            `json:"storeId"`
	Success bool           `json:"success"`
	File    *GeneratedFile `json:"file,omitempty"`
	Message string         `json:"message,omitempty"`
	Err     error          `json:"-"`
}

// ParsingResult contains decoded feed item with decoding error if there is any.
type ParsingResult struct {
	Item  FeedItem
	Error error
}

// FeedItem is single item read back from generated feed.
type FeedItem struct {
	ID                    string
	Title                 string
	Description           string
	Link                  string
	ImageLink             string
	AdditionalImageLinks  []string
	Condition             string
	ExpirationDate        string
	Availability          string
	Price                 string
	GoogleProductCategory string
	ProductType           *string
	GTIN                  *string
	Brand                 *string
	MPN                   *string
	IdentifierExists      *string
	Gender                *string
	AgeGroup              *string
	Color                 *string
	Size                  *string
	ShippingWeight        *string
	ShippingLength        *string
	ShippingWidth         *string
	ShippingHeight        *string
}
