package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Snapshot is catalog export of single store produced by the host platform.
type Snapshot struct {
	Store             Store          `json:"store"`
	Languages         []Language     `json:"languages"`
	PrimaryCurrencyID int            `json:"primaryCurrencyId"`
	Currencies        []Currency     `json:"currencies"`
	Measures          Measures       `json:"measures"`
	Categories        []Category     `json:"categories"`
	Manufacturers     []Manufacturer `json:"manufacturers"`
	Products          []Product      `json:"products"`
	Locales           []Locale       `json:"locales"`
}

// Store is exported store.
type Store struct {
	ID                        int    `json:"id"`
	Name                      string `json:"name"`
	URL                       string `json:"url"`
	SSLEnabled                bool   `json:"sslEnabled"`
	DefaultLanguageID         int    `json:"defaultLanguageId"`
	DisplayPricesIncludingTax bool   `json:"displayPricesIncludingTax"`
}

// Language is exported store language.
type Language struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Culture   string `json:"culture"`
	Published bool   `json:"published"`
}

// Currency is exported currency.
type Currency struct {
	ID        int             `json:"id"`
	Code      string          `json:"code"`
	Rate      decimal.Decimal `json:"rate"`
	Published bool            `json:"published"`
	Decimals  *int32          `json:"decimals,omitempty"`
}

// Measures are store's base measure keywords.
type Measures struct {
	BaseWeight    string `json:"baseWeight"`
	BaseDimension string `json:"baseDimension"`
}

// Category is exported category.
type Category struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ParentID int    `json:"parentId"`
}

// Manufacturer is exported manufacturer.
type Manufacturer struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Product is exported product.
type Product struct {
	ID                    int                 `json:"id"`
	Type                  string              `json:"type"`
	Name                  string              `json:"name"`
	ShortDescription      string              `json:"shortDescription"`
	FullDescription       string              `json:"fullDescription"`
	Slug                  string              `json:"slug"`
	VisibleIndividually   bool                `json:"visibleIndividually"`
	Published             bool                `json:"published"`
	Price                 decimal.Decimal     `json:"price"`
	SpecialPrice          decimal.NullDecimal `json:"specialPrice"`
	DiscountAmount        decimal.Decimal     `json:"discountAmount"`
	TierPrices            []TierPrice         `json:"tierPrices"`
	TaxRate               decimal.Decimal     `json:"taxRate"`
	Weight                decimal.Decimal     `json:"weight"`
	Length                decimal.Decimal     `json:"length"`
	Width                 decimal.Decimal     `json:"width"`
	Height                decimal.Decimal     `json:"height"`
	ManageInventoryMethod string              `json:"manageInventoryMethod"`
	BackorderMode         string              `json:"backorderMode"`
	StockQuantities       []int               `json:"stockQuantities"`
	GTIN                  string              `json:"gtin"`
	MPN                   string              `json:"mpn"`
	CategoryIDs           []int               `json:"categoryIds"`
	ManufacturerIDs       []int               `json:"manufacturerIds"`
	Pictures              []Picture           `json:"pictures"`
	AssociatedProductIDs  []int               `json:"associatedProductIds"`
}

// TierPrice is price applied from Quantity units.
type TierPrice struct {
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Picture is exported product picture.
type Picture struct {
	ID          int    `json:"id"`
	MimeType    string `json:"mimeType"`
	SeoFilename string `json:"seoFilename"`
}

// Locale is localized value of entity field.
type Locale struct {
	Entity     string `json:"entity"`
	EntityID   int    `json:"entityId"`
	Field      string `json:"field"`
	LanguageID int    `json:"languageId"`
	Value      string `json:"value"`
}

// DecodeSnapshot reads JSON encoded Snapshot from r.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var snapshot Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("can't decode catalog snapshot: %w", err)
	}

	return snapshot, nil
}

func toProductType(t string) models.ProductType {
	switch t {
	case "simple":
		return models.ProductTypeSimple
	case "grouped":
		return models.ProductTypeGrouped
	default:
		return models.ProductTypeOther
	}
}

func toInventoryMethod(m string) models.InventoryMethod {
	switch m {
	case "manageStock":
		return models.InventoryMethodManageStock
	case "manageStockByAttributes":
		return models.InventoryMethodManageStockByAttributes
	default:
		return models.InventoryMethodNone
	}
}

func toBackorderMode(m string) models.BackorderMode {
	switch m {
	case "allowQtyBelowZero":
		return models.BackorderModeAllowQtyBelowZero
	case "allowQtyBelowZeroAndNotify":
		return models.BackorderModeAllowQtyBelowZeroAndNotify
	default:
		return models.BackorderModeNoBackorders
	}
}

func toAppProduct(p *Product) models.Product {
	return models.Product{
		ID:                   p.ID,
		Type:                 toProductType(p.Type),
		Name:                 p.Name,
		ShortDescription:     p.ShortDescription,
		FullDescription:      p.FullDescription,
		Price:                p.Price,
		Weight:               p.Weight,
		Length:               p.Length,
		Width:                p.Width,
		Height:               p.Height,
		InventoryMethod:      toInventoryMethod(p.ManageInventoryMethod),
		BackorderMode:        toBackorderMode(p.BackorderMode),
		GTIN:                 p.GTIN,
		MPN:                  p.MPN,
		HasTierPrices:        len(p.TierPrices) > 0,
		AssociatedProductIDs: p.AssociatedProductIDs,
	}
}

func toAppStore(s Store) models.Store {
	return models.Store{
		ID:                s.ID,
		Name:              s.Name,
		URL:               s.URL,
		SSLEnabled:        s.SSLEnabled,
		DefaultLanguageID: s.DefaultLanguageID,
	}
}

func toAppCurrency(c Currency) models.Currency {
	return models.Currency{
		ID:        c.ID,
		Code:      c.Code,
		Rate:      c.Rate,
		Published: c.Published,
		Decimals:  lo.FromPtrOr(c.Decimals, defaultDecimals),
	}
}
