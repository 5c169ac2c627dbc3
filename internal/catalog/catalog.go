package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MichalMitros/google-feed-generator/internal/platform"
	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	breadcrumbSeparator = " > "
	defaultDecimals     = 2
)

type localeKey struct {
	models.LocaleKey
	languageID int
}

// Catalog is in-memory store catalog built from Snapshot.
type Catalog struct {
	store             Store
	measures          Measures
	primaryCurrencyID int
	languages         []models.Language
	products          []Product
	productsByID      map[int]*Product
	categories        map[int]Category
	manufacturers     map[int]Manufacturer
	currencies        map[int]Currency
	locales           map[localeKey]string
}

// New returns Catalog of snapshot.
func New(snapshot Snapshot) *Catalog {
	c := &Catalog{
		store:             snapshot.Store,
		measures:          snapshot.Measures,
		primaryCurrencyID: snapshot.PrimaryCurrencyID,
		products:          snapshot.Products,
		productsByID:      make(map[int]*Product, len(snapshot.Products)),
		categories:        lo.KeyBy(snapshot.Categories, func(c Category) int { return c.ID }),
		manufacturers:     lo.KeyBy(snapshot.Manufacturers, func(m Manufacturer) int { return m.ID }),
		currencies:        lo.KeyBy(snapshot.Currencies, func(c Currency) int { return c.ID }),
		locales:           make(map[localeKey]string, len(snapshot.Locales)),
	}

	for ix := range c.products {
		c.productsByID[c.products[ix].ID] = &c.products[ix]
	}

	c.languages = lo.FilterMap(snapshot.Languages, func(l Language, _ int) (models.Language, bool) {
		return models.Language{ID: l.ID, Name: l.Name, Culture: l.Culture}, l.Published
	})

	for _, l := range snapshot.Locales {
		key := localeKey{
			LocaleKey:  models.LocaleKey{Entity: l.Entity, EntityID: l.EntityID, Field: l.Field},
			languageID: l.LanguageID,
		}
		c.locales[key] = l.Value
	}

	return c
}

// Store returns the store catalog belongs to.
func (c *Catalog) Store(context.Context) (models.Store, error) {
	return toAppStore(c.store), nil
}

// Languages returns store's published languages.
func (c *Catalog) Languages(context.Context) ([]models.Language, error) {
	return c.languages, nil
}

// VisibleProducts calls fn for every published and individually visible product in export order.
func (c *Catalog) VisibleProducts(ctx context.Context, fn func(models.Product) error) error {
	for ix := range c.products {
		p := &c.products[ix]
		if !p.Published || !p.VisibleIndividually {
			continue
		}
		if err := fn(toAppProduct(p)); err != nil {
			return err
		}
	}

	return nil
}

// Products returns all published products in export order.
func (c *Catalog) Products() []models.Product {
	return lo.FilterMap(c.products, func(p Product, _ int) (models.Product, bool) {
		return toAppProduct(&p), p.Published
	})
}

// AssociatedProducts returns published child products of grouped product.
func (c *Catalog) AssociatedProducts(_ context.Context, productID int) ([]models.Product, error) {
	parent, ok := c.productsByID[productID]
	if !ok {
		return nil, nil
	}

	children := make([]models.Product, 0, len(parent.AssociatedProductIDs))
	for _, id := range parent.AssociatedProductIDs {
		child, ok := c.productsByID[id]
		if !ok || !child.Published {
			continue
		}
		children = append(children, toAppProduct(child))
	}

	return children, nil
}

// TotalStockQuantity returns product's stock quantity summed over warehouses.
func (c *Catalog) TotalStockQuantity(_ context.Context, productID int) (int, error) {
	p, ok := c.productsByID[productID]
	if !ok {
		return 0, nil
	}

	return lo.Sum(p.StockQuantities), nil
}

// FirstCategoryID returns ID of the first existing category product is assigned to.
func (c *Catalog) FirstCategoryID(_ context.Context, productID int) (int, bool, error) {
	p, ok := c.productsByID[productID]
	if !ok {
		return 0, false, nil
	}

	id, found := lo.Find(p.CategoryIDs, func(id int) bool {
		_, ok := c.categories[id]
		return ok
	})

	return id, found, nil
}

// Breadcrumb returns localized path from root category to categoryID.
func (c *Catalog) Breadcrumb(ctx context.Context, categoryID, languageID int) (string, error) {
	var (
		path    []string
		visited = map[int]struct{}{}
	)

	for id := categoryID; id != 0; {
		category, ok := c.categories[id]
		if !ok {
			break
		}
		if _, ok := visited[id]; ok {
			break
		}
		visited[id] = struct{}{}

		name, err := c.Localized(ctx, models.LocaleKey{Entity: "Category", EntityID: id, Field: "Name"}, languageID, category.Name)
		if err != nil {
			return "", err
		}
		path = append(path, name)
		id = category.ParentID
	}

	return strings.Join(lo.Reverse(path), breadcrumbSeparator), nil
}

// FirstManufacturer returns the first existing manufacturer product is assigned to or nil.
func (c *Catalog) FirstManufacturer(_ context.Context, productID int) (*models.Manufacturer, error) {
	p, ok := c.productsByID[productID]
	if !ok {
		return nil, nil
	}

	for _, id := range p.ManufacturerIDs {
		if m, ok := c.manufacturers[id]; ok {
			return &models.Manufacturer{ID: m.ID, Name: m.Name}, nil
		}
	}

	return nil, nil
}

// Slug returns product's localized SEO name.
func (c *Catalog) Slug(ctx context.Context, productID, languageID int) (string, error) {
	p, ok := c.productsByID[productID]
	if !ok {
		return "", fmt.Errorf("product %d: %w", productID, platform.ErrNotFound)
	}

	return c.Localized(ctx, models.LocaleKey{Entity: "Product", EntityID: productID, Field: "SeName"}, languageID, p.Slug)
}

// Localized returns field value for language or fallback if field isn't localized.
func (c *Catalog) Localized(_ context.Context, key models.LocaleKey, languageID int, fallback string) (string, error) {
	if value, ok := c.locales[localeKey{LocaleKey: key, languageID: languageID}]; ok && value != "" {
		return value, nil
	}

	return fallback, nil
}

// FinalPrice returns unit price for quantity: the lowest of list, special and tier price minus discount, never negative.
func (c *Catalog) FinalPrice(_ context.Context, product models.Product, quantity int) (decimal.Decimal, error) {
	p, ok := c.productsByID[product.ID]
	if !ok {
		return product.Price, nil
	}

	price := p.Price
	if p.SpecialPrice.Valid {
		price = decimal.Min(price, p.SpecialPrice.Decimal)
	}

	if tier, ok := applicableTier(p.TierPrices, quantity); ok {
		price = decimal.Min(price, tier.Price)
	}

	price = price.Sub(p.DiscountAmount)
	if price.IsNegative() {
		return decimal.Zero, nil
	}

	return price, nil
}

// applicableTier returns tier price with the highest quantity not greater than quantity.
func applicableTier(tiers []TierPrice, quantity int) (TierPrice, bool) {
	sorted := append([]TierPrice(nil), tiers...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Quantity > sorted[j].Quantity })

	return lo.Find(sorted, func(t TierPrice) bool { return t.Quantity <= quantity })
}

// PriceWithTax adds product tax when store displays prices including tax.
func (c *Catalog) PriceWithTax(_ context.Context, product models.Product, price decimal.Decimal) (decimal.Decimal, error) {
	p, ok := c.productsByID[product.ID]
	if !ok || !c.store.DisplayPricesIncludingTax || p.TaxRate.IsZero() {
		return price, nil
	}

	return price.Mul(decimal.NewFromInt(100).Add(p.TaxRate)).Div(decimal.NewFromInt(100)), nil
}

// RoundPrice rounds price to currency's decimals using banker's rounding.
func (c *Catalog) RoundPrice(_ context.Context, price decimal.Decimal, currency models.Currency) (decimal.Decimal, error) {
	decimals := int32(defaultDecimals)
	if cur, ok := c.currencies[currency.ID]; ok && cur.Decimals != nil {
		decimals = *cur.Decimals
	}

	return price.RoundBank(decimals), nil
}

// CurrencyByID returns currency or nil if it doesn't exist.
func (c *Catalog) CurrencyByID(_ context.Context, id int) (*models.Currency, error) {
	cur, ok := c.currencies[id]
	if !ok {
		return nil, nil
	}

	return lo.ToPtr(toAppCurrency(cur)), nil
}

// PrimaryCurrency returns store's primary currency.
func (c *Catalog) PrimaryCurrency(context.Context) (models.Currency, error) {
	cur, ok := c.currencies[c.primaryCurrencyID]
	if !ok {
		return models.Currency{}, fmt.Errorf("primary currency %d: %w", c.primaryCurrencyID, platform.ErrNotFound)
	}

	return toAppCurrency(cur), nil
}

// ConvertFromPrimary converts amount from primary currency using exchange rates.
func (c *Catalog) ConvertFromPrimary(ctx context.Context, amount decimal.Decimal, currency models.Currency) (decimal.Decimal, error) {
	if currency.ID == c.primaryCurrencyID {
		return amount, nil
	}

	primary, err := c.PrimaryCurrency(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	if primary.Rate.IsZero() || currency.Rate.IsZero() {
		return decimal.Zero, fmt.Errorf("exchange rate of %s to %s is not set: %w",
			primary.Code, currency.Code, platform.ErrConfiguration)
	}

	return amount.Mul(currency.Rate).Div(primary.Rate), nil
}

// PictureURLs returns up to limit thumbnail urls of product pictures.
func (c *Catalog) PictureURLs(_ context.Context, productID, limit, size int) ([]string, error) {
	p, ok := c.productsByID[productID]
	if !ok || len(p.Pictures) == 0 {
		return nil, nil
	}

	pictures := p.Pictures
	if len(pictures) > limit {
		pictures = pictures[:limit]
	}

	location := toAppStore(c.store).Location()

	return lo.Map(pictures, func(pic Picture, _ int) string {
		return thumbURL(location, pic, size)
	}), nil
}

// DefaultPictureURL returns placeholder thumbnail url.
func (c *Catalog) DefaultPictureURL(_ context.Context, size int) (string, error) {
	return fmt.Sprintf("%simages/thumbs/default-image_%d.png", toAppStore(c.store).Location(), size), nil
}

func thumbURL(location string, pic Picture, size int) string {
	ext := pictureExtension(pic.MimeType)
	if pic.SeoFilename == "" {
		return fmt.Sprintf("%simages/thumbs/%07d_%d.%s", location, pic.ID, size, ext)
	}

	return fmt.Sprintf("%simages/thumbs/%07d_%s_%d.%s", location, pic.ID, pic.SeoFilename, size, ext)
}

func pictureExtension(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/png", "image/x-png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	case "image/svg+xml":
		return "svg"
	default:
		return "jpeg"
	}
}

// BaseWeightKeyword returns system keyword of base weight unit.
func (c *Catalog) BaseWeightKeyword(context.Context) (string, error) {
	return c.measures.BaseWeight, nil
}

// BaseDimensionKeyword returns system keyword of base dimension unit.
func (c *Catalog) BaseDimensionKeyword(context.Context) (string, error) {
	return c.measures.BaseDimension, nil
}
