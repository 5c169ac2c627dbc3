package generator

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/MichalMitros/google-feed-generator/internal/platform"
	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

//go:generate mockery --name Metadata --filename metadata.go
//go:generate mockery --name Source --filename source.go
//go:generate mockery --name Settings --filename settings.go

const (
	maxPictures     = 10
	conditionNew    = "new"
	inStock         = "in stock"
	outOfStock      = "out of stock"
	identifierFalse = "FALSE"
)

// Metadata provides Google product records.
type Metadata interface {
	// GetAll returns all records ordered by ID.
	GetAll(ctx context.Context) ([]models.GoogleProductRecord, error)
}

// Source opens store catalogs.
type Source interface {
	// Open returns catalog of provided store.
	Open(ctx context.Context, storeID int) (Catalog, error)
}

// Settings resolves effective store scoped feed settings.
type Settings interface {
	Settings(ctx context.Context, storeID int) (models.FeedSettings, error)
}

// Clock provides times.
type Clock interface {
	// Now returns current time.
	Now() time.Time
}

// Option is custom configuration of Generator.
type Option func(g *Generator)

// Generator writes Google Shopping feeds.
type Generator struct {
	metadata Metadata
	source   Source
	settings Settings
	clock    Clock
	logger   *zerolog.Logger
}

// NewGenerator returns new Generator.
func NewGenerator(metadata Metadata, source Source, settings Settings, ops ...Option) *Generator {
	nop := zerolog.Nop()
	gen := &Generator{
		metadata: metadata,
		source:   source,
		settings: settings,
		clock:    systemClock{},
		logger:   &nop,
	}

	for _, op := range ops {
		op(gen)
	}

	return gen
}

// Generate writes feed of provided store into w and returns number of written items.
// Feed is written in languageID unless the store has a single language; zero languageID means store's default.
// Errors wrapping platform.ErrConfiguration mean no valid feed can be generated with current configuration.
// Output written before an error is not a valid feed.
func (g *Generator) Generate(ctx context.Context, w io.Writer, storeID, languageID int) (int, error) {
	r, err := g.prepareRun(ctx, storeID, languageID)
	if err != nil {
		return 0, err
	}

	feed := newFeedWriter(w)
	if err := feed.start(); err != nil {
		return 0, err
	}

	err = r.catalog.VisibleProducts(ctx, func(product models.Product) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch product.Type {
		case models.ProductTypeSimple:
			return r.writeItem(ctx, feed, product)
		case models.ProductTypeGrouped:
			children, err := r.catalog.AssociatedProducts(ctx, product.ID)
			if err != nil {
				return fmt.Errorf("can't get associated products of %d: %w", product.ID, err)
			}
			for _, child := range children {
				if err := r.writeItem(ctx, feed, child); err != nil {
					return err
				}
			}
			return nil
		default:
			g.logger.Debug().
				Int("storeId", storeID).
				Int("productId", product.ID).
				Msg("product type not supported in feed, skipped")
			return nil
		}
	})
	if err != nil {
		return feed.items, fmt.Errorf("can't write products: %w", err)
	}

	if err := feed.end(); err != nil {
		return feed.items, err
	}

	g.logger.Debug().
		Int("storeId", storeID).
		Int("languageId", r.languageID).
		Int("items", feed.items).
		Msg("feed generated")

	return feed.items, nil
}

// prepareRun resolves everything that is constant during single run.
func (g *Generator) prepareRun(ctx context.Context, storeID, languageID int) (*run, error) {
	settings, err := g.settings.Settings(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("can't resolve feed settings: %w", err)
	}

	catalog, err := g.source.Open(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("can't open catalog: %w", err)
	}

	store, err := catalog.Store(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't get store: %w", err)
	}

	r := &run{
		catalog:        catalog,
		settings:       settings,
		storeLocation:  store.Location(),
		expirationDate: g.clock.Now().AddDate(0, 0, settings.ExpirationNumberOfDays).Format(time.DateOnly),
	}

	if r.languageID, err = workingLanguage(ctx, catalog, store, languageID); err != nil {
		return nil, err
	}

	if r.records, err = g.loadRecords(ctx); err != nil {
		return nil, err
	}

	if r.currency, err = feedCurrency(ctx, catalog, settings.CurrencyID); err != nil {
		return nil, err
	}

	if settings.PassShippingInfoWeight {
		keyword, err := catalog.BaseWeightKeyword(ctx)
		if err != nil {
			return nil, fmt.Errorf("can't get base weight: %w", err)
		}
		if r.weightUnit, err = weightUnit(keyword); err != nil {
			return nil, err
		}
	}

	if settings.PassShippingInfoDimensions {
		keyword, err := catalog.BaseDimensionKeyword(ctx)
		if err != nil {
			return nil, fmt.Errorf("can't get base dimension: %w", err)
		}
		if r.dimensionUnit, err = dimensionUnit(keyword); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// loadRecords reads all records once and indexes them by product. The first record of a product wins.
func (g *Generator) loadRecords(ctx context.Context) (map[int]models.GoogleProductRecord, error) {
	all, err := g.metadata.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't load google products: %w", err)
	}

	records := make(map[int]models.GoogleProductRecord, len(all))
	for _, record := range all {
		if _, ok := records[record.ProductID]; !ok {
			records[record.ProductID] = record
		}
	}

	return records, nil
}

func workingLanguage(ctx context.Context, catalog Catalog, store models.Store, requested int) (int, error) {
	languages, err := catalog.Languages(ctx)
	if err != nil {
		return 0, fmt.Errorf("can't get store languages: %w", err)
	}

	switch {
	case len(languages) == 1:
		return languages[0].ID, nil
	case requested != 0:
		return requested, nil
	case store.DefaultLanguageID != 0:
		return store.DefaultLanguageID, nil
	case len(languages) > 0:
		return languages[0].ID, nil
	default:
		return 0, nil
	}
}

// feedCurrency returns configured currency or primary store currency if configured one is missing or unpublished.
func feedCurrency(ctx context.Context, catalog Catalog, currencyID int) (models.Currency, error) {
	currency, err := catalog.CurrencyByID(ctx, currencyID)
	if err != nil {
		return models.Currency{}, fmt.Errorf("can't get feed currency: %w", err)
	}

	if currency != nil && currency.Published {
		return *currency, nil
	}

	primary, err := catalog.PrimaryCurrency(ctx)
	if err != nil {
		return models.Currency{}, fmt.Errorf("can't get primary currency: %w", err)
	}

	return primary, nil
}

func weightUnit(keyword string) (string, error) {
	switch keyword {
	case "ounce":
		return "oz", nil
	case "lb":
		return "lb", nil
	case "grams":
		return "g", nil
	case "kg":
		return "kg", nil
	default:
		return "", fmt.Errorf("weight unit %q not supported, Google accepts lb, oz, g and kg: %w",
			keyword, platform.ErrConfiguration)
	}
}

func dimensionUnit(keyword string) (string, error) {
	switch keyword {
	case "inches":
		return "in", nil
	default:
		return "", fmt.Errorf("dimension unit %q not supported, Google accepts in and cm: %w",
			keyword, platform.ErrConfiguration)
	}
}

// run is state of single feed generation.
type run struct {
	catalog        Catalog
	settings       models.FeedSettings
	records        map[int]models.GoogleProductRecord
	currency       models.Currency
	languageID     int
	storeLocation  string
	expirationDate string
	weightUnit     string
	dimensionUnit  string
}

func (r *run) writeItem(ctx context.Context, feed *feedWriter, product models.Product) error {
	it, err := r.item(ctx, product)
	if err != nil {
		return fmt.Errorf("can't build item of product %d: %w", product.ID, err)
	}

	return feed.write(it)
}

func (r *run) item(ctx context.Context, product models.Product) (*item, error) {
	record, hasRecord := r.records[product.ID]

	it := &item{
		ID:             strconv.Itoa(product.ID),
		Condition:      conditionNew,
		ExpirationDate: r.expirationDate,
	}

	if err := r.setTexts(ctx, it, product); err != nil {
		return nil, err
	}

	category := r.settings.DefaultGoogleCategory
	if hasRecord && record.Taxonomy != "" {
		category = record.Taxonomy
	}
	if category == "" {
		return nil, fmt.Errorf("default google category is not set: %w", platform.ErrConfiguration)
	}
	it.GoogleProductCategory = cdata{Value: category}

	if err := r.setLinks(ctx, it, product); err != nil {
		return nil, err
	}

	if err := r.setAvailabilityAndPrice(ctx, it, product); err != nil {
		return nil, err
	}

	if product.GTIN != "" {
		it.GTIN = newCDATA(product.GTIN)
	}

	manufacturer, err := r.catalog.FirstManufacturer(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("can't get manufacturer: %w", err)
	}
	if manufacturer != nil {
		it.Brand = newCDATA(manufacturer.Name)
	}

	if product.MPN != "" {
		it.MPN = newCDATA(product.MPN)
	}

	if hasRecord {
		setRecordFields(it, record)
	}

	if r.settings.PassShippingInfoWeight {
		it.ShippingWeight = measure(product.Weight, r.weightUnit)
	}

	if r.settings.PassShippingInfoDimensions {
		it.ShippingLength = measure(product.Length, r.dimensionUnit)
		it.ShippingWidth = measure(product.Width, r.dimensionUnit)
		it.ShippingHeight = measure(product.Height, r.dimensionUnit)
	}

	return it, nil
}

// setTexts sets localized title, description and product type.
func (r *run) setTexts(ctx context.Context, it *item, product models.Product) error {
	title, err := r.localized(ctx, product.ID, "Name", product.Name)
	if err != nil {
		return err
	}
	it.Title = cdata{Value: truncate(title, maxTitleLength)}

	description, err := r.localized(ctx, product.ID, "FullDescription", product.FullDescription)
	if err != nil {
		return err
	}
	if description == "" {
		if description, err = r.localized(ctx, product.ID, "ShortDescription", product.ShortDescription); err != nil {
			return err
		}
	}
	if description == "" {
		description = title
	}
	it.Description = cdata{Value: stripInvalidChars(description, true)}

	categoryID, ok, err := r.catalog.FirstCategoryID(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("can't get product category: %w", err)
	}
	if !ok {
		return nil
	}

	breadcrumb, err := r.catalog.Breadcrumb(ctx, categoryID, r.languageID)
	if err != nil {
		return fmt.Errorf("can't get category breadcrumb: %w", err)
	}
	if breadcrumb != "" {
		it.ProductType = newCDATA(breadcrumb)
	}

	return nil
}

// setLinks sets product page link and picture links.
func (r *run) setLinks(ctx context.Context, it *item, product models.Product) error {
	slug, err := r.catalog.Slug(ctx, product.ID, r.languageID)
	if err != nil {
		return fmt.Errorf("can't get product slug: %w", err)
	}
	it.Link = r.storeLocation + slug

	pictures, err := r.catalog.PictureURLs(ctx, product.ID, maxPictures, r.settings.ProductPictureSize)
	if err != nil {
		return fmt.Errorf("can't get product pictures: %w", err)
	}

	if len(pictures) == 0 {
		if it.ImageLink, err = r.catalog.DefaultPictureURL(ctx, r.settings.ProductPictureSize); err != nil {
			return fmt.Errorf("can't get default picture: %w", err)
		}
		return nil
	}

	it.ImageLink = pictures[0]
	if len(pictures) > 1 {
		it.AdditionalImageLinks = pictures[1:]
	}

	return nil
}

func (r *run) setAvailabilityAndPrice(ctx context.Context, it *item, product models.Product) error {
	it.Availability = inStock
	if product.InventoryMethod == models.InventoryMethodManageStock &&
		product.BackorderMode == models.BackorderModeNoBackorders {
		quantity, err := r.catalog.TotalStockQuantity(ctx, product.ID)
		if err != nil {
			return fmt.Errorf("can't get stock quantity: %w", err)
		}
		if quantity <= 0 {
			it.Availability = outOfStock
		}
	}

	price, err := r.price(ctx, product)
	if err != nil {
		return err
	}
	it.Price = price.StringFixed(r.currency.Decimals) + " " + r.currency.Code

	return nil
}

// price returns product price in feed currency.
func (r *run) price(ctx context.Context, product models.Product) (decimal.Decimal, error) {
	base := product.Price

	if r.settings.PricesConsiderPromotions {
		minPrice, err := r.catalog.FinalPrice(ctx, product, 1)
		if err != nil {
			return decimal.Zero, fmt.Errorf("can't calculate final price: %w", err)
		}

		if product.HasTierPrices {
			tierPrice, err := r.catalog.FinalPrice(ctx, product, math.MaxInt32)
			if err != nil {
				return decimal.Zero, fmt.Errorf("can't calculate tier price: %w", err)
			}
			minPrice = decimal.Min(minPrice, tierPrice)
		}

		if base, err = r.catalog.PriceWithTax(ctx, product, minPrice); err != nil {
			return decimal.Zero, fmt.Errorf("can't calculate price with tax: %w", err)
		}
	}

	price, err := r.catalog.ConvertFromPrimary(ctx, base, r.currency)
	if err != nil {
		return decimal.Zero, fmt.Errorf("can't convert price: %w", err)
	}

	if price, err = r.catalog.RoundPrice(ctx, price, r.currency); err != nil {
		return decimal.Zero, fmt.Errorf("can't round price: %w", err)
	}

	return price, nil
}

func (r *run) localized(ctx context.Context, productID int, field, fallback string) (string, error) {
	value, err := r.catalog.Localized(ctx, models.LocaleKey{Entity: "Product", EntityID: productID, Field: field}, r.languageID, fallback)
	if err != nil {
		return "", fmt.Errorf("can't localize product %s: %w", field, err)
	}

	return value, nil
}

func setRecordFields(it *item, record models.GoogleProductRecord) {
	if record.CustomGoods {
		it.IdentifierExists = identifierFalse
	}

	for _, field := range []struct {
		dst   **cdata
		value string
	}{
		{&it.Gender, record.Gender},
		{&it.AgeGroup, record.AgeGroup},
		{&it.Color, record.Color},
		{&it.Size, record.Size},
	} {
		if field.value != "" {
			*field.dst = newCDATA(field.value)
		}
	}
}

func measure(value decimal.Decimal, unit string) string {
	return value.String() + " " + unit
}

// WithClock sets Generator's custom Clock.
func WithClock(c Clock) Option {
	return func(g *Generator) {
		g.clock = c
	}
}

// WithLogger sets Generator's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}
