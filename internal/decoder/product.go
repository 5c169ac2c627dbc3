package decoder

import "github.com/MichalMitros/google-feed-generator/internal/platform/models"

// Item is model for items in generated feed files.
type Item struct {
	ID                    string   `xml:"id"`
	Title                 string   `xml:"title"`
	Description           string   `xml:"description"`
	GoogleProductCategory string   `xml:"google_product_category"`
	ProductType           *string  `xml:"product_type"`
	Link                  string   `xml:"link"`
	ImageLink             string   `xml:"image_link"`
	AdditionalImageLinks  []string `xml:"additional_image_link"`
	Condition             string   `xml:"condition"`
	ExpirationDate        string   `xml:"expiration_date"`
	Availability          string   `xml:"availability"`
	Price                 string   `xml:"price"`
	GTIN                  *string  `xml:"gtin"`
	Brand                 *string  `xml:"brand"`
	MPN                   *string  `xml:"mpn"`
	IdentifierExists      *string  `xml:"identifier_exists"`
	Gender                *string  `xml:"gender"`
	AgeGroup              *string  `xml:"age_group"`
	Color                 *string  `xml:"color"`
	Size                  *string  `xml:"size"`
	ShippingWeight        *string  `xml:"shipping_weight"`
	ShippingLength        *string  `xml:"shipping_length"`
	ShippingWidth         *string  `xml:"shipping_width"`
	ShippingHeight        *string  `xml:"shipping_height"`
}

func toFeedItem(item *Item) models.FeedItem {
	return models.FeedItem{
		ID:                    item.ID,
		Title:                 item.Title,
		Description:           item.Description,
		Link:                  item.Link,
		ImageLink:             item.ImageLink,
		AdditionalImageLinks:  item.AdditionalImageLinks,
		Condition:             item.Condition,
		ExpirationDate:        item.ExpirationDate,
		Availability:          item.Availability,
		Price:                 item.Price,
		GoogleProductCategory: item.GoogleProductCategory,
		ProductType:           item.ProductType,
		GTIN:                  item.GTIN,
		Brand:                 item.Brand,
		MPN:                   item.MPN,
		IdentifierExists:      item.IdentifierExists,
		Gender:                item.Gender,
		AgeGroup:              item.AgeGroup,
		Color:                 item.Color,
		Size:                  item.Size,
		ShippingWeight:        item.ShippingWeight,
		ShippingLength:        item.ShippingLength,
		ShippingWidth:         item.ShippingWidth,
		ShippingHeight:        item.ShippingHeight,
	}
}
