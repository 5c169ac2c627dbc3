package testdata

import (
	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/samber/lo"
)

// Items are feed items stored in feed.xml.
var Items = []models.FeedItem{
	{
		ID:                    "12",
		Title:                 "Nike Floral Roshe Customized Running Shoes",
		Description:           "When you need to look good & run fast.",
		GoogleProductCategory: "Apparel & Accessories > Shoes",
		ProductType:           lo.ToPtr("Apparel > Shoes"),
		Link:                  "https://shop.example.com/nike-floral-roshe-customized-running-shoes",
		ImageLink:             "https://shop.example.com/images/thumbs/0000023_nike-floral-roshe_125.jpeg",
		AdditionalImageLinks: []string{
			"https://shop.example.com/images/thumbs/0000024_nike-floral-roshe_125.jpeg",
			"https://shop.example.com/images/thumbs/0000025_nike-floral-roshe_125.jpeg",
		},
		Condition:      "new",
		ExpirationDate: "2024-03-29",
		Availability:   "in stock",
		Price:          "40.00 USD",
		GTIN:           lo.ToPtr("00012345600012"),
		Brand:          lo.ToPtr("Nike"),
		MPN:            lo.ToPtr("NK-ROSHE-01"),
		Gender:         lo.ToPtr("female"),
		AgeGroup:       lo.ToPtr("adult"),
		Color:          lo.ToPtr("multicolor"),
		Size:           lo.ToPtr("9"),
		ShippingWeight: lo.ToPtr("2 lb"),
	},
	{
		ID:                    "45",
		Title:                 "Custom T-Shirt",
		Description:           "Custom T-Shirt",
		GoogleProductCategory: "Apparel & Accessories",
		Link:                  "https://shop.example.com/custom-t-shirt",
		ImageLink:             "https://shop.example.com/images/thumbs/default-image_125.png",
		Condition:             "new",
		ExpirationDate:        "2024-03-29",
		Availability:          "out of stock",
		Price:                 "15.00 USD",
		IdentifierExists:      lo.ToPtr("FALSE"),
	},
}
