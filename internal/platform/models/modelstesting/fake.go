package modelstesting

import (
	"math/rand"

	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/go-faker/faker/v4"
)

// FakeGoogleProductRecord returns models.GoogleProductRecord with fake data.
func FakeGoogleProductRecord(ops ...func(r *models.GoogleProductRecord)) models.GoogleProductRecord {
	record := models.GoogleProductRecord{
		ProductID:   rand.Intn(100000) + 1,
		Taxonomy:    faker.Word(),
		Gender:      faker.Word(),
		AgeGroup:    faker.Word(),
		Color:       faker.Word(),
		Size:        faker.Word(),
		CustomGoods: rand.Intn(2) == 1,
	}

	for _, op := range ops {
		op(&record)
	}

	return record
}

// FakeFeedSettings returns models.FeedSettings with fake data and install defaults.
func FakeFeedSettings(ops ...func(s *models.FeedSettings)) models.FeedSettings {
	settings := models.FeedSettings{
		CurrencyID:             1,
		DefaultGoogleCategory:  faker.Word(),
		ProductPictureSize:     125,
		StaticFileName:         faker.Word() + ".xml",
		ExpirationNumberOfDays: 28,
	}

	for _, op := range ops {
		op(&settings)
	}

	return settings
}
