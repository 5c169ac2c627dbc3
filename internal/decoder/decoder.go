package decoder

import (
	"context"
	"encoding/xml"
	"errors"
	"html"
	"io"

	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/samber/lo"
)

// Decoder decodes generated xml feeds into feed items.
type Decoder struct{}

// Decode decodes items from xmlFile and returns each item with decoding error into output channel.
func (d Decoder) Decode(ctx context.Context, xmlFile io.Reader, output chan<- models.ParsingResult) error {
	dec := xml.NewDecoder(xmlFile)
	dec.Strict = true

	for {
		token, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch element := token.(type) {
		case xml.StartElement:
			if element.Name.Local != "item" {
				continue
			}
			var item Item
			err = dec.DecodeElement(&item, &element)

			unescapeItemFields(&item)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case output <- models.ParsingResult{
				Item:  toFeedItem(&item),
				Error: err,
			}:
			}
		default:
			continue
		}
	}
}

// Count decodes whole xmlFile and returns number of correctly decoded items with the first decoding error.
func (d Decoder) Count(ctx context.Context, xmlFile io.Reader) (int, error) {
	results := make(chan models.ParsingResult)
	errCh := make(chan error, 1)

	go func() {
		defer close(results)
		errCh <- d.Decode(ctx, xmlFile, results)
	}()

	var (
		count    int
		firstErr error
	)
	for result := range results {
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		count++
	}

	if err := <-errCh; err != nil {
		return count, err
	}

	return count, firstErr
}

// unescapeItemFields unescapes html characters from item title, description, category and type.
func unescapeItemFields(item *Item) {
	item.Title = html.UnescapeString(item.Title)
	item.Description = html.UnescapeString(item.Description)
	item.GoogleProductCategory = html.UnescapeString(item.GoogleProductCategory)
	if item.ProductType != nil {
		item.ProductType = lo.ToPtr(html.UnescapeString(*item.ProductType))
	}
}
