package decoder_test

import (
	"context"
	"io"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/MichalMitros/google-feed-generator/internal/decoder"
	"github.com/MichalMitros/google-feed-generator/internal/decoder/testdata"
	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const feedFileName = "feed.xml"

func TestUnitDecode(t *testing.T) {
	file := FeedFileAsReader(t)

	results := make(chan models.ParsingResult)
	dec := decoder.Decoder{}

	var eg errgroup.Group

	eg.Go(func() error {
		defer close(results)
		return dec.Decode(context.TODO(), file, results)
	})

	var (
		items          []models.FeedItem
		decodingErrors []error
	)
	eg.Go(func() error {
		items, decodingErrors = collect(results)
		return nil
	})

	require.NoError(t, eg.Wait(), "should not return any error")
	assert.Equal(t, testdata.Items, items, "should correctly decode all items")
	assert.Equal(t, []error{nil, nil}, decodingErrors,
		"should decode all items without any error",
	)
}

func TestUnitDecodeBadXMLFormat(t *testing.T) {
	badFile := strings.NewReader("<item><g:id></item>")

	results := make(chan models.ParsingResult)
	dec := decoder.Decoder{}

	var eg errgroup.Group

	eg.Go(func() error {
		defer close(results)
		return dec.Decode(context.TODO(), badFile, results)
	})

	var (
		items          []models.FeedItem
		decodingErrors []error
	)
	eg.Go(func() error {
		items, decodingErrors = collect(results)
		return nil
	})

	require.EqualError(t, eg.Wait(),
		"XML syntax error on line 1: element <id> closed by </item>",
		"should return correct decoding error",
	)
	assert.Equal(t, []models.FeedItem{{}}, items, "should return empty item")
	require.EqualError(t, decodingErrors[0],
		"XML syntax error on line 1: element <id> closed by </item>",
		"should return correct decoding error",
	)
}

func TestUnitDecodeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := decoder.Decoder{}.Decode(ctx, FeedFileAsReader(t), make(chan models.ParsingResult))

	require.ErrorIs(t, err, context.Canceled, "should stop on cancelled context")
}

func TestUnitCount(t *testing.T) {
	tests := map[string]struct {
		file      io.Reader
		wantCount int
		wantErr   string
	}{
		"valid feed": {
			file:      FeedFileAsReader(t),
			wantCount: 2,
		},
		"feed without items": {
			file: strings.NewReader(`<?xml version="1.0" encoding="utf-8"?><rss version="2.0"><channel></channel></rss>`),
		},
		"truncated feed": {
			file:      strings.NewReader(`<rss version="2.0"><channel><item><g:id>1</g:id></item><item>`),
			wantCount: 1,
			wantErr:   "XML syntax error on line 1: unexpected EOF",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := decoder.Decoder{}.Count(context.TODO(), tt.file)

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr, "should return decoding error")
			} else {
				require.NoError(t, err, "shouldn't return any error")
			}
			assert.Equal(t, tt.wantCount, got, "should count decoded items")
		})
	}
}

func collect(resultsCh <-chan models.ParsingResult) ([]models.FeedItem, []error) {
	var (
		items  []models.FeedItem
		errors []error
	)

	for result := range resultsCh {
		items = append(items, result.Item)
		errors = append(errors, result.Error)
	}

	return items, errors
}

// FeedFileAsReader returns io.Reader with feed file.
func FeedFileAsReader(t *testing.T) io.Reader {
	t.Helper()

	f, err := os.Open(path.Join("testdata", feedFileName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	return f
}
