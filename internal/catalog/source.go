package catalog

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MichalMitros/google-feed-generator/internal/generator"
	"github.com/MichalMitros/google-feed-generator/internal/platform"
	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
)

//go:generate mockery --name Fetcher --filename fetcher.go

// StoreIDPlaceholder is replaced with store ID in catalog export url templates.
const StoreIDPlaceholder = "{storeId}"

// Fetcher fetches catalog export files.
type Fetcher interface {
	// FetchFile returns ReadCloser with file fetched from provided url.
	FetchFile(ctx context.Context, fileURL string) (io.ReadCloser, error)
}

// Source loads store catalogs exported by the host platform.
type Source struct {
	fetcher     Fetcher
	urlTemplate string
}

// NewSource returns new Source fetching exports from urlTemplate.
func NewSource(fetcher Fetcher, urlTemplate string) *Source {
	return &Source{
		fetcher:     fetcher,
		urlTemplate: urlTemplate,
	}
}

// Open returns catalog of provided store.
func (s *Source) Open(ctx context.Context, storeID int) (generator.Catalog, error) {
	c, err := s.Load(ctx, storeID)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Load fetches and decodes catalog export of provided store.
func (s *Source) Load(ctx context.Context, storeID int) (*Catalog, error) {
	exportURL := strings.ReplaceAll(s.urlTemplate, StoreIDPlaceholder, strconv.Itoa(storeID))

	file, err := s.fetcher.FetchFile(ctx, exportURL)
	if err != nil {
		return nil, fmt.Errorf("can't fetch catalog export: %w", err)
	}
	defer file.Close()

	snapshot, err := DecodeSnapshot(file)
	if err != nil {
		return nil, err
	}

	if snapshot.Store.ID != storeID {
		return nil, fmt.Errorf("catalog export %s belongs to store %d, not %d: %w",
			exportURL, snapshot.Store.ID, storeID, platform.ErrConfiguration)
	}

	return New(snapshot), nil
}

// Products returns published products of provided store.
func (s *Source) Products(ctx context.Context, storeID int) ([]models.Product, error) {
	c, err := s.Load(ctx, storeID)
	if err != nil {
		return nil, err
	}

	return c.Products(), nil
}
