package fetcher

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"
)

var (
	// ErrStatusNotOK is returned when catalog export response status isn't 200 OK.
	ErrStatusNotOK = errors.New("response status is not 200 OK")
	// ErrContentTypeNotSupported is returned when catalog export is neither json nor gzip.
	ErrContentTypeNotSupported = errors.New("response content type not supported")
)

// Fetcher builds http requests and fetches catalog export files via http or from local file system.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher returns new Fetcher.
func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
	}
}

// FetchFile returns ReadCloser with file fetched from provided url or error.
// Urls with file scheme are opened from local file system, gzipped files are recognized by .gz extension.
// The caller is responsible for closing returned ReadCloser.
func (f *Fetcher) FetchFile(ctx context.Context, fileURL string) (io.ReadCloser, error) {
	if strings.HasPrefix(fileURL, "file://") {
		return openFile(fileURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Add("Accept", "application/json")
	req.Header.Add("Accept-Encoding", "gzip")
	req.Header.Add("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get http response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, ErrStatusNotOK
	}

	body := resp.Body
	// gzip transfer is negotiated manually, so the transport doesn't decode it
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		if body, err = decompressResponse(body); err != nil {
			return nil, err
		}
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		return body, nil
	case "application/gzip", "application/zip":
		return decompressResponse(body)
	default:
		_ = body.Close()
		return nil, ErrContentTypeNotSupported
	}
}

func openFile(fileURL string) (io.ReadCloser, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return nil, fmt.Errorf("can't parse file url: %w", err)
	}

	file, err := os.Open(parsed.Host + parsed.Path)
	if err != nil {
		return nil, fmt.Errorf("can't open file: %w", err)
	}

	if strings.HasSuffix(parsed.Path, ".gz") {
		return decompressResponse(file)
	}

	return file, nil
}

// decompressResponse returns io.ReadCloser with decompressed http response and error.
func decompressResponse(response io.ReadCloser) (io.ReadCloser, error) {
	decompressed, err := gzip.NewReader(response)
	if err != nil {
		_ = response.Close()
		return nil, fmt.Errorf("can't decompress response: %w", err)
	}

	return &decompressedReadCloser{
		compressed:   response,
		decompressed: decompressed,
	}, nil
}

// decompressedReadCloser wraps decompressed Reader and compressed ReadCloser.
// It reads from decompressed Reader, but closes compressed ReadCloser.
type decompressedReadCloser struct {
	compressed   io.ReadCloser
	decompressed io.Reader
}

// Read reads uncompressed bytes from underlying Reader into p.
// Returns number of read bytes and error.
func (r decompressedReadCloser) Read(p []byte) (n int, err error) {
	return r.decompressed.Read(p)
}

// Close closes underlying compressed ReadCloser.
func (r decompressedReadCloser) Close() error {
	return r.compressed.Close()
}
