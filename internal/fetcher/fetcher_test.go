package fetcher_test

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/MichalMitros/google-feed-generator/internal/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userAgent   = "test/0.0.0"
	response    = `{"store":{"id":1}}`
	endpoint    = "/catalog/1.json"
	contentType = "Content-Type"
)

func TestUnitFetchFile(t *testing.T) {
	wantHeaders := map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "application/json",
		"Accept-Encoding": "gzip",
	}

	tests := map[string]struct {
		serverHandler http.Handler
		wantBody      string
		wantErr       error
	}{
		"ok json": {
			serverHandler: http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				validateHeaders(t, req.Header, wantHeaders)
				wrt.Header().Add(contentType, "application/json; charset=utf-8")
				wrt.WriteHeader(http.StatusOK)
				_, _ = wrt.Write([]byte(response))
			}),
			wantBody: response,
		},
		"ok gzip": {
			serverHandler: http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				validateHeaders(t, req.Header, wantHeaders)
				wrt.Header().Add(contentType, "application/gzip")
				wrt.WriteHeader(http.StatusOK)
				compressedWrt := gzip.NewWriter(wrt)
				_, _ = compressedWrt.Write([]byte(response))
				_ = compressedWrt.Close()
			}),
			wantBody: response,
		},
		"ok gzip encoded json": {
			serverHandler: http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				validateHeaders(t, req.Header, wantHeaders)
				wrt.Header().Add(contentType, "application/json")
				wrt.Header().Add("Content-Encoding", "gzip")
				wrt.WriteHeader(http.StatusOK)
				compressedWrt := gzip.NewWriter(wrt)
				_, _ = compressedWrt.Write([]byte(response))
				_ = compressedWrt.Close()
			}),
			wantBody: response,
		},
		"broken gzip encoding error": {
			serverHandler: http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				validateHeaders(t, req.Header, wantHeaders)
				wrt.Header().Add(contentType, "application/json")
				wrt.Header().Add("Content-Encoding", "gzip")
				wrt.WriteHeader(http.StatusOK)
				_, _ = wrt.Write([]byte(response))
			}),
			wantErr: gzip.ErrHeader,
		},
		"bad status error": {
			serverHandler: http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				validateHeaders(t, req.Header, wantHeaders)
				wrt.WriteHeader(http.StatusInternalServerError)
			}),
			wantErr: fetcher.ErrStatusNotOK,
		},
		"bad content type error": {
			serverHandler: http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				validateHeaders(t, req.Header, wantHeaders)
				wrt.Header().Add(contentType, "application/xml")
				wrt.WriteHeader(http.StatusOK)
				_, _ = wrt.Write([]byte(response))
			}),
			wantErr: fetcher.ErrContentTypeNotSupported,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(tt.serverHandler)
			t.Cleanup(func() {
				srv.Close()
			})

			fet := fetcher.NewFetcher(srv.Client(), userAgent)
			resp, err := fet.FetchFile(context.TODO(), srv.URL+endpoint)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, readAndClose(t, resp), "should return correct response")
			}
		})
	}
}

func TestUnitFetchLocalFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "1.json")
	require.NoError(t, os.WriteFile(plain, []byte(response), 0o600), "should write test file")

	compressed := filepath.Join(dir, "1.json.gz")
	file, err := os.Create(compressed)
	require.NoError(t, err, "should create test file")
	gzWrt := gzip.NewWriter(file)
	_, err = gzWrt.Write([]byte(response))
	require.NoError(t, err, "should write test file")
	require.NoError(t, gzWrt.Close(), "should close gzip writer")
	require.NoError(t, file.Close(), "should close test file")

	tests := map[string]struct {
		path     string
		wantBody string
		wantErr  bool
	}{
		"plain file": {
			path:     plain,
			wantBody: response,
		},
		"gzipped file": {
			path:     compressed,
			wantBody: response,
		},
		"missing file": {
			path:    filepath.Join(dir, "missing.json"),
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fet := fetcher.NewFetcher(http.DefaultClient, userAgent)
			resp, err := fet.FetchFile(context.TODO(), "file://"+tt.path)

			if tt.wantErr {
				require.ErrorIs(t, err, os.ErrNotExist, "should return not exist error")
				return
			}

			require.NoError(t, err, "shouldn't return any error")
			assert.Equal(t, tt.wantBody, readAndClose(t, resp), "should return file content")
		})
	}
}

// readAndClose reads ReadCloser, closes it and returns result as string.
func readAndClose(t *testing.T, reader io.ReadCloser) string {
	t.Helper()

	if !assert.NotNil(t, reader, "reader shouldn't be nil") {
		return ""
	}

	result, err := io.ReadAll(reader)
	if !assert.NoError(t, err, "can't read reader") {
		return ""
	}

	assert.NoError(t, reader.Close(), "can't close reader")

	return string(result)
}

// validateHeaders asserts request headers.
func validateHeaders(t *testing.T, headers http.Header, expected map[string]string) {
	t.Helper()

	for header, expectedValue := range expected {
		assert.Equalf(t, expectedValue, headers.Get(header), "request should contain correct value for header %s", header)
	}
}
