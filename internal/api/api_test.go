package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MichalMitros/google-feed-generator/internal/api"
	"github.com/MichalMitros/google-feed-generator/internal/api/mocks"
	"github.com/MichalMitros/google-feed-generator/internal/platform"
	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/MichalMitros/google-feed-generator/internal/platform/models/modelstesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	statusCodeAssertMsg = "should return correct status code"
	testAPIKey          = "secret"
)

type collaborators struct {
	metadata *mocks.Metadata
	products *mocks.Products
	runner   *mocks.Runner
	files    *mocks.Files
}

func newServer(t *testing.T, ops ...api.Option) (*api.Server, collaborators) {
	t.Helper()

	c := collaborators{
		metadata: mocks.NewMetadata(t),
		products: mocks.NewProducts(t),
		runner:   mocks.NewRunner(t),
		files:    mocks.NewFiles(t),
	}

	return api.NewServer(c.metadata, c.products, c.runner, c.files, ops...), c
}

func do(srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	return rec
}

func TestUnitHealth(t *testing.T) {
	srv, _ := newServer(t, api.WithAPIKey(testAPIKey))

	rec := do(srv, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code, statusCodeAssertMsg)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String(), "should return status")
}

func TestUnitAPIKey(t *testing.T) {
	tests := map[string]struct {
		header   string
		wantCode int
	}{
		"valid key": {
			header:   "Bearer " + testAPIKey,
			wantCode: http.StatusOK,
		},
		"invalid key": {
			header:   "Bearer other",
			wantCode: http.StatusUnauthorized,
		},
		"key prefix": {
			header:   "Bearer " + testAPIKey[:len(testAPIKey)-1],
			wantCode: http.StatusUnauthorized,
		},
		"key with suffix": {
			header:   "Bearer " + testAPIKey + "x",
			wantCode: http.StatusUnauthorized,
		},
		"key with different case": {
			header:   "Bearer " + strings.ToUpper(testAPIKey),
			wantCode: http.StatusUnauthorized,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv, c := newServer(t, api.WithAPIKey(testAPIKey))
			c.metadata.On("Taxonomy").Return([]string{"Media"}, nil).Maybe()

			req := httptest.NewRequest(http.MethodGet, "/api/taxonomy", nil)
			req.Header.Set("Authorization", tt.header)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code, statusCodeAssertMsg)
		})
	}
}

func TestUnitMissingAPIKey(t *testing.T) {
	srv, _ := newServer(t, api.WithAPIKey(testAPIKey))

	rec := do(srv, http.MethodGet, "/api/taxonomy", "")

	assert.NotEqual(t, http.StatusOK, rec.Code, "shouldn't allow request without key")
}

func TestUnitListRecords(t *testing.T) {
	records := []models.GoogleProductRecord{
		modelstesting.FakeGoogleProductRecord(func(r *models.GoogleProductRecord) { r.ID = 1 }),
		modelstesting.FakeGoogleProductRecord(func(r *models.GoogleProductRecord) { r.ID = 2 }),
	}

	srv, c := newServer(t)
	c.metadata.On("GetAll", mock.Anything).Return(records, nil).Once()

	rec := do(srv, http.MethodGet, "/api/google-products", "")

	require.Equal(t, http.StatusOK, rec.Code, statusCodeAssertMsg)
	var got []models.GoogleProductRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got), "should return valid json")
	assert.Equal(t, records, got, "should return all records")
}

func TestUnitGetRecord(t *testing.T) {
	record := modelstesting.FakeGoogleProductRecord(func(r *models.GoogleProductRecord) {
		r.ID = 3
		r.ProductID = 12
	})

	tests := map[string]struct {
		target   string
		mock     func(m *mocks.Metadata)
		wantCode int
	}{
		"existing record": {
			target: "/api/google-products/12",
			mock: func(m *mocks.Metadata) {
				m.On("GetByProductID", mock.Anything, 12).Return(&record, nil).Once()
			},
			wantCode: http.StatusOK,
		},
		"missing record": {
			target: "/api/google-products/12",
			mock: func(m *mocks.Metadata) {
				m.On("GetByProductID", mock.Anything, 12).Return(nil, nil).Once()
			},
			wantCode: http.StatusNotFound,
		},
		"invalid product id": {
			target:   "/api/google-products/abc",
			mock:     func(*mocks.Metadata) {},
			wantCode: http.StatusBadRequest,
		},
		"zero product id": {
			target:   "/api/google-products/0",
			mock:     func(*mocks.Metadata) {},
			wantCode: http.StatusBadRequest,
		},
		"storage error": {
			target: "/api/google-products/12",
			mock: func(m *mocks.Metadata) {
				m.On("GetByProductID", mock.Anything, 12).Return(nil, assert.AnError).Once()
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv, c := newServer(t)
			tt.mock(c.metadata)

			rec := do(srv, http.MethodGet, tt.target, "")

			assert.Equal(t, tt.wantCode, rec.Code, statusCodeAssertMsg)
		})
	}
}

func TestUnitPutRecord(t *testing.T) {
	srv, c := newServer(t)
	c.metadata.On("Upsert", mock.Anything, mock.MatchedBy(func(r *models.GoogleProductRecord) bool {
		return r.ProductID == 12 && r.ID == 0 && r.Gender == "female" && r.CustomGoods
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.GoogleProductRecord).ID = 7
	}).Return(nil).Once()

	rec := do(srv, http.MethodPut, "/api/google-products/12",
		`{"id":99,"productId":1,"gender":"female","customGoods":true}`)

	require.Equal(t, http.StatusOK, rec.Code, statusCodeAssertMsg)
	var got models.GoogleProductRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got), "should return valid json")
	assert.Equal(t, 7, got.ID, "should return stored record id")
	assert.Equal(t, 12, got.ProductID, "should use product id from path")
}

func TestUnitPutRecordErrors(t *testing.T) {
	tests := map[string]struct {
		body     string
		mockErr  error
		wantCode int
	}{
		"malformed body": {
			body:     `{"gender":`,
			wantCode: http.StatusBadRequest,
		},
		"validation error": {
			body:     `{"gender":"male"}`,
			mockErr:  platform.ErrValidation,
			wantCode: http.StatusBadRequest,
		},
		"storage error": {
			body:     `{"gender":"male"}`,
			mockErr:  assert.AnError,
			wantCode: http.StatusInternalServerError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv, c := newServer(t)
			if tt.mockErr != nil {
				c.metadata.On("Upsert", mock.Anything, mock.Anything).Return(tt.mockErr).Once()
			}

			rec := do(srv, http.MethodPut, "/api/google-products/12", tt.body)

			assert.Equal(t, tt.wantCode, rec.Code, statusCodeAssertMsg)
		})
	}
}

func TestUnitDeleteRecord(t *testing.T) {
	record := modelstesting.FakeGoogleProductRecord(func(r *models.GoogleProductRecord) {
		r.ID = 3
		r.ProductID = 12
	})

	tests := map[string]struct {
		mock     func(m *mocks.Metadata)
		wantCode int
	}{
		"existing record": {
			mock: func(m *mocks.Metadata) {
				m.On("GetByProductID", mock.Anything, 12).Return(&record, nil).Once()
				m.On("Delete", mock.Anything, &record).Return(nil).Once()
			},
			wantCode: http.StatusNoContent,
		},
		"missing record": {
			mock: func(m *mocks.Metadata) {
				m.On("GetByProductID", mock.Anything, 12).Return(nil, nil).Once()
			},
			wantCode: http.StatusNotFound,
		},
		"delete error": {
			mock: func(m *mocks.Metadata) {
				m.On("GetByProductID", mock.Anything, 12).Return(&record, nil).Once()
				m.On("Delete", mock.Anything, &record).Return(assert.AnError).Once()
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv, c := newServer(t)
			tt.mock(c.metadata)

			rec := do(srv, http.MethodDelete, "/api/google-products/12", "")

			assert.Equal(t, tt.wantCode, rec.Code, statusCodeAssertMsg)
		})
	}
}

func TestUnitListStoreProducts(t *testing.T) {
	products := []models.Product{
		{ID: 12, Name: "Running Shoes"},
		{ID: 21, Name: "Laptop 13"},
		{ID: 22, Name: "Laptop 15"},
	}
	records := []models.GoogleProductRecord{
		{ID: 1, ProductID: 12, Taxonomy: "Apparel & Accessories > Shoes", Gender: "male"},
		{ID: 2, ProductID: 12, Taxonomy: "Media"},
		{ID: 3, ProductID: 22, Color: "silver", CustomGoods: true},
	}

	tests := map[string]struct {
		query     string
		wantIDs   []int
		wantTotal int
	}{
		"all products": {
			query:     "",
			wantIDs:   []int{12, 21, 22},
			wantTotal: 3,
		},
		"name filter": {
			query:     "?q=laptop",
			wantIDs:   []int{21, 22},
			wantTotal: 2,
		},
		"second page": {
			query:     "?page=2&pageSize=2",
			wantIDs:   []int{22},
			wantTotal: 3,
		},
		"page after the last one": {
			query:     "?page=5&pageSize=2",
			wantIDs:   []int{},
			wantTotal: 3,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv, c := newServer(t)
			c.products.On("Products", mock.Anything, 1).Return(products, nil).Once()
			c.metadata.On("GetAll", mock.Anything).Return(records, nil).Once()

			rec := do(srv, http.MethodGet, "/api/stores/1/google-products"+tt.query, "")

			require.Equal(t, http.StatusOK, rec.Code, statusCodeAssertMsg)
			var got api.Page[api.StoreProduct]
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got), "should return valid json")
			assert.Equal(t, tt.wantTotal, got.Total, "should return correct total")
			ids := make([]int, 0, len(got.Items))
			for _, it := range got.Items {
				ids = append(ids, it.ProductID)
			}
			assert.Equal(t, tt.wantIDs, ids, "should return correct products")
		})
	}
}

func TestUnitListStoreProductsJoin(t *testing.T) {
	srv, c := newServer(t)
	c.products.On("Products", mock.Anything, 1).Return([]models.Product{
		{ID: 12, Name: "Running Shoes"},
		{ID: 21, Name: "Laptop 13"},
	}, nil).Once()
	c.metadata.On("GetAll", mock.Anything).Return([]models.GoogleProductRecord{
		{ID: 1, ProductID: 12, Taxonomy: "Apparel & Accessories > Shoes", Gender: "male"},
		{ID: 2, ProductID: 12, Taxonomy: "Media"},
	}, nil).Once()

	rec := do(srv, http.MethodGet, "/api/stores/1/google-products", "")

	require.Equal(t, http.StatusOK, rec.Code, statusCodeAssertMsg)
	var got api.Page[api.StoreProduct]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got), "should return valid json")
	assert.Equal(t, []api.StoreProduct{
		{ProductID: 12, ProductName: "Running Shoes", Taxonomy: "Apparel & Accessories > Shoes", Gender: "male"},
		{ProductID: 21, ProductName: "Laptop 13"},
	}, got.Items, "should use the first record of product and empty values for products without record")
}

func TestUnitListStoreProductsErrors(t *testing.T) {
	tests := map[string]struct {
		target   string
		mock     func(c collaborators)
		wantCode int
	}{
		"invalid store id": {
			target:   "/api/stores/x/google-products",
			mock:     func(collaborators) {},
			wantCode: http.StatusBadRequest,
		},
		"invalid page size": {
			target:   "/api/stores/1/google-products?pageSize=1000",
			mock:     func(collaborators) {},
			wantCode: http.StatusBadRequest,
		},
		"invalid page": {
			target:   "/api/stores/1/google-products?page=0",
			mock:     func(collaborators) {},
			wantCode: http.StatusBadRequest,
		},
		"unknown store": {
			target: "/api/stores/2/google-products",
			mock: func(c collaborators) {
				c.products.On("Products", mock.Anything, 2).Return(nil, platform.ErrNotFound).Once()
			},
			wantCode: http.StatusNotFound,
		},
		"metadata error": {
			target: "/api/stores/1/google-products",
			mock: func(c collaborators) {
				c.products.On("Products", mock.Anything, 1).Return([]models.Product{}, nil).Once()
				c.metadata.On("GetAll", mock.Anything).Return(nil, assert.AnError).Once()
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv, c := newServer(t)
			tt.mock(c)

			rec := do(srv, http.MethodGet, tt.target, "")

			assert.Equal(t, tt.wantCode, rec.Code, statusCodeAssertMsg)
		})
	}
}

func TestUnitTaxonomy(t *testing.T) {
	srv, c := newServer(t)
	c.metadata.On("Taxonomy").Return([]string{"Media", "Apparel & Accessories"}, nil).Once()

	rec := do(srv, http.MethodGet, "/api/taxonomy", "")

	require.Equal(t, http.StatusOK, rec.Code, statusCodeAssertMsg)
	assert.JSONEq(t, `["Media","Apparel & Accessories"]`, rec.Body.String(), "should return categories")
}

func TestUnitGenerate(t *testing.T) {
	results := []models.RunResult{{StoreID: 1, Success: true}}

	tests := map[string]struct {
		target       string
		wantStoreIDs []int
		wantCode     int
	}{
		"single store": {
			target:       "/api/feeds/generate?storeId=1",
			wantStoreIDs: []int{1},
			wantCode:     http.StatusOK,
		},
		"all stores": {
			target:   "/api/feeds/generate",
			wantCode: http.StatusOK,
		},
		"zero store id means all stores": {
			target:   "/api/feeds/generate?storeId=0",
			wantCode: http.StatusOK,
		},
		"negative store id": {
			target:   "/api/feeds/generate?storeId=-1",
			wantCode: http.StatusBadRequest,
		},
		"invalid store id": {
			target:   "/api/feeds/generate?storeId=one",
			wantCode: http.StatusBadRequest,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv, c := newServer(t)
			if tt.wantCode == http.StatusOK {
				c.runner.On("Run", mock.Anything, tt.wantStoreIDs).Return(results).Once()
			}

			rec := do(srv, http.MethodPost, tt.target, "")

			require.Equal(t, tt.wantCode, rec.Code, statusCodeAssertMsg)
			if tt.wantCode == http.StatusOK {
				assert.JSONEq(t, `[{"storeId":1,"success":true}]`, rec.Body.String(), "should return run results")
			}
		})
	}
}

func TestUnitGenerateAlreadyRunning(t *testing.T) {
	running := fmt.Errorf("lock feed:1 is taken: %w", platform.ErrAlreadyRunning)

	tests := map[string]struct {
		target   string
		storeIDs []int
		results  []models.RunResult
		wantCode int
	}{
		"single store already running": {
			target:   "/api/feeds/generate?storeId=1",
			storeIDs: []int{1},
			results:  []models.RunResult{{StoreID: 1, Message: running.Error(), Err: running}},
			wantCode: http.StatusConflict,
		},
		"single store failed": {
			target:   "/api/feeds/generate?storeId=1",
			storeIDs: []int{1},
			results:  []models.RunResult{{StoreID: 1, Message: assert.AnError.Error(), Err: assert.AnError}},
			wantCode: http.StatusOK,
		},
		"one of all stores already running": {
			target: "/api/feeds/generate",
			results: []models.RunResult{
				{StoreID: 1, Message: running.Error(), Err: running},
				{StoreID: 2, Success: true},
			},
			wantCode: http.StatusOK,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv, c := newServer(t)
			c.runner.On("Run", mock.Anything, tt.storeIDs).Return(tt.results).Once()

			rec := do(srv, http.MethodPost, tt.target, "")

			assert.Equal(t, tt.wantCode, rec.Code, statusCodeAssertMsg)
		})
	}
}

func TestUnitListFeeds(t *testing.T) {
	files := []models.GeneratedFile{{StoreID: 1, Name: "1-feed.xml", URL: "http://shop.test/files/exportimport/1-feed.xml"}}

	tests := map[string]struct {
		filesErr error
		wantCode int
	}{
		"files": {
			wantCode: http.StatusOK,
		},
		"files error": {
			filesErr: assert.AnError,
			wantCode: http.StatusInternalServerError,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv, c := newServer(t)
			c.runner.On("StoreIDs").Return([]int{1, 2}).Once()
			if tt.filesErr != nil {
				c.files.On("Files", mock.Anything, []int{1, 2}).Return(nil, tt.filesErr).Once()
			} else {
				c.files.On("Files", mock.Anything, []int{1, 2}).Return(files, nil).Once()
			}

			rec := do(srv, http.MethodGet, "/api/feeds", "")

			assert.Equal(t, tt.wantCode, rec.Code, statusCodeAssertMsg)
		})
	}
}

func TestUnitStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1-feed.xml"), []byte("<rss/>"), 0o644), "should write file")

	srv, _ := newServer(t, api.WithAPIKey(testAPIKey), api.WithStaticFiles("files/exportimport", dir))

	rec := do(srv, http.MethodGet, "/files/exportimport/1-feed.xml", "")
	require.Equal(t, http.StatusOK, rec.Code, statusCodeAssertMsg)
	assert.Equal(t, "<rss/>", rec.Body.String(), "should serve generated file without key")

	rec = do(srv, http.MethodGet, "/files/exportimport/2-feed.xml", "")
	assert.Equal(t, http.StatusNotFound, rec.Code, statusCodeAssertMsg)
}
