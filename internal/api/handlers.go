package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/MichalMitros/google-feed-generator/internal/platform"
	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// StoreProduct is catalog product joined with its Google metadata.
type StoreProduct struct {
	ProductID   int    `json:"productId"`
	ProductName string `json:"productName"`
	Taxonomy    string `json:"taxonomy"`
	Gender      string `json:"gender"`
	AgeGroup    string `json:"ageGroup"`
	Color       string `json:"color"`
	Size        string `json:"size"`
	CustomGoods bool   `json:"customGoods"`
}

// Page is single page of a listing.
type Page[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listRecords(c echo.Context) error {
	records, err := s.metadata.GetAll(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, records)
}

func (s *Server) getRecord(c echo.Context) error {
	productID, err := intParam(c, "productId")
	if err != nil {
		return err
	}

	record, err := s.metadata.GetByProductID(c.Request().Context(), productID)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("google product %d: %w", productID, platform.ErrNotFound)
	}

	return c.JSON(http.StatusOK, record)
}

func (s *Server) putRecord(c echo.Context) error {
	productID, err := intParam(c, "productId")
	if err != nil {
		return err
	}

	var record models.GoogleProductRecord
	if err := c.Bind(&record); err != nil {
		return fmt.Errorf("can't bind google product: %w", platform.ErrValidation)
	}
	record.ID = 0
	record.ProductID = productID

	if err := s.metadata.Upsert(c.Request().Context(), &record); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, record)
}

func (s *Server) deleteRecord(c echo.Context) error {
	productID, err := intParam(c, "productId")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	record, err := s.metadata.GetByProductID(ctx, productID)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("google product %d: %w", productID, platform.ErrNotFound)
	}

	if err := s.metadata.Delete(ctx, record); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// listStoreProducts returns store's products with their metadata, empty values are used for products without record.
func (s *Server) listStoreProducts(c echo.Context) error {
	storeID, err := intParam(c, "storeId")
	if err != nil {
		return err
	}

	page, pageSize, err := pagination(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	products, err := s.products.Products(ctx, storeID)
	if err != nil {
		return err
	}

	records, err := s.metadata.GetAll(ctx)
	if err != nil {
		return err
	}

	byProduct := make(map[int]models.GoogleProductRecord, len(records))
	for _, r := range records {
		if _, ok := byProduct[r.ProductID]; !ok {
			byProduct[r.ProductID] = r
		}
	}

	query := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))
	rows := lo.FilterMap(products, func(p models.Product, _ int) (StoreProduct, bool) {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			return StoreProduct{}, false
		}

		r := byProduct[p.ID]

		return StoreProduct{
			ProductID:   p.ID,
			ProductName: p.Name,
			Taxonomy:    r.Taxonomy,
			Gender:      r.Gender,
			AgeGroup:    r.AgeGroup,
			Color:       r.Color,
			Size:        r.Size,
			CustomGoods: r.CustomGoods,
		}, true
	})

	from := min((page-1)*pageSize, len(rows))
	to := min(from+pageSize, len(rows))

	return c.JSON(http.StatusOK, Page[StoreProduct]{
		Items:    rows[from:to],
		Page:     page,
		PageSize: pageSize,
		Total:    len(rows),
	})
}

func (s *Server) taxonomy(c echo.Context) error {
	categories, err := s.metadata.Taxonomy()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, categories)
}

// generate runs feed generation for storeId query param or for all configured stores when it's missing.
func (s *Server) generate(c echo.Context) error {
	var storeIDs []int
	if raw := c.QueryParam("storeId"); raw != "" {
		storeID, err := strconv.Atoi(raw)
		if err != nil || storeID < 0 {
			return fmt.Errorf("invalid storeId %q: %w", raw, platform.ErrValidation)
		}
		if storeID > 0 {
			storeIDs = []int{storeID}
		}
	}

	results := s.runner.Run(c.Request().Context(), storeIDs)

	// single store request reports concurrent run as conflict, batch runs report it per store
	if len(storeIDs) == 1 && len(results) == 1 && errors.Is(results[0].Err, platform.ErrAlreadyRunning) {
		return results[0].Err
	}

	return c.JSON(http.StatusOK, results)
}

func (s *Server) listFeeds(c echo.Context) error {
	files, err := s.files.Files(c.Request().Context(), s.runner.StoreIDs())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, files)
}

func intParam(c echo.Context, name string) (int, error) {
	raw := c.Param(name)
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, platform.ErrValidation)
	}

	return v, nil
}

func pagination(c echo.Context) (int, int, error) {
	page, pageSize := 1, defaultPageSize

	if raw := c.QueryParam("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return 0, 0, fmt.Errorf("invalid page %q: %w", raw, platform.ErrValidation)
		}
		page = v
	}

	if raw := c.QueryParam("pageSize"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxPageSize {
			return 0, 0, fmt.Errorf("invalid pageSize %q: %w", raw, platform.ErrValidation)
		}
		pageSize = v
	}

	return page, pageSize, nil
}
