package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/MichalMitros/google-feed-generator/internal/platform"
	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Metadata --filename metadata.go
//go:generate mockery --name Products --filename products.go
//go:generate mockery --name Runner --filename runner.go
//go:generate mockery --name Files --filename files.go

// Metadata manages Google product records.
type Metadata interface {
	GetByProductID(ctx context.Context, productID int) (*models.GoogleProductRecord, error)
	GetAll(ctx context.Context) ([]models.GoogleProductRecord, error)
	Upsert(ctx context.Context, record *models.GoogleProductRecord) error
	Delete(ctx context.Context, record *models.GoogleProductRecord) error
	Taxonomy() ([]string, error)
}

// Products lists catalog products of a store.
type Products interface {
	Products(ctx context.Context, storeID int) ([]models.Product, error)
}

// Runner generates store feeds.
type Runner interface {
	Run(ctx context.Context, storeIDs []int) []models.RunResult
	StoreIDs() []int
}

// Files lists generated static files.
type Files interface {
	Files(ctx context.Context, storeIDs []int) ([]models.GeneratedFile, error)
}

// Option is custom configuration of Server.
type Option func(s *Server)

// Server is HTTP admin API of the generator.
type Server struct {
	echo     *echo.Echo
	metadata Metadata
	products Products
	runner   Runner
	files    Files
	apiKey   string
	filesURL string
	filesDir string
	logger   *zerolog.Logger
}

// NewServer returns new Server with registered routes.
func NewServer(metadata Metadata, products Products, runner Runner, files Files, ops ...Option) *Server {
	nop := zerolog.Nop()
	s := &Server{
		echo:     echo.New(),
		metadata: metadata,
		products: products,
		runner:   runner,
		files:    files,
		logger:   &nop,
	}

	for _, op := range ops {
		op(s)
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.handleError
	s.routes()

	return s
}

func (s *Server) routes() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(s.logRequests)

	s.echo.GET("/health", s.health)

	if s.filesDir != "" {
		s.echo.Static("/"+strings.Trim(s.filesURL, "/"), s.filesDir)
	}

	api := s.echo.Group("/api")
	if s.apiKey != "" {
		api.Use(middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
			Validator: func(key string, _ echo.Context) (bool, error) {
				return subtle.ConstantTimeCompare([]byte(key), []byte(s.apiKey)) == 1, nil
			},
		}))
	}

	api.GET("/google-products", s.listRecords)
	api.GET("/google-products/:productId", s.getRecord)
	api.PUT("/google-products/:productId", s.putRecord)
	api.DELETE("/google-products/:productId", s.deleteRecord)
	api.GET("/stores/:storeId/google-products", s.listStoreProducts)
	api.GET("/taxonomy", s.taxonomy)
	api.POST("/feeds/generate", s.generate)
	api.GET("/feeds", s.listFeeds)
}

// ServeHTTP serves HTTP requests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	err := s.echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		s.logger.Debug().
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Int("status", c.Response().Status).
			Dur("duration", time.Since(start)).
			Msg("request handled")

		return nil
	}
}

// handleError maps domain errors to HTTP status codes.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
	case errors.Is(err, platform.ErrValidation):
		httpErr = echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, platform.ErrNotFound):
		httpErr = echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, platform.ErrAlreadyRunning):
		httpErr = echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		s.logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
		httpErr = echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}

	_ = c.JSON(httpErr.Code, map[string]any{"message": httpErr.Message})
}

// WithAPIKey protects /api routes with bearer key.
func WithAPIKey(key string) Option {
	return func(s *Server) {
		s.apiKey = key
	}
}

// WithStaticFiles serves generated files from dir under urlPath.
func WithStaticFiles(urlPath, dir string) Option {
	return func(s *Server) {
		s.filesURL = urlPath
		s.filesDir = dir
	}
}

// WithLogger sets Server's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}
