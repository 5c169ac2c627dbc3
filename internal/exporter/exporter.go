package exporter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/MichalMitros/google-feed-generator/internal/platform/lock"
	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Generator --filename generator.go
//go:generate mockery --name Settings --filename settings.go

const (
	defaultLockTTL = 30 * time.Minute
	filePerm       = 0o644
	dirPerm        = 0o755
)

// ErrVerificationFailed is returned when generated file doesn't contain all written items.
var ErrVerificationFailed = errors.New("generated feed verification failed")

// Generator writes store feeds.
type Generator interface {
	// Generate writes feed of provided store into w and returns number of written items.
	Generate(ctx context.Context, w io.Writer, storeID, languageID int) (int, error)
}

// Settings resolves effective store scoped feed settings.
type Settings interface {
	Settings(ctx context.Context, storeID int) (models.FeedSettings, error)
}

// Locker excludes concurrent exports of the same store.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (lock.Release, error)
}

// Verifier reads generated feed back.
type Verifier interface {
	// Count returns number of correctly decoded items.
	Count(ctx context.Context, r io.Reader) (int, error)
}

// Option is custom configuration of Exporter.
type Option func(e *Exporter)

// Exporter materializes store feeds as static files in export directory.
type Exporter struct {
	generator Generator
	settings  Settings
	locker    Locker
	lockTTL   time.Duration
	verifier  Verifier
	language  int
	dir       string
	baseURL   string
	logger    *zerolog.Logger
}

// NewExporter returns new Exporter writing files into dir which is published under baseURL.
func NewExporter(generator Generator, settings Settings, dir, baseURL string, ops ...Option) *Exporter {
	nop := zerolog.Nop()
	e := &Exporter{
		generator: generator,
		settings:  settings,
		locker:    lock.NewLocal(),
		lockTTL:   defaultLockTTL,
		dir:       dir,
		baseURL:   baseURL,
		logger:    &nop,
	}

	for _, op := range ops {
		op(e)
	}

	return e
}

// FileName returns static file name of the store.
func FileName(storeID int, staticFileName string) string {
	return strconv.Itoa(storeID) + "-" + staticFileName
}

// LockKey returns key excluding concurrent exports of the store.
func LockKey(storeID int) string {
	return "google-feed-generator:store:" + strconv.Itoa(storeID)
}

// Export generates store feed into its static file.
// The previous file is replaced only when the whole feed was generated successfully.
func (e *Exporter) Export(ctx context.Context, storeID int) (file models.GeneratedFile, err error) {
	release, err := e.locker.Acquire(ctx, LockKey(storeID), e.lockTTL)
	if err != nil {
		return models.GeneratedFile{}, err
	}
	defer func() {
		if releaseErr := release(context.WithoutCancel(ctx)); releaseErr != nil {
			e.logger.Warn().Err(releaseErr).Int("storeId", storeID).Msg("can't release export lock")
		}
	}()

	settings, err := e.settings.Settings(ctx, storeID)
	if err != nil {
		return models.GeneratedFile{}, fmt.Errorf("can't resolve feed settings: %w", err)
	}

	if err := os.MkdirAll(e.dir, dirPerm); err != nil {
		return models.GeneratedFile{}, fmt.Errorf("can't create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(e.dir, "."+strconv.Itoa(storeID)+"-*.tmp")
	if err != nil {
		return models.GeneratedFile{}, fmt.Errorf("can't create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	items, err := e.write(ctx, tmp, storeID)
	if err != nil {
		return models.GeneratedFile{}, err
	}

	if e.verifier != nil {
		if err := e.verify(ctx, tmp.Name(), items); err != nil {
			return models.GeneratedFile{}, err
		}
	}

	name := FileName(storeID, settings.StaticFileName)
	path := filepath.Join(e.dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return models.GeneratedFile{}, fmt.Errorf("can't publish generated file: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return models.GeneratedFile{}, fmt.Errorf("can't stat generated file: %w", err)
	}

	e.logger.Info().
		Int("storeId", storeID).
		Int("items", items).
		Str("file", path).
		Msg("feed file generated")

	return models.GeneratedFile{
		StoreID:     storeID,
		Name:        name,
		Path:        path,
		URL:         e.fileURL(name),
		Items:       items,
		GeneratedAt: info.ModTime(),
	}, nil
}

// write generates feed into tmp and closes it.
func (e *Exporter) write(ctx context.Context, tmp *os.File, storeID int) (int, error) {
	w := bufio.NewWriter(tmp)

	items, err := e.generator.Generate(ctx, w, storeID, e.language)
	if err != nil {
		return 0, fmt.Errorf("can't generate feed of store %d: %w", storeID, err)
	}

	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("can't write generated file: %w", err)
	}

	if err := tmp.Chmod(filePerm); err != nil {
		return 0, fmt.Errorf("can't set generated file permissions: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("can't close generated file: %w", err)
	}

	return items, nil
}

func (e *Exporter) verify(ctx context.Context, path string, items int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("can't open generated file: %w", err)
	}
	defer f.Close()

	decoded, err := e.verifier.Count(ctx, f)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}

	if decoded != items {
		return fmt.Errorf("%w: decoded %d of %d items", ErrVerificationFailed, decoded, items)
	}

	return nil
}

// Files returns existing static files of provided stores.
func (e *Exporter) Files(ctx context.Context, storeIDs []int) ([]models.GeneratedFile, error) {
	files := make([]models.GeneratedFile, 0, len(storeIDs))

	for _, storeID := range storeIDs {
		settings, err := e.settings.Settings(ctx, storeID)
		if err != nil {
			return nil, fmt.Errorf("can't resolve feed settings: %w", err)
		}

		name := FileName(storeID, settings.StaticFileName)
		path := filepath.Join(e.dir, name)

		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("can't stat generated file: %w", err)
		}

		files = append(files, models.GeneratedFile{
			StoreID:     storeID,
			Name:        name,
			Path:        path,
			URL:         e.fileURL(name),
			GeneratedAt: info.ModTime(),
		})
	}

	return files, nil
}

func (e *Exporter) fileURL(name string) string {
	if e.baseURL == "" {
		return name
	}

	if e.baseURL[len(e.baseURL)-1] == '/' {
		return e.baseURL + name
	}

	return e.baseURL + "/" + name
}

// WithLocker sets Exporter's lock and its ttl.
func WithLocker(l Locker, ttl time.Duration) Option {
	return func(e *Exporter) {
		e.locker = l
		e.lockTTL = ttl
	}
}

// WithVerifier makes Exporter read every generated file back before publishing it.
func WithVerifier(v Verifier) Option {
	return func(e *Exporter) {
		e.verifier = v
	}
}

// WithLanguage sets preferred feed language, zero uses store's default language.
func WithLanguage(languageID int) Option {
	return func(e *Exporter) {
		e.language = languageID
	}
}

// WithLogger sets Exporter's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}
