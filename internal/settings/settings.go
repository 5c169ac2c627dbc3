package settings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/MichalMitros/google-feed-generator/internal/platform"
	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
)

const fileNameDigits = 10

// FileNameStateFile keeps generated static file name in export directory between runs.
const FileNameStateFile = ".static-file-name"

// Static resolves the same configured settings for every store.
type Static struct {
	settings models.FeedSettings
}

// NewStatic returns Static provider of settings.
func NewStatic(settings models.FeedSettings) *Static {
	return &Static{settings: settings}
}

// Settings returns effective feed settings of provided store.
func (s *Static) Settings(_ context.Context, storeID int) (models.FeedSettings, error) {
	if err := Validate(s.settings); err != nil {
		return models.FeedSettings{}, fmt.Errorf("invalid settings of store %d: %w", storeID, err)
	}

	return s.settings, nil
}

// Validate checks settings which make every generation fail.
func Validate(s models.FeedSettings) error {
	switch {
	case s.ProductPictureSize <= 0:
		return fmt.Errorf("product picture size must be positive: %w", platform.ErrConfiguration)
	case s.ExpirationNumberOfDays < 0:
		return fmt.Errorf("expiration number of days can't be negative: %w", platform.ErrConfiguration)
	case s.StaticFileName == "" || filepath.Base(s.StaticFileName) != s.StaticFileName || strings.HasPrefix(s.StaticFileName, "."):
		return fmt.Errorf("static file name %q is not a plain file name: %w", s.StaticFileName, platform.ErrConfiguration)
	default:
		return nil
	}
}

// RandomFileName returns unguessable static file name.
func RandomFileName() (string, error) {
	var digits strings.Builder
	for range fileNameDigits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("can't generate file name: %w", err)
		}
		digits.WriteString(n.String())
	}

	return "googleshopping_" + digits.String() + ".xml", nil
}

// PersistentFileName returns static file name stored in dir.
// On the first call it generates random name and stores it, so every later run writes the same file.
func PersistentFileName(dir string) (string, bool, error) {
	path := filepath.Join(dir, FileNameStateFile)

	name, err := readFileName(path)
	if err == nil {
		return name, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", false, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("can't create export directory: %w", err)
	}

	name, err = RandomFileName()
	if err != nil {
		return "", false, err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		// stored by concurrent run
		name, err = readFileName(path)
		return name, false, err
	}
	if err != nil {
		return "", false, fmt.Errorf("can't store static file name: %w", err)
	}

	_, err = file.WriteString(name + "\n")
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", false, fmt.Errorf("can't store static file name: %w", err)
	}

	return name, true, nil
}

func readFileName(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(string(content))
	if err := Validate(models.FeedSettings{StaticFileName: name, ProductPictureSize: 1}); err != nil {
		return "", fmt.Errorf("stored static file name in %s: %w", path, err)
	}

	return name, nil
}
