package exporter_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MichalMitros/google-feed-generator/internal/decoder"
	"github.com/MichalMitros/google-feed-generator/internal/exporter"
	"github.com/MichalMitros/google-feed-generator/internal/exporter/mocks"
	"github.com/MichalMitros/google-feed-generator/internal/platform"
	"github.com/MichalMitros/google-feed-generator/internal/platform/lock"
	"github.com/MichalMitros/google-feed-generator/internal/platform/models"
	"github.com/MichalMitros/google-feed-generator/internal/platform/models/modelstesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	baseURL  = "https://shop.example.com/files/exportimport"
	fileName = "googleshopping_0123456789.xml"
	feed     = `<?xml version="1.0" encoding="utf-8"?>
<rss version="2.0" xmlns:g="http://base.google.com/ns/1.0">
  <channel>
    <item><g:id>1</g:id></item>
    <item><g:id>2</g:id></item>
  </channel>
</rss>`
	previousFeed = "previous"
)

func feedSettings() models.FeedSettings {
	return modelstesting.FakeFeedSettings(func(s *models.FeedSettings) { s.StaticFileName = fileName })
}

func writeFeed(content string, items int, err error) func(s *mocks.Generator) {
	return func(g *mocks.Generator) {
		g.On("Generate", mock.Anything, mock.Anything, 1, 0).
			Run(func(args mock.Arguments) {
				_, _ = io.WriteString(args.Get(1).(io.Writer), content)
			}).
			Return(items, err).
			Once()
	}
}

func TestUnitExport(t *testing.T) {
	tests := map[string]struct {
		mockGenerator func(g *mocks.Generator)
		ops           []exporter.Option
		wantErr       error
		wantContent   string
	}{
		"generated feed": {
			mockGenerator: writeFeed(feed, 2, nil),
			wantContent:   feed,
		},
		"verified feed": {
			mockGenerator: writeFeed(feed, 2, nil),
			ops:           []exporter.Option{exporter.WithVerifier(decoder.Decoder{})},
			wantContent:   feed,
		},
		"generation error": {
			mockGenerator: writeFeed("<rss><channel><item>", 0, assert.AnError),
			wantErr:       assert.AnError,
			wantContent:   previousFeed,
		},
		"configuration error": {
			mockGenerator: writeFeed("<rss>", 0, platform.ErrConfiguration),
			wantErr:       platform.ErrConfiguration,
			wantContent:   previousFeed,
		},
		"missing items": {
			mockGenerator: writeFeed(feed, 3, nil),
			ops:           []exporter.Option{exporter.WithVerifier(decoder.Decoder{})},
			wantErr:       exporter.ErrVerificationFailed,
			wantContent:   previousFeed,
		},
		"malformed feed": {
			mockGenerator: writeFeed(feed[:len(feed)-20], 2, nil),
			ops:           []exporter.Option{exporter.WithVerifier(decoder.Decoder{})},
			wantErr:       exporter.ErrVerificationFailed,
			wantContent:   previousFeed,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "1-"+fileName)
			require.NoError(t, os.WriteFile(path, []byte(previousFeed), 0o644))

			generator := mocks.NewGenerator(t)
			tt.mockGenerator(generator)
			settings := mocks.NewSettings(t)
			settings.On("Settings", mock.Anything, 1).Return(feedSettings(), nil).Once()

			got, err := exporter.NewExporter(generator, settings, dir, baseURL, tt.ops...).Export(context.TODO(), 1)

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
			content, readErr := os.ReadFile(path)
			require.NoError(t, readErr, "should keep static file")
			assert.Equal(t, tt.wantContent, string(content), "should publish only complete feed")
			assertNoTempFiles(t, dir)

			if tt.wantErr != nil {
				return
			}
			assert.Equal(t, 1, got.StoreID, "should return store")
			assert.Equal(t, "1-"+fileName, got.Name, "should return file name")
			assert.Equal(t, path, got.Path, "should return file path")
			assert.Equal(t, baseURL+"/1-"+fileName, got.URL, "should return public url")
			assert.Equal(t, 2, got.Items, "should return number of items")
			assert.WithinDuration(t, time.Now(), got.GeneratedAt, time.Minute, "should return modification time")

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o644), info.Mode().Perm(), "should make file readable")
		})
	}
}

func TestUnitExportCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "files", "exportimport")

	generator := mocks.NewGenerator(t)
	writeFeed(feed, 2, nil)(generator)
	settings := mocks.NewSettings(t)
	settings.On("Settings", mock.Anything, 1).Return(feedSettings(), nil)

	got, err := exporter.NewExporter(generator, settings, dir, baseURL+"/").Export(context.TODO(), 1)

	require.NoError(t, err, "shouldn't return any error")
	assert.FileExists(t, filepath.Join(dir, "1-"+fileName), "should create export directory")
	assert.Equal(t, baseURL+"/1-"+fileName, got.URL, "should join url with trailing slash")
}

func TestUnitExportLanguage(t *testing.T) {
	generator := mocks.NewGenerator(t)
	generator.On("Generate", mock.Anything, mock.Anything, 1, 2).Return(0, nil).Once()
	settings := mocks.NewSettings(t)
	settings.On("Settings", mock.Anything, 1).Return(feedSettings(), nil)

	_, err := exporter.NewExporter(generator, settings, t.TempDir(), baseURL, exporter.WithLanguage(2)).
		Export(context.TODO(), 1)

	require.NoError(t, err, "should generate feed in configured language")
}

func TestUnitExportAlreadyRunning(t *testing.T) {
	locker := lock.NewLocal()
	release, err := locker.Acquire(context.TODO(), exporter.LockKey(1), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = release(context.TODO()) })

	generator := mocks.NewGenerator(t)
	settings := mocks.NewSettings(t)

	_, err = exporter.NewExporter(generator, settings, t.TempDir(), baseURL, exporter.WithLocker(locker, time.Minute)).
		Export(context.TODO(), 1)

	require.ErrorIs(t, err, platform.ErrAlreadyRunning, "shouldn't run concurrent export of the same store")
}

func TestUnitExportReleasesLock(t *testing.T) {
	locker := lock.NewLocal()
	generator := mocks.NewGenerator(t)
	writeFeed("", 0, assert.AnError)(generator)
	settings := mocks.NewSettings(t)
	settings.On("Settings", mock.Anything, 1).Return(feedSettings(), nil)

	_, err := exporter.NewExporter(generator, settings, t.TempDir(), baseURL, exporter.WithLocker(locker, time.Minute)).
		Export(context.TODO(), 1)
	require.ErrorIs(t, err, assert.AnError)

	release, err := locker.Acquire(context.TODO(), exporter.LockKey(1), time.Minute)
	require.NoError(t, err, "should release lock after failed export")
	require.NoError(t, release(context.TODO()))
}

func TestUnitExportSettingsError(t *testing.T) {
	generator := mocks.NewGenerator(t)
	settings := mocks.NewSettings(t)
	settings.On("Settings", mock.Anything, 1).Return(models.FeedSettings{}, assert.AnError)

	_, err := exporter.NewExporter(generator, settings, t.TempDir(), baseURL).Export(context.TODO(), 1)

	require.ErrorIs(t, err, assert.AnError, "should return settings error")
}

func TestUnitFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1-"+fileName), []byte(feed), 0o644))

	settings := mocks.NewSettings(t)
	settings.On("Settings", mock.Anything, mock.Anything).Return(feedSettings(), nil)

	got, err := exporter.NewExporter(mocks.NewGenerator(t), settings, dir, baseURL).Files(context.TODO(), []int{1, 2})

	require.NoError(t, err, "shouldn't return any error")
	require.Len(t, got, 1, "should return only existing files")
	assert.Equal(t, 1, got[0].StoreID, "should return file store")
	assert.Equal(t, baseURL+"/1-"+fileName, got[0].URL, "should return public url")
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.Equal(t, "1-"+fileName, entry.Name(), "shouldn't leave temporary files")
	}
}
