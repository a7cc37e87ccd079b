package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minishop/config"
	domainerrors "minishop/internal/domain/errors"
)

func newTestStore(t *testing.T) *localImageStore {
	t.Helper()

	cfg := &config.Config{}
	cfg.Upload = &config.UploadConfig{
		Dir:       t.TempDir(),
		URLPrefix: "/uploads",
		MaxSizeMB: 1,
	}

	store, err := NewLocalImageStore(cfg, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	require.NoError(t, err)

	return store.(*localImageStore)
}

// encodeTestImage produces a small solid-color image in the requested format.
func encodeTestImage(t *testing.T, format string, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 50, B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		require.NoError(t, png.Encode(&buf, img))
	case "jpeg":
		require.NoError(t, jpeg.Encode(&buf, img, nil))
	default:
		t.Fatalf("unsupported test image format %q", format)
	}

	return buf.Bytes()
}

func TestLocalImageStore_SavePNG(t *testing.T) {
	store := newTestStore(t)

	filename, err := store.Save(context.Background(), "photo.png", encodeTestImage(t, "png", 400, 300))
	require.NoError(t, err)

	// Stored name is freshly generated and keeps only the extension.
	assert.True(t, strings.HasSuffix(filename, ".png"))
	assert.NotContains(t, filename, "photo")

	stored, err := os.ReadFile(filepath.Join(store.dir, filename))
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(stored))
	require.NoError(t, err)
	assert.Equal(t, canvasSize, decoded.Bounds().Dx())
	assert.Equal(t, canvasSize, decoded.Bounds().Dy())
}

func TestLocalImageStore_SaveJPEG(t *testing.T) {
	store := newTestStore(t)

	filename, err := store.Save(context.Background(), "upload.JPEG", encodeTestImage(t, "jpeg", 50, 50))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".jpeg"))

	stored, err := os.ReadFile(filepath.Join(store.dir, filename))
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(stored))
	require.NoError(t, err)
	assert.Equal(t, canvasSize, decoded.Bounds().Dx())
	assert.Equal(t, canvasSize, decoded.Bounds().Dy())
}

func TestLocalImageStore_RejectsDisallowedExtension(t *testing.T) {
	store := newTestStore(t)

	filename, err := store.Save(context.Background(), "animation.gif", encodeTestImage(t, "png", 10, 10))
	assert.Empty(t, filename)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnsupportedFileType))

	// The rejection happens before any write, so the directory stays empty.
	entries, readErr := os.ReadDir(store.dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestLocalImageStore_RejectsUndecodableContent(t *testing.T) {
	store := newTestStore(t)

	filename, err := store.Save(context.Background(), "fake.png", []byte("definitely not an image"))
	assert.Empty(t, filename)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnsupportedFileType))
}

func TestLocalImageStore_RejectsOversizedUpload(t *testing.T) {
	store := newTestStore(t)
	store.maxSizeBytes = 16

	filename, err := store.Save(context.Background(), "big.png", encodeTestImage(t, "png", 100, 100))
	assert.Empty(t, filename)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrFileTooLarge))
}

func TestLocalImageStore_URL(t *testing.T) {
	store := newTestStore(t)

	assert.Equal(t, "/uploads/abc.png", store.URL("abc.png"))
}
