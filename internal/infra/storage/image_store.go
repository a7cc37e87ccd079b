// Package storage provides the local-disk implementation of the ImageStore domain service.
package storage

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"

	"minishop/config"
	domainerrors "minishop/internal/domain/errors"
	"minishop/internal/domain/service"
	"minishop/internal/errors"
)

const (
	// canvasSize is the fixed square edge every stored image is resized to.
	canvasSize = 200

	jpegQuality = 85
)

// allowedExtensions is the upload whitelist. Checked before any filesystem write.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// localImageStore stores uploaded images on the local filesystem under a single directory.
type localImageStore struct {
	dir          string
	urlPrefix    string
	maxSizeBytes int64
	logger       *slog.Logger
}

// NewLocalImageStore is the constructor for localImageStore.
// It creates the upload directory if it does not exist yet.
func NewLocalImageStore(cfg *config.Config, logger *slog.Logger) (service.ImageStore, error) {
	upload := cfg.Upload
	if upload == nil {
		return nil, errors.New("upload configuration must be provided")
	}

	if err := os.MkdirAll(upload.Dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create upload directory")
	}

	return &localImageStore{
		dir:          upload.Dir,
		urlPrefix:    strings.TrimSuffix(upload.URLPrefix, "/"),
		maxSizeBytes: int64(upload.MaxSizeMB) * 1024 * 1024,
		logger:       logger,
	}, nil
}

// Save validates the upload, resizes it to the fixed canvas and writes it
// under a freshly generated name. The caller's filename never reaches disk.
func (s *localImageStore) Save(ctx context.Context, originalFilename string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedExtensions[ext] {
		return "", domainerrors.ErrUnsupportedFileType.WrapMessage("extension " + ext + " not allowed")
	}

	if int64(len(content)) > s.maxSizeBytes {
		return "", domainerrors.ErrFileTooLarge.WrapMessage("upload exceeds configured size limit")
	}

	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", domainerrors.ErrUnsupportedFileType.WrapMessage("file content is not a decodable image")
	}

	resized := resizeToCanvas(decoded)

	var encoded bytes.Buffer
	switch ext {
	case ".png":
		err = png.Encode(&encoded, resized)
	default:
		err = jpeg.Encode(&encoded, resized, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to encode resized image")
	}

	filename := uuid.New().String() + ext
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, encoded.Bytes(), 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write image file")
	}

	s.logger.DebugContext(ctx, "Stored uploaded image",
		slog.String("filename", filename),
		slog.Int("bytes", encoded.Len()),
	)

	return filename, nil
}

// URL returns the public URL path for a stored filename.
func (s *localImageStore) URL(filename string) string {
	return s.urlPrefix + "/" + filename
}

// resizeToCanvas scales the image onto the fixed square canvas.
func resizeToCanvas(src image.Image) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, canvasSize, canvasSize))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	return dst
}
