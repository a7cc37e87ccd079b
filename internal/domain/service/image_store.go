package service

import "context"

// ImageStore defines the interface for persisting uploaded images.
// Implementations validate the file type before any write, store the image
// under a randomly generated name and normalize it to a fixed square canvas.
type ImageStore interface {
	// Save validates and stores the image content, returning the generated filename.
	// The original filename is only consulted for its extension and never disclosed.
	Save(ctx context.Context, originalFilename string, content []byte) (string, error)

	// URL returns the public URL path for a stored filename.
	URL(filename string) string
}
