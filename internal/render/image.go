package render

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/gabriel-vasile/mimetype"
)

// ImagePlaceholder is the src emitted when an image cannot be embedded.
const ImagePlaceholder = "data:,"

// MaxImageSize caps the size of an embedded image (default 20MB).
var MaxImageSize int64 = 20 << 20

// Sentinel errors for image embedding.
var (
	ErrImageTooLarge = errors.New("image exceeds maximum size")
	ErrImageRead     = errors.New("failed to read image")
)

// ImageEncoder turns an image file into an embeddable URI.
type ImageEncoder interface {
	DataURI(path string) (string, error)
}

// DataURIEncoder encodes files as base64 data URIs, detecting the media
// type from the file content.
type DataURIEncoder struct {
	MaxSize int64 // bytes; 0 means MaxImageSize
}

// DataURI reads path and returns "data:<mime>;base64,<payload>".
func (e DataURIEncoder) DataURI(path string) (string, error) {
	limit := e.MaxSize
	if limit <= 0 {
		limit = MaxImageSize
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageRead, err)
	}
	if info.Size() > limit {
		return "", fmt.Errorf("%w: %s (%d bytes, max %d)", ErrImageTooLarge, path, info.Size(), limit)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path resolved inside the wiki root
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageRead, err)
	}

	mime := mimetype.Detect(data)
	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Compile-time interface check.
var _ ImageEncoder = DataURIEncoder{}
