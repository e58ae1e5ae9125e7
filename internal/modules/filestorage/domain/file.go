package domain

import "errors"

var ErrUnsupportedFormat = errors.New("unsupported image format")

// File holds metadata for a stored image.
type File struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
}
