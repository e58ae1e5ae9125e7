package domain

import "errors"

var (
	ErrArtistNotFound  = errors.New("artist not found")
	ErrAlbumNotFound   = errors.New("album not found")
	ErrVersionNotFound = errors.New("version not found")
	ErrInvalidCategory = errors.New("invalid artist category")
	ErrInvalidStatus   = errors.New("invalid album status")
)
