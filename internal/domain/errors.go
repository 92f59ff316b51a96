package domain

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidScope          = errors.New("invalid scope")
	ErrDataSourceUnavailable = errors.New("data source unavailable")
)
