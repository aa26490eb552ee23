package domain

import "errors"

var (
	ErrMissingColumn      = errors.New("required column missing")
	ErrUnknownView        = errors.New("unknown view")
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrUnsupportedSource  = errors.New("unsupported source kind")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrSourceNotAvailable = errors.New("source table not available")
)
