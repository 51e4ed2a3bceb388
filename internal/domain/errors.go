package domain

import "errors"

var (
	ErrUnknownPhase  = errors.New("unknown phase")
	ErrUnknownArea   = errors.New("unknown study area")
	ErrUnknownUpload = errors.New("unknown uploaded image")
)
