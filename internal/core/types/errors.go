package types

import "errors"

var (
	ErrInvalidLabel  = errors.New("invalid BIO label")
	ErrUnknownIntent = errors.New("unknown intent")
)
