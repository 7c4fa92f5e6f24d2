// Package models defines the data structures shared by the handlers.
package models

import "github.com/cockroachdb/errors"

// Common errors
var (
	ErrInvalidRunEnvironment = errors.New("RunEnvironment must be dev or prod")
	ErrSecretNotFound        = errors.New("secret not found")
	ErrSecretNotJSON         = errors.New("secret is not a valid JSON object")
	ErrSecretEmpty           = errors.New("secret has no string value")
	ErrRoutePanicked         = errors.New("route panicked")
	ErrInvalidEvent          = errors.New("invalid gateway event")
)
