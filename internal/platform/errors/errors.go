package apperrors

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoSession     = errors.New("no active session")
	ErrNoDraft       = errors.New("no draft snapshot")
	ErrSceneNotFound = errors.New("scene not found")
	ErrNotFound      = errors.New("not found")
	ErrBackend       = errors.New("backend request failed")
)
