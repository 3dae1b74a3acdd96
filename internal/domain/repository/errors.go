package repository

import "errors"

// Sentinels shared by every repository implementation.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate value for unique field")
)
