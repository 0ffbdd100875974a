package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
	// ErrForbidden will throw if the caller does not own the item
	ErrForbidden = errors.New("you are not allowed to modify this item")
	// ErrUnauthorized will throw if the credentials are missing or wrong
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrStorage wraps connectivity and integrity failures of the persistence layer
	ErrStorage = errors.New("storage failure")
	// ErrCacheMiss is returned by cache implementations when the key is absent
	ErrCacheMiss = errors.New("cache miss")
)
