package entity

import (
	"errors"
)

var (
	ErrDataNotFound     = errors.New("data not found")
	ErrConflictingData  = errors.New("data conflicts with existing data in unique column")
	ErrInvalidData      = errors.New("invalid data")
	ErrConfigPathNotSet = errors.New("CONFIG_PATH not set and -config flag not provided")

	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("operation not permitted")
	ErrProtectedAccount   = errors.New("account is protected")
	ErrSelfDeletion       = errors.New("cannot delete own account")
	ErrCorporateDomain    = errors.New("email outside the corporate domain")

	ErrStoredLocally = errors.New("order kept in local fallback store")
	ErrRender        = errors.New("document rendering failed")
)
