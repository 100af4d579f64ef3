package domain

import "errors"

// Input and lookup errors.
var (
	ErrValidation   = errors.New("invalid request")
	ErrUserNotFound = errors.New("user not found")
	ErrRoleNotFound = errors.New("role not found")
	ErrUserExists   = errors.New("user already exists")
	ErrRoleExists   = errors.New("role already exists")
	ErrRoleInUse    = errors.New("role is assigned to one or more users")
)

// Authentication and authorization errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredential  = errors.New("bearer token is required")
	ErrInvalidCredential  = errors.New("invalid token")
	ErrCredentialExpired  = errors.New("token expired")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
)

// Storage errors.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrCorruptData        = errors.New("corrupt data")
)
