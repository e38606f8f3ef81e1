package auth

import "errors"

var (
	// ErrMissingHeader is returned when the request has no Authorization header.
	ErrMissingHeader = errors.New("authorization header missing")

	// ErrInvalidScheme is returned when the header is not "Bearer <token>".
	ErrInvalidScheme = errors.New("invalid authorization header format, expected 'Bearer <token>'")

	// ErrMissingToken is returned for "Bearer " with nothing after it.
	ErrMissingToken = errors.New("token missing in authorization header")

	// ErrInvalidToken is returned when the identity provider rejects a token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned for well-formed tokens past their expiry.
	ErrExpiredToken = errors.New("token has expired")

	// ErrNotConfigured means no identity provider is available; it is a server fault.
	ErrNotConfigured = errors.New("identity provider not configured")
)
