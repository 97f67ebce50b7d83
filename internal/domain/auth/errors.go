package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrOAuthNotConfigured  = errors.New("google login is not configured")
	ErrOAuthEmailNotLinked = errors.New("no account is linked to this google email")

	ErrRefreshTokenCookieNotFound = errors.New("refresh token cookie not found")
	ErrRefreshTokenCookieEmpty    = errors.New("refresh token cookie is empty")
	ErrStateMismatch              = errors.New("oauth state mismatch")
)
