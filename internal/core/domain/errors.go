package domain

import "errors"

var (
	// ErrInvalidInput signals missing or malformed request data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrPasswordTooShort signals a password under the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	// ErrUserExists signals a registration against an email already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses never reveal which one failed. Login only.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordIncorrect signals a failed password re-verification on an
	// already authenticated route. The caller's token is fine.
	ErrPasswordIncorrect = errors.New("incorrect password")
	// ErrTokenExpired signals a token past its expiry window.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid signals a tampered or malformed token.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrForbidden signals a role not allowed on the route.
	ErrForbidden = errors.New("access forbidden")
	// ErrUserNotFound signals the user row is absent.
	ErrUserNotFound = errors.New("user not found")
	// ErrWorkerNotFound signals no public worker matches the id.
	ErrWorkerNotFound = errors.New("worker not found")
	// ErrCategoryNotFound signals the category row is absent.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrStoreUnavailable signals the store is unreachable or timed out.
	// Callers may retry; nothing was committed.
	ErrStoreUnavailable = errors.New("store unavailable")
)
