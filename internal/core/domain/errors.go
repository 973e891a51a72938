package domain

import "errors"

// Sentinel errors shared between services, repositories, and the HTTP layer.
// Repositories translate driver-level failures into these; handlers map them
// onto status codes.
var (
	// ErrInvalidCredentials covers both "unknown email" and "wrong password"
	// so a login failure never reveals which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	ErrPostNotFound = errors.New("post not found")
	// ErrForbidden is returned on writes to a post owned by someone else.
	// Reads of foreign posts return ErrPostNotFound instead; that asymmetry
	// (reads hide existence, writes reveal it) is a deliberate contract.
	ErrForbidden = errors.New("access forbidden")

	ErrVoteExists   = errors.New("vote already exists")
	ErrVoteNotFound = errors.New("vote not found")

	// ErrNotRefreshToken is returned when an access-class token is presented
	// to the refresh endpoint.
	ErrNotRefreshToken = errors.New("not a refresh token")

	ErrRateLimited = errors.New("too many attempts")
)
