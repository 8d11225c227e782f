package services

import "errors"

// Errors shared by the services and mapped to HTTP statuses by the handlers.
var (
	ErrBattleNotFound     = errors.New("battle not found")
	ErrStaleVote          = errors.New("vote targets a match that is no longer current")
	ErrBattleTokenInvalid = errors.New("invalid or expired battle token")
	ErrBattleForbidden    = errors.New("token does not grant access to this battle")

	ErrMovieNotFound        = errors.New("movie not found")
	ErrMovieConflict        = errors.New("movie with this title and year already exists")
	ErrMovieTitleRequired   = errors.New("movie title is required")
	ErrMovieYearInvalid     = errors.New("movie year must be between 1870 and 2100")
	ErrCatalogReadOnly      = errors.New("movie catalog is read-only without a database")
	ErrPosterRequired       = errors.New("poster file is required")
	ErrUnsupportedPoster    = errors.New("poster must be an image")
	ErrStorageNotConfigured = errors.New("poster storage is not configured")

	ErrAuthInvalidCredentials = errors.New("invalid admin password")
	ErrAdminLoginDisabled     = errors.New("admin login is not configured")
	ErrAuthenticationFailed   = errors.New("authentication failed")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current token")
)
