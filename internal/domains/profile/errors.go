package profile

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
)

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		return "PROFILE_NOT_FOUND"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		return 404
	default:
		return 500
	}
}
