package article

import "errors"

var (
	// Business rule errors
	ErrArticleNotFound = errors.New("article not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrForbidden       = errors.New("caller is not the author")
)

// IsDomainError reports whether err is one of the sentinel errors above,
// as opposed to an unexpected database or infrastructure failure.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrArticleNotFound) ||
		errors.Is(err, ErrCommentNotFound) ||
		errors.Is(err, ErrForbidden)
}

// ToErrorCode converts error to API error code
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrArticleNotFound):
		return "ARTICLE_NOT_FOUND"
	case errors.Is(err, ErrCommentNotFound):
		return "COMMENT_NOT_FOUND"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrArticleNotFound), errors.Is(err, ErrCommentNotFound):
		return 404
	case errors.Is(err, ErrForbidden):
		return 403
	default:
		return 500
	}
}
