package article

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMapping(t *testing.T) {
	items := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"article not found", ErrArticleNotFound, "ARTICLE_NOT_FOUND", 404},
		{"comment not found", ErrCommentNotFound, "COMMENT_NOT_FOUND", 404},
		{"forbidden", ErrForbidden, "FORBIDDEN", 403},
		{"wrapped forbidden", fmt.Errorf("remove: %w", ErrForbidden), "FORBIDDEN", 403},
		{"unexpected", errors.New("connection reset"), "INTERNAL_ERROR", 500},
	}

	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			assert.Equal(t, item.code, ToErrorCode(item.err))
			assert.Equal(t, item.status, ToHTTPStatus(item.err))
		})
	}
}

func TestIsDomainError(t *testing.T) {
	assert.True(t, IsDomainError(ErrArticleNotFound))
	assert.True(t, IsDomainError(fmt.Errorf("wrapped: %w", ErrForbidden)))
	assert.False(t, IsDomainError(errors.New("disk full")))
	assert.False(t, IsDomainError(nil))
}
