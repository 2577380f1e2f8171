package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateArticleRequestValidate(t *testing.T) {
	items := []struct {
		name string
		req  CreateArticleRequest
		ok   bool
	}{
		{"valid", CreateArticleRequest{Title: "How to train dragons", Body: "text"}, true},
		{"valid with tags", CreateArticleRequest{Title: "t", TagList: []string{"go", "db"}}, true},
		{"missing title", CreateArticleRequest{Body: "text"}, false},
		{"blank tag", CreateArticleRequest{Title: "t", TagList: []string{"go", ""}}, false},
	}

	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			err := item.req.Validate()
			if item.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestUpdateArticleRequestValidate(t *testing.T) {
	empty := ""
	title := "renamed"

	assert.NoError(t, UpdateArticleRequest{}.Validate())
	assert.NoError(t, UpdateArticleRequest{Title: &title}.Validate())
	assert.Error(t, UpdateArticleRequest{Title: &empty}.Validate())
}

func TestAddCommentRequestValidate(t *testing.T) {
	assert.NoError(t, AddCommentRequest{Body: "nice"}.Validate())
	assert.Error(t, AddCommentRequest{}.Validate())
}
