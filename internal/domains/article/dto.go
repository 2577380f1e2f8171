package article

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateArticleRequest - article creation payload
type CreateArticleRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Body        string   `json:"body"`
	TagList     []string `json:"tagList"`
}

func (r CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Description, validation.Length(0, 255)),
		validation.Field(&r.TagList, validation.Each(
			validation.Required.Error("tags must not be blank"),
			validation.Length(1, 255),
		)),
	)
}

// UpdateArticleRequest - partial update; absent fields stay unchanged
type UpdateArticleRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Body        *string `json:"body"`
}

func (r UpdateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Length(0, 255)),
	)
}

// AddCommentRequest - comment creation payload
type AddCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

func (r AddCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Body, validation.Required.Error("comment body is required")),
	)
}

// ArticleResponse wraps a single composed view
type ArticleResponse struct {
	Article *Article `json:"article"`
}

// ArticleListResponse wraps a listing page
type ArticleListResponse struct {
	Articles      []Article `json:"articles"`
	ArticlesCount int       `json:"articlesCount"`
}

// CommentResponse wraps a single comment
type CommentResponse struct {
	Comment *Comment `json:"comment"`
}

// CommentListResponse wraps an article's comments
type CommentListResponse struct {
	Comments []Comment `json:"comments"`
}

// TagListResponse wraps the tag cloud
type TagListResponse struct {
	Tags []string `json:"tags"`
}
