package api

import "github.com/studyhub-dev/studyhub/shared/domain"

// CreatePostRequest is read from the multipart form fields of POST /api/posts/new.
type CreatePostRequest struct {
	Content      string `validate:"required"`
	StudyGroupId string `validate:"required,uuid"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type PostResponse struct {
	Post domain.Post `json:"post"`
}

type PostMessageResponse struct {
	Msg  string      `json:"msg"`
	Post domain.Post `json:"post"`
}

type PostListResponse struct {
	Posts []domain.Post `json:"posts"`
}
