package service

import (
	"context"

	"github.com/studyhub-dev/studyhub/shared/domain"
	"github.com/studyhub-dev/studyhub/shared/errors"
	"github.com/studyhub-dev/studyhub/shared/logger"
)

var (
	ErrPostNotFound    = errors.NotFound("Post not found")
	ErrNoPost          = errors.NotFound("No Post Found")
	ErrCommentNotFound = errors.NotFound("Comment not found")
	ErrNotAuthorized   = errors.Forbidden("User not authorized")
	ErrAlreadyLiked    = errors.Validation("Post already liked")
	ErrNotLiked        = errors.Validation("Post has not been liked")
)

type PostService interface {
	Create(ctx context.Context, author domain.UserId, data domain.PostCreationData) (*domain.Post, error)
	Delete(ctx context.Context, actor domain.UserId, id domain.PostId) error
	Get(ctx context.Context, id domain.PostId) (*domain.Post, error)
	List(ctx context.Context, filter domain.PostFilter) ([]domain.Post, error)
	Like(ctx context.Context, actor domain.UserId, id domain.PostId) (*domain.Post, error)
	Unlike(ctx context.Context, actor domain.UserId, id domain.PostId) (*domain.Post, error)
	Comment(ctx context.Context, author domain.UserId, id domain.PostId, content string) (*domain.Post, error)
	DeleteComment(ctx context.Context, actor domain.UserId, id domain.PostId, commentId domain.CommentId) (*domain.Post, error)
}

type PostStorage interface {
	CreatePost(ctx context.Context, post domain.Post) (*domain.Post, error)
	Post(ctx context.Context, id domain.PostId) (*domain.Post, error)
	Posts(ctx context.Context, filter domain.PostFilter) ([]domain.Post, error)
	DeletePost(ctx context.Context, id domain.PostId) error
	AddLike(ctx context.Context, id domain.PostId, userId domain.UserId) (*domain.Post, error)
	RemoveLike(ctx context.Context, id domain.PostId, userId domain.UserId) (*domain.Post, error)
	AddComment(ctx context.Context, comment domain.Comment) (*domain.Post, error)
	DeleteComment(ctx context.Context, id domain.PostId, commentId domain.CommentId) (*domain.Post, error)

	UserById(ctx context.Context, id domain.UserId) (*domain.User, error)
	Group(ctx context.Context, id domain.GroupId) (*domain.StudyGroup, error)
}

// TextRenderer turns user-written markdown into sanitised HTML.
type TextRenderer interface {
	Render(text string) (string, error)
}

type Post struct {
	storage  PostStorage
	renderer TextRenderer
	media    *Media
}

func NewPost(storage PostStorage, renderer TextRenderer, media *Media) *Post {
	return &Post{storage: storage, renderer: renderer, media: media}
}

func (p *Post) Create(ctx context.Context, author domain.UserId, data domain.PostCreationData) (*domain.Post, error) {
	user, err := p.author(ctx, author)
	if err != nil {
		return nil, err
	}
	if _, err := groupOrNotFound(p.storage.Group(ctx, data.StudyGroupId)); err != nil {
		return nil, err
	}

	html, err := p.renderer.Render(data.Content)
	if err != nil {
		return nil, err
	}

	post := domain.Post{
		UserId:       user.Id,
		Content:      data.Content,
		ContentHTML:  html,
		Name:         user.Name,
		Avatar:       user.Avatar,
		StudyGroupId: data.StudyGroupId,
	}
	if data.Image != nil {
		post.Image, err = p.media.SaveImage(data.Image, MediaKindPosts)
		if err != nil {
			return nil, err
		}
	}

	created, err := p.storage.CreatePost(ctx, post)
	if err != nil {
		p.media.Remove(post.Image)
		return nil, err
	}
	return created, nil
}

// Delete removes a post. Only its author may do so.
func (p *Post) Delete(ctx context.Context, actor domain.UserId, id domain.PostId) error {
	post, err := p.post(ctx, id, ErrPostNotFound)
	if err != nil {
		return err
	}
	if post.UserId != actor {
		return ErrNotAuthorized
	}
	if err := p.storage.DeletePost(ctx, id); err != nil {
		if errors.IsNotFound(err) {
			return ErrPostNotFound
		}
		return err
	}
	p.media.Remove(post.Image)
	logger.Log.Info("post deleted", "post_id", id, "user_id", actor)
	return nil
}

func (p *Post) Get(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	return p.post(ctx, id, ErrNoPost)
}

func (p *Post) List(ctx context.Context, filter domain.PostFilter) ([]domain.Post, error) {
	return p.storage.Posts(ctx, filter)
}

func (p *Post) Like(ctx context.Context, actor domain.UserId, id domain.PostId) (*domain.Post, error) {
	post, err := p.post(ctx, id, ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	if post.LikedBy(actor) {
		return nil, ErrAlreadyLiked
	}
	return p.storage.AddLike(ctx, id, actor)
}

func (p *Post) Unlike(ctx context.Context, actor domain.UserId, id domain.PostId) (*domain.Post, error) {
	post, err := p.post(ctx, id, ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	if !post.LikedBy(actor) {
		return nil, ErrNotLiked
	}
	return p.storage.RemoveLike(ctx, id, actor)
}

func (p *Post) Comment(ctx context.Context, author domain.UserId, id domain.PostId, content string) (*domain.Post, error) {
	user, err := p.author(ctx, author)
	if err != nil {
		return nil, err
	}
	html, err := p.renderer.Render(content)
	if err != nil {
		return nil, err
	}

	post, err := p.storage.AddComment(ctx, domain.Comment{
		PostId:      id,
		UserId:      user.Id,
		Content:     content,
		ContentHTML: html,
		Name:        user.Name,
		Avatar:      user.Avatar,
	})
	if errors.IsNotFound(err) {
		return nil, ErrPostNotFound
	}
	return post, err
}

// DeleteComment removes a comment. Only the comment's author may do so.
func (p *Post) DeleteComment(ctx context.Context, actor domain.UserId, id domain.PostId, commentId domain.CommentId) (*domain.Post, error) {
	post, err := p.post(ctx, id, ErrPostNotFound)
	if err != nil {
		return nil, err
	}
	comment, ok := post.Comment(commentId)
	if !ok {
		return nil, ErrCommentNotFound
	}
	if comment.UserId != actor {
		return nil, ErrNotAuthorized
	}
	return p.storage.DeleteComment(ctx, id, commentId)
}

// post loads a post, reporting absence as notFound.
func (p *Post) post(ctx context.Context, id domain.PostId, notFound error) (*domain.Post, error) {
	post, err := p.storage.Post(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, notFound
		}
		return nil, err
	}
	return post, nil
}

// author loads the acting user for the name and avatar copied onto posts and comments.
func (p *Post) author(ctx context.Context, id domain.UserId) (*domain.User, error) {
	user, err := p.storage.UserById(ctx, id)
	if errors.IsNotFound(err) {
		return nil, ErrUserNotFound
	}
	return user, err
}
