package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/studyhub-dev/studyhub/shared/domain"
	internal_errors "github.com/studyhub-dev/studyhub/shared/errors"
	sharedpg "github.com/studyhub-dev/studyhub/shared/storage/pg"
)

const postSelect = `
	SELECT id, user_id, study_group_id, content, content_html, image, name, avatar, created_at
	FROM posts`

var (
	errPostNotFound    = internal_errors.NotFound("Post not found")
	errCommentNotFound = internal_errors.NotFound("Comment not found")
	errAlreadyLiked    = internal_errors.Validation("Post already liked")
	errNotLiked        = internal_errors.Validation("Post has not been liked")
)

// =========================================================================
// Public Methods
// =========================================================================

func (s *Storage) CreatePost(ctx context.Context, post domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	post.Id = newId()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO posts(id, user_id, study_group_id, content, content_html, image, name, avatar)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		post.Id, post.UserId, post.StudyGroupId, post.Content, post.ContentHTML, post.Image, post.Name, post.Avatar,
	).Scan(&post.Timestamp)
	if err != nil {
		if sharedpg.IsForeignKeyViolation(err) {
			return nil, errGroupNotFound
		}
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}
	post.Likes = []domain.UserId{}
	post.Comments = []domain.Comment{}
	return &post, nil
}

func (s *Storage) Post(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	if !validId(id) {
		return nil, errPostNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return s.post(ctx, s.db, id)
}

// Posts lists posts newest first, narrowed by filter.
func (s *Storage) Posts(ctx context.Context, filter domain.PostFilter) ([]domain.Post, error) {
	if (filter.UserId != "" && !validId(filter.UserId)) || (filter.StudyGroupId != "" && !validId(filter.StudyGroupId)) {
		return []domain.Post{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var (
		where []string
		args  []any
	)
	if filter.UserId != "" {
		args = append(args, filter.UserId)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.StudyGroupId != "" {
		args = append(args, filter.StudyGroupId)
		where = append(where, fmt.Sprintf("study_group_id = $%d", len(args)))
	}
	query := postSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	if err := s.enrichPosts(ctx, s.db, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Storage) DeletePost(ctx context.Context, id domain.PostId) error {
	if !validId(id) {
		return errPostNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return requireAffected(result, errPostNotFound)
}

func (s *Storage) AddLike(ctx context.Context, postId domain.PostId, userId domain.UserId) (*domain.Post, error) {
	if !validId(postId) {
		return nil, errPostNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var post *domain.Post
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO post_likes(post_id, user_id) VALUES($1, $2)", postId, userId)
		if err != nil {
			switch {
			case sharedpg.IsUniqueViolation(err):
				return errAlreadyLiked
			case sharedpg.IsForeignKeyViolation(err):
				return errPostNotFound
			}
			return fmt.Errorf("failed to insert like: %w", err)
		}
		post, err = s.post(ctx, tx, postId)
		return err
	})
	return post, err
}

func (s *Storage) RemoveLike(ctx context.Context, postId domain.PostId, userId domain.UserId) (*domain.Post, error) {
	if !validId(postId) {
		return nil, errPostNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var post *domain.Post
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2", postId, userId)
		if err != nil {
			return fmt.Errorf("failed to delete like: %w", err)
		}
		if err := requireAffected(result, errNotLiked); err != nil {
			return err
		}
		post, err = s.post(ctx, tx, postId)
		return err
	})
	return post, err
}

func (s *Storage) AddComment(ctx context.Context, comment domain.Comment) (*domain.Post, error) {
	if !validId(comment.PostId) {
		return nil, errPostNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var post *domain.Post
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO post_comments(id, post_id, user_id, content, content_html, name, avatar)
			VALUES($1, $2, $3, $4, $5, $6, $7)`,
			newId(), comment.PostId, comment.UserId, comment.Content, comment.ContentHTML, comment.Name, comment.Avatar)
		if err != nil {
			if sharedpg.IsForeignKeyViolation(err) {
				return errPostNotFound
			}
			return fmt.Errorf("failed to insert comment: %w", err)
		}
		post, err = s.post(ctx, tx, comment.PostId)
		return err
	})
	return post, err
}

func (s *Storage) DeleteComment(ctx context.Context, postId domain.PostId, commentId domain.CommentId) (*domain.Post, error) {
	if !validId(postId) {
		return nil, errPostNotFound
	}
	if !validId(commentId) {
		return nil, errCommentNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var post *domain.Post
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM post_comments WHERE id = $1 AND post_id = $2", commentId, postId)
		if err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		if err := requireAffected(result, errCommentNotFound); err != nil {
			return err
		}
		post, err = s.post(ctx, tx, postId)
		return err
	})
	return post, err
}

// =========================================================================
// Internal Methods
// =========================================================================

func (s *Storage) post(ctx context.Context, q Querier, id domain.PostId) (*domain.Post, error) {
	post, err := scanPost(q.QueryRowContext(ctx, postSelect+" WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errPostNotFound
		}
		return nil, err
	}
	posts := []domain.Post{*post}
	if err := s.enrichPosts(ctx, q, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// enrichPosts loads likes and comments for all posts with one query each.
func (s *Storage) enrichPosts(ctx context.Context, q Querier, posts []domain.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, len(posts))
	byId := make(map[domain.PostId]*domain.Post, len(posts))
	for i := range posts {
		posts[i].Likes = []domain.UserId{}
		posts[i].Comments = []domain.Comment{}
		ids[i] = posts[i].Id
		byId[posts[i].Id] = &posts[i]
	}

	likeRows, err := q.QueryContext(ctx, `
		SELECT post_id, user_id FROM post_likes
		WHERE post_id = ANY($1::uuid[])
		ORDER BY created_at DESC`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query likes: %w", err)
	}
	defer likeRows.Close()
	for likeRows.Next() {
		var postId, userId string
		if err := likeRows.Scan(&postId, &userId); err != nil {
			return fmt.Errorf("failed to scan like: %w", err)
		}
		if p, ok := byId[postId]; ok {
			p.Likes = append(p.Likes, userId)
		}
	}
	if err := likeRows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}

	commentRows, err := q.QueryContext(ctx, `
		SELECT id, post_id, user_id, content, content_html, name, avatar, created_at FROM post_comments
		WHERE post_id = ANY($1::uuid[])
		ORDER BY created_at DESC`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query comments: %w", err)
	}
	defer commentRows.Close()
	for commentRows.Next() {
		var c domain.Comment
		if err := commentRows.Scan(&c.Id, &c.PostId, &c.UserId, &c.Content, &c.ContentHTML, &c.Name, &c.Avatar, &c.Date); err != nil {
			return fmt.Errorf("failed to scan comment: %w", err)
		}
		if p, ok := byId[c.PostId]; ok {
			p.Comments = append(p.Comments, c)
		}
	}
	if err := commentRows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}
	return nil
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var p domain.Post
	err := row.Scan(&p.Id, &p.UserId, &p.StudyGroupId, &p.Content, &p.ContentHTML, &p.Image, &p.Name, &p.Avatar, &p.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}
	return &p, nil
}
