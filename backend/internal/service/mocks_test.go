package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/studyhub-dev/studyhub/shared/domain"
	internal_errors "github.com/studyhub-dev/studyhub/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Storage mock ---

// MockStorage implements every service storage interface. Unset funcs return a NotFound error
// or an empty result so tests only stub what they exercise.
type MockStorage struct {
	SaveUserFunc    func(ctx context.Context, user domain.User) (domain.UserId, error)
	UserByEmailFunc func(ctx context.Context, email domain.Email) (*domain.User, error)
	UserByIdFunc    func(ctx context.Context, id domain.UserId) (*domain.User, error)
	UpdateUserFunc  func(ctx context.Context, user domain.User) (*domain.User, error)
	SetAdminFunc    func(ctx context.Context, id domain.UserId, isAdmin bool) (*domain.User, error)
	DeleteUserFunc  func(ctx context.Context, id domain.UserId) error

	CreateProfileFunc func(ctx context.Context, userId domain.UserId, social domain.Social) (*domain.Profile, error)
	ProfileByUserFunc func(ctx context.Context, userId domain.UserId) (*domain.Profile, error)
	ProfileByIdFunc   func(ctx context.Context, id domain.ProfileId) (*domain.Profile, error)
	ProfilesFunc      func(ctx context.Context) ([]domain.Profile, error)
	UpdateProfileFunc func(ctx context.Context, userId domain.UserId, mutate func(*domain.Profile) error) (*domain.Profile, error)

	CreateGroupFunc    func(ctx context.Context, name, description string) (*domain.StudyGroup, error)
	UpdateGroupFunc    func(ctx context.Context, id domain.GroupId, update domain.StudyGroupUpdate) (*domain.StudyGroup, error)
	DeleteGroupFunc    func(ctx context.Context, id domain.GroupId) error
	GroupFunc          func(ctx context.Context, id domain.GroupId) (*domain.StudyGroup, error)
	GroupsFunc         func(ctx context.Context) ([]domain.StudyGroup, error)
	GroupsByMemberFunc func(ctx context.Context, userId domain.UserId) ([]domain.StudyGroup, error)
	AddMemberFunc      func(ctx context.Context, id domain.GroupId, userId domain.UserId) (*domain.StudyGroup, error)
	RemoveMemberFunc   func(ctx context.Context, id domain.GroupId, userId domain.UserId) (*domain.StudyGroup, error)

	CreatePostFunc    func(ctx context.Context, post domain.Post) (*domain.Post, error)
	PostFunc          func(ctx context.Context, id domain.PostId) (*domain.Post, error)
	PostsFunc         func(ctx context.Context, filter domain.PostFilter) ([]domain.Post, error)
	DeletePostFunc    func(ctx context.Context, id domain.PostId) error
	AddLikeFunc       func(ctx context.Context, id domain.PostId, userId domain.UserId) (*domain.Post, error)
	RemoveLikeFunc    func(ctx context.Context, id domain.PostId, userId domain.UserId) (*domain.Post, error)
	AddCommentFunc    func(ctx context.Context, comment domain.Comment) (*domain.Post, error)
	DeleteCommentFunc func(ctx context.Context, id domain.PostId, commentId domain.CommentId) (*domain.Post, error)

	CreateEventFunc func(ctx context.Context, event domain.Event) (*domain.Event, error)
	EventFunc       func(ctx context.Context, id domain.EventId) (*domain.Event, error)
	EventsFunc      func(ctx context.Context, groupId domain.GroupId) ([]domain.Event, error)
	DeleteEventFunc func(ctx context.Context, id domain.EventId) (*domain.Event, error)
}

var errMockNotFound = internal_errors.NotFound("not found")

func (m *MockStorage) SaveUser(ctx context.Context, user domain.User) (domain.UserId, error) {
	if m.SaveUserFunc != nil {
		return m.SaveUserFunc(ctx, user)
	}
	return "new-user", nil
}

func (m *MockStorage) UserByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	if m.UserByEmailFunc != nil {
		return m.UserByEmailFunc(ctx, email)
	}
	return nil, errMockNotFound
}

func (m *MockStorage) UserById(ctx context.Context, id domain.UserId) (*domain.User, error) {
	if m.UserByIdFunc != nil {
		return m.UserByIdFunc(ctx, id)
	}
	return nil, errMockNotFound
}

func (m *MockStorage) UpdateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, user)
	}
	return &user, nil
}

func (m *MockStorage) SetAdmin(ctx context.Context, id domain.UserId, isAdmin bool) (*domain.User, error) {
	if m.SetAdminFunc != nil {
		return m.SetAdminFunc(ctx, id, isAdmin)
	}
	return nil, errMockNotFound
}

func (m *MockStorage) DeleteUser(ctx context.Context, id domain.UserId) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, id)
	}
	return nil
}

func (m *MockStorage) CreateProfile(ctx context.Context, userId domain.UserId, social domain.Social) (*domain.Profile, error) {
	if m.CreateProfileFunc != nil {
		return m.CreateProfileFunc(ctx, userId, social)
	}
	return &domain.Profile{Id: "p1", UserId: userId, Social: social}, nil
}

func (m *MockStorage) ProfileByUser(ctx context.Context, userId domain.UserId) (*domain.Profile, error) {
	if m.ProfileByUserFunc != nil {
		return m.ProfileByUserFunc(ctx, userId)
	}
	return nil, internal_errors.NotFound("Profile not found")
}

func (m *MockStorage) ProfileById(ctx context.Context, id domain.ProfileId) (*domain.Profile, error) {
	if m.ProfileByIdFunc != nil {
		return m.ProfileByIdFunc(ctx, id)
	}
	return nil, internal_errors.NotFound("Profile not found")
}

func (m *MockStorage) Profiles(ctx context.Context) ([]domain.Profile, error) {
	if m.ProfilesFunc != nil {
		return m.ProfilesFunc(ctx)
	}
	return []domain.Profile{}, nil
}

func (m *MockStorage) UpdateProfile(ctx context.Context, userId domain.UserId, mutate func(*domain.Profile) error) (*domain.Profile, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userId, mutate)
	}
	return nil, internal_errors.NotFound("Profile not found")
}

func (m *MockStorage) CreateGroup(ctx context.Context, name, description string) (*domain.StudyGroup, error) {
	if m.CreateGroupFunc != nil {
		return m.CreateGroupFunc(ctx, name, description)
	}
	return &domain.StudyGroup{Id: "g1", Name: name, Description: description, Members: []domain.UserId{}}, nil
}

func (m *MockStorage) UpdateGroup(ctx context.Context, id domain.GroupId, update domain.StudyGroupUpdate) (*domain.StudyGroup, error) {
	if m.UpdateGroupFunc != nil {
		return m.UpdateGroupFunc(ctx, id, update)
	}
	return nil, errMockNotFound
}

func (m *MockStorage) DeleteGroup(ctx context.Context, id domain.GroupId) error {
	if m.DeleteGroupFunc != nil {
		return m.DeleteGroupFunc(ctx, id)
	}
	return errMockNotFound
}

func (m *MockStorage) Group(ctx context.Context, id domain.GroupId) (*domain.StudyGroup, error) {
	if m.GroupFunc != nil {
		return m.GroupFunc(ctx, id)
	}
	return nil, errMockNotFound
}

func (m *MockStorage) Groups(ctx context.Context) ([]domain.StudyGroup, error) {
	if m.GroupsFunc != nil {
		return m.GroupsFunc(ctx)
	}
	return []domain.StudyGroup{}, nil
}

func (m *MockStorage) GroupsByMember(ctx context.Context, userId domain.UserId) ([]domain.StudyGroup, error) {
	if m.GroupsByMemberFunc != nil {
		return m.GroupsByMemberFunc(ctx, userId)
	}
	return []domain.StudyGroup{}, nil
}

func (m *MockStorage) AddMember(ctx context.Context, id domain.GroupId, userId domain.UserId) (*domain.StudyGroup, error) {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, id, userId)
	}
	return &domain.StudyGroup{Id: id, Members: []domain.UserId{userId}}, nil
}

func (m *MockStorage) RemoveMember(ctx context.Context, id domain.GroupId, userId domain.UserId) (*domain.StudyGroup, error) {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, id, userId)
	}
	return &domain.StudyGroup{Id: id, Members: []domain.UserId{}}, nil
}

func (m *MockStorage) CreatePost(ctx context.Context, post domain.Post) (*domain.Post, error) {
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(ctx, post)
	}
	post.Id = "post-1"
	return &post, nil
}

func (m *MockStorage) Post(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	if m.PostFunc != nil {
		return m.PostFunc(ctx, id)
	}
	return nil, errMockNotFound
}

func (m *MockStorage) Posts(ctx context.Context, filter domain.PostFilter) ([]domain.Post, error) {
	if m.PostsFunc != nil {
		return m.PostsFunc(ctx, filter)
	}
	return []domain.Post{}, nil
}

func (m *MockStorage) DeletePost(ctx context.Context, id domain.PostId) error {
	if m.DeletePostFunc != nil {
		return m.DeletePostFunc(ctx, id)
	}
	return nil
}

func (m *MockStorage) AddLike(ctx context.Context, id domain.PostId, userId domain.UserId) (*domain.Post, error) {
	if m.AddLikeFunc != nil {
		return m.AddLikeFunc(ctx, id, userId)
	}
	return &domain.Post{Id: id, Likes: []domain.UserId{userId}}, nil
}

func (m *MockStorage) RemoveLike(ctx context.Context, id domain.PostId, userId domain.UserId) (*domain.Post, error) {
	if m.RemoveLikeFunc != nil {
		return m.RemoveLikeFunc(ctx, id, userId)
	}
	return &domain.Post{Id: id, Likes: []domain.UserId{}}, nil
}

func (m *MockStorage) AddComment(ctx context.Context, comment domain.Comment) (*domain.Post, error) {
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, comment)
	}
	return &domain.Post{Id: comment.PostId, Comments: []domain.Comment{comment}}, nil
}

func (m *MockStorage) DeleteComment(ctx context.Context, id domain.PostId, commentId domain.CommentId) (*domain.Post, error) {
	if m.DeleteCommentFunc != nil {
		return m.DeleteCommentFunc(ctx, id, commentId)
	}
	return &domain.Post{Id: id, Comments: []domain.Comment{}}, nil
}

func (m *MockStorage) CreateEvent(ctx context.Context, event domain.Event) (*domain.Event, error) {
	if m.CreateEventFunc != nil {
		return m.CreateEventFunc(ctx, event)
	}
	event.Id = "event-1"
	return &event, nil
}

func (m *MockStorage) Event(ctx context.Context, id domain.EventId) (*domain.Event, error) {
	if m.EventFunc != nil {
		return m.EventFunc(ctx, id)
	}
	return nil, errMockNotFound
}

func (m *MockStorage) Events(ctx context.Context, groupId domain.GroupId) ([]domain.Event, error) {
	if m.EventsFunc != nil {
		return m.EventsFunc(ctx, groupId)
	}
	return []domain.Event{}, nil
}

func (m *MockStorage) DeleteEvent(ctx context.Context, id domain.EventId) (*domain.Event, error) {
	if m.DeleteEventFunc != nil {
		return m.DeleteEventFunc(ctx, id)
	}
	return nil, errMockNotFound
}

var (
	_ AuthStorage    = (*MockStorage)(nil)
	_ UserStorage    = (*MockStorage)(nil)
	_ ProfileStorage = (*MockStorage)(nil)
	_ GroupStorage   = (*MockStorage)(nil)
	_ PostStorage    = (*MockStorage)(nil)
	_ EventStorage   = (*MockStorage)(nil)
)

// --- Hasher, Jwt, renderer and media mocks ---

// MockHasher "hashes" by prefixing, so tests stay fast and deterministic.
type MockHasher struct {
	HashFunc func(plaintext string) (string, error)
}

func (m *MockHasher) Hash(plaintext string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(plaintext)
	}
	if plaintext == "" {
		return "", internal_errors.Validation("Password is required")
	}
	return "hashed:" + plaintext, nil
}

func (m *MockHasher) Verify(plaintext, hash string) bool {
	return hash == "hashed:"+plaintext
}

type MockJwt struct {
	NewTokenFunc func(identity domain.Identity) (string, error)
}

func (m *MockJwt) NewToken(identity domain.Identity) (string, error) {
	if m.NewTokenFunc != nil {
		return m.NewTokenFunc(identity)
	}
	return "token-for-" + identity.Id, nil
}

type MockRenderer struct{}

func (MockRenderer) Render(text string) (string, error) {
	return "<p>" + text + "</p>", nil
}

type MockMediaStorage struct {
	SaveFunc func(data io.Reader, kind, ext string) (string, error)
	saved    []string
	deleted  []string
}

func (m *MockMediaStorage) Save(data io.Reader, kind, ext string) (string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(data, kind, ext)
	}
	if _, err := io.ReadAll(data); err != nil {
		return "", err
	}
	path := kind + "/file" + ext
	m.saved = append(m.saved, path)
	return path, nil
}

func (m *MockMediaStorage) Delete(relativePath string) error {
	m.deleted = append(m.deleted, relativePath)
	return nil
}

// --- helpers ---

func testPNG(t *testing.T) *domain.PendingImage {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 3))))
	return &domain.PendingImage{Filename: "a.png", MimeType: "image/png", SizeBytes: int64(buf.Len()), Width: 4, Height: 3, Data: &buf}
}

func requireStatusError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	require.Error(t, err)
	var e *internal_errors.ErrorWithStatusCode
	require.True(t, errors.As(err, &e), "expected ErrorWithStatusCode, got %T: %v", err, err)
	assert.Equal(t, status, e.StatusCode)
	assert.Equal(t, msg, e.Message)
}
