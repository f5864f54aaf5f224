package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/studyhub-dev/studyhub/shared/config"
	"github.com/studyhub-dev/studyhub/shared/domain"
	mw "github.com/studyhub-dev/studyhub/shared/middleware"
	"github.com/stretchr/testify/require"
)

// --- Service mocks ---

type MockAuthService struct {
	MockRegister  func(ctx context.Context, reg domain.Registration) error
	MockLogin     func(ctx context.Context, creds domain.Credentials) (string, error)
	MockSeedAdmin func(ctx context.Context, admin config.Admin) error
}

func (m *MockAuthService) Register(ctx context.Context, reg domain.Registration) error {
	if m.MockRegister != nil {
		return m.MockRegister(ctx, reg)
	}
	return nil
}

func (m *MockAuthService) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(ctx, creds)
	}
	return "", nil
}

func (m *MockAuthService) SeedAdmin(ctx context.Context, admin config.Admin) error {
	if m.MockSeedAdmin != nil {
		return m.MockSeedAdmin(ctx, admin)
	}
	return nil
}

type MockUserService struct {
	MockMe       func(ctx context.Context, id domain.UserId) (*domain.User, error)
	MockUpdate   func(ctx context.Context, id domain.UserId, update domain.UserUpdate) (*domain.User, error)
	MockSetAdmin func(ctx context.Context, actor, target domain.UserId, isAdmin bool) (*domain.User, error)
}

func (m *MockUserService) Me(ctx context.Context, id domain.UserId) (*domain.User, error) {
	if m.MockMe != nil {
		return m.MockMe(ctx, id)
	}
	return &domain.User{Id: id}, nil
}

func (m *MockUserService) Update(ctx context.Context, id domain.UserId, update domain.UserUpdate) (*domain.User, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, id, update)
	}
	return &domain.User{Id: id, Name: update.Name, Email: update.Email}, nil
}

func (m *MockUserService) SetAdmin(ctx context.Context, actor, target domain.UserId, isAdmin bool) (*domain.User, error) {
	if m.MockSetAdmin != nil {
		return m.MockSetAdmin(ctx, actor, target, isAdmin)
	}
	return &domain.User{Id: target, Admin: isAdmin}, nil
}

type MockProfileService struct {
	MockCreate           func(ctx context.Context, userId domain.UserId, social domain.Social) (*domain.Profile, error)
	MockMine             func(ctx context.Context, userId domain.UserId) (*domain.Profile, error)
	MockById             func(ctx context.Context, id domain.ProfileId) (*domain.Profile, error)
	MockList             func(ctx context.Context) ([]domain.Profile, error)
	MockUpdateSocial     func(ctx context.Context, userId domain.UserId, social domain.Social) (*domain.Profile, error)
	MockDelete           func(ctx context.Context, userId domain.UserId) error
	MockAddExperience    func(ctx context.Context, userId domain.UserId, exp domain.Experience) (*domain.Profile, error)
	MockDeleteExperience func(ctx context.Context, userId domain.UserId, id string) (*domain.Profile, error)
	MockAddEducation     func(ctx context.Context, userId domain.UserId, edu domain.Education) (*domain.Profile, error)
	MockDeleteEducation  func(ctx context.Context, userId domain.UserId, id string) (*domain.Profile, error)
	MockAddCourse        func(ctx context.Context, userId domain.UserId, course domain.Course) (*domain.Profile, error)
	MockDeleteCourse     func(ctx context.Context, userId domain.UserId, id string) (*domain.Profile, error)
}

func (m *MockProfileService) Create(ctx context.Context, userId domain.UserId, social domain.Social) (*domain.Profile, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, userId, social)
	}
	return &domain.Profile{UserId: userId, Social: social}, nil
}

func (m *MockProfileService) Mine(ctx context.Context, userId domain.UserId) (*domain.Profile, error) {
	if m.MockMine != nil {
		return m.MockMine(ctx, userId)
	}
	return &domain.Profile{UserId: userId}, nil
}

func (m *MockProfileService) ById(ctx context.Context, id domain.ProfileId) (*domain.Profile, error) {
	if m.MockById != nil {
		return m.MockById(ctx, id)
	}
	return &domain.Profile{Id: id}, nil
}

func (m *MockProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	if m.MockList != nil {
		return m.MockList(ctx)
	}
	return []domain.Profile{}, nil
}

func (m *MockProfileService) UpdateSocial(ctx context.Context, userId domain.UserId, social domain.Social) (*domain.Profile, error) {
	if m.MockUpdateSocial != nil {
		return m.MockUpdateSocial(ctx, userId, social)
	}
	return &domain.Profile{UserId: userId, Social: social}, nil
}

func (m *MockProfileService) Delete(ctx context.Context, userId domain.UserId) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, userId)
	}
	return nil
}

func (m *MockProfileService) AddExperience(ctx context.Context, userId domain.UserId, exp domain.Experience) (*domain.Profile, error) {
	if m.MockAddExperience != nil {
		return m.MockAddExperience(ctx, userId, exp)
	}
	return &domain.Profile{Experience: []domain.Experience{exp}}, nil
}

func (m *MockProfileService) DeleteExperience(ctx context.Context, userId domain.UserId, id string) (*domain.Profile, error) {
	if m.MockDeleteExperience != nil {
		return m.MockDeleteExperience(ctx, userId, id)
	}
	return &domain.Profile{}, nil
}

func (m *MockProfileService) AddEducation(ctx context.Context, userId domain.UserId, edu domain.Education) (*domain.Profile, error) {
	if m.MockAddEducation != nil {
		return m.MockAddEducation(ctx, userId, edu)
	}
	return &domain.Profile{Education: []domain.Education{edu}}, nil
}

func (m *MockProfileService) DeleteEducation(ctx context.Context, userId domain.UserId, id string) (*domain.Profile, error) {
	if m.MockDeleteEducation != nil {
		return m.MockDeleteEducation(ctx, userId, id)
	}
	return &domain.Profile{}, nil
}

func (m *MockProfileService) AddCourse(ctx context.Context, userId domain.UserId, course domain.Course) (*domain.Profile, error) {
	if m.MockAddCourse != nil {
		return m.MockAddCourse(ctx, userId, course)
	}
	return &domain.Profile{Courses: []domain.Course{course}}, nil
}

func (m *MockProfileService) DeleteCourse(ctx context.Context, userId domain.UserId, id string) (*domain.Profile, error) {
	if m.MockDeleteCourse != nil {
		return m.MockDeleteCourse(ctx, userId, id)
	}
	return &domain.Profile{}, nil
}

type MockGroupService struct {
	MockCreate func(ctx context.Context, name, description string) (*domain.StudyGroup, error)
	MockUpdate func(ctx context.Context, id domain.GroupId, update domain.StudyGroupUpdate) (*domain.StudyGroup, error)
	MockDelete func(ctx context.Context, id domain.GroupId) error
	MockGet    func(ctx context.Context, id domain.GroupId) (*domain.StudyGroup, error)
	MockList   func(ctx context.Context) ([]domain.StudyGroup, error)
	MockJoined func(ctx context.Context, userId domain.UserId) ([]domain.StudyGroup, error)
	MockJoin   func(ctx context.Context, id domain.GroupId, userId domain.UserId) (*domain.StudyGroup, error)
	MockLeave  func(ctx context.Context, id domain.GroupId, userId domain.UserId) (*domain.StudyGroup, error)
}

func (m *MockGroupService) Create(ctx context.Context, name, description string) (*domain.StudyGroup, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, name, description)
	}
	return &domain.StudyGroup{Id: "g1", Name: name, Description: description}, nil
}

func (m *MockGroupService) Update(ctx context.Context, id domain.GroupId, update domain.StudyGroupUpdate) (*domain.StudyGroup, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, id, update)
	}
	return &domain.StudyGroup{Id: id, Name: update.Name}, nil
}

func (m *MockGroupService) Delete(ctx context.Context, id domain.GroupId) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id)
	}
	return nil
}

func (m *MockGroupService) Get(ctx context.Context, id domain.GroupId) (*domain.StudyGroup, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return &domain.StudyGroup{Id: id}, nil
}

func (m *MockGroupService) List(ctx context.Context) ([]domain.StudyGroup, error) {
	if m.MockList != nil {
		return m.MockList(ctx)
	}
	return []domain.StudyGroup{}, nil
}

func (m *MockGroupService) Joined(ctx context.Context, userId domain.UserId) ([]domain.StudyGroup, error) {
	if m.MockJoined != nil {
		return m.MockJoined(ctx, userId)
	}
	return []domain.StudyGroup{}, nil
}

func (m *MockGroupService) Join(ctx context.Context, id domain.GroupId, userId domain.UserId) (*domain.StudyGroup, error) {
	if m.MockJoin != nil {
		return m.MockJoin(ctx, id, userId)
	}
	return &domain.StudyGroup{Id: id, Members: []domain.UserId{userId}}, nil
}

func (m *MockGroupService) Leave(ctx context.Context, id domain.GroupId, userId domain.UserId) (*domain.StudyGroup, error) {
	if m.MockLeave != nil {
		return m.MockLeave(ctx, id, userId)
	}
	return &domain.StudyGroup{Id: id, Members: []domain.UserId{}}, nil
}

type MockPostService struct {
	MockCreate        func(ctx context.Context, author domain.UserId, data domain.PostCreationData) (*domain.Post, error)
	MockDelete        func(ctx context.Context, actor domain.UserId, id domain.PostId) error
	MockGet           func(ctx context.Context, id domain.PostId) (*domain.Post, error)
	MockList          func(ctx context.Context, filter domain.PostFilter) ([]domain.Post, error)
	MockLike          func(ctx context.Context, actor domain.UserId, id domain.PostId) (*domain.Post, error)
	MockUnlike        func(ctx context.Context, actor domain.UserId, id domain.PostId) (*domain.Post, error)
	MockComment       func(ctx context.Context, author domain.UserId, id domain.PostId, content string) (*domain.Post, error)
	MockDeleteComment func(ctx context.Context, actor domain.UserId, id domain.PostId, commentId domain.CommentId) (*domain.Post, error)
}

func (m *MockPostService) Create(ctx context.Context, author domain.UserId, data domain.PostCreationData) (*domain.Post, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, author, data)
	}
	return &domain.Post{Id: "p1", UserId: author, Content: data.Content, StudyGroupId: data.StudyGroupId}, nil
}

func (m *MockPostService) Delete(ctx context.Context, actor domain.UserId, id domain.PostId) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, actor, id)
	}
	return nil
}

func (m *MockPostService) Get(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return &domain.Post{Id: id}, nil
}

func (m *MockPostService) List(ctx context.Context, filter domain.PostFilter) ([]domain.Post, error) {
	if m.MockList != nil {
		return m.MockList(ctx, filter)
	}
	return []domain.Post{}, nil
}

func (m *MockPostService) Like(ctx context.Context, actor domain.UserId, id domain.PostId) (*domain.Post, error) {
	if m.MockLike != nil {
		return m.MockLike(ctx, actor, id)
	}
	return &domain.Post{Id: id, Likes: []domain.UserId{actor}}, nil
}

func (m *MockPostService) Unlike(ctx context.Context, actor domain.UserId, id domain.PostId) (*domain.Post, error) {
	if m.MockUnlike != nil {
		return m.MockUnlike(ctx, actor, id)
	}
	return &domain.Post{Id: id}, nil
}

func (m *MockPostService) Comment(ctx context.Context, author domain.UserId, id domain.PostId, content string) (*domain.Post, error) {
	if m.MockComment != nil {
		return m.MockComment(ctx, author, id, content)
	}
	return &domain.Post{Id: id, Comments: []domain.Comment{{UserId: author, Content: content}}}, nil
}

func (m *MockPostService) DeleteComment(ctx context.Context, actor domain.UserId, id domain.PostId, commentId domain.CommentId) (*domain.Post, error) {
	if m.MockDeleteComment != nil {
		return m.MockDeleteComment(ctx, actor, id, commentId)
	}
	return &domain.Post{Id: id}, nil
}

type MockEventService struct {
	MockCreate  func(ctx context.Context, creator domain.UserId, data domain.EventCreationData) (*domain.Event, error)
	MockGet     func(ctx context.Context, id domain.EventId) (*domain.Event, error)
	MockList    func(ctx context.Context) ([]domain.Event, error)
	MockByGroup func(ctx context.Context, groupId domain.GroupId) ([]domain.Event, error)
	MockDelete  func(ctx context.Context, id domain.EventId) error
}

func (m *MockEventService) Create(ctx context.Context, creator domain.UserId, data domain.EventCreationData) (*domain.Event, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, creator, data)
	}
	return &domain.Event{Id: "e1", Name: data.Name}, nil
}

func (m *MockEventService) Get(ctx context.Context, id domain.EventId) (*domain.Event, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return &domain.Event{Id: id}, nil
}

func (m *MockEventService) List(ctx context.Context) ([]domain.Event, error) {
	if m.MockList != nil {
		return m.MockList(ctx)
	}
	return []domain.Event{}, nil
}

func (m *MockEventService) ByGroup(ctx context.Context, groupId domain.GroupId) ([]domain.Event, error) {
	if m.MockByGroup != nil {
		return m.MockByGroup(ctx, groupId)
	}
	return []domain.Event{}, nil
}

func (m *MockEventService) Delete(ctx context.Context, id domain.EventId) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, id)
	}
	return nil
}

// --- helpers ---

func testConfig() *config.Config {
	return &config.Config{Public: config.Public{
		MaxImageSize:          1 << 20,
		AllowedImageMimeTypes: []string{"image/png", "image/jpeg"},
	}}
}

func createRequest(t *testing.T, method, url string, body []byte) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withIdentity stands in for the auth middleware.
func withIdentity(id domain.UserId) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), mw.IdentityKey, &domain.Identity{Id: id, Name: "Caller"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authedRouter mounts handlers behind a fixed caller identity.
func authedRouter(caller domain.UserId, routes func(r chi.Router)) *chi.Mux {
	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(withIdentity(caller))
		routes(r)
	})
	return router
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}
