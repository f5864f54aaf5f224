package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/studyhub-dev/studyhub/shared/domain"
	"github.com/studyhub-dev/studyhub/shared/errors"
	"github.com/studyhub-dev/studyhub/shared/logger"
)

// An ongoing experience or education entry has no end date; it is stored as a single space.
const openEndedTo = " "

var (
	ErrNoProfile          = errors.Validation("No Profile Found")
	ErrExperienceNotFound = errors.NotFound("Experience not found")
	ErrEducationNotFound  = errors.NotFound("Education not found")
	ErrCourseNotFound     = errors.NotFound("Course not found")
)

type ProfileService interface {
	Create(ctx context.Context, userId domain.UserId, social domain.Social) (*domain.Profile, error)
	Mine(ctx context.Context, userId domain.UserId) (*domain.Profile, error)
	ById(ctx context.Context, id domain.ProfileId) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	UpdateSocial(ctx context.Context, userId domain.UserId, social domain.Social) (*domain.Profile, error)
	Delete(ctx context.Context, userId domain.UserId) error

	AddExperience(ctx context.Context, userId domain.UserId, exp domain.Experience) (*domain.Profile, error)
	DeleteExperience(ctx context.Context, userId domain.UserId, id string) (*domain.Profile, error)
	AddEducation(ctx context.Context, userId domain.UserId, edu domain.Education) (*domain.Profile, error)
	DeleteEducation(ctx context.Context, userId domain.UserId, id string) (*domain.Profile, error)
	AddCourse(ctx context.Context, userId domain.UserId, course domain.Course) (*domain.Profile, error)
	DeleteCourse(ctx context.Context, userId domain.UserId, id string) (*domain.Profile, error)
}

type ProfileStorage interface {
	CreateProfile(ctx context.Context, userId domain.UserId, social domain.Social) (*domain.Profile, error)
	ProfileByUser(ctx context.Context, userId domain.UserId) (*domain.Profile, error)
	ProfileById(ctx context.Context, id domain.ProfileId) (*domain.Profile, error)
	Profiles(ctx context.Context) ([]domain.Profile, error)
	UpdateProfile(ctx context.Context, userId domain.UserId, mutate func(*domain.Profile) error) (*domain.Profile, error)
	DeleteUser(ctx context.Context, id domain.UserId) error
	Posts(ctx context.Context, filter domain.PostFilter) ([]domain.Post, error)
}

type Profile struct {
	storage ProfileStorage
	media   *Media
}

func NewProfile(storage ProfileStorage, media *Media) *Profile {
	return &Profile{storage: storage, media: media}
}

func (p *Profile) Create(ctx context.Context, userId domain.UserId, social domain.Social) (*domain.Profile, error) {
	return p.storage.CreateProfile(ctx, userId, social)
}

func (p *Profile) Mine(ctx context.Context, userId domain.UserId) (*domain.Profile, error) {
	return noProfile(p.storage.ProfileByUser(ctx, userId))
}

func (p *Profile) ById(ctx context.Context, id domain.ProfileId) (*domain.Profile, error) {
	return noProfile(p.storage.ProfileById(ctx, id))
}

func (p *Profile) List(ctx context.Context) ([]domain.Profile, error) {
	return p.storage.Profiles(ctx)
}

func (p *Profile) UpdateSocial(ctx context.Context, userId domain.UserId, social domain.Social) (*domain.Profile, error) {
	return p.update(ctx, userId, func(profile *domain.Profile) error {
		profile.Social = social
		return nil
	})
}

// Delete removes the profile together with its user account and that user's posts.
func (p *Profile) Delete(ctx context.Context, userId domain.UserId) error {
	if _, err := p.Mine(ctx, userId); err != nil {
		return err
	}

	posts, err := p.storage.Posts(ctx, domain.PostFilter{UserId: userId})
	if err != nil {
		return err
	}
	if err := p.storage.DeleteUser(ctx, userId); err != nil {
		return err
	}
	for _, post := range posts {
		p.media.Remove(post.Image)
	}
	logger.Log.Info("account deleted", "user_id", userId, "posts", len(posts))
	return nil
}

func (p *Profile) AddExperience(ctx context.Context, userId domain.UserId, exp domain.Experience) (*domain.Profile, error) {
	exp.Id = uuid.NewString()
	if exp.To == "" {
		exp.To = openEndedTo
	}
	return p.update(ctx, userId, func(profile *domain.Profile) error {
		profile.Experience = append([]domain.Experience{exp}, profile.Experience...)
		return nil
	})
}

func (p *Profile) DeleteExperience(ctx context.Context, userId domain.UserId, id string) (*domain.Profile, error) {
	return p.update(ctx, userId, func(profile *domain.Profile) error {
		var ok bool
		profile.Experience, ok = removeById(profile.Experience, id, func(e domain.Experience) string { return e.Id })
		if !ok {
			return ErrExperienceNotFound
		}
		return nil
	})
}

func (p *Profile) AddEducation(ctx context.Context, userId domain.UserId, edu domain.Education) (*domain.Profile, error) {
	edu.Id = uuid.NewString()
	if edu.To == "" {
		edu.To = openEndedTo
	}
	return p.update(ctx, userId, func(profile *domain.Profile) error {
		profile.Education = append([]domain.Education{edu}, profile.Education...)
		return nil
	})
}

func (p *Profile) DeleteEducation(ctx context.Context, userId domain.UserId, id string) (*domain.Profile, error) {
	return p.update(ctx, userId, func(profile *domain.Profile) error {
		var ok bool
		profile.Education, ok = removeById(profile.Education, id, func(e domain.Education) string { return e.Id })
		if !ok {
			return ErrEducationNotFound
		}
		return nil
	})
}

func (p *Profile) AddCourse(ctx context.Context, userId domain.UserId, course domain.Course) (*domain.Profile, error) {
	course.Id = uuid.NewString()
	return p.update(ctx, userId, func(profile *domain.Profile) error {
		profile.Courses = append([]domain.Course{course}, profile.Courses...)
		return nil
	})
}

func (p *Profile) DeleteCourse(ctx context.Context, userId domain.UserId, id string) (*domain.Profile, error) {
	return p.update(ctx, userId, func(profile *domain.Profile) error {
		var ok bool
		profile.Courses, ok = removeById(profile.Courses, id, func(c domain.Course) string { return c.Id })
		if !ok {
			return ErrCourseNotFound
		}
		return nil
	})
}

func (p *Profile) update(ctx context.Context, userId domain.UserId, mutate func(*domain.Profile) error) (*domain.Profile, error) {
	return noProfile(p.storage.UpdateProfile(ctx, userId, mutate))
}

// noProfile reports a missing profile the way clients expect: 400 "No Profile Found".
func noProfile(profile *domain.Profile, err error) (*domain.Profile, error) {
	switch {
	case err == nil:
		return profile, nil
	case err == ErrExperienceNotFound, err == ErrEducationNotFound, err == ErrCourseNotFound:
		return nil, err
	case errors.IsNotFound(err):
		return nil, ErrNoProfile
	}
	return nil, err
}

// removeById drops the item with the given id. Unknown ids leave items untouched.
func removeById[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	for i, item := range items {
		if idOf(item) == id {
			return append(items[:i:i], items[i+1:]...), true
		}
	}
	return items, false
}
