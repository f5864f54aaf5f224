package service

import (
	"context"

	"github.com/studyhub-dev/studyhub/shared/domain"
	"github.com/studyhub-dev/studyhub/shared/errors"
	"github.com/studyhub-dev/studyhub/shared/logger"
)

var (
	ErrGroupNotFound = errors.NotFound("Study Group not found")
	ErrAlreadyMember = errors.Validation("User is already a member of the Study Group")
	ErrNotMember     = errors.Validation("User is not a member of this study group")
)

type GroupService interface {
	Create(ctx context.Context, name, description string) (*domain.StudyGroup, error)
	Update(ctx context.Context, id domain.GroupId, update domain.StudyGroupUpdate) (*domain.StudyGroup, error)
	Delete(ctx context.Context, id domain.GroupId) error
	Get(ctx context.Context, id domain.GroupId) (*domain.StudyGroup, error)
	List(ctx context.Context) ([]domain.StudyGroup, error)
	Joined(ctx context.Context, userId domain.UserId) ([]domain.StudyGroup, error)
	Join(ctx context.Context, id domain.GroupId, userId domain.UserId) (*domain.StudyGroup, error)
	Leave(ctx context.Context, id domain.GroupId, userId domain.UserId) (*domain.StudyGroup, error)
}

type GroupStorage interface {
	CreateGroup(ctx context.Context, name, description string) (*domain.StudyGroup, error)
	UpdateGroup(ctx context.Context, id domain.GroupId, update domain.StudyGroupUpdate) (*domain.StudyGroup, error)
	DeleteGroup(ctx context.Context, id domain.GroupId) error
	Group(ctx context.Context, id domain.GroupId) (*domain.StudyGroup, error)
	Groups(ctx context.Context) ([]domain.StudyGroup, error)
	GroupsByMember(ctx context.Context, userId domain.UserId) ([]domain.StudyGroup, error)
	AddMember(ctx context.Context, id domain.GroupId, userId domain.UserId) (*domain.StudyGroup, error)
	RemoveMember(ctx context.Context, id domain.GroupId, userId domain.UserId) (*domain.StudyGroup, error)
}

type Group struct {
	storage GroupStorage
}

func NewGroup(storage GroupStorage) *Group {
	return &Group{storage: storage}
}

func (g *Group) Create(ctx context.Context, name, description string) (*domain.StudyGroup, error) {
	group, err := g.storage.CreateGroup(ctx, name, description)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("study group created", "group_id", group.Id, "name", name)
	return group, nil
}

func (g *Group) Update(ctx context.Context, id domain.GroupId, update domain.StudyGroupUpdate) (*domain.StudyGroup, error) {
	return groupOrNotFound(g.storage.UpdateGroup(ctx, id, update))
}

func (g *Group) Delete(ctx context.Context, id domain.GroupId) error {
	if err := g.storage.DeleteGroup(ctx, id); err != nil {
		if errors.IsNotFound(err) {
			return ErrGroupNotFound
		}
		return err
	}
	logger.Log.Info("study group deleted", "group_id", id)
	return nil
}

func (g *Group) Get(ctx context.Context, id domain.GroupId) (*domain.StudyGroup, error) {
	return groupOrNotFound(g.storage.Group(ctx, id))
}

func (g *Group) List(ctx context.Context) ([]domain.StudyGroup, error) {
	return g.storage.Groups(ctx)
}

func (g *Group) Joined(ctx context.Context, userId domain.UserId) ([]domain.StudyGroup, error) {
	return g.storage.GroupsByMember(ctx, userId)
}

func (g *Group) Join(ctx context.Context, id domain.GroupId, userId domain.UserId) (*domain.StudyGroup, error) {
	group, err := g.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if group.HasMember(userId) {
		return nil, ErrAlreadyMember
	}
	return g.storage.AddMember(ctx, id, userId)
}

func (g *Group) Leave(ctx context.Context, id domain.GroupId, userId domain.UserId) (*domain.StudyGroup, error) {
	group, err := g.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userId) {
		return nil, ErrNotMember
	}
	return g.storage.RemoveMember(ctx, id, userId)
}

func groupOrNotFound(group *domain.StudyGroup, err error) (*domain.StudyGroup, error) {
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}
