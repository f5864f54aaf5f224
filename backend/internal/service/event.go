package service

import (
	"context"

	"github.com/studyhub-dev/studyhub/shared/domain"
	"github.com/studyhub-dev/studyhub/shared/errors"
	"github.com/studyhub-dev/studyhub/shared/logger"
)

var (
	ErrEventNotFound = errors.NotFound("Event not found")
	ErrImageRequired = errors.Validation("Image is required")
)

type EventService interface {
	Create(ctx context.Context, creator domain.UserId, data domain.EventCreationData) (*domain.Event, error)
	Get(ctx context.Context, id domain.EventId) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	ByGroup(ctx context.Context, groupId domain.GroupId) ([]domain.Event, error)
	Delete(ctx context.Context, id domain.EventId) error
}

type EventStorage interface {
	CreateEvent(ctx context.Context, event domain.Event) (*domain.Event, error)
	Event(ctx context.Context, id domain.EventId) (*domain.Event, error)
	Events(ctx context.Context, groupId domain.GroupId) ([]domain.Event, error)
	DeleteEvent(ctx context.Context, id domain.EventId) (*domain.Event, error)
	Group(ctx context.Context, id domain.GroupId) (*domain.StudyGroup, error)
}

type Event struct {
	storage EventStorage
	media   *Media
}

func NewEvent(storage EventStorage, media *Media) *Event {
	return &Event{storage: storage, media: media}
}

func (e *Event) Create(ctx context.Context, creator domain.UserId, data domain.EventCreationData) (*domain.Event, error) {
	if data.Image == nil {
		return nil, ErrImageRequired
	}
	if data.RelatedGroupId != nil {
		if _, err := groupOrNotFound(e.storage.Group(ctx, *data.RelatedGroupId)); err != nil {
			return nil, err
		}
	}

	image, err := e.media.SaveImage(data.Image, MediaKindEvents)
	if err != nil {
		return nil, err
	}

	event, err := e.storage.CreateEvent(ctx, domain.Event{
		UserId:         &creator,
		Name:           data.Name,
		Image:          image,
		Description:    data.Description,
		EventDate:      data.EventDate,
		Location:       data.Location,
		RelatedGroupId: data.RelatedGroupId,
	})
	if err != nil {
		e.media.Remove(image)
		return nil, err
	}
	logger.Log.Info("event created", "event_id", event.Id, "user_id", creator)
	return event, nil
}

func (e *Event) Get(ctx context.Context, id domain.EventId) (*domain.Event, error) {
	event, err := e.storage.Event(ctx, id)
	if errors.IsNotFound(err) {
		return nil, ErrEventNotFound
	}
	return event, err
}

func (e *Event) List(ctx context.Context) ([]domain.Event, error) {
	return e.storage.Events(ctx, "")
}

func (e *Event) ByGroup(ctx context.Context, groupId domain.GroupId) ([]domain.Event, error) {
	return e.storage.Events(ctx, groupId)
}

func (e *Event) Delete(ctx context.Context, id domain.EventId) error {
	event, err := e.storage.DeleteEvent(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return ErrEventNotFound
		}
		return err
	}
	e.media.Remove(event.Image)
	logger.Log.Info("event deleted", "event_id", id)
	return nil
}
