package api

import "github.com/studyhub-dev/studyhub/shared/domain"

// CreateEventRequest is read from the multipart form fields of POST /api/events/create.
type CreateEventRequest struct {
	Name           string `validate:"required"`
	Description    string `validate:"required"`
	EventDate      string `validate:"required"`
	Location       string `validate:"required"`
	RelatedGroupId string `validate:"omitempty,uuid"`
}

type EventResponse struct {
	Msg   string       `json:"msg"`
	Event domain.Event `json:"event"`
}

type EventListResponse struct {
	Msg    string         `json:"msg"`
	Events []domain.Event `json:"events"`
}
