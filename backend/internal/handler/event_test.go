package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/studyhub-dev/studyhub/backend/internal/service"
	"github.com/studyhub-dev/studyhub/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventRouter(h *Handler) *chi.Mux {
	return authedRouter("admin", func(r chi.Router) {
		r.Post("/api/events/create", h.CreateEvent)
		r.Get("/api/events/all", h.Events)
		r.Get("/api/events/{eventId}", h.Event)
		r.Get("/api/events/group/{groupId}", h.EventsByGroup)
		r.Delete("/api/events/{eventId}", h.DeleteEvent)
	})
}

func eventFields() map[string]string {
	return map[string]string{
		"name":        "Exam prep",
		"description": "Bring notes",
		"eventDate":   "2026-12-01",
		"location":    "Library",
	}
}

func TestCreateEventHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		var got domain.EventCreationData
		h := &Handler{cfg: testConfig(), event: &MockEventService{MockCreate: func(ctx context.Context, creator domain.UserId, data domain.EventCreationData) (*domain.Event, error) {
			got = data
			return &domain.Event{Id: "e1", Name: data.Name}, nil
		}}}
		fields := eventFields()
		fields["relatedGroupID"] = groupUUID

		rr := serve(eventRouter(h), multipartRequest(t, http.MethodPost, "/api/events/create", fields, pngBytes(t)))

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "Event Upload is Successful", decodeBody(t, rr)["msg"])
		require.NotNil(t, got.RelatedGroupId)
		assert.Equal(t, groupUUID, *got.RelatedGroupId)
		assert.NotNil(t, got.Image)
	})

	t.Run("image missing", func(t *testing.T) {
		h := &Handler{cfg: testConfig(), event: &MockEventService{MockCreate: func(ctx context.Context, creator domain.UserId, data domain.EventCreationData) (*domain.Event, error) {
			assert.Nil(t, data.Image)
			assert.Nil(t, data.RelatedGroupId)
			return nil, service.ErrImageRequired
		}}}

		rr := serve(eventRouter(h), multipartRequest(t, http.MethodPost, "/api/events/create", eventFields(), nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Image is required", decodeBody(t, rr)["msg"])
	})

	t.Run("bad related group id", func(t *testing.T) {
		h := &Handler{cfg: testConfig(), event: &MockEventService{}}
		fields := eventFields()
		fields["relatedGroupID"] = "not-a-uuid"

		rr := serve(eventRouter(h), multipartRequest(t, http.MethodPost, "/api/events/create", fields, pngBytes(t)))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid fields: RelatedGroupId", decodeBody(t, rr)["msg"])
	})

	t.Run("image too large", func(t *testing.T) {
		cfg := testConfig()
		cfg.Public.MaxImageSize = 16
		h := &Handler{cfg: cfg, event: &MockEventService{}}

		rr := serve(eventRouter(h), multipartRequest(t, http.MethodPost, "/api/events/create", eventFields(), pngBytes(t)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	})
}

func TestEventReadHandlers(t *testing.T) {
	h := &Handler{event: &MockEventService{
		MockGet: func(ctx context.Context, id domain.EventId) (*domain.Event, error) {
			return nil, service.ErrEventNotFound
		},
		MockByGroup: func(ctx context.Context, groupId domain.GroupId) ([]domain.Event, error) {
			assert.Equal(t, "g1", groupId)
			return []domain.Event{{Id: "e1"}}, nil
		},
	}}
	router := eventRouter(h)

	rr := serve(router, createRequest(t, http.MethodGet, "/api/events/all", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "All Events", decodeBody(t, rr)["msg"])

	rr = serve(router, createRequest(t, http.MethodGet, "/api/events/group/g1", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "Events", body["msg"])
	assert.Len(t, body["events"], 1)

	rr = serve(router, createRequest(t, http.MethodGet, "/api/events/e404", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Event not found", decodeBody(t, rr)["msg"])
}

func TestDeleteEventHandler(t *testing.T) {
	h := &Handler{event: &MockEventService{MockDelete: func(ctx context.Context, id domain.EventId) error {
		if id == "missing" {
			return service.ErrEventNotFound
		}
		return nil
	}}}
	router := eventRouter(h)

	rr := serve(router, createRequest(t, http.MethodDelete, "/api/events/e1", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Event Deleted", decodeBody(t, rr)["msg"])

	rr = serve(router, createRequest(t, http.MethodDelete, "/api/events/missing", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
