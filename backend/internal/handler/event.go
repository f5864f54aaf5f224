package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studyhub-dev/studyhub/shared/api"
	"github.com/studyhub-dev/studyhub/shared/domain"
	"github.com/studyhub-dev/studyhub/shared/utils"
)

// CreateEvent is mounted behind the role gate. The image file is required.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	image, cleanup, err := h.parseImageForm(w, r)
	defer cleanup()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	body := api.CreateEventRequest{
		Name:           r.FormValue("name"),
		Description:    r.FormValue("description"),
		EventDate:      r.FormValue("eventDate"),
		Location:       r.FormValue("location"),
		RelatedGroupId: r.FormValue("relatedGroupID"),
	}
	if err := utils.Validate(&body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	data := domain.EventCreationData{
		Name:        body.Name,
		Description: body.Description,
		EventDate:   body.EventDate,
		Location:    body.Location,
		Image:       image,
	}
	if body.RelatedGroupId != "" {
		data.RelatedGroupId = &body.RelatedGroupId
	}

	event, err := h.event.Create(r.Context(), caller.Id, data)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.EventResponse{Msg: "Event Upload is Successful", Event: *event})
}

func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	events, err := h.event.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.EventListResponse{Msg: "All Events", Events: events})
}

func (h *Handler) Event(w http.ResponseWriter, r *http.Request) {
	event, err := h.event.Get(r.Context(), chi.URLParam(r, "eventId"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.EventResponse{Msg: "Event", Event: *event})
}

func (h *Handler) EventsByGroup(w http.ResponseWriter, r *http.Request) {
	events, err := h.event.ByGroup(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.EventListResponse{Msg: "Events", Events: events})
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.event.Delete(r.Context(), chi.URLParam(r, "eventId")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Msg: "Event Deleted"})
}
