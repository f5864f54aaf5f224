package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studyhub-dev/studyhub/shared/api"
	"github.com/studyhub-dev/studyhub/shared/domain"
	"github.com/studyhub-dev/studyhub/shared/utils"
)

func (h *Handler) Groups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.group.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.StudyGroupListResponse{Groups: groups})
}

func (h *Handler) JoinedGroups(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	groups, err := h.group.Joined(r.Context(), caller.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.StudyGroupListResponse{Groups: groups})
}

func (h *Handler) Group(w http.ResponseWriter, r *http.Request) {
	group, err := h.group.Get(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.StudyGroupResponse{Group: *group})
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var body api.CreateStudyGroupRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	group, err := h.group.Create(r.Context(), body.Name, body.Description)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.StudyGroupMessageResponse{Msg: "Study Group Created Successfully", Group: *group})
}

func (h *Handler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	var body api.UpdateStudyGroupRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	group, err := h.group.Update(r.Context(), chi.URLParam(r, "groupId"), domain.StudyGroupUpdate{Name: body.Name, Description: body.Description})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.StudyGroupMessageResponse{Msg: "Study Group Updated Successfully", Group: *group})
}

func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.group.Delete(r.Context(), chi.URLParam(r, "groupId")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Msg: "Study Group Deleted Successfully"})
}

func (h *Handler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	group, err := h.group.Join(r.Context(), chi.URLParam(r, "groupId"), caller.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.StudyGroupMessageResponse{Msg: "Joined Study Group Successfully", Group: *group})
}

func (h *Handler) LeaveGroup(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	group, err := h.group.Leave(r.Context(), chi.URLParam(r, "groupId"), caller.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.LeaveStudyGroupResponse{
		Msg:   "Left Study Group Successfully",
		Group: api.GroupMembers{Id: group.Id, Members: group.Members},
	})
}
