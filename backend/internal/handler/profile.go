package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studyhub-dev/studyhub/shared/api"
	"github.com/studyhub-dev/studyhub/shared/domain"
	"github.com/studyhub-dev/studyhub/shared/utils"
)

func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	var body api.SocialRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	profile, err := h.profile.Create(r.Context(), caller.Id, body.ToDomain())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.ProfileMessageResponse{Msg: "Profile Created", Profile: *profile})
}

func (h *Handler) MyProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	writeProfile(w)(h.profile.Mine(r.Context(), caller.Id))
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	var body api.SocialRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeProfile(w)(h.profile.UpdateSocial(r.Context(), caller.Id, body.ToDomain()))
}

func (h *Handler) Profiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profile.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.ProfileListResponse{Profiles: profiles})
}

func (h *Handler) ProfileById(w http.ResponseWriter, r *http.Request) {
	writeProfile(w)(h.profile.ById(r.Context(), chi.URLParam(r, "profileId")))
}

// DeleteProfile removes the caller's profile, account and posts.
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	if err := h.profile.Delete(r.Context(), caller.Id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Msg: "Profile Deleted"})
}

func (h *Handler) AddExperience(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	var body api.AddExperienceRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeProfile(w)(h.profile.AddExperience(r.Context(), caller.Id, domain.Experience{
		Title:       body.Title,
		Company:     body.Company,
		Location:    body.Location,
		From:        body.From,
		To:          body.To,
		Current:     body.Current,
		Description: body.Description,
	}))
}

func (h *Handler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	writeProfile(w)(h.profile.DeleteExperience(r.Context(), caller.Id, chi.URLParam(r, "expId")))
}

func (h *Handler) AddEducation(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	var body api.AddEducationRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeProfile(w)(h.profile.AddEducation(r.Context(), caller.Id, domain.Education{
		School:       body.School,
		Degree:       body.Degree,
		FieldOfStudy: body.FieldOfStudy,
		From:         body.From,
		To:           body.To,
		Current:      body.Current,
		Description:  body.Description,
	}))
}

func (h *Handler) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	writeProfile(w)(h.profile.DeleteEducation(r.Context(), caller.Id, chi.URLParam(r, "eduId")))
}

func (h *Handler) AddCourse(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	var body api.AddCourseRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeProfile(w)(h.profile.AddCourse(r.Context(), caller.Id, domain.Course{
		Course:      body.Course,
		Semester:    body.Semester,
		Description: body.Description,
	}))
}

func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	writeProfile(w)(h.profile.DeleteCourse(r.Context(), caller.Id, chi.URLParam(r, "courseId")))
}

// writeProfile adapts a service result into a {profile} response.
func writeProfile(w http.ResponseWriter) func(*domain.Profile, error) {
	return func(profile *domain.Profile, err error) {
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, api.ProfileResponse{Profile: *profile})
	}
}
