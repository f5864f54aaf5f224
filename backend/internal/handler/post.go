package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studyhub-dev/studyhub/shared/api"
	"github.com/studyhub-dev/studyhub/shared/domain"
	"github.com/studyhub-dev/studyhub/shared/utils"
)

// CreatePost reads a multipart form: content, studyGroupID and an optional image file.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
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

	body := api.CreatePostRequest{
		Content:      r.FormValue("content"),
		StudyGroupId: r.FormValue("studyGroupID"),
	}
	if err := utils.Validate(&body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Create(r.Context(), caller.Id, domain.PostCreationData{
		Content:      body.Content,
		StudyGroupId: body.StudyGroupId,
		Image:        image,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.PostResponse{Post: *post})
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	if err := h.post.Delete(r.Context(), caller.Id, chi.URLParam(r, "postId")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Msg: "Post deleted"})
}

func (h *Handler) Posts(w http.ResponseWriter, r *http.Request) {
	h.listPosts(w, r, domain.PostFilter{})
}

func (h *Handler) PostsByGroup(w http.ResponseWriter, r *http.Request) {
	h.listPosts(w, r, domain.PostFilter{StudyGroupId: chi.URLParam(r, "studyGroupId")})
}

func (h *Handler) PostsByUser(w http.ResponseWriter, r *http.Request) {
	h.listPosts(w, r, domain.PostFilter{UserId: chi.URLParam(r, "userId")})
}

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request, filter domain.PostFilter) {
	posts, err := h.post.List(r.Context(), filter)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.PostListResponse{Posts: posts})
}

func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	writePost(w)(h.post.Get(r.Context(), chi.URLParam(r, "postId")))
}

func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	writePost(w)(h.post.Like(r.Context(), caller.Id, chi.URLParam(r, "postId")))
}

func (h *Handler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	writePost(w)(h.post.Unlike(r.Context(), caller.Id, chi.URLParam(r, "postId")))
}

func (h *Handler) CommentPost(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	var body api.CommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writePost(w)(h.post.Comment(r.Context(), caller.Id, chi.URLParam(r, "postId"), body.Content))
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := identity(w, r)
	if !ok {
		return
	}
	post, err := h.post.DeleteComment(r.Context(), caller.Id, chi.URLParam(r, "postId"), chi.URLParam(r, "commentId"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.PostMessageResponse{Msg: "Comment deleted", Post: *post})
}

func writePost(w http.ResponseWriter) func(*domain.Post, error) {
	return func(post *domain.Post, err error) {
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		utils.WriteJSON(w, http.StatusOK, api.PostResponse{Post: *post})
	}
}
