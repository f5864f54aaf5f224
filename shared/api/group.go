package api

import "github.com/studyhub-dev/studyhub/shared/domain"

type CreateStudyGroupRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type UpdateStudyGroupRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

type StudyGroupResponse struct {
	Group domain.StudyGroup `json:"group"`
}

type StudyGroupMessageResponse struct {
	Msg   string            `json:"msg"`
	Group domain.StudyGroup `json:"group"`
}

type StudyGroupListResponse struct {
	Groups []domain.StudyGroup `json:"groups"`
}

// GroupMembers is the reduced group shape returned after leaving.
type GroupMembers struct {
	Id      domain.GroupId  `json:"id"`
	Members []domain.UserId `json:"members"`
}

type LeaveStudyGroupResponse struct {
	Msg   string       `json:"msg"`
	Group GroupMembers `json:"group"`
}
