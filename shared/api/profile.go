package api

import "github.com/studyhub-dev/studyhub/shared/domain"

type SocialRequest struct {
	Youtube   string `json:"youtube,omitempty" validate:"omitempty,url"`
	Facebook  string `json:"facebook,omitempty" validate:"omitempty,url"`
	Twitter   string `json:"twitter,omitempty" validate:"omitempty,url"`
	Instagram string `json:"instagram,omitempty" validate:"omitempty,url"`
	Linkedin  string `json:"linkedin,omitempty" validate:"omitempty,url"`
}

func (s SocialRequest) ToDomain() domain.Social {
	return domain.Social{
		Youtube:   s.Youtube,
		Facebook:  s.Facebook,
		Twitter:   s.Twitter,
		Instagram: s.Instagram,
		Linkedin:  s.Linkedin,
	}
}

type AddExperienceRequest struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type AddEducationRequest struct {
	School       string `json:"school" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required"`
	From         string `json:"from" validate:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

type AddCourseRequest struct {
	Course      string `json:"course" validate:"required"`
	Semester    string `json:"semester"`
	Description string `json:"description"`
}

type ProfileResponse struct {
	Profile domain.Profile `json:"profile"`
}

type ProfileMessageResponse struct {
	Msg     string         `json:"msg"`
	Profile domain.Profile `json:"profile"`
}

type ProfileListResponse struct {
	Profiles []domain.Profile `json:"profiles"`
}
