package domain

import "time"

type ProfileId = string

type Profile struct {
	Id         ProfileId    `json:"id"`
	UserId     UserId       `json:"-"`
	User       ProfileOwner `json:"user"`
	Social     Social       `json:"social"`
	Courses    []Course     `json:"courses"`
	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// ProfileOwner is the slice of the owning user shown next to a profile.
type ProfileOwner struct {
	Id     UserId `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Admin  bool   `json:"isAdmin"`
}

type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
}

type Course struct {
	Id          string `json:"id"`
	Course      string `json:"course"`
	Semester    string `json:"semester"`
	Description string `json:"description"`
}

type Education struct {
	Id           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

type Experience struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}
