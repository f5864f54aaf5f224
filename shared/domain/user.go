package domain

import "time"

type (
	UserId   = string
	Email    = string
	Password = string
)

// User is the Credential Store record. PassHash never leaves the backend.
type User struct {
	Id        UserId    `json:"id"`
	Name      string    `json:"name"`
	Email     Email     `json:"email"`
	PassHash  string    `json:"-"`
	Avatar    string    `json:"avatar"`
	Admin     bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"date"`
}

// Identity is what a verified token proves about its bearer.
type Identity struct {
	Id   UserId `json:"id"`
	Name string `json:"name"`
}

type Credentials struct {
	Email    Email
	Password Password
}

type Registration struct {
	Name     string
	Email    Email
	Password Password
}

// UserUpdate holds the fields of a profile edit; empty strings are left unchanged.
type UserUpdate struct {
	Name     string
	Email    Email
	Password Password
}
