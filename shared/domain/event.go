package domain

import "time"

type EventId = string

type Event struct {
	Id             EventId   `json:"id"`
	UserId         *UserId   `json:"user,omitempty"`
	Name           string    `json:"name"`
	Image          string    `json:"image"`
	Description    string    `json:"description"`
	EventDate      string    `json:"eventDate"`
	Location       string    `json:"location"`
	RelatedGroupId *GroupId  `json:"relatedGroupID,omitempty"`
	CreatedOn      time.Time `json:"createdOn"`
}

type EventCreationData struct {
	Name           string
	Description    string
	EventDate      string
	Location       string
	RelatedGroupId *GroupId
	Image          *PendingImage
}
