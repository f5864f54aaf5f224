package domain

import "time"

type GroupId = string

type StudyGroup struct {
	Id          GroupId   `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Members     []UserId  `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (g *StudyGroup) HasMember(userId UserId) bool {
	for _, m := range g.Members {
		if m == userId {
			return true
		}
	}
	return false
}

type StudyGroupUpdate struct {
	Name        string
	Description string
}
