package domain

import "time"

type (
	PostId    = string
	CommentId = string
)

type Post struct {
	Id           PostId    `json:"id"`
	UserId       UserId    `json:"user"`
	Content      string    `json:"content"`
	ContentHTML  string    `json:"contentHtml"`
	Image        string    `json:"image,omitempty"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar"`
	StudyGroupId GroupId   `json:"studyGroupID"`
	Likes        []UserId  `json:"likes"`    // newest first
	Comments     []Comment `json:"comments"` // newest first
	Timestamp    time.Time `json:"timestamp"`
}

func (p *Post) LikedBy(userId UserId) bool {
	for _, l := range p.Likes {
		if l == userId {
			return true
		}
	}
	return false
}

func (p *Post) Comment(id CommentId) (Comment, bool) {
	for _, c := range p.Comments {
		if c.Id == id {
			return c, true
		}
	}
	return Comment{}, false
}

type Comment struct {
	Id          CommentId `json:"id"`
	PostId      PostId    `json:"-"`
	UserId      UserId    `json:"userID"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml"`
	Name        string    `json:"name"`
	Avatar      string    `json:"avatar"`
	Date        time.Time `json:"date"`
}

type PostCreationData struct {
	Content      string
	StudyGroupId GroupId
	Image        *PendingImage
}

// PostFilter narrows a post listing; zero value lists everything.
type PostFilter struct {
	UserId       UserId
	StudyGroupId GroupId
}
