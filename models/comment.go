package models

import "time"

type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	Content   string `gorm:"type:text;not null"`
	PostID    uint   `gorm:"not null;index"`
	Post      *Post  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID  uint   `gorm:"not null;index"`
	Author    *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,notblank,max=5000"`
	PostID  uint   `json:"postId" binding:"required"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,notblank,max=5000"`
}

type CommentResponse struct {
	ID        uint           `json:"id"`
	Content   string         `json:"content"`
	PostID    uint           `json:"postId"`
	Post      *PostSummary   `json:"post,omitempty"`
	AuthorID  uint           `json:"authorId"`
	Author    *AuthorSummary `json:"author,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type CommentStats struct {
	Total int64 `json:"total"`
}

func (c *Comment) Response() CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		PostID:    c.PostID,
		Post:      c.Post.Summary(),
		AuthorID:  c.AuthorID,
		Author:    c.Author.Summary(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func CommentResponses(comments []Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, comments[i].Response())
	}
	return out
}
