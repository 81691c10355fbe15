package models

import (
	"strings"
	"time"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
)

// StatusFilter selects posts in the managed listing. StatusAll disables
// the filter.
type StatusFilter string

const (
	StatusAll       StatusFilter = "ALL"
	StatusDraft     StatusFilter = StatusFilter(PostStatusDraft)
	StatusPublished StatusFilter = StatusFilter(PostStatusPublished)
)

// ParseStatusFilter coerces unknown values to StatusAll.
func ParseStatusFilter(value string) StatusFilter {
	switch StatusFilter(strings.ToUpper(strings.TrimSpace(value))) {
	case StatusDraft:
		return StatusDraft
	case StatusPublished:
		return StatusPublished
	default:
		return StatusAll
	}
}

// Post is a blog entry. PublishedAt is set exactly when Status is
// PostStatusPublished.
type Post struct {
	ID          uint       `gorm:"primaryKey"`
	Title       string     `gorm:"size:160;not null"`
	Slug        string     `gorm:"size:120;uniqueIndex;not null"`
	Excerpt     string     `gorm:"size:300"`
	Content     string     `gorm:"type:text;not null"`
	Status      PostStatus `gorm:"size:16;not null;index"`
	PublishedAt *time.Time `gorm:"index"`
	AuthorID    uint       `gorm:"not null;index"`
	Author      *User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Comments    []Comment  `gorm:"-"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type PostInput struct {
	Title   string `json:"title" binding:"required,notblank,max=160"`
	Slug    string `json:"slug" binding:"required,min=3,max=120,slug"`
	Excerpt string `json:"excerpt" binding:"max=300"`
	Content string `json:"content" binding:"required,notblank"`
}

type PostResponse struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Excerpt     string         `json:"excerpt"`
	Content     string         `json:"content"`
	Status      PostStatus     `json:"status"`
	PublishedAt *time.Time     `json:"publishedAt"`
	AuthorID    uint           `json:"authorId"`
	Author      *AuthorSummary `json:"author,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// PostDetailResponse is the public reader view: the post plus its
// comments, newest first.
type PostDetailResponse struct {
	PostResponse
	Comments []CommentResponse `json:"comments"`
}

type PostSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type PostStats struct {
	Total     int64 `json:"total"`
	Draft     int64 `json:"draft"`
	Published int64 `json:"published"`
}

func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

func (p *Post) Response() PostResponse {
	return PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Content:     p.Content,
		Status:      p.Status,
		PublishedAt: p.PublishedAt,
		AuthorID:    p.AuthorID,
		Author:      p.Author.Summary(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// DetailResponse always carries a non-nil comments list.
func (p *Post) DetailResponse() PostDetailResponse {
	return PostDetailResponse{
		PostResponse: p.Response(),
		Comments:     CommentResponses(p.Comments),
	}
}

func (p *Post) Summary() *PostSummary {
	if p == nil || p.ID == 0 {
		return nil
	}
	return &PostSummary{ID: p.ID, Title: p.Title, Slug: p.Slug}
}

func PostResponses(posts []Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, posts[i].Response())
	}
	return out
}
