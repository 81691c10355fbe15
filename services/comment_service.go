package services

import (
	"context"
	"fmt"
	"strings"

	"blogapi/models"

	"gorm.io/gorm"
)

const commentOrder = "comments.created_at DESC, comments.id DESC"

type CommentService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewCommentService(db *gorm.DB, notifier Notifier) *CommentService {
	return &CommentService{db: db, notifier: notifierOrNoop(notifier)}
}

// List pages through comments, newest first. Viewers other than admins only
// see comments on published posts, and only admins match on author email.
func (s *CommentService) List(ctx context.Context, viewer models.Actor, q models.PageQuery, postID uint) (models.Page[models.Comment], error) {
	q = q.Normalize()
	page, err := listPage[models.Comment](s.db.WithContext(ctx), q, func(tx *gorm.DB) *gorm.DB {
		tx = tx.Model(&models.Comment{})
		if postID != 0 {
			tx = tx.Where("comments.post_id = ?", postID)
		}
		if !viewer.IsAdmin {
			tx = tx.Where("comments.post_id IN (?)",
				tx.Session(&gorm.Session{NewDB: true}).Model(&models.Post{}).
					Select("id").Where("status = ?", models.PostStatusPublished))
		}
		if q.Q != "" {
			tx = tx.Joins("JOIN users ON users.id = comments.author_id")
			columns := []string{"comments.content", "users.username"}
			if viewer.IsAdmin {
				columns = append(columns, "users.email")
			}
			tx = matchAny(tx, q.Q, columns...)
		}
		return tx
	}, commentOrder, "Author", "Post")
	if err != nil {
		return page, storeError("list comments", err)
	}
	return page, nil
}

// Create attaches a comment to a post the caller can see. Drafts are only
// visible to their author and to admins.
func (s *CommentService) Create(ctx context.Context, actor models.Actor, req *models.CreateCommentRequest) (*models.Comment, error) {
	if actor.UserID == 0 {
		return nil, ErrForbidden
	}
	content := strings.TrimSpace(req.Content)

	var created *models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, req.PostID).Error; err != nil {
			return storeError(fmt.Sprintf("load post %d", req.PostID), err)
		}
		if !post.IsPublished() && !actor.CanManage(post.AuthorID) {
			return fmt.Errorf("post %d: %w", req.PostID, ErrNotFound)
		}

		comment := &models.Comment{
			Content:  content,
			PostID:   post.ID,
			AuthorID: actor.UserID,
		}
		if err := tx.Create(comment).Error; err != nil {
			return storeError("create comment", err)
		}

		var err error
		created, err = s.load(tx, comment.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notify(created, EventCommentCreated, created.Response())
	return created, nil
}

func (s *CommentService) Update(ctx context.Context, actor models.Actor, id uint, req *models.UpdateCommentRequest) (*models.Comment, error) {
	var updated *models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comment, err := s.load(tx, id)
		if err != nil {
			return err
		}
		if !actor.CanManage(comment.AuthorID) {
			return ErrForbidden
		}

		err = tx.Model(&models.Comment{}).Where("id = ?", id).
			Update("content", strings.TrimSpace(req.Content)).Error
		if err != nil {
			return storeError("update comment", err)
		}

		updated, err = s.load(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notify(updated, EventCommentUpdated, updated.Response())
	return updated, nil
}

func (s *CommentService) Delete(ctx context.Context, actor models.Actor, id uint) error {
	var deleted *models.Comment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comment, err := s.load(tx, id)
		if err != nil {
			return err
		}
		if !actor.CanManage(comment.AuthorID) {
			return ErrForbidden
		}

		result := tx.Delete(&models.Comment{}, id)
		if result.Error != nil {
			return storeError("delete comment", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("comment %d: %w", id, ErrNotFound)
		}
		deleted = comment
		return nil
	})
	if err != nil {
		return err
	}

	s.notify(deleted, EventCommentDeleted, map[string]uint{"id": id, "postId": deleted.PostID})
	return nil
}

func (s *CommentService) Stats(ctx context.Context, actor models.Actor) (models.CommentStats, error) {
	var stats models.CommentStats
	if !actor.IsAdmin {
		return stats, ErrForbidden
	}
	if err := s.db.WithContext(ctx).Model(&models.Comment{}).Count(&stats.Total).Error; err != nil {
		return stats, storeError("comment stats", err)
	}
	return stats, nil
}

func (s *CommentService) load(tx *gorm.DB, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := tx.Preload("Author").Preload("Post").First(&comment, id).Error; err != nil {
		return nil, storeError(fmt.Sprintf("load comment %d", id), err)
	}
	return &comment, nil
}

// notify tells the comment author and the author of the post.
func (s *CommentService) notify(comment *models.Comment, event string, data interface{}) {
	owners := []uint{comment.AuthorID}
	if comment.Post != nil && comment.Post.AuthorID != comment.AuthorID {
		owners = append(owners, comment.Post.AuthorID)
	}
	s.notifier.Notify(event, data, owners...)
}
