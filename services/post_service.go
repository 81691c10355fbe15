package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"blogapi/database"
	"blogapi/models"
	"blogapi/utils"

	"gorm.io/gorm"
)

// Newest publications first; drafts (no publishedAt) after every published
// post, by creation time.
const postOrder = "posts.published_at IS NULL, posts.published_at DESC, posts.created_at DESC, posts.id DESC"

// ValidationError lists the invalid fields of an input.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

func validate(input interface{}) error {
	if err := utils.Validator.ValidateStruct(input); err != nil {
		return &ValidationError{Details: utils.ValidationDetails(err)}
	}
	return nil
}

type PostService struct {
	db       *gorm.DB
	notifier Notifier
	now      func() time.Time
}

func NewPostService(db *gorm.DB, notifier Notifier) *PostService {
	return &PostService{db: db, notifier: notifierOrNoop(notifier), now: time.Now}
}

func (s *PostService) searchScope(tx *gorm.DB, q string) *gorm.DB {
	if q == "" {
		return tx
	}
	tx = tx.Joins("JOIN users ON users.id = posts.author_id")
	return matchAny(tx, q, "posts.title", "posts.excerpt", "posts.content", "users.username")
}

// ListPublic pages through published posts only.
func (s *PostService) ListPublic(ctx context.Context, q models.PageQuery) (models.Page[models.Post], error) {
	q = q.Normalize()
	page, err := listPage[models.Post](s.db.WithContext(ctx), q, func(tx *gorm.DB) *gorm.DB {
		tx = tx.Model(&models.Post{}).Where("posts.status = ?", models.PostStatusPublished)
		return s.searchScope(tx, q.Q)
	}, postOrder, "Author")
	if err != nil {
		return page, storeError("list public posts", err)
	}
	return page, nil
}

// ListManaged is the admin listing, drafts included unless filtered out.
func (s *PostService) ListManaged(ctx context.Context, actor models.Actor, q models.PageQuery, status models.StatusFilter) (models.Page[models.Post], error) {
	if !actor.IsAdmin {
		return models.Page[models.Post]{}, ErrForbidden
	}
	q = q.Normalize()
	page, err := listPage[models.Post](s.db.WithContext(ctx), q, func(tx *gorm.DB) *gorm.DB {
		tx = tx.Model(&models.Post{})
		if status != models.StatusAll {
			tx = tx.Where("posts.status = ?", string(status))
		}
		return s.searchScope(tx, q.Q)
	}, postOrder, "Author")
	if err != nil {
		return page, storeError("list managed posts", err)
	}
	return page, nil
}

// GetBySlug hides drafts behind ErrNotFound. The post comes with its
// comments, newest first.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	db := s.db.WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Author").
			Where("slug = ? AND status = ?", slug, models.PostStatusPublished).
			First(&post).Error
		if err != nil {
			return storeError("get post by slug", err)
		}
		err = tx.Preload("Author").
			Where("post_id = ?", post.ID).
			Order(commentOrder).
			Find(&post.Comments).Error
		if err != nil {
			return storeError("load post comments", err)
		}
		return nil
	}, database.SnapshotTx(db))
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostService) GetByID(ctx context.Context, actor models.Actor, id uint) (*models.Post, error) {
	post, err := s.load(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(post.AuthorID) {
		return nil, ErrForbidden
	}
	return post, nil
}

func (s *PostService) Create(ctx context.Context, actor models.Actor, input *models.PostInput) (*models.Post, error) {
	if actor.UserID == 0 {
		return nil, ErrForbidden
	}
	normalizePostInput(input)
	if err := validate(input); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    input.Title,
		Slug:     input.Slug,
		Excerpt:  input.Excerpt,
		Content:  input.Content,
		Status:   models.PostStatusDraft,
		AuthorID: actor.UserID,
	}
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, storeError("create post", err)
	}

	created, err := s.load(s.db.WithContext(ctx), post.ID)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(EventPostCreated, created.Response(), created.AuthorID)
	return created, nil
}

// Update replaces the editable fields. Status is left untouched.
func (s *PostService) Update(ctx context.Context, actor models.Actor, id uint, input *models.PostInput) (*models.Post, error) {
	normalizePostInput(input)
	if err := validate(input); err != nil {
		return nil, err
	}

	var updated *models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := s.load(tx, id)
		if err != nil {
			return err
		}
		if !actor.CanManage(post.AuthorID) {
			return ErrForbidden
		}

		err = tx.Model(&models.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
			"title":   input.Title,
			"slug":    input.Slug,
			"excerpt": input.Excerpt,
			"content": input.Content,
		}).Error
		if err != nil {
			return storeError("update post", err)
		}

		updated, err = s.load(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(EventPostUpdated, updated.Response(), updated.AuthorID)
	return updated, nil
}

func (s *PostService) Publish(ctx context.Context, actor models.Actor, id uint) (*models.Post, error) {
	now := s.now()
	return s.setStatus(ctx, actor, id, models.PostStatusPublished, &now, EventPostPublished)
}

func (s *PostService) Unpublish(ctx context.Context, actor models.Actor, id uint) (*models.Post, error) {
	return s.setStatus(ctx, actor, id, models.PostStatusDraft, nil, EventPostUnpublished)
}

// setStatus writes status and published_at in one UPDATE statement.
func (s *PostService) setStatus(ctx context.Context, actor models.Actor, id uint, status models.PostStatus, publishedAt *time.Time, event string) (*models.Post, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}

	result := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       status,
		"published_at": publishedAt,
	})
	if result.Error != nil {
		return nil, storeError("set post status", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}

	post, err := s.load(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(event, post.Response(), post.AuthorID)
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, actor models.Actor, id uint) error {
	var authorID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := s.load(tx, id)
		if err != nil {
			return err
		}
		if !actor.CanManage(post.AuthorID) {
			return ErrForbidden
		}
		authorID = post.AuthorID

		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return storeError("delete post comments", err)
		}
		result := tx.Delete(&models.Post{}, id)
		if result.Error != nil {
			return storeError("delete post", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("post %d: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(EventPostDeleted, map[string]uint{"id": id}, authorID)
	return nil
}

func (s *PostService) Stats(ctx context.Context, actor models.Actor) (models.PostStats, error) {
	var stats models.PostStats
	if !actor.IsAdmin {
		return stats, ErrForbidden
	}

	err := s.db.WithContext(ctx).Model(&models.Post{}).Select(
		"COUNT(*) AS total, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS draft, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS published",
		models.PostStatusDraft, models.PostStatusPublished,
	).Scan(&stats).Error
	if err != nil {
		return stats, storeError("post stats", err)
	}
	return stats, nil
}

func (s *PostService) load(tx *gorm.DB, id uint) (*models.Post, error) {
	var post models.Post
	if err := tx.Preload("Author").First(&post, id).Error; err != nil {
		return nil, storeError(fmt.Sprintf("load post %d", id), err)
	}
	return &post, nil
}

func normalizePostInput(input *models.PostInput) {
	input.Title = strings.TrimSpace(input.Title)
	input.Excerpt = strings.TrimSpace(input.Excerpt)
}
