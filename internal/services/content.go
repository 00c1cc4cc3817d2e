package services

import (
	"errors"

	"gorm.io/gorm"

	"clipnet/internal/adapters"
	"clipnet/internal/models"
)

// ContentService implements the engagement contract for posts and shorts:
// creation with required-field validation, idempotent like/save sets and
// cascading deletion.
type ContentService struct {
	store adapters.ContentStore
}

// NewContentService creates a new ContentService
func NewContentService(store adapters.ContentStore) *ContentService {
	return &ContentService{store: store}
}

// CreatePostInput carries the caller-supplied fields of a new post
type CreatePostInput struct {
	Title    string      `json:"title"`
	Content  string      `json:"content"`
	Metadata models.JSON `json:"metadata,omitempty"`
}

// CreateShortInput carries the caller-supplied fields of a new short
type CreateShortInput struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	VideoURL    string      `json:"videoUrl"`
	Duration    float64     `json:"duration"`
	Metadata    models.JSON `json:"metadata,omitempty"`
}

// CreatePost creates a post owned by ownerID
func (s *ContentService) CreatePost(ownerID string, in CreatePostInput) (*models.Post, error) {
	if ownerID == "" {
		return nil, models.NewValidationError("owner is required")
	}
	if in.Title == "" {
		return nil, models.NewValidationError("title is required")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("content is required")
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  in.Content,
		Owner:    ownerID,
		Metadata: in.Metadata,
	}
	if err := s.store.CreatePost(post); err != nil {
		return nil, err
	}
	return s.GetPost(post.ID)
}

// CreateShort creates a short owned by ownerID
func (s *ContentService) CreateShort(ownerID string, in CreateShortInput) (*models.Short, error) {
	if ownerID == "" {
		return nil, models.NewValidationError("owner is required")
	}
	if in.Title == "" {
		return nil, models.NewValidationError("title is required")
	}
	if in.VideoURL == "" {
		return nil, models.NewValidationError("videoUrl is required")
	}
	if in.Duration <= 0 {
		return nil, models.NewValidationError("duration must be a positive number of seconds")
	}

	short := &models.Short{
		Title:       in.Title,
		Description: in.Description,
		VideoURL:    in.VideoURL,
		Duration:    in.Duration,
		Owner:       ownerID,
		Metadata:    in.Metadata,
	}
	if err := s.store.CreateShort(short); err != nil {
		return nil, err
	}
	return s.GetShort(short.ID)
}

// GetPost retrieves a post by id
func (s *ContentService) GetPost(id string) (*models.Post, error) {
	post, err := s.store.GetPostByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("post", id)
	}
	return post, err
}

// GetShort retrieves a short by id
func (s *ContentService) GetShort(id string) (*models.Short, error) {
	short, err := s.store.GetShortByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("short", id)
	}
	return short, err
}

// ListPosts lists posts, optionally filtered by owner
func (s *ContentService) ListPosts(ownerID string, limit, offset int) ([]*models.Post, error) {
	return s.store.ListPosts(ownerID, limit, offset)
}

// ListShorts lists shorts, optionally filtered by owner
func (s *ContentService) ListShorts(ownerID string, limit, offset int) ([]*models.Short, error) {
	return s.store.ListShorts(ownerID, limit, offset)
}

// DeletePost deletes a post and cascades to its comments and engagements
func (s *ContentService) DeletePost(id string) error {
	if _, err := s.GetPost(id); err != nil {
		return err
	}
	return s.store.DeletePost(id)
}

// DeleteShort deletes a short and cascades to its comments and engagements
func (s *ContentService) DeleteShort(id string) error {
	if _, err := s.GetShort(id); err != nil {
		return err
	}
	return s.store.DeleteShort(id)
}

// RecordView bumps a short's view counter
func (s *ContentService) RecordView(shortID string) error {
	err := s.store.IncrementShortViews(shortID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("short", shortID)
	}
	return err
}

// Like adds userID to the target's like set. Liking twice is a no-op.
func (s *ContentService) Like(target models.ContentRef, userID string) error {
	return s.addEngagement(target, userID, models.EngagementLike)
}

// Unlike removes userID from the target's like set
func (s *ContentService) Unlike(target models.ContentRef, userID string) error {
	return s.removeEngagement(target, userID, models.EngagementLike)
}

// Save adds userID to the target's savedBy set. Saving twice is a no-op.
func (s *ContentService) Save(target models.ContentRef, userID string) error {
	return s.addEngagement(target, userID, models.EngagementSave)
}

// Unsave removes userID from the target's savedBy set
func (s *ContentService) Unsave(target models.ContentRef, userID string) error {
	return s.removeEngagement(target, userID, models.EngagementSave)
}

func (s *ContentService) addEngagement(target models.ContentRef, userID string, kind models.EngagementKind) error {
	target, err := s.resolveEngageable(target, userID)
	if err != nil {
		return err
	}
	_, err = s.store.AddEngagement(&models.Engagement{
		UserID:     userID,
		TargetID:   target.ID,
		TargetKind: target.Kind,
		Kind:       kind,
	})
	return err
}

func (s *ContentService) removeEngagement(target models.ContentRef, userID string, kind models.EngagementKind) error {
	target, err := s.resolveEngageable(target, userID)
	if err != nil {
		return err
	}
	return s.store.RemoveEngagement(userID, target, kind)
}

// resolveEngageable normalizes the target kind and checks the target exists.
func (s *ContentService) resolveEngageable(target models.ContentRef, userID string) (models.ContentRef, error) {
	if userID == "" {
		return target, models.NewValidationError("user id is required")
	}
	target = NormalizeRef(target)
	if !target.EngageableKind() {
		return target, models.NewValidationError("likes and saves apply to posts and shorts only")
	}

	var err error
	switch target.Kind {
	case models.KindPost:
		_, err = s.GetPost(target.ID)
	case models.KindShort:
		_, err = s.GetShort(target.ID)
	}
	return target, err
}

// NormalizeRef folds the legacy "video" kind into shorts.
func NormalizeRef(target models.ContentRef) models.ContentRef {
	if target.Kind == models.KindVideo {
		target.Kind = models.KindShort
	}
	return target
}
