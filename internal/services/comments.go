package services

import (
	"errors"

	"gorm.io/gorm"

	"clipnet/internal/adapters"
	"clipnet/internal/models"
)

// CommentService implements the comment-thread contract: threaded replies
// with the same-thread invariant, one reaction per user per comment, and
// cascading subtree deletion.
type CommentService struct {
	store   adapters.CommentStore
	content adapters.ContentStore
}

// NewCommentService creates a new CommentService
func NewCommentService(store adapters.CommentStore, content adapters.ContentStore) *CommentService {
	return &CommentService{store: store, content: content}
}

// CreateCommentInput carries the caller-supplied fields of a new comment
type CreateCommentInput struct {
	Target   models.ContentRef `json:"target"`
	Text     string            `json:"text"`
	ParentID *string           `json:"parentId,omitempty"`
}

// Create attaches a new comment to a post or short. When ParentID is set,
// the parent must exist and belong to the same content entity.
func (s *CommentService) Create(ownerID string, in CreateCommentInput) (*models.Comment, error) {
	if ownerID == "" {
		return nil, models.NewValidationError("owner is required")
	}
	if in.Text == "" {
		return nil, models.NewValidationError("comment text is required")
	}

	target := NormalizeRef(in.Target)
	if !target.EngageableKind() {
		return nil, models.NewValidationError("comments attach to posts and shorts only")
	}
	if err := s.resolveTarget(target); err != nil {
		return nil, err
	}

	if in.ParentID != nil {
		parent, err := s.Get(*in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.ContentID != target.ID || parent.ContentKind != target.Kind {
			// A reply must stay inside its parent's thread.
			return nil, models.NewNotFoundError("parent comment", *in.ParentID)
		}
	}

	comment := &models.Comment{
		Content:     in.Text,
		Owner:       ownerID,
		ParentID:    in.ParentID,
		ContentID:   target.ID,
		ContentKind: target.Kind,
	}
	if err := s.store.CreateComment(comment); err != nil {
		return nil, err
	}
	return s.Get(comment.ID)
}

// Get retrieves a comment with its reactions and reply ids
func (s *CommentService) Get(id string) (*models.Comment, error) {
	comment, err := s.store.GetCommentByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("comment", id)
	}
	return comment, err
}

// ListForContent lists the comments attached to a content entity in
// insertion order
func (s *CommentService) ListForContent(target models.ContentRef, limit, offset int) ([]*models.Comment, error) {
	target = NormalizeRef(target)
	if !target.EngageableKind() {
		return nil, models.NewValidationError("comments attach to posts and shorts only")
	}
	if err := s.resolveTarget(target); err != nil {
		return nil, err
	}
	return s.store.ListComments(target, limit, offset)
}

// React sets userID's reaction on a comment. A user holds at most one
// reaction per comment; reacting again replaces the emoji.
func (s *CommentService) React(commentID, userID, emoji string) (*models.Comment, error) {
	if userID == "" {
		return nil, models.NewValidationError("user id is required")
	}
	if emoji == "" {
		return nil, models.NewValidationError("emoji is required")
	}
	if _, err := s.Get(commentID); err != nil {
		return nil, err
	}

	err := s.store.UpsertReaction(&models.Reaction{
		CommentID: commentID,
		UserID:    userID,
		Emoji:     emoji,
	})
	if err != nil {
		return nil, err
	}
	return s.Get(commentID)
}

// Unreact clears userID's reaction on a comment. Clearing an absent
// reaction is a no-op.
func (s *CommentService) Unreact(commentID, userID string) error {
	if userID == "" {
		return models.NewValidationError("user id is required")
	}
	if _, err := s.Get(commentID); err != nil {
		return err
	}
	return s.store.RemoveReaction(commentID, userID)
}

// ListReactions returns the reactions on a comment
func (s *CommentService) ListReactions(commentID string) ([]models.Reaction, error) {
	if _, err := s.Get(commentID); err != nil {
		return nil, err
	}
	return s.store.ListReactions(commentID)
}

// Delete removes a comment and cascades to its whole reply subtree.
func (s *CommentService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.store.DeleteCommentTree(id)
}

func (s *CommentService) resolveTarget(target models.ContentRef) error {
	var err error
	switch target.Kind {
	case models.KindPost:
		_, err = s.content.GetPostByID(target.ID)
	case models.KindShort:
		_, err = s.content.GetShortByID(target.ID)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(string(target.Kind), target.ID)
	}
	return err
}
