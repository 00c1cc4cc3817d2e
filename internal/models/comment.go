package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a node in the reply tree attached to exactly one post or short.
// ParentID is nil for top-level comments. Parent links are append-only, so a
// chain of ParentID hops always terminates at a top-level comment.
type Comment struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	Content     string      `json:"content" gorm:"not null"`
	Owner       string      `json:"owner" gorm:"index;not null"`
	ParentID    *string     `json:"parentId,omitempty" gorm:"index"`
	ContentID   string      `json:"contentId" gorm:"index;not null"`
	ContentKind ContentKind `json:"contentKind" gorm:"index;not null"`
	CreatedAt   time.Time   `json:"createdAt"`

	// Derived from the reaction table and from child comments at read time.
	Reacts  []Reaction `json:"reacts" gorm:"-"`
	Replies []string   `json:"replies" gorm:"-"`
}

// Ref returns the tagged reference to this comment.
func (c *Comment) Ref() ContentRef {
	return ContentRef{Kind: KindComment, ID: c.ID}
}

// Target returns the tagged reference to the content this comment belongs to.
func (c *Comment) Target() ContentRef {
	return ContentRef{Kind: c.ContentKind, ID: c.ContentID}
}

// Reaction is an emoji reaction on a comment. A user holds at most one
// reaction per comment; re-reacting replaces the emoji.
type Reaction struct {
	ID        string    `json:"-" gorm:"primaryKey"`
	CommentID string    `json:"-" gorm:"uniqueIndex:idx_reactions_user_comment;not null"`
	UserID    string    `json:"userId" gorm:"uniqueIndex:idx_reactions_user_comment;not null"`
	Emoji     string    `json:"emoji" gorm:"not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate hook for comments to generate IDs
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	return nil
}

// BeforeCreate hook for reactions to generate IDs
func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.UpdatedAt = r.CreatedAt
	return nil
}
