package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentKind discriminates the target of a weak reference. Reports may
// additionally target comments, and "video" is accepted as a legacy alias
// for shorts on report tickets.
type ContentKind string

const (
	KindPost    ContentKind = "post"
	KindShort   ContentKind = "short"
	KindVideo   ContentKind = "video"
	KindComment ContentKind = "comment"
)

// ContentRef is a tagged reference to a piece of content. Bare identifiers
// are ambiguous across collections, so every polymorphic reference carries
// its kind alongside the id.
type ContentRef struct {
	Kind ContentKind `json:"kind"`
	ID   string      `json:"id"`
}

// EngageableKind reports whether the kind can carry likes and saves.
func (r ContentRef) EngageableKind() bool {
	return r.Kind == KindPost || r.Kind == KindShort
}

// ReportableKind reports whether the kind is a valid report target.
func (r ContentRef) ReportableKind() bool {
	switch r.Kind {
	case KindPost, KindShort, KindVideo, KindComment:
		return true
	default:
		return false
	}
}

// Post represents a text post
type Post struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"not null"`
	Content    string    `json:"content" gorm:"not null"`
	Owner      string    `json:"owner" gorm:"index;not null"`
	UploadTime time.Time `json:"uploadTime"`
	Metadata   JSON      `json:"metadata,omitempty" gorm:"type:jsonb"`

	// Derived engagement state, populated from the engagement, comment and
	// report tables at read time. The tables are the source of truth.
	Likes    []string        `json:"likes" gorm:"-"`
	SavedBy  []string        `json:"savedBy" gorm:"-"`
	Comments []string        `json:"comments" gorm:"-"`
	Reports  []ReportSummary `json:"reports" gorm:"-"`
}

// Ref returns the tagged reference to this post.
func (p *Post) Ref() ContentRef {
	return ContentRef{Kind: KindPost, ID: p.ID}
}

// Short represents a short-form video
type Short struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description,omitempty"`
	VideoURL    string    `json:"videoUrl" gorm:"not null"`
	Duration    float64   `json:"duration" gorm:"not null"`
	Views       int64     `json:"views" gorm:"default:0"`
	Owner       string    `json:"owner" gorm:"index;not null"`
	UploadTime  time.Time `json:"uploadTime"`
	Metadata    JSON      `json:"metadata,omitempty" gorm:"type:jsonb"`

	Likes    []string        `json:"likes" gorm:"-"`
	SavedBy  []string        `json:"savedBy" gorm:"-"`
	Comments []string        `json:"comments" gorm:"-"`
	Reports  []ReportSummary `json:"reports" gorm:"-"`
}

// Ref returns the tagged reference to this short.
func (s *Short) Ref() ContentRef {
	return ContentRef{Kind: KindShort, ID: s.ID}
}

// EngagementKind is the kind of set a user id belongs to on a piece of content.
type EngagementKind string

const (
	EngagementLike EngagementKind = "like"
	EngagementSave EngagementKind = "save"
)

// Engagement is a single membership in a content entity's likes or savedBy
// set. The unique index makes repeated likes/saves from the same user no-ops
// at the store level, which is what keeps the sets free of duplicates under
// concurrent requests.
type Engagement struct {
	ID         string         `json:"id" gorm:"primaryKey"`
	UserID     string         `json:"user_id" gorm:"uniqueIndex:idx_engagements_unique;not null"`
	TargetID   string         `json:"target_id" gorm:"uniqueIndex:idx_engagements_unique;not null"`
	TargetKind ContentKind    `json:"target_kind" gorm:"uniqueIndex:idx_engagements_unique;not null"`
	Kind       EngagementKind `json:"kind" gorm:"uniqueIndex:idx_engagements_unique;not null"`
	CreatedAt  time.Time      `json:"created_at"`
}

// NewID generates a new UUID string
func NewID() string {
	return uuid.New().String()
}

// BeforeCreate hook for posts to generate IDs
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.UploadTime.IsZero() {
		p.UploadTime = time.Now()
	}
	return nil
}

// BeforeCreate hook for shorts to generate IDs
func (s *Short) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	if s.UploadTime.IsZero() {
		s.UploadTime = time.Now()
	}
	return nil
}

// BeforeCreate hook for engagements to generate IDs
func (e *Engagement) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = NewID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return nil
}
