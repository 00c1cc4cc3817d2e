package models

import (
	"time"

	"gorm.io/gorm"
)

// ReportStatus is the moderation state of a report ticket.
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportReviewed ReportStatus = "reviewed"
	ReportResolved ReportStatus = "resolved"
)

// Report is a moderation ticket against a piece of content. Tickets only
// move forward through pending -> reviewed -> resolved and are never
// deleted; they are the audit trail.
type Report struct {
	ID          string       `json:"id" gorm:"primaryKey"`
	Reporter    string       `json:"reporter" gorm:"index;not null"`
	ContentID   string       `json:"contentId" gorm:"index;not null"`
	ContentKind ContentKind  `json:"contentType" gorm:"index;not null"`
	Reason      string       `json:"reason" gorm:"not null"`
	Category    string       `json:"category,omitempty"`
	Status      ReportStatus `json:"status" gorm:"index;default:'pending'"`
	ReviewedBy  *string      `json:"reviewedBy,omitempty"`
	ReviewTime  *time.Time   `json:"reviewTime,omitempty"`
	Outcome     string       `json:"outcome,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// ReportSummary is the cached view of a report embedded on content
// responses. The reports table is authoritative; summaries are computed
// from it at read time.
type ReportSummary struct {
	ReporterID string    `json:"reporterId"`
	Reason     string    `json:"reason"`
	ReportedAt time.Time `json:"reportedAt"`
}

// ReportFilter narrows report listings. Zero values mean "any". Results are
// always ordered oldest first so moderation queues drain FIFO.
type ReportFilter struct {
	Status      ReportStatus
	ContentKind ContentKind
	Limit       int
	Offset      int
}

// BeforeCreate hook for reports to generate IDs
func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.Status == "" {
		r.Status = ReportPending
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return nil
}

// Summary converts a report to its embedded cached form.
func (r *Report) Summary() ReportSummary {
	return ReportSummary{
		ReporterID: r.Reporter,
		Reason:     r.Reason,
		ReportedAt: r.CreatedAt,
	}
}
