package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"clipnet/internal/adapters"
	"clipnet/internal/models"
)

// ReasonClassifier labels report reasons via the external text-classification
// endpoint. Classification is best effort: a failing classifier never blocks
// a report from being filed.
type ReasonClassifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// ModerationService implements the report workflow: tickets start pending
// and only move forward, pending -> reviewed -> resolved. Tickets are never
// deleted.
type ModerationService struct {
	store    adapters.ReportStore
	content  adapters.ContentStore
	comments adapters.CommentStore
	classify ReasonClassifier
}

// NewModerationService creates a new ModerationService. classify may be nil.
func NewModerationService(
	store adapters.ReportStore,
	content adapters.ContentStore,
	comments adapters.CommentStore,
	classify ReasonClassifier,
) *ModerationService {
	return &ModerationService{
		store:    store,
		content:  content,
		comments: comments,
		classify: classify,
	}
}

// FileReportInput carries the caller-supplied fields of a new report
type FileReportInput struct {
	Target models.ContentRef `json:"target"`
	Reason string            `json:"reason"`
}

// File creates a pending report ticket against a piece of content.
func (s *ModerationService) File(ctx context.Context, reporterID string, in FileReportInput) (*models.Report, error) {
	if reporterID == "" {
		return nil, models.NewValidationError("reporter is required")
	}
	if in.Reason == "" {
		return nil, models.NewValidationError("reason is required")
	}
	if !in.Target.ReportableKind() {
		return nil, models.NewValidationError("content type must be one of video, short, post, comment")
	}
	if err := s.resolveTarget(in.Target); err != nil {
		return nil, err
	}

	report := &models.Report{
		Reporter:    reporterID,
		ContentID:   in.Target.ID,
		ContentKind: in.Target.Kind,
		Reason:      in.Reason,
		Status:      models.ReportPending,
	}
	if s.classify != nil {
		if label, err := s.classify.Classify(ctx, in.Reason); err == nil {
			report.Category = label
		}
	}

	if err := s.store.CreateReport(report); err != nil {
		return nil, err
	}
	return report, nil
}

// Review moves a pending report to reviewed, recording the moderator and
// review time in the same conditional update.
func (s *ModerationService) Review(reportID, moderatorID string) (*models.Report, error) {
	if moderatorID == "" {
		return nil, models.NewValidationError("moderator id is required")
	}
	return s.transition(reportID, models.ReportPending, map[string]interface{}{
		"status":      models.ReportReviewed,
		"reviewed_by": moderatorID,
		"review_time": time.Now(),
	})
}

// Resolve moves a reviewed report to resolved, its terminal state, recording
// the outcome. Resolving a report that is still pending fails.
func (s *ModerationService) Resolve(reportID, moderatorID, outcome string) (*models.Report, error) {
	if moderatorID == "" {
		return nil, models.NewValidationError("moderator id is required")
	}
	return s.transition(reportID, models.ReportReviewed, map[string]interface{}{
		"status":  models.ReportResolved,
		"outcome": outcome,
	})
}

// Get retrieves a report by id
func (s *ModerationService) Get(id string) (*models.Report, error) {
	report, err := s.store.GetReportByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("report", id)
	}
	return report, err
}

// List returns reports oldest first, optionally filtered by status and
// content type.
func (s *ModerationService) List(filter models.ReportFilter) ([]*models.Report, error) {
	return s.store.ListReports(filter)
}

func (s *ModerationService) transition(reportID string, from models.ReportStatus, updates map[string]interface{}) (*models.Report, error) {
	ok, err := s.store.TransitionReport(reportID, from, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Either the report does not exist or it is not in the expected
		// state. Re-read to tell the two apart.
		report, err := s.Get(reportID)
		if err != nil {
			return nil, err
		}
		return nil, models.NewInvalidStateError(
			fmt.Sprintf("report %s is %s, expected %s", reportID, report.Status, from))
	}
	return s.Get(reportID)
}

func (s *ModerationService) resolveTarget(target models.ContentRef) error {
	var err error
	switch NormalizeRef(target).Kind {
	case models.KindPost:
		_, err = s.content.GetPostByID(target.ID)
	case models.KindShort:
		_, err = s.content.GetShortByID(target.ID)
	case models.KindComment:
		_, err = s.comments.GetCommentByID(target.ID)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(string(target.Kind), target.ID)
	}
	return err
}
