package adapters

import (
	"fmt"

	"clipnet/internal/models"

	"github.com/spf13/viper"
)

// ContentStore persists posts, shorts and their like/save sets.
type ContentStore interface {
	CreatePost(post *models.Post) error
	GetPostByID(id string) (*models.Post, error)
	ListPosts(ownerID string, limit, offset int) ([]*models.Post, error)
	DeletePost(id string) error

	CreateShort(short *models.Short) error
	GetShortByID(id string) (*models.Short, error)
	ListShorts(ownerID string, limit, offset int) ([]*models.Short, error)
	DeleteShort(id string) error
	IncrementShortViews(id string) error

	// AddEngagement inserts a like/save set membership. It reports false
	// when the membership already existed, without error.
	AddEngagement(e *models.Engagement) (bool, error)
	RemoveEngagement(userID string, target models.ContentRef, kind models.EngagementKind) error
	ListEngagedUsers(target models.ContentRef, kind models.EngagementKind) ([]string, error)
}

// CommentStore persists comment trees and their reactions.
type CommentStore interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id string) (*models.Comment, error)
	ListComments(target models.ContentRef, limit, offset int) ([]*models.Comment, error)
	ListReplyIDs(parentID string) ([]string, error)
	// DeleteCommentTree removes a comment, all of its descendants, and
	// their reactions in a single transaction.
	DeleteCommentTree(id string) error

	UpsertReaction(reaction *models.Reaction) error
	RemoveReaction(commentID, userID string) error
	ListReactions(commentID string) ([]models.Reaction, error)
}

// ReportStore persists moderation tickets. There is deliberately no delete:
// tickets are the audit trail.
type ReportStore interface {
	CreateReport(report *models.Report) error
	GetReportByID(id string) (*models.Report, error)
	ListReports(filter models.ReportFilter) ([]*models.Report, error)
	// TransitionReport applies updates only if the report is currently in
	// the given status, as a single conditional update. It reports whether
	// a row was changed.
	TransitionReport(id string, from models.ReportStatus, updates map[string]interface{}) (bool, error)
	ListReportSummaries(target models.ContentRef) ([]models.ReportSummary, error)
}

// DatabaseAdapter is the interface that all database adapters must implement
type DatabaseAdapter interface {
	ContentStore
	CommentStore
	ReportStore

	Close() error
}

// NewDatabaseAdapter creates a new database adapter based on configuration
func NewDatabaseAdapter() (DatabaseAdapter, error) {
	adapterType := viper.GetString("DB_ADAPTER")

	switch adapterType {
	case "postgres":
		return newPostgresAdapter()
	case "sqlite", "":
		return newSQLiteAdapter()
	default:
		return nil, fmt.Errorf("unknown DB_ADAPTER %q", adapterType)
	}
}
