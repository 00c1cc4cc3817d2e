package adapters

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clipnet/internal/models"
)

// gormAdapter holds the store logic shared by the SQLite and PostgreSQL
// adapters. Driver-specific setup lives in sqlite.go / postgres.go.
type gormAdapter struct {
	db *gorm.DB
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Post{},
		&models.Short{},
		&models.Engagement{},
		&models.Comment{},
		&models.Reaction{},
		&models.Report{},
	)
}

// Posts

// CreatePost creates a new post
func (a *gormAdapter) CreatePost(post *models.Post) error {
	return a.db.Create(post).Error
}

// GetPostByID retrieves a post with its derived engagement state
func (a *gormAdapter) GetPostByID(id string) (*models.Post, error) {
	var post models.Post
	if err := a.db.First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := a.decoratePost(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts retrieves posts with pagination, newest first
func (a *gormAdapter) ListPosts(ownerID string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	query := a.db.Order("upload_time DESC").Limit(limit).Offset(offset)
	if ownerID != "" {
		query = query.Where("owner = ?", ownerID)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	for _, post := range posts {
		if err := a.decoratePost(post); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// DeletePost deletes a post together with its comments, reactions and
// engagements. Reports against the post are kept as the audit trail.
func (a *gormAdapter) DeletePost(id string) error {
	return a.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteContentState(tx, models.ContentRef{Kind: models.KindPost, ID: id}); err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, "id = ?", id).Error
	})
}

// Shorts

// CreateShort creates a new short
func (a *gormAdapter) CreateShort(short *models.Short) error {
	return a.db.Create(short).Error
}

// GetShortByID retrieves a short with its derived engagement state
func (a *gormAdapter) GetShortByID(id string) (*models.Short, error) {
	var short models.Short
	if err := a.db.First(&short, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := a.decorateShort(&short); err != nil {
		return nil, err
	}
	return &short, nil
}

// ListShorts retrieves shorts with pagination, newest first
func (a *gormAdapter) ListShorts(ownerID string, limit, offset int) ([]*models.Short, error) {
	var shorts []*models.Short
	query := a.db.Order("upload_time DESC").Limit(limit).Offset(offset)
	if ownerID != "" {
		query = query.Where("owner = ?", ownerID)
	}
	if err := query.Find(&shorts).Error; err != nil {
		return nil, err
	}
	for _, short := range shorts {
		if err := a.decorateShort(short); err != nil {
			return nil, err
		}
	}
	return shorts, nil
}

// DeleteShort deletes a short together with its comments, reactions and
// engagements, keeping reports.
func (a *gormAdapter) DeleteShort(id string) error {
	return a.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteContentState(tx, models.ContentRef{Kind: models.KindShort, ID: id}); err != nil {
			return err
		}
		return tx.Delete(&models.Short{}, "id = ?", id).Error
	})
}

// IncrementShortViews bumps the view counter in place so concurrent views
// never overwrite each other.
func (a *gormAdapter) IncrementShortViews(id string) error {
	result := a.db.Model(&models.Short{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Engagements

// AddEngagement inserts a like/save membership, relying on the unique index
// for idempotency. Reports false when the membership already existed.
func (a *gormAdapter) AddEngagement(e *models.Engagement) (bool, error) {
	result := a.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "target_id"}, {Name: "target_kind"}, {Name: "kind"},
		},
		DoNothing: true,
	}).Create(e)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveEngagement removes a like/save membership. Removing a membership
// that is not present is a no-op.
func (a *gormAdapter) RemoveEngagement(userID string, target models.ContentRef, kind models.EngagementKind) error {
	return a.db.Delete(&models.Engagement{},
		"user_id = ? AND target_id = ? AND target_kind = ? AND kind = ?",
		userID, target.ID, target.Kind, kind).Error
}

// ListEngagedUsers returns the user ids in a content entity's like or save
// set, oldest membership first.
func (a *gormAdapter) ListEngagedUsers(target models.ContentRef, kind models.EngagementKind) ([]string, error) {
	users := []string{}
	err := a.db.Model(&models.Engagement{}).
		Where("target_id = ? AND target_kind = ? AND kind = ?", target.ID, target.Kind, kind).
		Order("created_at ASC").
		Pluck("user_id", &users).Error
	return users, err
}

// Comments

// CreateComment creates a new comment
func (a *gormAdapter) CreateComment(comment *models.Comment) error {
	return a.db.Create(comment).Error
}

// GetCommentByID retrieves a comment with its reactions and reply ids
func (a *gormAdapter) GetCommentByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := a.db.First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := a.decorateComment(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments retrieves the comments attached to a content entity in
// insertion order
func (a *gormAdapter) ListComments(target models.ContentRef, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := a.db.Where("content_id = ? AND content_kind = ?", target.ID, target.Kind).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	for _, comment := range comments {
		if err := a.decorateComment(comment); err != nil {
			return nil, err
		}
	}
	return comments, nil
}

// ListReplyIDs returns the ids of the direct replies to a comment in
// insertion order
func (a *gormAdapter) ListReplyIDs(parentID string) ([]string, error) {
	ids := []string{}
	err := a.db.Model(&models.Comment{}).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// DeleteCommentTree deletes a comment, every descendant reply and all of
// their reactions in one transaction.
func (a *gormAdapter) DeleteCommentTree(id string) error {
	return a.db.Transaction(func(tx *gorm.DB) error {
		doomed := []string{id}
		frontier := []string{id}
		for len(frontier) > 0 {
			var children []string
			if err := tx.Model(&models.Comment{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			doomed = append(doomed, children...)
			frontier = children
		}

		if err := tx.Delete(&models.Reaction{}, "comment_id IN ?", doomed).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, "id IN ?", doomed).Error
	})
}

// Reactions

// UpsertReaction sets a user's reaction on a comment. A later reaction with
// a different emoji replaces the earlier one.
func (a *gormAdapter) UpsertReaction(reaction *models.Reaction) error {
	return a.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "comment_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"emoji", "updated_at"}),
	}).Create(reaction).Error
}

// RemoveReaction clears a user's reaction on a comment
func (a *gormAdapter) RemoveReaction(commentID, userID string) error {
	return a.db.Delete(&models.Reaction{}, "comment_id = ? AND user_id = ?", commentID, userID).Error
}

// ListReactions returns the reactions on a comment
func (a *gormAdapter) ListReactions(commentID string) ([]models.Reaction, error) {
	reactions := []models.Reaction{}
	err := a.db.Where("comment_id = ?", commentID).
		Order("created_at ASC").
		Find(&reactions).Error
	return reactions, err
}

// Reports

// CreateReport creates a new moderation ticket
func (a *gormAdapter) CreateReport(report *models.Report) error {
	return a.db.Create(report).Error
}

// GetReportByID retrieves a report
func (a *gormAdapter) GetReportByID(id string) (*models.Report, error) {
	var report models.Report
	if err := a.db.First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// ListReports retrieves reports oldest first so moderation queues drain FIFO
func (a *gormAdapter) ListReports(filter models.ReportFilter) ([]*models.Report, error) {
	var reports []*models.Report
	query := a.db.Order("created_at ASC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ContentKind != "" {
		query = query.Where("content_kind = ?", filter.ContentKind)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	err := query.Find(&reports).Error
	return reports, err
}

// TransitionReport applies updates only while the report still holds the
// expected status. The conditional update is what keeps two moderators from
// racing each other through the workflow.
func (a *gormAdapter) TransitionReport(id string, from models.ReportStatus, updates map[string]interface{}) (bool, error) {
	result := a.db.Model(&models.Report{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListReportSummaries returns the cached report view embedded on content
// responses, computed from the authoritative reports table.
func (a *gormAdapter) ListReportSummaries(target models.ContentRef) ([]models.ReportSummary, error) {
	var reports []models.Report
	err := a.db.Where("content_id = ? AND content_kind = ?", target.ID, target.Kind).
		Order("created_at ASC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	summaries := make([]models.ReportSummary, len(reports))
	for i := range reports {
		summaries[i] = reports[i].Summary()
	}
	return summaries, nil
}

// Close closes the database connection
func (a *gormAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// decoratePost fills the derived engagement fields on a post
func (a *gormAdapter) decoratePost(post *models.Post) error {
	return a.decorateContent(post.Ref(), &post.Likes, &post.SavedBy, &post.Comments, &post.Reports)
}

// decorateShort fills the derived engagement fields on a short
func (a *gormAdapter) decorateShort(short *models.Short) error {
	return a.decorateContent(short.Ref(), &short.Likes, &short.SavedBy, &short.Comments, &short.Reports)
}

func (a *gormAdapter) decorateContent(ref models.ContentRef, likes, savedBy, comments *[]string, reports *[]models.ReportSummary) error {
	var err error
	if *likes, err = a.ListEngagedUsers(ref, models.EngagementLike); err != nil {
		return err
	}
	if *savedBy, err = a.ListEngagedUsers(ref, models.EngagementSave); err != nil {
		return err
	}
	*comments = []string{}
	if err = a.db.Model(&models.Comment{}).
		Where("content_id = ? AND content_kind = ?", ref.ID, ref.Kind).
		Order("created_at ASC").
		Pluck("id", comments).Error; err != nil {
		return err
	}
	*reports, err = a.ListReportSummaries(ref)
	return err
}

// deleteContentState removes the comments, reactions and engagements
// attached to a content entity. Runs inside the caller's transaction.
func deleteContentState(tx *gorm.DB, ref models.ContentRef) error {
	var commentIDs []string
	if err := tx.Model(&models.Comment{}).
		Where("content_id = ? AND content_kind = ?", ref.ID, ref.Kind).
		Pluck("id", &commentIDs).Error; err != nil {
		return err
	}
	if len(commentIDs) > 0 {
		if err := tx.Delete(&models.Reaction{}, "comment_id IN ?", commentIDs).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Comment{}, "id IN ?", commentIDs).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&models.Engagement{},
		"target_id = ? AND target_kind = ?", ref.ID, ref.Kind).Error
}

// decorateComment fills the derived reaction and reply fields on a comment
func (a *gormAdapter) decorateComment(comment *models.Comment) error {
	var err error
	if comment.Reacts, err = a.ListReactions(comment.ID); err != nil {
		return err
	}
	comment.Replies, err = a.ListReplyIDs(comment.ID)
	return err
}
