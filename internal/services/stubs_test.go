package services

import (
	"gorm.io/gorm"

	"clipnet/internal/models"
)

// contentStoreStub is a function-field stub for adapters.ContentStore.
type contentStoreStub struct {
	createPostFn       func(*models.Post) error
	getPostFn          func(string) (*models.Post, error)
	listPostsFn        func(string, int, int) ([]*models.Post, error)
	deletePostFn       func(string) error
	createShortFn      func(*models.Short) error
	getShortFn         func(string) (*models.Short, error)
	listShortsFn       func(string, int, int) ([]*models.Short, error)
	deleteShortFn      func(string) error
	incrementViewsFn   func(string) error
	addEngagementFn    func(*models.Engagement) (bool, error)
	removeEngagementFn func(string, models.ContentRef, models.EngagementKind) error
	listEngagedFn      func(models.ContentRef, models.EngagementKind) ([]string, error)
}

func (s *contentStoreStub) CreatePost(p *models.Post) error { return s.createPostFn(p) }
func (s *contentStoreStub) GetPostByID(id string) (*models.Post, error) {
	return s.getPostFn(id)
}
func (s *contentStoreStub) ListPosts(ownerID string, limit, offset int) ([]*models.Post, error) {
	return s.listPostsFn(ownerID, limit, offset)
}
func (s *contentStoreStub) DeletePost(id string) error  { return s.deletePostFn(id) }
func (s *contentStoreStub) CreateShort(sh *models.Short) error {
	return s.createShortFn(sh)
}
func (s *contentStoreStub) GetShortByID(id string) (*models.Short, error) {
	return s.getShortFn(id)
}
func (s *contentStoreStub) ListShorts(ownerID string, limit, offset int) ([]*models.Short, error) {
	return s.listShortsFn(ownerID, limit, offset)
}
func (s *contentStoreStub) DeleteShort(id string) error { return s.deleteShortFn(id) }
func (s *contentStoreStub) IncrementShortViews(id string) error {
	return s.incrementViewsFn(id)
}
func (s *contentStoreStub) AddEngagement(e *models.Engagement) (bool, error) {
	return s.addEngagementFn(e)
}
func (s *contentStoreStub) RemoveEngagement(userID string, target models.ContentRef, kind models.EngagementKind) error {
	return s.removeEngagementFn(userID, target, kind)
}
func (s *contentStoreStub) ListEngagedUsers(target models.ContentRef, kind models.EngagementKind) ([]string, error) {
	return s.listEngagedFn(target, kind)
}

func noopContentStore() *contentStoreStub {
	return &contentStoreStub{
		createPostFn: func(p *models.Post) error { p.ID = "p1"; return nil },
		getPostFn: func(id string) (*models.Post, error) {
			return &models.Post{ID: id, Title: "T", Content: "C", Owner: "u1"}, nil
		},
		listPostsFn:  func(string, int, int) ([]*models.Post, error) { return nil, nil },
		deletePostFn: func(string) error { return nil },
		createShortFn: func(sh *models.Short) error {
			sh.ID = "s1"
			return nil
		},
		getShortFn: func(id string) (*models.Short, error) {
			return &models.Short{ID: id, Title: "T", VideoURL: "http://x/v.mp4", Duration: 15, Owner: "u1"}, nil
		},
		listShortsFn:     func(string, int, int) ([]*models.Short, error) { return nil, nil },
		deleteShortFn:    func(string) error { return nil },
		incrementViewsFn: func(string) error { return nil },
		addEngagementFn:  func(*models.Engagement) (bool, error) { return true, nil },
		removeEngagementFn: func(string, models.ContentRef, models.EngagementKind) error {
			return nil
		},
		listEngagedFn: func(models.ContentRef, models.EngagementKind) ([]string, error) {
			return nil, nil
		},
	}
}

// commentStoreStub is a function-field stub for adapters.CommentStore.
type commentStoreStub struct {
	createFn         func(*models.Comment) error
	getFn            func(string) (*models.Comment, error)
	listFn           func(models.ContentRef, int, int) ([]*models.Comment, error)
	listReplyIDsFn   func(string) ([]string, error)
	deleteTreeFn     func(string) error
	upsertReactionFn func(*models.Reaction) error
	removeReactionFn func(string, string) error
	listReactionsFn  func(string) ([]models.Reaction, error)
}

func (s *commentStoreStub) CreateComment(c *models.Comment) error { return s.createFn(c) }
func (s *commentStoreStub) GetCommentByID(id string) (*models.Comment, error) {
	return s.getFn(id)
}
func (s *commentStoreStub) ListComments(target models.ContentRef, limit, offset int) ([]*models.Comment, error) {
	return s.listFn(target, limit, offset)
}
func (s *commentStoreStub) ListReplyIDs(parentID string) ([]string, error) {
	return s.listReplyIDsFn(parentID)
}
func (s *commentStoreStub) DeleteCommentTree(id string) error { return s.deleteTreeFn(id) }
func (s *commentStoreStub) UpsertReaction(r *models.Reaction) error {
	return s.upsertReactionFn(r)
}
func (s *commentStoreStub) RemoveReaction(commentID, userID string) error {
	return s.removeReactionFn(commentID, userID)
}
func (s *commentStoreStub) ListReactions(commentID string) ([]models.Reaction, error) {
	return s.listReactionsFn(commentID)
}

func noopCommentStore() *commentStoreStub {
	return &commentStoreStub{
		createFn: func(c *models.Comment) error { c.ID = "c1"; return nil },
		getFn: func(id string) (*models.Comment, error) {
			return &models.Comment{ID: id, Content: "hi", Owner: "u1", ContentID: "p1", ContentKind: models.KindPost}, nil
		},
		listFn:           func(models.ContentRef, int, int) ([]*models.Comment, error) { return nil, nil },
		listReplyIDsFn:   func(string) ([]string, error) { return nil, nil },
		deleteTreeFn:     func(string) error { return nil },
		upsertReactionFn: func(*models.Reaction) error { return nil },
		removeReactionFn: func(string, string) error { return nil },
		listReactionsFn:  func(string) ([]models.Reaction, error) { return nil, nil },
	}
}

// reportStoreStub is a function-field stub for adapters.ReportStore.
type reportStoreStub struct {
	createFn        func(*models.Report) error
	getFn           func(string) (*models.Report, error)
	listFn          func(models.ReportFilter) ([]*models.Report, error)
	transitionFn    func(string, models.ReportStatus, map[string]interface{}) (bool, error)
	listSummariesFn func(models.ContentRef) ([]models.ReportSummary, error)
}

func (s *reportStoreStub) CreateReport(r *models.Report) error { return s.createFn(r) }
func (s *reportStoreStub) GetReportByID(id string) (*models.Report, error) {
	return s.getFn(id)
}
func (s *reportStoreStub) ListReports(filter models.ReportFilter) ([]*models.Report, error) {
	return s.listFn(filter)
}
func (s *reportStoreStub) TransitionReport(id string, from models.ReportStatus, updates map[string]interface{}) (bool, error) {
	return s.transitionFn(id, from, updates)
}
func (s *reportStoreStub) ListReportSummaries(target models.ContentRef) ([]models.ReportSummary, error) {
	return s.listSummariesFn(target)
}

func noopReportStore() *reportStoreStub {
	return &reportStoreStub{
		createFn: func(r *models.Report) error { r.ID = "r1"; return nil },
		getFn: func(id string) (*models.Report, error) {
			return &models.Report{ID: id, Reporter: "u1", Status: models.ReportPending}, nil
		},
		listFn: func(models.ReportFilter) ([]*models.Report, error) { return nil, nil },
		transitionFn: func(string, models.ReportStatus, map[string]interface{}) (bool, error) {
			return true, nil
		},
		listSummariesFn: func(models.ContentRef) ([]models.ReportSummary, error) { return nil, nil },
	}
}

func notFoundContentStore() *contentStoreStub {
	stub := noopContentStore()
	stub.getPostFn = func(string) (*models.Post, error) { return nil, gorm.ErrRecordNotFound }
	stub.getShortFn = func(string) (*models.Short, error) { return nil, gorm.ErrRecordNotFound }
	return stub
}
