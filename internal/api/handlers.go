package api

import (
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"clipnet/internal/hooks"
	"clipnet/internal/models"
	"clipnet/internal/services"
)

// Services bundles the service layer the handlers are built on
type Services struct {
	Content    *services.ContentService
	Comments   *services.CommentService
	Moderation *services.ModerationService
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler handles API errors
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var validationErr *models.ValidationError
	var notFoundErr *models.NotFoundError
	var invalidStateErr *models.InvalidStateError
	var conflictErr *models.ConflictError

	// Check for known error types
	switch {
	case errors.As(err, &validationErr):
		code = fiber.StatusBadRequest
	case errors.As(err, &notFoundErr), errors.Is(err, gorm.ErrRecordNotFound):
		code = fiber.StatusNotFound
	case errors.As(err, &invalidStateErr), errors.As(err, &conflictErr):
		code = fiber.StatusConflict
	case errors.Is(err, fiber.ErrBadRequest):
		code = fiber.StatusBadRequest
	case errors.Is(err, fiber.ErrUnauthorized):
		code = fiber.StatusUnauthorized
	case errors.Is(err, fiber.ErrForbidden):
		code = fiber.StatusForbidden
	default:
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}
	}

	return c.Status(code).JSON(ErrorResponse{
		Error: err.Error(),
	})
}

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, svc *Services) {
	api := app.Group("/api")

	// Health check
	api.Get("/health", healthCheck(svc))

	// Post routes
	posts := api.Group("/posts")
	posts.Post("/", createPost(svc))
	posts.Get("/", listPosts(svc))
	posts.Get("/:id", getPost(svc))
	posts.Delete("/:id", deletePost(svc))
	posts.Put("/:id/like", engage(svc, models.KindPost, models.EngagementLike, true))
	posts.Delete("/:id/like", engage(svc, models.KindPost, models.EngagementLike, false))
	posts.Put("/:id/save", engage(svc, models.KindPost, models.EngagementSave, true))
	posts.Delete("/:id/save", engage(svc, models.KindPost, models.EngagementSave, false))

	// Short routes
	shorts := api.Group("/shorts")
	shorts.Post("/", createShort(svc))
	shorts.Get("/", listShorts(svc))
	shorts.Get("/:id", getShort(svc))
	shorts.Delete("/:id", deleteShort(svc))
	shorts.Post("/:id/views", recordView(svc))
	shorts.Put("/:id/like", engage(svc, models.KindShort, models.EngagementLike, true))
	shorts.Delete("/:id/like", engage(svc, models.KindShort, models.EngagementLike, false))
	shorts.Put("/:id/save", engage(svc, models.KindShort, models.EngagementSave, true))
	shorts.Delete("/:id/save", engage(svc, models.KindShort, models.EngagementSave, false))

	// Comment routes
	comments := api.Group("/comments")
	comments.Post("/", createComment(svc))
	comments.Get("/content/:kind/:contentId", listComments(svc))
	comments.Get("/:id", getComment(svc))
	comments.Delete("/:id", deleteComment(svc))
	comments.Put("/:id/reaction", reactToComment(svc))
	comments.Delete("/:id/reaction", unreactToComment(svc))
	comments.Get("/:id/reactions", listReactions(svc))

	// Report routes
	reports := api.Group("/reports")
	reports.Post("/", fileReport(svc))
	reports.Get("/", listReports(svc))
	reports.Get("/:id", getReport(svc))
	reports.Post("/:id/review", reviewReport(svc))
	reports.Post("/:id/resolve", resolveReport(svc))
}

// getUserID extracts the user ID from the request header
func getUserID(c *fiber.Ctx) string {
	return c.Get("X-User-ID")
}

// Common pagination logic
func getPaginationParams(c *fiber.Ctx) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit", "20"))
	page, _ := strconv.Atoi(c.Query("page", "1"))

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}

	offset = (page - 1) * limit
	return
}

// Health check handler
func healthCheck(svc *Services) fiber.Handler {
	startTime := time.Now()

	return func(c *fiber.Ctx) error {
		var dbStatus string
		var dbLatency time.Duration

		// Check database connectivity
		checkStart := time.Now()
		if _, err := svc.Content.ListPosts("", 1, 0); err != nil {
			dbStatus = "error: " + err.Error()
		} else {
			dbStatus = "ok"
			dbLatency = time.Since(checkStart)
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":      "ok",
			"service":     "Clipnet API",
			"version":     viper.GetString("VERSION"),
			"uptime":      time.Since(startTime).String(),
			"date":        time.Now().Format(time.RFC3339),
			"environment": viper.GetString("ENV"),
			"go_version":  runtime.Version(),
			"go_os":       runtime.GOOS,
			"go_arch":     runtime.GOARCH,
			"database": fiber.Map{
				"adapter":    viper.GetString("DB_ADAPTER"),
				"status":     dbStatus,
				"latency_ms": dbLatency.Milliseconds(),
			},
		})
	}
}

// Post handlers
func createPost(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := getUserID(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}

		in := new(services.CreatePostInput)
		if err := c.BodyParser(in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		post, err := svc.Content.CreatePost(userID, *in)
		if err != nil {
			return err
		}

		hooks.TriggerPostCreated(userID, post)
		return c.Status(http.StatusCreated).JSON(post)
	}
}

func getPost(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		post, err := svc.Content.GetPost(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(post)
	}
}

func listPosts(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset := getPaginationParams(c)
		ownerID := c.Query("owner", "") // Filter by owner if provided
		page, _ := strconv.Atoi(c.Query("page", "1"))

		posts, err := svc.Content.ListPosts(ownerID, limit, offset)
		if err != nil {
			return err
		}

		// Return with pagination metadata
		return c.JSON(fiber.Map{
			"data": posts,
			"meta": fiber.Map{
				"page":   page,
				"limit":  limit,
				"offset": offset,
				"count":  len(posts),
			},
		})
	}
}

func deletePost(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		userID := getUserID(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}

		post, err := svc.Content.GetPost(id)
		if err != nil {
			return err
		}
		if post.Owner != userID {
			return fiber.ErrForbidden
		}

		if err := svc.Content.DeletePost(id); err != nil {
			return err
		}

		hooks.TriggerPostDeleted(userID, id)
		return c.SendStatus(http.StatusNoContent)
	}
}

// Short handlers
func createShort(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := getUserID(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}

		in := new(services.CreateShortInput)
		if err := c.BodyParser(in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		short, err := svc.Content.CreateShort(userID, *in)
		if err != nil {
			return err
		}

		hooks.TriggerShortCreated(userID, short)
		return c.Status(http.StatusCreated).JSON(short)
	}
}

func getShort(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		short, err := svc.Content.GetShort(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(short)
	}
}

func listShorts(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset := getPaginationParams(c)
		ownerID := c.Query("owner", "")
		page, _ := strconv.Atoi(c.Query("page", "1"))

		shorts, err := svc.Content.ListShorts(ownerID, limit, offset)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"data": shorts,
			"meta": fiber.Map{
				"page":   page,
				"limit":  limit,
				"offset": offset,
				"count":  len(shorts),
			},
		})
	}
}

func deleteShort(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		userID := getUserID(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}

		short, err := svc.Content.GetShort(id)
		if err != nil {
			return err
		}
		if short.Owner != userID {
			return fiber.ErrForbidden
		}

		if err := svc.Content.DeleteShort(id); err != nil {
			return err
		}

		hooks.TriggerShortDeleted(userID, id)
		return c.SendStatus(http.StatusNoContent)
	}
}

func recordView(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Content.RecordView(c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(http.StatusNoContent)
	}
}

// engage builds a like/save add/remove handler for a content kind
func engage(svc *Services, kind models.ContentKind, engagement models.EngagementKind, add bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := getUserID(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}

		target := models.ContentRef{Kind: kind, ID: c.Params("id")}

		var err error
		switch {
		case engagement == models.EngagementLike && add:
			err = svc.Content.Like(target, userID)
		case engagement == models.EngagementLike:
			err = svc.Content.Unlike(target, userID)
		case add:
			err = svc.Content.Save(target, userID)
		default:
			err = svc.Content.Unsave(target, userID)
		}
		if err != nil {
			return err
		}

		hooks.TriggerEngagement(userID, target, engagement, add)
		return c.SendStatus(http.StatusNoContent)
	}
}

// Comment handlers

type createCommentRequest struct {
	ContentType models.ContentKind `json:"contentType"`
	ContentID   string             `json:"contentId"`
	Text        string             `json:"text"`
	ParentID    *string            `json:"parentId,omitempty"`
}

func createComment(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := getUserID(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}

		req := new(createCommentRequest)
		if err := c.BodyParser(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		comment, err := svc.Comments.Create(userID, services.CreateCommentInput{
			Target:   models.ContentRef{Kind: req.ContentType, ID: req.ContentID},
			Text:     req.Text,
			ParentID: req.ParentID,
		})
		if err != nil {
			return err
		}

		hooks.TriggerCommentCreated(userID, comment)
		return c.Status(http.StatusCreated).JSON(comment)
	}
}

func getComment(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		comment, err := svc.Comments.Get(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(comment)
	}
}

func listComments(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target := models.ContentRef{
			Kind: models.ContentKind(c.Params("kind")),
			ID:   c.Params("contentId"),
		}

		limit, offset := getPaginationParams(c)
		page, _ := strconv.Atoi(c.Query("page", "1"))

		comments, err := svc.Comments.ListForContent(target, limit, offset)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"data": comments,
			"meta": fiber.Map{
				"page":       page,
				"limit":      limit,
				"offset":     offset,
				"count":      len(comments),
				"content_id": target.ID,
			},
		})
	}
}

func deleteComment(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		userID := getUserID(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}

		comment, err := svc.Comments.Get(id)
		if err != nil {
			return err
		}
		if comment.Owner != userID {
			return fiber.ErrForbidden
		}

		if err := svc.Comments.Delete(id); err != nil {
			return err
		}

		hooks.TriggerCommentDeleted(userID, id)
		return c.SendStatus(http.StatusNoContent)
	}
}

func reactToComment(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := getUserID(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}

		var req struct {
			Emoji string `json:"emoji"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		comment, err := svc.Comments.React(c.Params("id"), userID, req.Emoji)
		if err != nil {
			return err
		}

		hooks.TriggerReactionSet(userID, comment.ID, req.Emoji)
		return c.JSON(comment)
	}
}

func unreactToComment(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		userID := getUserID(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}

		if err := svc.Comments.Unreact(id, userID); err != nil {
			return err
		}

		hooks.TriggerReactionCleared(userID, id)
		return c.SendStatus(http.StatusNoContent)
	}
}

func listReactions(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reactions, err := svc.Comments.ListReactions(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(reactions)
	}
}

// Report handlers

type fileReportRequest struct {
	ContentType models.ContentKind `json:"contentType"`
	ContentID   string             `json:"contentId"`
	Reason      string             `json:"reason"`
}

func fileReport(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := getUserID(c)
		if userID == "" {
			return fiber.ErrUnauthorized
		}

		req := new(fileReportRequest)
		if err := c.BodyParser(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		report, err := svc.Moderation.File(c.Context(), userID, services.FileReportInput{
			Target: models.ContentRef{Kind: req.ContentType, ID: req.ContentID},
			Reason: req.Reason,
		})
		if err != nil {
			return err
		}

		hooks.TriggerReportFiled(userID, report)
		return c.Status(http.StatusCreated).JSON(report)
	}
}

func getReport(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := svc.Moderation.Get(c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(report)
	}
}

func listReports(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset := getPaginationParams(c)
		page, _ := strconv.Atoi(c.Query("page", "1"))

		filter := models.ReportFilter{
			Status:      models.ReportStatus(c.Query("status", "")),
			ContentKind: models.ContentKind(c.Query("contentType", "")),
			Limit:       limit,
			Offset:      offset,
		}

		reports, err := svc.Moderation.List(filter)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"data": reports,
			"meta": fiber.Map{
				"page":   page,
				"limit":  limit,
				"offset": offset,
				"count":  len(reports),
			},
		})
	}
}

func reviewReport(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		moderatorID := getUserID(c)
		if moderatorID == "" {
			return fiber.ErrUnauthorized
		}

		report, err := svc.Moderation.Review(c.Params("id"), moderatorID)
		if err != nil {
			return err
		}

		hooks.TriggerReportReviewed(moderatorID, report)
		return c.JSON(report)
	}
}

func resolveReport(svc *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		moderatorID := getUserID(c)
		if moderatorID == "" {
			return fiber.ErrUnauthorized
		}

		var req struct {
			Outcome string `json:"outcome"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		report, err := svc.Moderation.Resolve(c.Params("id"), moderatorID, req.Outcome)
		if err != nil {
			return err
		}

		hooks.TriggerReportResolved(moderatorID, report)
		return c.JSON(report)
	}
}
