package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"clipnet/internal/models"
)

func TestCreateCommentValidation(t *testing.T) {
	svc := NewCommentService(noopCommentStore(), noopContentStore())
	target := models.ContentRef{Kind: models.KindPost, ID: "p1"}

	t.Run("empty text", func(t *testing.T) {
		_, err := svc.Create("u2", CreateCommentInput{Target: target})
		assertValidationError(t, err)
	})

	t.Run("missing owner", func(t *testing.T) {
		_, err := svc.Create("", CreateCommentInput{Target: target, Text: "nice"})
		assertValidationError(t, err)
	})

	t.Run("comment target kind rejected", func(t *testing.T) {
		_, err := svc.Create("u2", CreateCommentInput{
			Target: models.ContentRef{Kind: models.KindComment, ID: "c1"},
			Text:   "nice",
		})
		assertValidationError(t, err)
	})

	t.Run("missing content", func(t *testing.T) {
		svc := NewCommentService(noopCommentStore(), notFoundContentStore())
		_, err := svc.Create("u2", CreateCommentInput{Target: target, Text: "nice"})
		assertNotFoundError(t, err)
	})
}

func TestCreateCommentTopLevel(t *testing.T) {
	store := noopCommentStore()
	var created *models.Comment
	store.createFn = func(c *models.Comment) error {
		c.ID = "c1"
		created = c
		return nil
	}
	svc := NewCommentService(store, noopContentStore())

	_, err := svc.Create("u2", CreateCommentInput{
		Target: models.ContentRef{Kind: models.KindPost, ID: "p1"},
		Text:   "nice",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "nice", created.Content)
	assert.Equal(t, "u2", created.Owner)
	assert.Equal(t, "p1", created.ContentID)
	assert.Equal(t, models.KindPost, created.ContentKind)
	assert.Nil(t, created.ParentID)
}

func TestCreateReplyParentChecks(t *testing.T) {
	parentID := "parent"

	t.Run("parent missing", func(t *testing.T) {
		store := noopCommentStore()
		store.getFn = func(string) (*models.Comment, error) { return nil, gorm.ErrRecordNotFound }
		svc := NewCommentService(store, noopContentStore())

		_, err := svc.Create("u2", CreateCommentInput{
			Target:   models.ContentRef{Kind: models.KindPost, ID: "p1"},
			Text:     "reply",
			ParentID: &parentID,
		})
		assertNotFoundError(t, err)
	})

	t.Run("parent in a different thread", func(t *testing.T) {
		store := noopCommentStore()
		store.getFn = func(id string) (*models.Comment, error) {
			return &models.Comment{ID: id, Content: "x", Owner: "u9", ContentID: "other-post", ContentKind: models.KindPost}, nil
		}
		svc := NewCommentService(store, noopContentStore())

		_, err := svc.Create("u2", CreateCommentInput{
			Target:   models.ContentRef{Kind: models.KindPost, ID: "p1"},
			Text:     "reply",
			ParentID: &parentID,
		})
		assertNotFoundError(t, err)
	})

	t.Run("parent in the same thread", func(t *testing.T) {
		store := noopCommentStore()
		store.getFn = func(id string) (*models.Comment, error) {
			return &models.Comment{ID: id, Content: "x", Owner: "u9", ContentID: "p1", ContentKind: models.KindPost}, nil
		}
		var created *models.Comment
		store.createFn = func(c *models.Comment) error {
			c.ID = "c2"
			created = c
			return nil
		}
		svc := NewCommentService(store, noopContentStore())

		_, err := svc.Create("u2", CreateCommentInput{
			Target:   models.ContentRef{Kind: models.KindPost, ID: "p1"},
			Text:     "reply",
			ParentID: &parentID,
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		require.NotNil(t, created.ParentID)
		assert.Equal(t, parentID, *created.ParentID)
	})
}

func TestReactValidation(t *testing.T) {
	svc := NewCommentService(noopCommentStore(), noopContentStore())

	t.Run("missing emoji", func(t *testing.T) {
		_, err := svc.React("c1", "u2", "")
		assertValidationError(t, err)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := svc.React("c1", "", "👍")
		assertValidationError(t, err)
	})

	t.Run("missing comment", func(t *testing.T) {
		store := noopCommentStore()
		store.getFn = func(string) (*models.Comment, error) { return nil, gorm.ErrRecordNotFound }
		svc := NewCommentService(store, noopContentStore())
		_, err := svc.React("missing", "u2", "👍")
		assertNotFoundError(t, err)
	})
}

func TestReactUpserts(t *testing.T) {
	store := noopCommentStore()
	var upserted *models.Reaction
	store.upsertReactionFn = func(r *models.Reaction) error {
		upserted = r
		return nil
	}
	svc := NewCommentService(store, noopContentStore())

	_, err := svc.React("c1", "u2", "🔥")
	require.NoError(t, err)
	require.NotNil(t, upserted)
	assert.Equal(t, "c1", upserted.CommentID)
	assert.Equal(t, "u2", upserted.UserID)
	assert.Equal(t, "🔥", upserted.Emoji)
}

func TestDeleteCascades(t *testing.T) {
	store := noopCommentStore()
	var deleted string
	store.deleteTreeFn = func(id string) error {
		deleted = id
		return nil
	}
	svc := NewCommentService(store, noopContentStore())

	require.NoError(t, svc.Delete("c1"))
	assert.Equal(t, "c1", deleted)
}

func TestDeleteMissingComment(t *testing.T) {
	store := noopCommentStore()
	store.getFn = func(string) (*models.Comment, error) { return nil, gorm.ErrRecordNotFound }
	svc := NewCommentService(store, noopContentStore())

	assertNotFoundError(t, svc.Delete("missing"))
}
