package hooks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"clipnet/internal/models"

	"github.com/spf13/viper"
)

// EventType represents the type of event
type EventType string

const (
	// Event types
	EventPostCreated     EventType = "post_created"
	EventPostDeleted     EventType = "post_deleted"
	EventShortCreated    EventType = "short_created"
	EventShortDeleted    EventType = "short_deleted"
	EventCommentCreated  EventType = "comment_created"
	EventCommentDeleted  EventType = "comment_deleted"
	EventLikeAdded       EventType = "like_added"
	EventLikeRemoved     EventType = "like_removed"
	EventSaveAdded       EventType = "save_added"
	EventSaveRemoved     EventType = "save_removed"
	EventReactionSet     EventType = "reaction_set"
	EventReactionCleared EventType = "reaction_cleared"
	EventReportFiled     EventType = "report_filed"
	EventReportReviewed  EventType = "report_reviewed"
	EventReportResolved  EventType = "report_resolved"
)

// Event represents a hook event
type Event struct {
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// EventHandler is a function that handles an event
type EventHandler func(event Event) error

// HookManager manages event hooks. Configuration is read per trigger so the
// global manager picks up settings loaded after package init.
type HookManager struct {
	handlers map[EventType][]EventHandler
	mu       sync.RWMutex
}

// NewHookManager creates a new hook manager
func NewHookManager() *HookManager {
	return &HookManager{
		handlers: make(map[EventType][]EventHandler),
	}
}

// Register registers a handler for an event type
func (h *HookManager) Register(eventType EventType, handler EventHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[eventType] = append(h.handlers[eventType], handler)
}

// Trigger triggers an event
func (h *HookManager) Trigger(eventType EventType, userID string, data interface{}) {
	if !viper.GetBool("HOOKS_ENABLED") {
		return
	}

	event := Event{
		Type:      eventType,
		UserID:    userID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}

	// Run local handlers
	h.mu.RLock()
	handlers := h.handlers[eventType]
	h.mu.RUnlock()

	for _, handler := range handlers {
		go func(handler EventHandler) {
			_ = handler(event)
		}(handler)
	}

	// Send to webhook if configured
	if webhookURL := viper.GetString("WEBHOOK_URL"); webhookURL != "" {
		go h.sendWebhook(webhookURL, event)
	}
}

// sendWebhook sends the event to the configured webhook URL
func (h *HookManager) sendWebhook(webhookURL string, event Event) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %v", err)
	}

	resp, err := http.Post(webhookURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("webhook request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status: %d", resp.StatusCode)
	}

	return nil
}

// Global hook manager
var DefaultHookManager = NewHookManager()

// Convenience functions for triggering events
func TriggerPostCreated(userID string, post *models.Post) {
	DefaultHookManager.Trigger(EventPostCreated, userID, post)
}

func TriggerPostDeleted(userID string, postID string) {
	DefaultHookManager.Trigger(EventPostDeleted, userID, map[string]string{"id": postID})
}

func TriggerShortCreated(userID string, short *models.Short) {
	DefaultHookManager.Trigger(EventShortCreated, userID, short)
}

func TriggerShortDeleted(userID string, shortID string) {
	DefaultHookManager.Trigger(EventShortDeleted, userID, map[string]string{"id": shortID})
}

func TriggerCommentCreated(userID string, comment *models.Comment) {
	DefaultHookManager.Trigger(EventCommentCreated, userID, comment)
}

func TriggerCommentDeleted(userID string, commentID string) {
	DefaultHookManager.Trigger(EventCommentDeleted, userID, map[string]string{"id": commentID})
}

// TriggerEngagement fires like/save add/remove events for a content target
func TriggerEngagement(userID string, target models.ContentRef, kind models.EngagementKind, added bool) {
	eventType := EventLikeRemoved
	switch {
	case kind == models.EngagementLike && added:
		eventType = EventLikeAdded
	case kind == models.EngagementSave && added:
		eventType = EventSaveAdded
	case kind == models.EngagementSave:
		eventType = EventSaveRemoved
	}
	DefaultHookManager.Trigger(eventType, userID, target)
}

func TriggerReactionSet(userID string, commentID, emoji string) {
	DefaultHookManager.Trigger(EventReactionSet, userID, map[string]string{
		"comment_id": commentID,
		"emoji":      emoji,
	})
}

func TriggerReactionCleared(userID string, commentID string) {
	DefaultHookManager.Trigger(EventReactionCleared, userID, map[string]string{"comment_id": commentID})
}

func TriggerReportFiled(userID string, report *models.Report) {
	DefaultHookManager.Trigger(EventReportFiled, userID, report)
}

func TriggerReportReviewed(moderatorID string, report *models.Report) {
	DefaultHookManager.Trigger(EventReportReviewed, moderatorID, report)
}

func TriggerReportResolved(moderatorID string, report *models.Report) {
	DefaultHookManager.Trigger(EventReportResolved, moderatorID, report)
}
