package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"techstore-backend/internal/domains/notification/model"
	"techstore-backend/internal/shared/middleware"
	"techstore-backend/internal/shared/response"
)

// NotificationHandler phục vụ inbox của session hiện tại
type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

// FeedResponse là inbox kèm số chưa đọc (tính lại mỗi request)
type FeedResponse struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int                  `json:"unread_count"`
}

// MarkReadResponse trả lại item để shell điều hướng
type MarkReadResponse struct {
	Notification model.Notification `json:"notification"`
	Changed      bool               `json:"changed"`
	UnreadCount  int                `json:"unread_count"`
	TargetPage   model.Page         `json:"target_page,omitempty"`
	Link         string             `json:"link,omitempty"`
}

// ListNotifications handles GET /session/notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	feed := s.Feed()
	response.Success(c, http.StatusOK, "Notifications retrieved successfully", FeedResponse{
		Notifications: feed.Items(),
		UnreadCount:   feed.UnreadCount(),
	})
}

// MarkAsRead handles PUT /session/notifications/:id/read
// Id không có trong feed → 200, changed = false, feed giữ nguyên.
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	feed := s.Feed()
	item, found, changed := feed.MarkAsRead(c.Param("id"))
	if !found {
		response.Success(c, http.StatusOK, "Notification not found, nothing changed", gin.H{
			"changed":      false,
			"unread_count": feed.UnreadCount(),
		})
		return
	}

	response.Success(c, http.StatusOK, "Notification marked as read", MarkReadResponse{
		Notification: item,
		Changed:      changed,
		UnreadCount:  feed.UnreadCount(),
		TargetPage:   item.TargetPage,
		Link:         item.Link,
	})
}

// MarkAllAsRead handles PUT /session/notifications/read-all
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	feed := s.Feed()
	updated := feed.MarkAllAsRead()

	response.Success(c, http.StatusOK, "All notifications marked as read", gin.H{
		"updated_count": updated,
		"unread_count":  feed.UnreadCount(),
	})
}
