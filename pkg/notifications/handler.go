package notifications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"swapyard/pkg/response"
)

type NotificationHandler struct {
	service NotificationService
}

func NewNotificationHandler(service NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/notifications", h.listNotifications)
	router.GET("/notifications/unread-count", h.unreadCount)
	router.PUT("/notifications/:id/read", h.markRead)
	router.PUT("/notifications/read-all", h.markAllRead)
}

func recipientFromQuery(c *gin.Context) (string, bool) {
	uid := c.Query("user_uuid")
	if _, err := uuid.Parse(uid); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid user_uuid, must be UUID", nil)
		return "", false
	}
	return uid, true
}

// listNotifications godoc
// @Summary List notifications
// @Description Returns the user's notifications, newest first
// @Tags notifications
// @Param user_uuid query string true "Recipient UUID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /notifications [get]
func (h *NotificationHandler) listNotifications(c *gin.Context) {
	uid, ok := recipientFromQuery(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit > 100 {
		limit = 100
	}

	items, total, err := h.service.ListNotifications(c.Request.Context(), uid, page, limit)
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to fetch notifications", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "notifications", map[string]interface{}{
		"notifications": items,
		"total":         total,
		"page":          page,
		"limit":         limit,
	})
}

// unreadCount godoc
// @Summary Unread notification count
// @Tags notifications
// @Param user_uuid query string true "Recipient UUID"
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) unreadCount(c *gin.Context) {
	uid, ok := recipientFromQuery(c)
	if !ok {
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), uid)
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to count notifications", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "unread count", map[string]interface{}{
		"count": count,
	})
}

// markRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Param id path string true "Notification UUID"
// @Param user_uuid query string true "Recipient UUID"
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) markRead(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid notification id, must be UUID", nil)
		return
	}
	uid, ok := recipientFromQuery(c)
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, uid); err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "notification not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to mark notification read", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "notification marked read", nil)
}

// markAllRead godoc
// @Summary Mark all notifications as read
// @Tags notifications
// @Param user_uuid query string true "Recipient UUID"
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /notifications/read-all [put]
func (h *NotificationHandler) markAllRead(c *gin.Context) {
	uid, ok := recipientFromQuery(c)
	if !ok {
		return
	}

	updated, err := h.service.MarkAllRead(c.Request.Context(), uid)
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to mark notifications read", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "notifications marked read", map[string]interface{}{
		"updated": updated,
	})
}
