package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/server/http/dto"
)

type NotificationHandler struct {
	facade NotificationFacade
}

func NewNotificationHandler(facade NotificationFacade) *NotificationHandler {
	return &NotificationHandler{facade: facade}
}

// List handles GET /api/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	list, err := h.facade.Notifications(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Unseen handles GET /api/notifications/unseen.
func (h *NotificationHandler) Unseen(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	count, err := h.facade.UnseenNotifications(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UnseenResponse{Count: count})
}

// MarkSeen handles PATCH /api/notifications/:id/seen.
func (h *NotificationHandler) MarkSeen(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.MarkNotificationSeen(c.Request.Context(), user, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllSeen handles POST /api/notifications/seen.
func (h *NotificationHandler) MarkAllSeen(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.facade.MarkAllNotificationsSeen(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Send handles POST /api/notifications.
func (h *NotificationHandler) Send(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.NotificationRequest
	if !bindJSON(c, &req) {
		return
	}
	notification, err := h.facade.SendNotification(c.Request.Context(), user, model.NotificationInput{
		UserID:    req.UserID,
		Type:      req.Type,
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Message:   req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, notification)
}
