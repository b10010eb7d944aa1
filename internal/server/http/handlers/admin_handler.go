package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/server/http/dto"
)

// AdminHandler serves approvals, user management and insights.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// PendingApprovals handles GET /api/admin/approvals.
func (h *AdminHandler) PendingApprovals(c *gin.Context) {
	approvals, err := h.facade.PendingApprovals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, approvals)
}

// ExecuteApprovals handles POST /api/admin/approvals.
func (h *AdminHandler) ExecuteApprovals(c *gin.Context) {
	var req dto.ExecuteApprovalsRequest
	if !bindJSON(c, &req) {
		return
	}
	results, err := h.facade.ExecuteApprovals(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ExecuteApprovalsResponse{Results: results})
}

// ServiceApprovals handles GET /api/admin/approvals/:service.
func (h *AdminHandler) ServiceApprovals(c *gin.Context) {
	approvals, err := h.facade.ServiceApprovals(c.Request.Context(), c.Param("service"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, approvals)
}

// BulkApprove handles POST /api/admin/approvals/:service/bulk.
func (h *AdminHandler) BulkApprove(c *gin.Context) {
	var req model.BulkApproval
	if !bindJSON(c, &req) {
		return
	}
	if err := h.facade.BulkApprove(c.Request.Context(), c.Param("service"), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Users handles GET /api/admin/users.
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.facade.ManagedUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// User handles GET /api/admin/users/:id.
func (h *AdminHandler) User(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.facade.ManagedUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser handles PATCH /api/admin/users/:id.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	actor, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req model.GatewayUserUpdate
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.facade.UpdateManagedUser(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actor, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.DeleteManagedUser(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Insights handles GET /api/admin/insights.
func (h *AdminHandler) Insights(c *gin.Context) {
	insights, err := h.facade.Insights(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, insights)
}
