package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/server/http/dto"
)

// AccountHandler manages account endpoints.
type AccountHandler struct {
	facade AccountFacade
}

// NewAccountHandler constructs AccountHandler.
func NewAccountHandler(facade AccountFacade) *AccountHandler {
	return &AccountHandler{facade: facade}
}

// List handles GET /api/accounts with an optional status filter.
func (h *AccountHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	status := model.AccountStatus(strings.ToUpper(c.Query("status")))
	accounts, err := h.facade.Accounts(c.Request.Context(), user, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// Get handles GET /api/accounts/:id.
func (h *AccountHandler) Get(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	account, err := h.facade.Account(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// Balance handles GET /api/accounts/:id/balance.
func (h *AccountHandler) Balance(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	balance, err := h.facade.AccountBalance(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

// Open handles POST /api/accounts.
func (h *AccountHandler) Open(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.OpenAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	account, err := h.facade.OpenAccount(c.Request.Context(), user, req.AccountType, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

// Close handles DELETE /api/accounts/:id.
func (h *AccountHandler) Close(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.CloseAccount(c.Request.Context(), user, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Recipients handles GET /api/recipients/:customerId.
func (h *AccountHandler) Recipients(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	customerID, ok := pathID(c, "customerId")
	if !ok {
		return
	}
	accounts, err := h.facade.Recipients(c.Request.Context(), user, customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}
