package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bankportal/internal/server/http/dto"
	"github.com/polkiloo/bankportal/internal/usecase"
)

// CreditHandler serves loans, cards and EMI repayment.
type CreditHandler struct {
	facade CreditFacade
}

// NewCreditHandler constructs CreditHandler.
func NewCreditHandler(facade CreditFacade) *CreditHandler {
	return &CreditHandler{facade: facade}
}

// ApplyLoan handles POST /api/loans.
func (h *CreditHandler) ApplyLoan(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.LoanRequest
	if !bindJSON(c, &req) {
		return
	}
	credit, err := h.facade.ApplyLoan(c.Request.Context(), user, usecase.LoanRequest{
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		TermMonths:   req.TermMonths,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, credit)
}

// ApplyCard handles POST /api/cards.
func (h *CreditHandler) ApplyCard(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.CardRequest
	if !bindJSON(c, &req) {
		return
	}
	credit, err := h.facade.ApplyCard(c.Request.Context(), user, usecase.CardRequest{
		CreditLimit:  req.CreditLimit,
		InterestRate: req.InterestRate,
		CardType:     req.CardType,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, credit)
}

// List handles GET /api/credits.
func (h *CreditHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	credits, err := h.facade.Credits(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, credits)
}

// Get handles GET /api/credits/:id.
func (h *CreditHandler) Get(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	credit, err := h.facade.Credit(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, credit)
}

// Close handles DELETE /api/credits/:id.
func (h *CreditHandler) Close(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.CloseCredit(c.Request.Context(), user, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Repayment handles GET /api/credits/:id/repayment.
func (h *CreditHandler) Repayment(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.facade.Repayment(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Repay handles POST /api/credits/:id/repay.
func (h *CreditHandler) Repay(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RepayRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.facade.RepayEMI(c.Request.Context(), user, id, req.AccountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
