package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bankportal/internal/server/http/dto"
	"github.com/polkiloo/bankportal/internal/usecase"
)

// PaymentHandler serves the transfer flows and payment history.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Deposit handles POST /api/transfers/deposit.
func (h *PaymentHandler) Deposit(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.DepositRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.facade.Deposit(c.Request.Context(), user, req.AccountID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// SelfTransfer handles POST /api/transfers/self.
func (h *PaymentHandler) SelfTransfer(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.TransferRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.facade.SelfTransfer(c.Request.Context(), user, req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// BankTransfer handles POST /api/transfers/bank.
func (h *PaymentHandler) BankTransfer(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.TransferRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.facade.BankTransfer(c.Request.Context(), user, req.FromAccountID, req.ToAccountID, req.Amount, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// ExternalTransfer handles POST /api/transfers/external.
func (h *PaymentHandler) ExternalTransfer(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req dto.ExternalTransferRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.facade.ExternalTransfer(c.Request.Context(), user, usecase.ExternalTransfer{
		FromAccountID: req.FromAccountID,
		Amount:        req.Amount,
		BankName:      req.BankName,
		IFSC:          req.IFSC,
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// History handles GET /api/payments.
func (h *PaymentHandler) History(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	payments, err := h.facade.PaymentHistory(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Transactions handles GET /api/transactions?type=&status=&range=.
func (h *PaymentHandler) Transactions(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	filter := usecase.TransactionFilter{
		Category: c.Query("type"),
		Status:   c.Query("status"),
		Range:    c.Query("range"),
	}
	page, err := h.facade.Transactions(c.Request.Context(), user, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
