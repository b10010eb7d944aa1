package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bankportal/internal/server/http/dto"
	"github.com/polkiloo/bankportal/internal/usecase"
)

// OnboardingHandler serves the customer profile and KYC steps.
type OnboardingHandler struct {
	facade OnboardingFacade
}

func NewOnboardingHandler(facade OnboardingFacade) *OnboardingHandler {
	return &OnboardingHandler{facade: facade}
}

// CreateProfile handles POST /api/onboarding/profile.
func (h *OnboardingHandler) CreateProfile(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.ProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.facade.CreateProfile(c.Request.Context(), session, profileInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OnboardingResponse{Customer: customer, User: session.User, Landing: usecase.Landing(&session.User)})
}

// SubmitKYC handles POST /api/onboarding/kyc.
func (h *OnboardingHandler) SubmitKYC(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.KYCRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.facade.SubmitKYC(c.Request.Context(), session, req.DocumentType, req.DocumentNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OnboardingResponse{Customer: customer, User: session.User, Landing: usecase.Landing(&session.User)})
}

// Status handles GET /api/kyc/status, polled by the pending page.
func (h *OnboardingHandler) Status(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	progress, err := h.facade.KYCStatus(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func profileInput(req dto.ProfileRequest) usecase.ProfileInput {
	return usecase.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	}
}
