package dto

import "github.com/polkiloo/bankportal/internal/domain/model"

// ProfileRequest carries customer profile fields for onboarding and the
// profile page.
type ProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type KYCRequest struct {
	DocumentType   model.KYCDocumentType `json:"documentType"`
	DocumentNumber string                `json:"documentNumber"`
}

// OnboardingResponse returns the customer record and the next portal step.
type OnboardingResponse struct {
	Customer *model.Customer `json:"customer"`
	User     model.User      `json:"user"`
	Landing  string          `json:"landing"`
}
