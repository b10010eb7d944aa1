package usecase

import (
	"context"
	"strings"

	"github.com/polkiloo/bankportal/internal/adapter/gateway"
	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
)

// OnboardingUseCase walks a new customer through profile creation and KYC.
type OnboardingUseCase struct {
	customers gateway.CustomerAPI
	sessions  *SessionUseCase
}

// NewOnboardingUseCase constructs OnboardingUseCase.
func NewOnboardingUseCase(customers gateway.CustomerAPI, sessions *SessionUseCase) *OnboardingUseCase {
	return &OnboardingUseCase{customers: customers, sessions: sessions}
}

// ProfileInput is the onboarding profile form.
type ProfileInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

func (in ProfileInput) customerInput(userID int64) model.CustomerInput {
	return model.CustomerInput{
		UserID:    userID,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
	}
}

// CreateProfile registers the customer record for the session user and
// stores the new customer id on the session.
func (u *OnboardingUseCase) CreateProfile(ctx context.Context, session *model.Session, in ProfileInput) (*model.Customer, error) {
	if session.User.HasCustomerProfile() {
		return nil, domainErrors.ErrAlreadyExists
	}
	if err := requireFields("firstName", in.FirstName, "lastName", in.LastName, "email", in.Email, "phone", in.Phone); err != nil {
		return nil, err
	}

	customer, err := u.customers.CreateCustomer(ctx, in.customerInput(session.User.ID))
	if err != nil {
		return nil, err
	}

	id := customer.ID
	status := customer.KYCStatus
	if err := u.sessions.UpdateUser(ctx, session, model.UserPatch{CustomerID: &id, KYCStatus: &status}); err != nil {
		return nil, err
	}
	return customer, nil
}

// SubmitKYC sends an identity document for verification. The session moves
// to PENDING until the customer service decides.
func (u *OnboardingUseCase) SubmitKYC(ctx context.Context, session *model.Session, docType model.KYCDocumentType, number string) (*model.Customer, error) {
	if !session.User.HasCustomerProfile() {
		return nil, domainErrors.ErrProfileRequired
	}
	normalized, err := NormalizeDocument(docType, number)
	if err != nil {
		return nil, err
	}

	customer, err := u.customers.SubmitKYC(ctx, *session.User.CustomerID, model.KYCSubmission{
		DocumentType:   docType,
		DocumentNumber: normalized,
	})
	if err != nil {
		return nil, err
	}

	pending := model.KYCStatusPending
	if err := u.sessions.UpdateUser(ctx, session, model.UserPatch{KYCStatus: &pending}); err != nil {
		return nil, err
	}
	return customer, nil
}

// KYCProgress is polled by the pending page.
type KYCProgress struct {
	Status  model.KYCStatus `json:"kycStatus"`
	Landing string          `json:"landing"`
}

// KYCStatus re-syncs the profile and reports where the user should go next.
func (u *OnboardingUseCase) KYCStatus(ctx context.Context, session *model.Session) (*KYCProgress, error) {
	if err := u.sessions.SyncSession(ctx, session); err != nil {
		return nil, err
	}
	return &KYCProgress{Status: session.User.KYCStatus, Landing: Landing(&session.User)}, nil
}
