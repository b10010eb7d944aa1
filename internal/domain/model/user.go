package model

import "time"

// User is the signed-in portal user together with the derived customer profile.
type User struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	CustomerID *int64    `json:"customerId,omitempty"`
	KYCStatus  KYCStatus `json:"kycStatus,omitempty"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u User) HasCustomerProfile() bool { return u.CustomerID != nil && *u.CustomerID > 0 }

// LookupID is the id used for per-customer gateway lookups: the customer id
// when known, otherwise the user id.
func (u User) LookupID() int64 {
	if u.HasCustomerProfile() {
		return *u.CustomerID
	}
	return u.ID
}

// UserPatch carries partial updates merged into a session user.
type UserPatch struct {
	Username   *string
	Email      *string
	CustomerID *int64
	KYCStatus  *KYCStatus
}

// Apply merges non-nil fields of p into u.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil && *p.Username != "" {
		u.Username = *p.Username
	}
	if p.Email != nil && *p.Email != "" {
		u.Email = *p.Email
	}
	if p.CustomerID != nil {
		id := *p.CustomerID
		u.CustomerID = &id
	}
	if p.KYCStatus != nil {
		u.KYCStatus = *p.KYCStatus
	}
}

// Session is a server-side portal session. Token fields hold sealed values
// while persisted.
type Session struct {
	ID           string
	User         User
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s *Session) Expired(now time.Time) bool { return !s.ExpiresAt.After(now) }

// NeedsProfileSync reports whether the background sync should refresh the
// customer profile of this session.
func (s *Session) NeedsProfileSync() bool {
	return s.User.Role == RoleCustomer && s.User.KYCStatus != KYCStatusApproved
}

// GatewayUser is a user record as listed by the auth service.
type GatewayUser struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Enabled    bool   `json:"enabled"`
	MFAEnabled bool   `json:"mfaEnabled,omitempty"`
}

// AuthResult is the outcome of a sign-in or sign-up call.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	User         User
	MFAQRCode    string
}

// TokenValidation reports whether the gateway still accepts a token.
type TokenValidation struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	UserID   int64  `json:"userId"`
}

// Registration holds sign-up input.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Credentials holds sign-in input.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	MFACode  string `json:"mfaCode,omitempty"`
}

// GatewayUserUpdate changes user attributes held by the auth service.
type GatewayUserUpdate struct {
	Email   *string `json:"email,omitempty"`
	Role    *Role   `json:"role,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}
