package gateway

import (
	"context"
	"errors"
	"net/http"

	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
)

// authResponse mirrors sign-in, sign-up and refresh payloads. Older gateway
// builds send token/userId instead of accessToken/id.
type authResponse struct {
	AccessToken  string          `json:"accessToken"`
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken"`
	ExpiresIn    int64           `json:"expiresIn"`
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	Role         model.Role      `json:"role"`
	MFAQRCode    string          `json:"mfaQrCode"`
	CustomerID   *int64          `json:"customerId"`
	KYCStatus    model.KYCStatus `json:"kycStatus"`
}

func (r authResponse) result() *model.AuthResult {
	token := r.AccessToken
	if token == "" {
		token = r.Token
	}
	userID := r.ID
	if userID == 0 {
		userID = r.UserID
	}
	return &model.AuthResult{
		AccessToken:  token,
		RefreshToken: r.RefreshToken,
		ExpiresIn:    r.ExpiresIn,
		MFAQRCode:    r.MFAQRCode,
		User: model.User{
			ID:         userID,
			Username:   r.Username,
			Email:      r.Email,
			Role:       r.Role,
			CustomerID: r.CustomerID,
			KYCStatus:  r.KYCStatus,
		},
	}
}

func (c *HTTPClient) SignIn(ctx context.Context, creds model.Credentials) (*model.AuthResult, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "auth", "signin"), creds, &resp); err != nil {
		if errors.Is(err, domainErrors.ErrUnauthorized) || errors.Is(err, domainErrors.ErrValidation) {
			return nil, errors.Join(domainErrors.ErrInvalidCredentials, err)
		}
		return nil, err
	}
	return resp.result(), nil
}

func (c *HTTPClient) SignUp(ctx context.Context, reg model.Registration) (*model.AuthResult, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "auth", "signup"), reg, &resp); err != nil {
		return nil, err
	}
	return resp.result(), nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*model.AuthResult, error) {
	var resp authResponse
	body := map[string]string{"refreshToken": refreshToken}
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "auth", "refresh"), body, &resp); err != nil {
		return nil, err
	}
	return resp.result(), nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, c.endpoint(nil, "auth", "logout"), nil, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*model.User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "auth", "me"), nil, &resp); err != nil {
		return nil, err
	}
	user := resp.result().User
	return &user, nil
}

// Validate asks the gateway whether the context token is still accepted.
// A rejected token is reported as Valid=false rather than an error.
func (c *HTTPClient) Validate(ctx context.Context) (*model.TokenValidation, error) {
	var resp model.TokenValidation
	err := c.do(ctx, http.MethodPost, c.endpoint(nil, "auth", "validate"), nil, &resp)
	if errors.Is(err, domainErrors.ErrUnauthorized) {
		return &model.TokenValidation{Valid: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) PublicKey(ctx context.Context) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "auth", "public-key"), nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]model.GatewayUser, error) {
	var users []model.GatewayUser
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "auth", "users"), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, userID int64) (*model.GatewayUser, error) {
	var user model.GatewayUser
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "auth", "users", pathID(userID)), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, userID int64, update model.GatewayUserUpdate) (*model.GatewayUser, error) {
	var user model.GatewayUser
	if err := c.do(ctx, http.MethodPut, c.endpoint(nil, "auth", "users", pathID(userID)), update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodDelete, c.endpoint(nil, "auth", "users", pathID(userID)), nil, nil)
}
