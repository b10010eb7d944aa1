package usecase

import (
	"net/http"
	"testing"

	"github.com/polkiloo/bankportal/internal/domain/model"
)

func TestDecide(t *testing.T) {
	customerID := int64(10)
	tests := []struct {
		name     string
		user     *model.User
		allowed  []model.Role
		redirect string
		status   int
	}{
		{name: "anonymous", user: nil, redirect: PathLogin, status: http.StatusUnauthorized},
		{name: "approved customer", user: &model.User{Role: model.RoleCustomer, CustomerID: &customerID, KYCStatus: model.KYCStatusApproved}},
		{name: "approved customer on admin route", user: &model.User{Role: model.RoleCustomer, CustomerID: &customerID, KYCStatus: model.KYCStatusApproved}, allowed: []model.Role{model.RoleAdmin}},
		{name: "no profile", user: &model.User{Role: model.RoleCustomer}, redirect: PathOnboardingProfile, status: http.StatusForbidden},
		{name: "no kyc", user: &model.User{Role: model.RoleCustomer, CustomerID: &customerID}, redirect: PathOnboardingKYC, status: http.StatusForbidden},
		{name: "rejected", user: &model.User{Role: model.RoleCustomer, CustomerID: &customerID, KYCStatus: model.KYCStatusRejected}, redirect: PathKYCResubmit, status: http.StatusForbidden},
		{name: "pending", user: &model.User{Role: model.RoleCustomer, CustomerID: &customerID, KYCStatus: model.KYCStatusPending}, redirect: PathKYCPending, status: http.StatusForbidden},
		{name: "pending on admin route", user: &model.User{Role: model.RoleCustomer, CustomerID: &customerID, KYCStatus: model.KYCStatusPending}, allowed: []model.Role{model.RoleAdmin}, redirect: PathKYCPending, status: http.StatusForbidden},
		{name: "admin on admin route", user: &model.User{Role: model.RoleAdmin}, allowed: []model.Role{model.RoleAdmin}},
		{name: "admin on customer route", user: &model.User{Role: model.RoleAdmin}, allowed: []model.Role{model.RoleCustomer}, redirect: PathForbidden, status: http.StatusForbidden},
		{name: "admin without role list", user: &model.User{Role: model.RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.user, tt.allowed...)
			if d.Redirect != tt.redirect {
				t.Fatalf("expected redirect %q, got %q", tt.redirect, d.Redirect)
			}
			if d.Status != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, d.Status)
			}
			if d.Allowed() != (tt.redirect == "") {
				t.Fatalf("allowed mismatch for %+v", d)
			}
		})
	}
}

func TestLanding(t *testing.T) {
	customerID := int64(3)
	cases := map[string]struct {
		user *model.User
		want string
	}{
		"nil":        {nil, PathLogin},
		"admin":      {&model.User{Role: model.RoleAdmin}, PathAdmin},
		"approved":   {&model.User{Role: model.RoleCustomer, CustomerID: &customerID, KYCStatus: model.KYCStatusApproved}, PathDashboard},
		"no profile": {&model.User{Role: model.RoleCustomer}, PathOnboardingProfile},
		"no kyc":     {&model.User{Role: model.RoleCustomer, CustomerID: &customerID}, PathOnboardingKYC},
		"rejected":   {&model.User{Role: model.RoleCustomer, CustomerID: &customerID, KYCStatus: model.KYCStatusRejected}, PathKYCResubmit},
		"pending":    {&model.User{Role: model.RoleCustomer, CustomerID: &customerID, KYCStatus: model.KYCStatusPending}, PathKYCPending},
		"odd status": {&model.User{Role: model.RoleCustomer, CustomerID: &customerID, KYCStatus: "ON_HOLD"}, PathKYCPending},
	}
	for name, tc := range cases {
		if got := Landing(tc.user); got != tc.want {
			t.Errorf("%s: expected %q, got %q", name, tc.want, got)
		}
	}
}
