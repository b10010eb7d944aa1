package usecase

import (
	"net/http"

	"github.com/polkiloo/bankportal/internal/domain/model"
)

const (
	PathLogin             = "/login"
	PathOnboardingProfile = "/onboarding/profile"
	PathOnboardingKYC     = "/onboarding/kyc"
	PathKYCResubmit       = "/onboarding/kyc?resubmit=1"
	PathKYCPending        = "/kyc-pending"
	PathForbidden         = "/forbidden"
	PathDashboard         = "/dashboard"
	PathAdmin             = "/admin"
)

// Decision is the outcome of a guard check. A zero Redirect means allow.
type Decision struct {
	Redirect string
	Status   int
}

func (d Decision) Allowed() bool { return d.Redirect == "" }

func allow() Decision { return Decision{} }

func redirect(path string) Decision {
	status := http.StatusForbidden
	if path == PathLogin {
		status = http.StatusUnauthorized
	}
	return Decision{Redirect: path, Status: status}
}

// Decide applies the role and KYC gate. Customer onboarding state is checked
// before the role list so that an unapproved customer is always sent to the
// step they still have to complete.
func Decide(user *model.User, allowed ...model.Role) Decision {
	if user == nil {
		return redirect(PathLogin)
	}

	if user.Role == model.RoleCustomer {
		if user.KYCStatus == model.KYCStatusApproved {
			return allow()
		}
		if path := onboardingStep(user); path != "" {
			return redirect(path)
		}
	}

	if len(allowed) > 0 && !hasRole(allowed, user.Role) {
		return redirect(PathForbidden)
	}
	return allow()
}

// Landing is where a user goes right after signing in.
func Landing(user *model.User) string {
	if user == nil {
		return PathLogin
	}
	if user.IsAdmin() {
		return PathAdmin
	}
	if user.KYCStatus == model.KYCStatusApproved {
		return PathDashboard
	}
	if path := onboardingStep(user); path != "" {
		return path
	}
	return PathKYCPending
}

func onboardingStep(user *model.User) string {
	switch {
	case !user.HasCustomerProfile():
		return PathOnboardingProfile
	case user.KYCStatus == "":
		return PathOnboardingKYC
	case user.KYCStatus == model.KYCStatusRejected:
		return PathKYCResubmit
	case user.KYCStatus == model.KYCStatusPending:
		return PathKYCPending
	}
	return ""
}

func hasRole(roles []model.Role, role model.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
