package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/polkiloo/bankportal/internal/adapter/gateway"
	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/pkg/money"
)

const unknownKey = "UNKNOWN"

// AdminUseCase serves the administrator pages: approvals, user management
// and insights.
type AdminUseCase struct {
	approvals gateway.ApprovalAPI
	users     gateway.AuthAPI
}

// NewAdminUseCase constructs AdminUseCase.
func NewAdminUseCase(approvals gateway.ApprovalAPI, users gateway.AuthAPI) *AdminUseCase {
	return &AdminUseCase{approvals: approvals, users: users}
}

func (u *AdminUseCase) PendingApprovals(ctx context.Context) ([]model.Approval, error) {
	list, err := u.approvals.PendingApprovals(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.Approval{}
	}
	return list, nil
}

// Execute applies decisions grouped by service name in one admin call.
func (u *AdminUseCase) Execute(ctx context.Context, actions map[string]model.BulkApproval) (map[string]string, error) {
	if len(actions) == 0 {
		return nil, invalid("no approval actions given")
	}
	typed := make(map[model.ApprovalService]model.BulkApproval, len(actions))
	for name, action := range actions {
		service, ok := model.ParseApprovalService(name)
		if !ok {
			return nil, invalid("unknown approval service " + name)
		}
		if err := validateBulk(action); err != nil {
			return nil, err
		}
		typed[service] = action
	}
	return u.approvals.ExecuteApprovals(ctx, typed)
}

func (u *AdminUseCase) ServiceApprovals(ctx context.Context, name string) ([]model.Approval, error) {
	service, ok := model.ParseApprovalService(name)
	if !ok {
		return nil, invalid("unknown approval service " + name)
	}
	list, err := u.approvals.ServiceApprovals(ctx, service)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.Approval{}
	}
	return list, nil
}

func (u *AdminUseCase) Bulk(ctx context.Context, name string, action model.BulkApproval) error {
	service, ok := model.ParseApprovalService(name)
	if !ok {
		return invalid("unknown approval service " + name)
	}
	if err := validateBulk(action); err != nil {
		return err
	}
	return u.approvals.BulkApprove(ctx, service, action)
}

func validateBulk(action model.BulkApproval) error {
	if len(action.IDs) == 0 {
		return invalid("at least one id is required")
	}
	if !action.Status.IsValid() {
		return invalid("status must be APPROVED or REJECTED")
	}
	return nil
}

// UserRow is a user-management table row.
type UserRow struct {
	model.GatewayUser
	Status string `json:"status"`
}

func userRow(u model.GatewayUser) UserRow {
	status := "Disabled"
	if u.Enabled {
		status = "Active"
	}
	return UserRow{GatewayUser: u, Status: status}
}

func (u *AdminUseCase) Users(ctx context.Context) ([]UserRow, error) {
	users, err := u.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]UserRow, 0, len(users))
	for _, usr := range users {
		rows = append(rows, userRow(usr))
	}
	return rows, nil
}

func (u *AdminUseCase) User(ctx context.Context, userID int64) (*UserRow, error) {
	usr, err := u.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	row := userRow(*usr)
	return &row, nil
}

// UpdateUser changes a user. Administrators cannot demote or disable
// themselves.
func (u *AdminUseCase) UpdateUser(ctx context.Context, actor *model.User, userID int64, update model.GatewayUserUpdate) (*UserRow, error) {
	if update.Role != nil && !update.Role.IsValid() {
		return nil, invalid("role must be either CUSTOMER or ADMIN")
	}
	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		if !validEmail(email) {
			return nil, invalid("email must be valid")
		}
		update.Email = &email
	}
	if actor != nil && actor.ID == userID {
		if (update.Role != nil && *update.Role != model.RoleAdmin) || (update.Enabled != nil && !*update.Enabled) {
			return nil, domainErrors.ErrForbidden
		}
	}
	usr, err := u.users.UpdateUser(ctx, userID, update)
	if err != nil {
		return nil, err
	}
	row := userRow(*usr)
	return &row, nil
}

func (u *AdminUseCase) DeleteUser(ctx context.Context, actor *model.User, userID int64) error {
	if actor != nil && actor.ID == userID {
		return domainErrors.ErrForbidden
	}
	return u.users.DeleteUser(ctx, userID)
}

// Insights is the aggregate view over every entity of the bank.
type Insights struct {
	CustomerCount    int                        `json:"customerCount"`
	KYCByStatus      map[string]int             `json:"kycByStatus"`
	AccountCount     int                        `json:"accountCount"`
	AccountsByType   map[string]int             `json:"accountsByType"`
	AccountsByStatus map[string]int             `json:"accountsByStatus"`
	TotalBalances    decimal.Decimal            `json:"totalBalances"`
	PaymentCount     int                        `json:"paymentCount"`
	PaymentsByStatus map[string]int             `json:"paymentsByStatus"`
	PaymentTotals    map[string]decimal.Decimal `json:"paymentTotals"`
	CreditCount      int                        `json:"creditCount"`
	CreditsByType    map[string]int             `json:"creditsByType"`
	CreditsByStatus  map[string]int             `json:"creditsByStatus"`
	LoanAmount       decimal.Decimal            `json:"loanAmount"`
	CardLimits       decimal.Decimal            `json:"cardLimits"`
}

func (u *AdminUseCase) Insights(ctx context.Context) (*Insights, error) {
	var (
		customers []model.Customer
		accounts  []model.Account
		payments  []model.Payment
		credits   []model.CreditProduct
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { customers, err = u.approvals.AllCustomers(gctx); return })
	g.Go(func() (err error) { accounts, err = u.approvals.AllAccounts(gctx); return })
	g.Go(func() (err error) { payments, err = u.approvals.AllPayments(gctx); return })
	g.Go(func() (err error) { credits, err = u.approvals.AllCredits(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return BuildInsights(customers, accounts, payments, credits), nil
}

// BuildInsights aggregates the admin lists. Records missing a grouping key
// are counted under UNKNOWN and payments without a currency as USD.
func BuildInsights(customers []model.Customer, accounts []model.Account, payments []model.Payment, credits []model.CreditProduct) *Insights {
	in := &Insights{
		CustomerCount: len(customers),
		KYCByStatus:   groupCount(customers, func(c model.Customer) string { return string(c.KYCStatus) }),

		AccountCount:     len(accounts),
		AccountsByType:   groupCount(accounts, func(a model.Account) string { return string(a.AccountType) }),
		AccountsByStatus: groupCount(accounts, func(a model.Account) string { return string(a.Status) }),
		TotalBalances:    sumBy(accounts, func(a model.Account) decimal.Decimal { return a.Balance }),

		PaymentCount:     len(payments),
		PaymentsByStatus: groupCount(payments, func(p model.Payment) string { return string(p.Status) }),
		PaymentTotals:    map[string]decimal.Decimal{},

		CreditCount:     len(credits),
		CreditsByType:   groupCount(credits, func(c model.CreditProduct) string { return string(c.ProductType) }),
		CreditsByStatus: groupCount(credits, func(c model.CreditProduct) string { return string(c.Status) }),
		LoanAmount:      decimal.Zero,
		CardLimits:      decimal.Zero,
	}

	for _, p := range payments {
		cur := money.NormalizeCurrency(p.Currency)
		in.PaymentTotals[cur] = in.PaymentTotals[cur].Add(p.Amount)
	}
	for _, c := range credits {
		kind := strings.ToUpper(string(c.ProductType))
		if strings.Contains(kind, "LOAN") {
			in.LoanAmount = in.LoanAmount.Add(c.Amount)
		}
		if strings.Contains(kind, "CARD") {
			in.CardLimits = in.CardLimits.Add(c.CreditLimit)
		}
	}
	return in
}

func groupCount[T any](items []T, key func(T) string) map[string]int {
	out := make(map[string]int)
	for _, it := range items {
		k := key(it)
		if k == "" {
			k = unknownKey
		}
		out[k]++
	}
	return out
}

func sumBy[T any](items []T, value func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(value(it))
	}
	return total
}
