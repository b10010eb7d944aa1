package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/bankportal/internal/domain/errors"
	"github.com/polkiloo/bankportal/internal/domain/model"
	testhelpers "github.com/polkiloo/bankportal/internal/test"
)

var adminActor = &model.User{ID: 1, Username: "root", Role: model.RoleAdmin}

func TestAdminExecuteValidatesActions(t *testing.T) {
	var got map[model.ApprovalService]model.BulkApproval
	gw := &testhelpers.GatewayStub{ExecuteFn: func(ctx context.Context, actions map[model.ApprovalService]model.BulkApproval) (map[string]string, error) {
		got = actions
		return map[string]string{"credit-service": "ok"}, nil
	}}
	uc := NewAdminUseCase(gw, gw)
	ctx := context.Background()

	res, err := uc.Execute(ctx, map[string]model.BulkApproval{
		"credits": {IDs: []int64{1, 2}, Status: model.DecisionApproved},
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", res["credit-service"])
	assert.Equal(t, []int64{1, 2}, got[model.ApprovalCredits].IDs)

	cases := map[string]map[string]model.BulkApproval{
		"empty":        {},
		"unknown":      {"loans": {IDs: []int64{1}, Status: model.DecisionApproved}},
		"no ids":       {"account-service": {Status: model.DecisionRejected}},
		"bad decision": {"account-service": {IDs: []int64{1}, Status: "MAYBE"}},
	}
	for name, actions := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Execute(ctx, actions)
			assert.ErrorIs(t, err, domainErrors.ErrValidation)
		})
	}
}

func TestAdminServiceApprovals(t *testing.T) {
	var bulkService model.ApprovalService
	gw := &testhelpers.GatewayStub{
		BulkFn: func(ctx context.Context, s model.ApprovalService, a model.BulkApproval) error {
			bulkService = s
			return nil
		},
	}
	uc := NewAdminUseCase(gw, gw)

	list, err := uc.ServiceApprovals(context.Background(), "payment-service")
	require.NoError(t, err)
	assert.NotNil(t, list)

	_, err = uc.ServiceApprovals(context.Background(), "billing")
	assert.ErrorIs(t, err, domainErrors.ErrValidation)

	require.NoError(t, uc.Bulk(context.Background(), "customers", model.BulkApproval{IDs: []int64{4}, Status: model.DecisionRejected}))
	assert.Equal(t, model.ApprovalCustomers, bulkService)
}

func TestAdminUsersStatusLabel(t *testing.T) {
	gw := &testhelpers.GatewayStub{ListUsersFn: func(context.Context) ([]model.GatewayUser, error) {
		return []model.GatewayUser{{ID: 1, Enabled: true}, {ID: 2}}, nil
	}}
	rows, err := NewAdminUseCase(gw, gw).Users(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Active", rows[0].Status)
	assert.Equal(t, "Disabled", rows[1].Status)
}

func TestAdminCannotLockThemselvesOut(t *testing.T) {
	gw := &testhelpers.GatewayStub{}
	uc := NewAdminUseCase(gw, gw)
	ctx := context.Background()
	customerRole := model.RoleCustomer
	disabled := false

	_, err := uc.UpdateUser(ctx, adminActor, adminActor.ID, model.GatewayUserUpdate{Role: &customerRole})
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)
	_, err = uc.UpdateUser(ctx, adminActor, adminActor.ID, model.GatewayUserUpdate{Enabled: &disabled})
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)
	assert.ErrorIs(t, uc.DeleteUser(ctx, adminActor, adminActor.ID), domainErrors.ErrForbidden)

	row, err := uc.UpdateUser(ctx, adminActor, 7, model.GatewayUserUpdate{Role: &customerRole, Enabled: &disabled})
	require.NoError(t, err)
	assert.Equal(t, int64(7), row.ID)
	require.NoError(t, uc.DeleteUser(ctx, adminActor, 7))
}

func TestAdminUpdateUserValidates(t *testing.T) {
	gw := &testhelpers.GatewayStub{}
	uc := NewAdminUseCase(gw, gw)
	badRole := model.Role("ROOT")
	badEmail := "not-an-email"

	_, err := uc.UpdateUser(context.Background(), adminActor, 7, model.GatewayUserUpdate{Role: &badRole})
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
	_, err = uc.UpdateUser(context.Background(), adminActor, 7, model.GatewayUserUpdate{Email: &badEmail})
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
}

func TestBuildInsights(t *testing.T) {
	in := BuildInsights(
		[]model.Customer{{KYCStatus: model.KYCStatusApproved}, {KYCStatus: model.KYCStatusApproved}, {}},
		[]model.Account{
			{AccountType: model.AccountTypeSavings, Status: model.AccountStatusActive, Balance: dec("100.25")},
			{AccountType: model.AccountTypeChecking, Status: model.AccountStatusActive, Balance: dec("50")},
		},
		[]model.Payment{
			{Amount: dec("10"), Currency: "usd", Status: model.PaymentStatusCompleted},
			{Amount: dec("5"), Status: model.PaymentStatusFailed},
			{Amount: dec("7"), Currency: "EUR", Status: model.PaymentStatusCompleted},
		},
		[]model.CreditProduct{
			{ProductType: model.CreditProductLoan, Amount: dec("1000"), Status: model.CreditStatusActive},
			{ProductType: model.CreditProductCreditCard, CreditLimit: dec("500"), Status: model.CreditStatusPending},
		},
	)

	assert.Equal(t, 3, in.CustomerCount)
	assert.Equal(t, map[string]int{"APPROVED": 2, "UNKNOWN": 1}, in.KYCByStatus)
	assert.Equal(t, map[string]int{"ACTIVE": 2}, in.AccountsByStatus)
	assert.True(t, in.TotalBalances.Equal(dec("150.25")))
	assert.Equal(t, map[string]int{"COMPLETED": 2, "FAILED": 1}, in.PaymentsByStatus)
	assert.True(t, in.PaymentTotals["USD"].Equal(dec("15")))
	assert.True(t, in.PaymentTotals["EUR"].Equal(dec("7")))
	assert.True(t, in.LoanAmount.Equal(dec("1000")))
	assert.True(t, in.CardLimits.Equal(dec("500")))
	assert.Equal(t, 1, in.CreditsByType["CREDIT_CARD"])
}

func TestAdminInsightsFailsOnAnyService(t *testing.T) {
	gw := &testhelpers.GatewayStub{AllPaysFn: func(context.Context) ([]model.Payment, error) {
		return nil, errors.New("payments down")
	}}
	_, err := NewAdminUseCase(gw, gw).Insights(context.Background())
	assert.EqualError(t, err, "payments down")
}
