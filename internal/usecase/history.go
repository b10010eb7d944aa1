package usecase

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/polkiloo/bankportal/internal/domain/model"
)

const historyFanOut = 4

// Transaction categories shown on the transactions page.
const (
	CategoryExternal     = "External Bank Transfer"
	CategoryDeposit      = "Deposit"
	CategorySelfTransfer = "Self Transfer"
	CategoryBankTransfer = "Bank Transfer"
	CategoryTransfer     = "Transfer"
)

var externalPattern = regexp.MustCompile(`External bank transfer to (.+?) / IFSC (.+?) / (.+)`)

// ExternalDetails is the destination parsed back out of an external
// transfer description.
type ExternalDetails struct {
	BankName      string `json:"bankName"`
	IFSC          string `json:"ifsc"`
	AccountNumber string `json:"accountNumber"`
}

// Transaction is a payment annotated for display.
type Transaction struct {
	model.Payment
	Category          string           `json:"category"`
	FromAccountNumber string           `json:"fromAccountNumber,omitempty"`
	ToAccountNumber   string           `json:"toAccountNumber,omitempty"`
	External          *ExternalDetails `json:"external,omitempty"`
}

// TransactionFilter narrows the transactions page. Empty or "ALL" fields
// match everything.
type TransactionFilter struct {
	Category string
	Status   string
	Range    string
}

// TransactionPage is the filtered list plus the values offered by the
// filter dropdowns, computed over the unfiltered history.
type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Categories   []string      `json:"categories"`
	Statuses     []string      `json:"statuses"`
}

// History merges the payments of every account of the user, newest first.
// A failing account is skipped.
func (u *PaymentUseCase) History(ctx context.Context, user *model.User) ([]model.Payment, error) {
	payments, _, err := u.history(ctx, user)
	return payments, err
}

func (u *PaymentUseCase) history(ctx context.Context, user *model.User) ([]model.Payment, []model.Account, error) {
	accounts, err := u.accounts.AccountsByUser(ctx, user.LookupID(), "")
	if err != nil {
		return nil, nil, err
	}

	var (
		mu   sync.Mutex
		byID = make(map[int64]model.Payment)
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(historyFanOut)
	for _, account := range accounts {
		accountID := account.ID
		g.Go(func() error {
			list, err := u.payments.PaymentsByAccount(gctx, accountID)
			if err != nil {
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			for _, p := range list {
				byID[p.ID] = p
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]model.Payment, 0, len(byID))
	for _, p := range byID {
		out = append(out, p)
	}
	sortNewestFirst(out)
	return out, accounts, nil
}

func sortNewestFirst(payments []model.Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		ti, tj := payments[i].LastActivity().Time, payments[j].LastActivity().Time
		if ti.Equal(tj) {
			return payments[i].ID > payments[j].ID
		}
		return ti.After(tj)
	})
}

// Transactions classifies and filters the user's history.
func (u *PaymentUseCase) Transactions(ctx context.Context, user *model.User, filter TransactionFilter, now time.Time) (*TransactionPage, error) {
	cutoff, err := rangeCutoff(filter.Range, now)
	if err != nil {
		return nil, err
	}
	payments, accounts, err := u.history(ctx, user)
	if err != nil {
		return nil, err
	}

	numbers := make(map[int64]string, len(accounts))
	for _, a := range accounts {
		numbers[a.ID] = a.AccountNumber
	}

	page := &TransactionPage{Transactions: []Transaction{}}
	categories := map[string]struct{}{}
	statuses := map[string]struct{}{}
	for _, p := range payments {
		tx := Classify(p)
		tx.FromAccountNumber = numbers[p.FromAccountID]
		tx.ToAccountNumber = numbers[p.ToAccountID]
		categories[tx.Category] = struct{}{}
		statuses[string(p.Status)] = struct{}{}

		if !matches(filter.Category, tx.Category) || !matches(filter.Status, string(p.Status)) {
			continue
		}
		if !cutoff.IsZero() {
			at := p.LastActivity()
			if at.IsZero() || at.Before(cutoff) {
				continue
			}
		}
		page.Transactions = append(page.Transactions, tx)
	}
	page.Categories = sortedKeys(categories)
	page.Statuses = sortedKeys(statuses)
	return page, nil
}

// Classify derives the display category from the payment description.
func Classify(p model.Payment) Transaction {
	tx := Transaction{Payment: p}
	desc := p.Description
	switch {
	case p.ToAccountID == 0:
		tx.Category = CategoryExternal
		tx.External = ParseExternal(desc)
	case strings.Contains(desc, "Deposit") || strings.Contains(desc, "deposit"):
		tx.Category = CategoryDeposit
	case strings.Contains(desc, "Self transfer") || strings.Contains(desc, "Self Transfer"):
		tx.Category = CategorySelfTransfer
	case strings.Contains(desc, "Bank transfer") || strings.Contains(desc, "Bank Transfer"):
		tx.Category = CategoryBankTransfer
	default:
		tx.Category = CategoryTransfer
	}
	return tx
}

// ParseExternal extracts the destination from an external transfer
// description, or nil when desc is not one.
func ParseExternal(desc string) *ExternalDetails {
	m := externalPattern.FindStringSubmatch(desc)
	if m == nil {
		return nil
	}
	return &ExternalDetails{BankName: m[1], IFSC: m[2], AccountNumber: m[3]}
}

func rangeCutoff(r string, now time.Time) (time.Time, error) {
	switch strings.ToUpper(strings.TrimSpace(r)) {
	case "", "ALL":
		return time.Time{}, nil
	case "1M":
		return now.AddDate(0, -1, 0), nil
	case "3M":
		return now.AddDate(0, -3, 0), nil
	case "6M":
		return now.AddDate(0, -6, 0), nil
	case "1Y":
		return now.AddDate(-1, 0, 0), nil
	case "2Y":
		return now.AddDate(-2, 0, 0), nil
	}
	return time.Time{}, invalid("unknown time range " + r)
}

func matches(filter, value string) bool {
	return filter == "" || filter == "ALL" || filter == value
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
