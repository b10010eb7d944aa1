package test

import (
	"strings"

	pkgAuth "github.com/polkiloo/bankportal/internal/pkg/auth"
)

// StrategyStub issues "cookie-<session>" tokens unless overridden.
type StrategyStub struct {
	IssueFn func(string) (string, error)
	ParseFn func(string) (string, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(sessionID string) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(sessionID)
	}
	return "cookie-" + sessionID, nil
}

// ParseToken reverses IssueToken.
func (s StrategyStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	id, ok := strings.CutPrefix(token, "cookie-")
	if !ok || id == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	return id, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// SealerStub wraps values in "sealed(...)" so tests can see what was stored.
type SealerStub struct {
	SealFn func(string) (string, error)
	OpenFn func(string) (string, error)
}

func (s SealerStub) Seal(plain string) (string, error) {
	if s.SealFn != nil {
		return s.SealFn(plain)
	}
	if plain == "" {
		return "", nil
	}
	return "sealed(" + plain + ")", nil
}

func (s SealerStub) Open(sealed string) (string, error) {
	if s.OpenFn != nil {
		return s.OpenFn(sealed)
	}
	if sealed == "" {
		return "", nil
	}
	inner, ok := strings.CutPrefix(sealed, "sealed(")
	if !ok || !strings.HasSuffix(inner, ")") {
		return "", pkgAuth.ErrSealedToken
	}
	return strings.TrimSuffix(inner, ")"), nil
}

var _ pkgAuth.Strategy = StrategyStub{}
var _ pkgAuth.TokenSealer = SealerStub{}
