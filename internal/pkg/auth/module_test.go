package auth

import (
	"testing"
	"time"

	"github.com/polkiloo/bankportal/internal/config"
)

func TestNewTokenStrategy_JWTByDefault(t *testing.T) {
	strategy := newTokenStrategy(strategyParams{Config: &config.Config{SessionSecret: "top-secret", SessionStrategy: config.StrategyJWT}})
	jwtStrategy, ok := strategy.(*JWTStrategy)
	if !ok {
		t.Fatalf("expected *JWTStrategy, got %T", strategy)
	}
	if jwtStrategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", jwtStrategy.ttl)
	}
}

func TestNewTokenStrategy_HMAC(t *testing.T) {
	strategy := newTokenStrategy(strategyParams{Config: &config.Config{
		SessionSecret:   "top-secret",
		SessionStrategy: config.StrategyHMAC,
		SessionTTL:      time.Hour,
	}})
	hmacStrategy, ok := strategy.(*HMACStrategy)
	if !ok {
		t.Fatalf("expected *HMACStrategy, got %T", strategy)
	}
	if string(hmacStrategy.secret) != "top-secret" {
		t.Fatalf("unexpected secret: %q", string(hmacStrategy.secret))
	}
	if hmacStrategy.ttl != time.Hour {
		t.Fatalf("unexpected ttl: %s", hmacStrategy.ttl)
	}
}

func TestNewTokenSealer(t *testing.T) {
	sealer, err := newTokenSealer(strategyParams{Config: &config.Config{SessionSecret: "s"}})
	if err != nil {
		t.Fatalf("new sealer: %v", err)
	}
	if _, ok := sealer.(*AEADSealer); !ok {
		t.Fatalf("expected *AEADSealer, got %T", sealer)
	}
}
