package auth

import (
	"testing"

	"github.com/slimtrack/slimtrack/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		AuthMode:      "dev",
		AuthRequired:  true,
		JWTSecret:     "test-secret",
		JWTIssuer:     "slimtrack-test",
		JWTTTLMinutes: 60,
	}
}

func TestSignInDevAndVerify(t *testing.T) {
	svc := NewService(testConfig())

	resp, err := svc.SignInDev("google:42")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if resp.TokenType != "Bearer" {
		t.Fatalf("token type = %q", resp.TokenType)
	}
	if resp.ExpiresIn != 3600 {
		t.Fatalf("expires_in = %d, want 3600", resp.ExpiresIn)
	}

	sub, err := svc.VerifyJWT(resp.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "google:42" {
		t.Fatalf("sub = %q", sub)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewService(testConfig())

	if _, err := svc.VerifyJWT("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	svc := NewService(testConfig())
	resp, err := svc.SignInDev("apple:1")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	other := testConfig()
	other.JWTSecret = "different-secret"
	if _, err := NewService(other).VerifyJWT(resp.AccessToken); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
