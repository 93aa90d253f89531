// file: utils/jwt_test.go
package utils

import (
	"net/http"
	"testing"
	"time"

	"MYR/models"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("0123456789abcdef", time.Hour)
	user := models.User{ID: 7, Username: "alice", Role: models.RoleAdmin}

	token, err := issuer.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := issuer.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "alice" || claims.Role != models.RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}

	other := NewTokenIssuer("another-secret-value", time.Hour)
	if _, err := other.ParseToken(token); err == nil {
		t.Error("token verified with the wrong secret")
	}
}

func TestTokenRejected(t *testing.T) {
	issuer := NewTokenIssuer("0123456789abcdef", time.Hour)

	t.Run("expired", func(t *testing.T) {
		old := NewTokenIssuer("0123456789abcdef", time.Hour)
		old.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := old.GenerateToken(models.User{ID: 1})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := issuer.ParseToken(token); err == nil {
			t.Error("expired token accepted")
		}
	})

	t.Run("other algorithm", func(t *testing.T) {
		claims := Claims{
			UserID: 1,
			Role:   models.RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("0123456789abcdef"))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := issuer.ParseToken(token); err == nil {
			t.Error("HS384 token accepted")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := issuer.ParseToken("not.a.token"); err == nil {
			t.Error("garbage accepted")
		}
	})
}

func TestStatusFor(t *testing.T) {
	cases := map[int]int{
		CodeOK:           http.StatusOK,
		CodeInvalidParam: http.StatusBadRequest,
		CodeInvalidID:    http.StatusBadRequest,
		CodeUserExists:   http.StatusConflict,
		CodeBadLogin:     http.StatusUnauthorized,
		CodeConflict:     http.StatusConflict,
		CodeLeaderLeave:  http.StatusConflict,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeForbidden:    http.StatusForbidden,
		CodeNotFound:     http.StatusNotFound,
		CodeRateLimited:  http.StatusTooManyRequests,
		CodeInternal:     http.StatusInternalServerError,
		CodeTokenFailed:  http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := StatusFor(code); got != want {
			t.Errorf("StatusFor(%d) = %d, want %d", code, got, want)
		}
	}
}

func TestGenerateInvitationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := GenerateInvitationCode(12)
		if len(code) != 12 {
			t.Fatalf("len(%q) = %d", code, len(code))
		}
		for _, r := range code {
			if !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
				t.Fatalf("unexpected rune %q in %q", r, code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 50 {
		t.Errorf("only %d distinct codes out of 50", len(seen))
	}
}
