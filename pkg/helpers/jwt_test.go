package helpers

import (
	"testing"
	"time"
)

func TestAccessTokenCarriesSubjectAndEmail(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	tok, exp, err := m.GenerateAccessToken(42, "user1@naver.com", "sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if tok == "" || !exp.After(time.Now()) {
		t.Fatalf("unexpected token %q exp %v", tok, exp)
	}
	claims, err := m.ParseAccessToken(tok)
	if err != nil {
		t.Fatal(err)
	}
	uid, err := claims.UserID()
	if err != nil || uid != 42 {
		t.Fatalf("uid = %d, err = %v", uid, err)
	}
	if claims.Email != "user1@naver.com" || claims.SessionID != "sid-1" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestParseAccessTokenRejectsForeignSecretAndExpiry(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Minute)
	tok, _, _ := issuer.GenerateAccessToken(1, "a@b.c", "")
	if _, err := NewJWTManager("secret-b", time.Minute).ParseAccessToken(tok); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}

	expired := NewJWTManager("secret", -time.Minute)
	tok, _, _ = expired.GenerateAccessToken(1, "a@b.c", "")
	if _, err := expired.ParseAccessToken(tok); err == nil {
		t.Fatal("expired token must be rejected")
	}
}
