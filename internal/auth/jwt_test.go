package auth

import (
	"testing"
	"time"
)

func TestGenerateToken_RoundTrip(t *testing.T) {
	secret := "test-secret"
	username := "alice"
	ttl := time.Hour

	token, jti, err := GenerateToken(secret, username, ttl)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if token == "" {
		t.Error("Expected token to be generated")
	}

	if jti == "" {
		t.Error("Expected JTI to be generated")
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("Expected no error parsing token, got %v", err)
	}

	if claims.Sub != username {
		t.Errorf("Expected subject %s, got %s", username, claims.Sub)
	}

	if claims.ID != jti {
		t.Errorf("Expected JTI %s, got %s", jti, claims.ID)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _, err := GenerateToken("secret-a", "alice", time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := ParseToken("secret-b", token); err == nil {
		t.Error("Expected error for token signed with different secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, _, err := GenerateToken("test-secret", "alice", -time.Minute)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := ParseToken("test-secret", token); err == nil {
		t.Error("Expected error for expired token")
	}
}

func TestParseToken_Malformed(t *testing.T) {
	if _, err := ParseToken("test-secret", "invalid.token.here"); err == nil {
		t.Error("Expected error for malformed token")
	}
	if _, err := ParseToken("test-secret", ""); err == nil {
		t.Error("Expected error for empty token")
	}
}

func TestGenerateToken_UniqueJTIs(t *testing.T) {
	_, jti1, err1 := GenerateToken("test-secret", "alice", time.Hour)
	_, jti2, err2 := GenerateToken("test-secret", "alice", time.Hour)
	if err1 != nil || err2 != nil {
		t.Fatalf("Expected no errors, got %v, %v", err1, err2)
	}
	if jti1 == jti2 {
		t.Error("Expected distinct JTIs for distinct tokens")
	}
}
