package auth

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-at-least-32-chars-long-for-security"

func TestTokenManager_GenerateAndValidate_Success(t *testing.T) {
	manager := NewTokenManager(testSecret, "catalog-test", 15*time.Minute)

	token, err := manager.GenerateToken("curator-alice")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	actor, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if actor != "curator-alice" {
		t.Errorf("expected actor 'curator-alice', got %q", actor)
	}
}

func TestTokenManager_Generate_EmptyActor(t *testing.T) {
	manager := NewTokenManager(testSecret, "catalog-test", 15*time.Minute)

	if _, err := manager.GenerateToken(""); err == nil {
		t.Fatal("expected error for empty actor")
	}
}

func TestTokenManager_Validate_EmptyToken(t *testing.T) {
	manager := NewTokenManager(testSecret, "catalog-test", 15*time.Minute)

	if _, err := manager.ValidateToken(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestTokenManager_Validate_WrongSecret(t *testing.T) {
	manager := NewTokenManager(testSecret, "catalog-test", 15*time.Minute)
	other := NewTokenManager("another-secret-also-32-chars-long-at-least!!", "catalog-test", 15*time.Minute)

	token, err := manager.GenerateToken("curator-alice")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestTokenManager_Validate_WrongIssuer(t *testing.T) {
	manager := NewTokenManager(testSecret, "catalog-test", 15*time.Minute)
	other := NewTokenManager(testSecret, "someone-else", 15*time.Minute)

	token, err := manager.GenerateToken("curator-alice")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	_, err = other.ValidateToken(token)
	if err == nil {
		t.Fatal("expected error for wrong issuer")
	}
	if !strings.Contains(err.Error(), "issuer") {
		t.Errorf("expected issuer error, got: %v", err)
	}
}

func TestTokenManager_Validate_Expired(t *testing.T) {
	manager := NewTokenManager(testSecret, "catalog-test", -1*time.Minute)

	token, err := manager.GenerateToken("curator-alice")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := manager.ValidateToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestTokenManager_Validate_Garbage(t *testing.T) {
	manager := NewTokenManager(testSecret, "catalog-test", 15*time.Minute)

	if _, err := manager.ValidateToken("not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
