package util

import (
	"testing"
	"time"

	"skilltree_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Email: "jwt@test.io"}
	user.ID = "user-1"

	token, err := GenerateJWT(user, "secret-secret-secret-secret-1234", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseJWT(token, "secret-secret-secret-secret-1234")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "jwt@test.io" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	user := &model.User{Email: "jwt@test.io"}
	user.ID = "user-1"

	token, err := GenerateJWT(user, "secret-secret-secret-secret-1234", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseJWT(token, "another-secret-entirely-000000000"); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}

func TestJWTExpired(t *testing.T) {
	user := &model.User{Email: "jwt@test.io"}
	user.ID = "user-1"

	token, err := GenerateJWT(user, "secret-secret-secret-secret-1234", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseJWT(token, "secret-secret-secret-secret-1234"); err == nil {
		t.Fatal("expected parse failure for expired token")
	}
}
