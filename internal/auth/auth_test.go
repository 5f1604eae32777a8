package auth

import (
	"testing"

	"school-backend/internal/config"
	"school-backend/internal/models"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "school-backend-test"
	return cfg
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("password stored in plain text")
	}

	if !VerifyPassword(hash, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong-pass") {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	jm := NewJWTManager(testConfig())
	user := &models.User{
		ID:        7,
		Username:  "principal",
		Role:      models.RoleAdmin,
		TeacherID: "",
	}

	token, err := jm.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := jm.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "principal" || claims.Role != models.RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	jm := NewJWTManager(testConfig())
	token, err := jm.GenerateToken(&models.User{ID: 1, Username: "u", Role: models.RoleTeacher})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	otherCfg := testConfig()
	otherCfg.JWT.Secret = "different-secret"
	if _, err := NewJWTManager(otherCfg).ValidateToken(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestTempTokenIsNotASessionToken(t *testing.T) {
	jm := NewJWTManager(testConfig())
	user := &models.User{ID: 2, Username: "teacher1", Role: models.RoleTeacher}

	temp, err := jm.GenerateTempToken(user)
	if err != nil {
		t.Fatalf("GenerateTempToken: %v", err)
	}

	claims, err := jm.ValidateTempToken(temp)
	if err != nil {
		t.Fatalf("ValidateTempToken: %v", err)
	}
	if claims.UserID != 2 || claims.Type != "2fa_pending" {
		t.Errorf("temp claims = %+v", claims)
	}

	// A full session token must not pass temp validation.
	session, err := jm.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := jm.ValidateTempToken(session); err == nil {
		t.Error("session token accepted as 2FA temp token")
	}
}
