package utils

import (
	"errors"
	"testing"

	"hotelhub-backend/services"
)

func TestTokenPairRoundTrip(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "tokens-test-secret")

	pair, err := CreateTokenPair(42, "staff")
	if err != nil {
		t.Fatalf("CreateTokenPair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("empty token pair")
	}

	claims, err := ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "staff" {
		t.Errorf("claims = %+v", claims)
	}

	// Without redis a refresh token is stateless; consuming it yields the user.
	userID, err := ConsumeRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("ConsumeRefreshToken: %v", err)
	}
	if userID != 42 {
		t.Errorf("user id = %d, want 42", userID)
	}
}

func TestParseAccessTokenRejectsBadInput(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "tokens-test-secret")

	if _, err := ParseAccessToken("not.a.token"); !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("garbage token: err = %v, want ErrInvalidToken", err)
	}

	pair, err := CreateTokenPair(7, "user")
	if err != nil {
		t.Fatalf("CreateTokenPair: %v", err)
	}

	// A token signed under a different secret must not verify.
	t.Setenv("ACCESS_TOKEN_SECRET", "rotated-secret")
	if _, err := ParseAccessToken(pair.AccessToken); !errors.Is(err, services.ErrInvalidToken) {
		t.Errorf("wrong secret: err = %v, want ErrInvalidToken", err)
	}
}
