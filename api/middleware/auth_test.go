package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tradehub/marketplace-backend/pkg/auth"
	"github.com/tradehub/marketplace-backend/pkg/config"
	"github.com/tradehub/marketplace-backend/pkg/enums"
	"github.com/tradehub/marketplace-backend/pkg/logger"
)

var testJWT = config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}

type capturedIdentity struct {
	user  string
	role  string
	buyer string
}

func captureHandler(c *capturedIdentity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.user = UserIDFromContext(r.Context())
		c.role = RoleFromContext(r.Context())
		c.buyer = BuyerIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWT, nil)(captureHandler(&capturedIdentity{}))

	for _, header := range []string{"", "Bearer ", "   "} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401 got %d", header, resp.Code)
		}
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(testJWT, logger.Nop())(captureHandler(&capturedIdentity{}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSeedsBuyerContext(t *testing.T) {
	buyerID := uuid.New()
	token := mintTestToken(t, enums.MemberRoleBuyer, &buyerID)

	var captured capturedIdentity
	handler := Auth(testJWT, logger.Nop())(captureHandler(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.user == "" {
		t.Fatal("expected user id in context")
	}
	if captured.role != string(enums.MemberRoleBuyer) {
		t.Fatalf("expected role buyer got %s", captured.role)
	}
	if captured.buyer != buyerID.String() {
		t.Fatalf("expected buyer %s got %s", buyerID, captured.buyer)
	}
}

func TestAuthSupplierHasNoBuyerContext(t *testing.T) {
	token := mintTestToken(t, enums.MemberRoleSupplier, nil)

	var captured capturedIdentity
	handler := Auth(testJWT, nil)(captureHandler(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.role != string(enums.MemberRoleSupplier) {
		t.Fatalf("expected role supplier got %s", captured.role)
	}
	if captured.buyer != "" {
		t.Fatalf("expected empty buyer got %s", captured.buyer)
	}
}

func mintTestToken(t *testing.T, role enums.MemberRole, buyerID *uuid.UUID) string {
	t.Helper()
	token, err := auth.MintAccessToken(testJWT, time.Now(), auth.AccessTokenPayload{
		UserID:  uuid.New(),
		Role:    role,
		BuyerID: buyerID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}
