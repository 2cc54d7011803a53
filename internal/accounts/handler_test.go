package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"biocard-backend/internal/shared/server/middleware"
	"biocard-backend/internal/shared/server/respond"
)

func testHandlerRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(svc)

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterPublicRoutes(api)

	protected := api.Group("", middleware.Auth(svc))
	handler.RegisterProtectedRoutes(protected)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestSignupSigninFlow(t *testing.T) {
	svc, _, _ := testService()
	router := testHandlerRouter(svc)

	resp := postJSON(t, router, "/api/v1/auth/signup", gin.H{"username": "alice", "password": "pw"}, "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var signup tokenResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &signup); err != nil {
		t.Fatalf("unmarshal signup: %v", err)
	}
	if signup.Token == "" || signup.Username != "alice" {
		t.Fatalf("unexpected signup response %+v", signup)
	}

	// Duplicate signup conflicts.
	resp = postJSON(t, router, "/api/v1/auth/signup", gin.H{"username": "alice", "password": "pw"}, "")
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: expected 409, got %d", resp.Code)
	}

	resp = postJSON(t, router, "/api/v1/auth/signin", gin.H{"username": "alice", "password": "pw"}, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("signin: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = postJSON(t, router, "/api/v1/auth/signin", gin.H{"username": "alice", "password": "nope"}, "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("bad signin: expected 401, got %d", resp.Code)
	}
	var body respond.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if body.Error.Code != "invalid_credentials" {
		t.Fatalf("expected code invalid_credentials, got %q", body.Error.Code)
	}
}

func TestValidateRequiresToken(t *testing.T) {
	svc, _, _ := testService()
	router := testHandlerRouter(svc)

	acct, err := svc.Signup(context.Background(), "bob", "pw", "")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/validate", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/validate", nil)
	req.Header.Set("Authorization", "Bearer "+acct.Token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var got map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal validate: %v", err)
	}
	if got["username"] != "bob" || got["type"] != TypeUser {
		t.Fatalf("unexpected validate payload %v", got)
	}
}

func TestAdminRoutesRequireAdminType(t *testing.T) {
	svc, _, _ := testService()
	router := testHandlerRouter(svc)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "plain", "pw", "")
	if err != nil {
		t.Fatalf("Signup user: %v", err)
	}
	admin, err := svc.Signup(ctx, "boss", "pw", TypeAdmin)
	if err != nil {
		t.Fatalf("Signup admin: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+user.Token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("user on admin route: expected 403, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+admin.Token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("admin list: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var listing struct {
		Accounts []Summary `json:"accounts"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &listing); err != nil {
		t.Fatalf("unmarshal listing: %v", err)
	}
	if len(listing.Accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(listing.Accounts))
	}

	resp = postJSON(t, router, "/api/v1/admin/accounts",
		gin.H{"username": "minted", "password": "pw", "type": TypeAdmin}, admin.Token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("admin create: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	resp = postJSON(t, router, "/api/v1/admin/accounts",
		gin.H{"username": "sneaky", "password": "pw", "type": TypeRoot}, admin.Token)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("admin create root: expected 400, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/admin/accounts/plain", nil)
	req.Header.Set("Authorization", "Bearer "+admin.Token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("admin delete: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestDeleteAccountEndpoint(t *testing.T) {
	svc, _, profiles := testService()
	router := testHandlerRouter(svc)

	acct, err := svc.Signup(context.Background(), "gone", "pw", "")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/auth/account", nil)
	req.Header.Set("Authorization", "Bearer "+acct.Token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("delete account: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if profiles.deleted[acct.ID] != "gone" {
		t.Fatal("account deletion must cascade to the profile")
	}

	// The token dies with the account.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/validate", nil)
	req.Header.Set("Authorization", "Bearer "+acct.Token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("stale token: expected 401, got %d", resp.Code)
	}
}
