package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type staticValidator struct {
	token    string
	identity Identity
}

func (v staticValidator) ValidateToken(ctx context.Context, token string) (Identity, error) {
	if token == v.token {
		return v.identity, nil
	}
	return Identity{}, errors.New("invalid token")
}

func authTestRouter(validator TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(validator))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId":   UserIDFromContext(c),
			"username": UsernameFromContext(c),
			"type":     UserTypeFromContext(c),
		})
	})
	return r
}

func TestAuthPopulatesIdentity(t *testing.T) {
	router := authTestRouter(staticValidator{
		token:    "tok-1",
		identity: Identity{UserID: "user-1", Username: "alice", Type: "admin"},
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	body := resp.Body.String()
	for _, want := range []string{"user-1", "alice", "admin"} {
		if !strings.Contains(body, want) {
			t.Fatalf("response missing %q: %s", want, body)
		}
	}
}

func TestAuthRejectsMissingOrBadToken(t *testing.T) {
	router := authTestRouter(staticValidator{token: "tok-1"})

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty bearer", "Bearer "},
		{"unknown token", "Bearer nope"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			if resp.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", resp.Code)
			}
		})
	}
}
