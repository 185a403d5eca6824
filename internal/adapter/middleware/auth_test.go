package middleware

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"loan-origination/internal/domain/auth"
)

func newAuthEcho() *echo.Echo {
	e := echo.New()
	verifier := stubVerifier{
		"cust":    {UserID: "cust-1", Role: auth.RoleCustomer},
		"officer": {UserID: "off-1", Role: auth.RoleOfficer},
	}
	whoami := func(c echo.Context) error {
		caller, _ := CallerFrom(c)
		return c.String(http.StatusOK, caller.UserID)
	}
	g := e.Group("", Authenticate(verifier))
	g.GET("/any", whoami)
	g.GET("/officer-only", whoami, RequireRole(auth.RoleOfficer))
	return e
}

func TestAuthenticate(t *testing.T) {
	e := newAuthEcho()

	cases := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic cust", http.StatusUnauthorized, ""},
		{"empty token", "Bearer ", http.StatusUnauthorized, ""},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, ""},
		{"valid", "Bearer cust", http.StatusOK, "cust-1"},
		{"scheme is case-insensitive", "bearer officer", http.StatusOK, "off-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := map[string]string{}
			if tc.header != "" {
				h[echo.HeaderAuthorization] = tc.header
			}
			rec := doReq(t, e, http.MethodGet, "/any", nil, h)
			if rec.Code != tc.code {
				t.Fatalf("status = %d, want %d", rec.Code, tc.code)
			}
			if tc.body != "" && rec.Body.String() != tc.body {
				t.Fatalf("body = %q, want %q", rec.Body.String(), tc.body)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	e := newAuthEcho()

	rec := doReq(t, e, http.MethodGet, "/officer-only", nil, map[string]string{echo.HeaderAuthorization: "Bearer cust"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("customer on officer route => want 403, got %d", rec.Code)
	}
	rec = doReq(t, e, http.MethodGet, "/officer-only", nil, map[string]string{echo.HeaderAuthorization: "Bearer officer"})
	if rec.Code != http.StatusOK {
		t.Fatalf("officer on officer route => want 200, got %d", rec.Code)
	}
}

func TestCallerFrom_Empty(t *testing.T) {
	c := echo.New().NewContext(nil, nil)
	if _, ok := CallerFrom(c); ok {
		t.Fatalf("no caller should be reported on a fresh context")
	}
	SetCaller(c, auth.Caller{Role: auth.RoleOfficer})
	if _, ok := CallerFrom(c); ok {
		t.Fatalf("caller without user id must not count as authenticated")
	}
}

func TestBearerToken(t *testing.T) {
	if got := bearerToken("  Bearer   abc.def  "); got != "abc.def" {
		t.Fatalf("bearerToken = %q", got)
	}
	if got := bearerToken("Token abc"); got != "" {
		t.Fatalf("non-bearer scheme should yield empty, got %q", got)
	}
}
