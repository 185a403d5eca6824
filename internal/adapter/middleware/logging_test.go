package middleware

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"loan-origination/internal/domain/auth"
)

func TestRequestLogger(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	e := echo.New()
	e.Use(RequestLogger(log))
	e.GET("/ok", func(c echo.Context) error {
		SetCaller(c, auth.Caller{UserID: "off-1", Role: auth.RoleOfficer})
		return c.NoContent(http.StatusOK)
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "boom")
	})

	doReq(t, e, http.MethodGet, "/ok", nil, nil)
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.InfoLevel {
		t.Fatalf("want info entry, got %+v", entry)
	}
	if entry.Data["status"] != http.StatusOK || entry.Data["route"] != "/ok" || entry.Data["user_id"] != "off-1" {
		t.Fatalf("unexpected fields: %+v", entry.Data)
	}

	rec := doReq(t, e, http.MethodGet, "/boom", nil, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if entry := hook.LastEntry(); entry.Level != logrus.ErrorLevel || entry.Data["status"] != http.StatusInternalServerError {
		t.Fatalf("want error entry with status 500, got %+v", entry)
	}

	doReq(t, e, http.MethodGet, "/missing", nil, nil)
	if entry := hook.LastEntry(); entry.Level != logrus.WarnLevel || entry.Data["status"] != http.StatusNotFound {
		t.Fatalf("want warn entry with status 404, got %+v", entry)
	}
}
