package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/recruithub/recruiting-system/internal/core/domain"
)

type stubAuditRepo struct {
	records   []*domain.AuditRecord
	recordErr error
}

func (r *stubAuditRepo) Record(_ context.Context, rec *domain.AuditRecord) error {
	if r.recordErr != nil {
		return r.recordErr
	}
	r.records = append(r.records, rec)
	return nil
}

func impersonatedSession(mode domain.ImpersonationMode) domain.SessionContext {
	return domain.SessionContext{
		UserID:         "d1d1d1d1d1d1d1d1d1d1d1d1",
		HomeCompanyID:  "aaaaaaaaaaaaaaaaaaaaaaaa",
		ImpersonatorID: "d2d2d2d2d2d2d2d2d2d2d2d2",
		Mode:           mode,
	}
}

func gateContext(e *echo.Echo, method string, session domain.SessionContext) echo.Context {
	req := httptest.NewRequest(method, "/users/d1d1d1d1d1d1d1d1d1d1d1d1", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set(sessionKey, session)
	return c
}

func TestImpersonationGate_ReadOnlyAllowsReads(t *testing.T) {
	e := echo.New()
	audit := &stubAuditRepo{}

	called := false
	handler := ImpersonationGate(audit, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(gateContext(e, http.MethodGet, impersonatedSession(domain.ImpersonationReadOnly))); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("read must pass the gate")
	}
	if len(audit.records) != 0 {
		t.Errorf("reads are not audited, got %d records", len(audit.records))
	}
}

// The read-only gate cuts the request off before the handler runs; blocking
// in a response hook would be too late.
func TestImpersonationGate_ReadOnlyBlocksMutations(t *testing.T) {
	e := echo.New()
	audit := &stubAuditRepo{}

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		called := false
		handler := ImpersonationGate(audit, zerolog.Nop())(func(c echo.Context) error {
			called = true
			return nil
		})
		err := handler(gateContext(e, method, impersonatedSession(domain.ImpersonationReadOnly)))
		if !errors.Is(err, domain.ErrImpersonationReadOnly) {
			t.Errorf("%s: expected ErrImpersonationReadOnly, got %v", method, err)
		}
		if called {
			t.Errorf("%s: handler must not run", method)
		}
	}
}

func TestImpersonationGate_FullModeAuditsMutation(t *testing.T) {
	e := echo.New()
	audit := &stubAuditRepo{}

	called := false
	handler := ImpersonationGate(audit, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(gateContext(e, http.MethodPut, impersonatedSession(domain.ImpersonationFull))); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("full-mode mutation must reach the handler")
	}
	if len(audit.records) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(audit.records))
	}

	rec := audit.records[0]
	if rec.SubjectUserID != "d1d1d1d1d1d1d1d1d1d1d1d1" {
		t.Errorf("wrong subject: %q", rec.SubjectUserID)
	}
	if rec.ImpersonatorID != "d2d2d2d2d2d2d2d2d2d2d2d2" {
		t.Errorf("wrong impersonator: %q", rec.ImpersonatorID)
	}
	if rec.Method != http.MethodPut || rec.Path != "/users/d1d1d1d1d1d1d1d1d1d1d1d1" {
		t.Errorf("wrong action recorded: %s %s", rec.Method, rec.Path)
	}
	if rec.ID == "" || rec.OccurredAt.IsZero() {
		t.Error("audit record must carry an ID and timestamp")
	}
}

// No audit record, no mutation.
func TestImpersonationGate_AuditFailureRejectsMutation(t *testing.T) {
	e := echo.New()
	audit := &stubAuditRepo{recordErr: errors.New("audit store down")}

	called := false
	handler := ImpersonationGate(audit, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return nil
	})
	err := handler(gateContext(e, http.MethodPost, impersonatedSession(domain.ImpersonationFull)))
	if err == nil {
		t.Fatal("expected error when the audit write fails")
	}
	if called {
		t.Fatal("handler must not run without an audit record")
	}
}

func TestImpersonationGate_NormalSessionUntouched(t *testing.T) {
	e := echo.New()
	audit := &stubAuditRepo{}
	session := domain.SessionContext{UserID: "d1d1d1d1d1d1d1d1d1d1d1d1", HomeCompanyID: "aaaaaaaaaaaaaaaaaaaaaaaa"}

	called := false
	handler := ImpersonationGate(audit, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(gateContext(e, http.MethodDelete, session)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("normal sessions pass the gate")
	}
	if len(audit.records) != 0 {
		t.Errorf("normal sessions are not audited, got %d records", len(audit.records))
	}
}
