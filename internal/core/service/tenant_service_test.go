package service

import (
	"context"
	"errors"
	"testing"

	"github.com/recruithub/recruiting-system/internal/core/domain"
)

func aliasCompany(id string, aliases ...string) *domain.Company {
	return &domain.Company{ID: id, DomainAliases: aliases, Status: domain.CompanyActive}
}

func TestTenantService_OverrideHonoredOnLocalhost(t *testing.T) {
	svc := NewTenantService(newStubCompanyRepo(), discardLogger)

	got, err := svc.Resolve(context.Background(), "localhost:3000", idCompanyA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != idCompanyA {
		t.Errorf("expected override company, got %q", got)
	}
}

func TestTenantService_OverrideHonoredOnPrivateAddress(t *testing.T) {
	svc := NewTenantService(newStubCompanyRepo(), discardLogger)

	for _, host := range []string{"127.0.0.1:8080", "192.168.1.20:3000", "acme.ngrok-free.app"} {
		got, err := svc.Resolve(context.Background(), host, idCompanyB)
		if err != nil {
			t.Fatalf("host %s: unexpected error: %v", host, err)
		}
		if got != idCompanyB {
			t.Errorf("host %s: expected override company, got %q", host, got)
		}
	}
}

// On a production host the override query parameter is dead weight: alias
// resolution decides, whatever the caller sent.
func TestTenantService_OverrideIgnoredOnProductionHost(t *testing.T) {
	repo := newStubCompanyRepo(aliasCompany(idCompanyA, "acme"))
	svc := NewTenantService(repo, discardLogger)

	got, err := svc.Resolve(context.Background(), "acme.recruithub.io", idCompanyB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != idCompanyA {
		t.Errorf("expected alias company %q, got %q", idCompanyA, got)
	}
}

func TestTenantService_ExactAliasBeatsShorterPrefix(t *testing.T) {
	repo := newStubCompanyRepo(
		aliasCompany(idCompanyA, "trcqa"),
		aliasCompany(idCompanyB, "trc"),
	)
	svc := NewTenantService(repo, discardLogger)

	got, err := svc.Resolve(context.Background(), "trcqa.recruithub.io", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != idCompanyA {
		t.Errorf("expected exact alias winner %q, got %q", idCompanyA, got)
	}
}

func TestTenantService_LongestPrefixWhenNoExact(t *testing.T) {
	repo := newStubCompanyRepo(
		aliasCompany(idCompanyA, "tr"),
		aliasCompany(idCompanyB, "trc"),
	)
	svc := NewTenantService(repo, discardLogger)

	got, err := svc.Resolve(context.Background(), "trc2.recruithub.io", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != idCompanyB {
		t.Errorf("expected longest prefix winner %q, got %q", idCompanyB, got)
	}
}

// Prefix matching only: a longer alias never matches a shorter label, so
// "trc" cannot accidentally land on the "trcqa" tenant.
func TestTenantService_NoSubstringMatch(t *testing.T) {
	repo := newStubCompanyRepo(aliasCompany(idCompanyA, "trcqa"))
	svc := NewTenantService(repo, discardLogger)

	_, err := svc.Resolve(context.Background(), "trc.recruithub.io", "")
	if !errors.Is(err, domain.ErrTenantNotFound) {
		t.Fatalf("expected ErrTenantNotFound, got %v", err)
	}
}

func TestTenantService_SharedAliasResolvesDeterministically(t *testing.T) {
	repo := newStubCompanyRepo(
		aliasCompany(idCompanyB, "portal"),
		aliasCompany(idCompanyA, "portal"),
	)
	svc := NewTenantService(repo, discardLogger)

	for i := 0; i < 10; i++ {
		got, err := svc.Resolve(context.Background(), "portal.recruithub.io", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != idCompanyA {
			t.Fatalf("expected smallest company ID %q, got %q", idCompanyA, got)
		}
	}
}

func TestTenantService_ApexAndWWWHaveNoTenant(t *testing.T) {
	repo := newStubCompanyRepo(aliasCompany(idCompanyA, "acme"))
	svc := NewTenantService(repo, discardLogger)

	for _, host := range []string{"recruithub.io", "www.recruithub.io"} {
		_, err := svc.Resolve(context.Background(), host, "")
		if !errors.Is(err, domain.ErrTenantNotFound) {
			t.Errorf("host %s: expected ErrTenantNotFound, got %v", host, err)
		}
	}
}

func TestTenantService_HostNormalization(t *testing.T) {
	repo := newStubCompanyRepo(aliasCompany(idCompanyA, "acme"))
	svc := NewTenantService(repo, discardLogger)

	got, err := svc.Resolve(context.Background(), "ACME.RecruitHub.io:443", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != idCompanyA {
		t.Errorf("expected %q, got %q", idCompanyA, got)
	}
}
