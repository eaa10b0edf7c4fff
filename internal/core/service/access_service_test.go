package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/recruithub/recruiting-system/internal/core/domain"
)

func TestAccessService_AdminTierGetsFullMasterList(t *testing.T) {
	admin := adminUser()
	admin.AssignedClientIDs = []string{idClient1} // ignored for admin tier
	svc := NewAccessService(newStubCompanyRepo(companyB()), newStubUserRepo(admin), discardLogger)

	allowed, err := svc.AllowedClients(context.Background(), admin.ID, idCompanyB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{idClient2, idClient3}; !reflect.DeepEqual(allowed, want) {
		t.Errorf("expected full master list %v, got %v", want, allowed)
	}
}

func TestAccessService_IntersectionInMasterOrder(t *testing.T) {
	company := companyB()
	user := standardUser()
	user.AssignedClientIDs = []string{idClient3, idClient2} // reversed on purpose
	svc := NewAccessService(newStubCompanyRepo(company), newStubUserRepo(user), discardLogger)

	allowed, err := svc.AllowedClients(context.Background(), user.ID, idCompanyB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{idClient2, idClient3}; !reflect.DeepEqual(allowed, want) {
		t.Errorf("expected master order %v, got %v", want, allowed)
	}
}

// The intersection must be stable under representation noise: upper-cased
// copies and stray whitespace on either side never change the result.
func TestAccessService_MixedRepresentationIntersection(t *testing.T) {
	company := companyA()
	company.MasterClientIDs = []string{" C1C1C1C1C1C1C1C1C1C1C1C1 "}
	user := standardUser()
	user.AssignedClientIDs = []string{idClient1}
	svc := NewAccessService(newStubCompanyRepo(company), newStubUserRepo(user), discardLogger)

	allowed, err := svc.AllowedClients(context.Background(), user.ID, idCompanyA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{idClient1}; !reflect.DeepEqual(allowed, want) {
		t.Errorf("expected canonical intersection %v, got %v", want, allowed)
	}
}

func TestAccessService_StaleAssignmentDropsOut(t *testing.T) {
	user := standardUser() // assigned client1 and client2
	svc := NewAccessService(newStubCompanyRepo(companyA()), newStubUserRepo(user), discardLogger)

	// Company A only owns client1; the client2 assignment is stale.
	allowed, err := svc.AllowedClients(context.Background(), user.ID, idCompanyA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{idClient1}; !reflect.DeepEqual(allowed, want) {
		t.Errorf("expected stale assignment dropped, got %v", allowed)
	}
}

func TestAccessService_EmptyMasterListYieldsEmpty(t *testing.T) {
	company := companyA()
	company.MasterClientIDs = nil
	admin := adminUser()
	svc := NewAccessService(newStubCompanyRepo(company), newStubUserRepo(admin), discardLogger)

	allowed, err := svc.AllowedClients(context.Background(), admin.ID, idCompanyA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(allowed) != 0 {
		t.Errorf("expected empty result, got %v", allowed)
	}
}

func TestAccessService_UnknownUser(t *testing.T) {
	svc := NewAccessService(newStubCompanyRepo(companyA()), newStubUserRepo(), discardLogger)

	_, err := svc.AllowedClients(context.Background(), idUser1, idCompanyA)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAccessService_UnknownCompany(t *testing.T) {
	svc := NewAccessService(newStubCompanyRepo(), newStubUserRepo(standardUser()), discardLogger)

	_, err := svc.AllowedClients(context.Background(), idUser1, idCompanyA)
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}
