package service

import (
	"context"
	"errors"
	"testing"

	"github.com/recruithub/recruiting-system/internal/core/domain"
	"github.com/recruithub/recruiting-system/internal/core/ports"
)

func userFixture() (*UserService, *stubUserRepo) {
	users := newStubUserRepo(standardUser(), adminUser())
	roles := newStubRoleRepo(
		&domain.Role{ID: idRoleTop, Name: "Head of Talent"},
		&domain.Role{ID: idRoleMid, Name: "Recruiter"},
		&domain.Role{ID: idRoleLow, Name: "Sourcer"},
	)
	hierarchy := NewHierarchyService(newStubHierarchyRepo(testHierarchy()), newStubRankCache(), discardLogger)
	return NewUserService(users, roles, hierarchy, discardLogger), users
}

func TestUserService_CreateSuccess(t *testing.T) {
	svc, users := userFixture()
	operator := operatorWithRole(idRoleMid) // rank 1

	created, err := svc.Create(context.Background(), operator, ports.CreateUserInput{
		Email:             "new@acme.test",
		Name:              "New Hire",
		Password:          "initial-pw",
		RoleRef:           idRoleLow, // rank 2
		AssignedClientIDs: []string{idClient1, idClient1, " " + idClient2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Role != "Sourcer" {
		t.Errorf("role name must come from the role record, got %q", created.Role)
	}
	if created.HomeCompanyID != operator.TenantID() {
		t.Errorf("expected home company %q, got %q", operator.TenantID(), created.HomeCompanyID)
	}
	if !created.Enabled {
		t.Error("new users start enabled")
	}
	if created.PasswordHash == "" || created.PasswordHash == "initial-pw" {
		t.Error("password must be stored hashed")
	}
	if len(created.AssignedClientIDs) != 2 {
		t.Errorf("expected deduplicated canonical assignments, got %v", created.AssignedClientIDs)
	}
	if _, err := users.FindByID(context.Background(), created.ID); err != nil {
		t.Errorf("created user must be persisted: %v", err)
	}
}

func TestUserService_CreateRequiresSeniorityOverRole(t *testing.T) {
	svc, _ := userFixture()
	operator := operatorWithRole(idRoleLow) // rank 2

	_, err := svc.Create(context.Background(), operator, ports.CreateUserInput{
		Email:    "new@acme.test",
		Password: "pw",
		RoleRef:  idRoleMid, // rank 1, above the operator
	})
	if !errors.Is(err, domain.ErrInsufficientSeniority) {
		t.Fatalf("expected ErrInsufficientSeniority, got %v", err)
	}
}

func TestUserService_CreateRejectsMissingFields(t *testing.T) {
	svc, _ := userFixture()
	operator := operatorWithRole(idRoleTop)

	cases := []ports.CreateUserInput{
		{Password: "pw", RoleRef: idRoleLow},              // no email
		{Email: "a@b.test", RoleRef: idRoleLow},           // no password
		{Email: "a@b.test", Password: "pw"},               // no role
		{Email: "a@b.test", Password: "pw", RoleRef: "x"}, // malformed role ref
	}
	for _, input := range cases {
		if _, err := svc.Create(context.Background(), operator, input); !errors.Is(err, domain.ErrInvalidIdentifier) {
			t.Errorf("input %+v: expected ErrInvalidIdentifier, got %v", input, err)
		}
	}
}

// A lookup from another tenant answers not-found, never forbidden: the
// record's existence is part of what is being protected.
func TestUserService_GetMasksForeignTenant(t *testing.T) {
	svc, _ := userFixture()
	operator := operatorWithRole(idRoleTop)
	operator.HomeCompanyID = idCompanyB

	_, err := svc.Get(context.Background(), operator, idUser1)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_UpdateNonRoleFields(t *testing.T) {
	svc, _ := userFixture()
	operator := operatorWithRole(idRoleTop) // rank 0, target is rank 1
	operator.UserID = idUser2

	name := "Renamed"
	enabled := false
	updated, err := svc.Update(context.Background(), operator, idUser1, ports.UpdateUserInput{
		Name:    &name,
		Enabled: &enabled,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Renamed" || updated.Enabled {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.RoleRef != idRoleMid {
		t.Errorf("role must be untouched, got %q", updated.RoleRef)
	}
}

func TestUserService_UpdateDeniedBelowTarget(t *testing.T) {
	svc, _ := userFixture()
	operator := operatorWithRole(idRoleLow) // rank 2, target is rank 1
	operator.UserID = idUser2

	name := "Renamed"
	_, err := svc.Update(context.Background(), operator, idUser1, ports.UpdateUserInput{Name: &name})
	if !errors.Is(err, domain.ErrInsufficientSeniority) {
		t.Fatalf("expected ErrInsufficientSeniority, got %v", err)
	}
}

func TestUserService_SelfEditAllowedButNotOwnRole(t *testing.T) {
	svc, _ := userFixture()
	operator := operatorWithRole(idRoleMid) // editing their own record

	name := "Self Renamed"
	if _, err := svc.Update(context.Background(), operator, idUser1, ports.UpdateUserInput{Name: &name}); err != nil {
		t.Fatalf("self edit of non-role fields should pass: %v", err)
	}

	newRole := idRoleTop
	_, err := svc.Update(context.Background(), operator, idUser1, ports.UpdateUserInput{RoleRef: &newRole})
	if !errors.Is(err, domain.ErrSelfRoleChange) {
		t.Fatalf("expected ErrSelfRoleChange, got %v", err)
	}
}

func TestUserService_RoleChangeCheckedAgainstBothRoles(t *testing.T) {
	svc, _ := userFixture()
	operator := operatorWithRole(idRoleMid) // rank 1
	operator.UserID = idUser2

	// Target is rank 1 (equal): even a demotion request is denied.
	down := idRoleLow
	_, err := svc.Update(context.Background(), operator, idUser1, ports.UpdateUserInput{RoleRef: &down})
	if !errors.Is(err, domain.ErrInsufficientSeniority) {
		t.Fatalf("expected ErrInsufficientSeniority, got %v", err)
	}

	// A rank 0 operator outranks both the current and the requested role.
	top := operatorWithRole(idRoleTop)
	top.UserID = idUser2
	updated, err := svc.Update(context.Background(), top, idUser1, ports.UpdateUserInput{RoleRef: &down})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.RoleRef != idRoleLow || updated.Role != "Sourcer" {
		t.Errorf("role change not applied: ref %q name %q", updated.RoleRef, updated.Role)
	}
}
