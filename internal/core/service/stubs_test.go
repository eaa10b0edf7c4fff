package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/recruithub/recruiting-system/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// 24-hex identifiers shared across the service tests.
const (
	idCompanyA = "aaaaaaaaaaaaaaaaaaaaaaaa"
	idCompanyB = "bbbbbbbbbbbbbbbbbbbbbbbb"
	idClient1  = "c1c1c1c1c1c1c1c1c1c1c1c1"
	idClient2  = "c2c2c2c2c2c2c2c2c2c2c2c2"
	idClient3  = "c3c3c3c3c3c3c3c3c3c3c3c3"
	idUser1    = "d1d1d1d1d1d1d1d1d1d1d1d1"
	idUser2    = "d2d2d2d2d2d2d2d2d2d2d2d2"
	idRoleTop  = "e0e0e0e0e0e0e0e0e0e0e0e0"
	idRoleMid  = "e1e1e1e1e1e1e1e1e1e1e1e1"
	idRoleLow  = "e2e2e2e2e2e2e2e2e2e2e2e2"
	idNewUser  = "f0f0f0f0f0f0f0f0f0f0f0f0"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubCompanyRepo struct {
	companies map[string]*domain.Company
}

func newStubCompanyRepo(companies ...*domain.Company) *stubCompanyRepo {
	r := &stubCompanyRepo{companies: make(map[string]*domain.Company)}
	for _, c := range companies {
		r.companies[domain.CanonicalID(c.ID)] = c
	}
	return r
}

func (r *stubCompanyRepo) FindByID(_ context.Context, id string) (*domain.Company, error) {
	c, ok := r.companies[domain.CanonicalID(id)]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	clone := *c
	return &clone, nil
}

// FindByAnyAlias mirrors the Mongo $in filter: a company matches when it
// holds at least one of the requested aliases.
func (r *stubCompanyRepo) FindByAnyAlias(_ context.Context, aliases []string) ([]*domain.Company, error) {
	want := make(map[string]struct{}, len(aliases))
	for _, a := range aliases {
		want[a] = struct{}{}
	}
	var out []*domain.Company
	for _, c := range r.companies {
		if c.Status != domain.CompanyActive {
			continue
		}
		for _, alias := range c.DomainAliases {
			if _, ok := want[alias]; ok {
				clone := *c
				out = append(out, &clone)
				break
			}
		}
	}
	return out, nil
}

type stubClientRepo struct {
	clients map[string]*domain.Client
}

func newStubClientRepo(clients ...*domain.Client) *stubClientRepo {
	r := &stubClientRepo{clients: make(map[string]*domain.Client)}
	for _, cl := range clients {
		r.clients[domain.CanonicalID(cl.ID)] = cl
	}
	return r
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	cl, ok := r.clients[domain.CanonicalID(id)]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	clone := *cl
	return &clone, nil
}

func (r *stubClientRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Client, error) {
	var out []*domain.Client
	for _, id := range ids {
		if cl, ok := r.clients[domain.CanonicalID(id)]; ok {
			clone := *cl
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubUserRepo struct {
	users         map[string]*domain.User
	contextWrites int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[domain.CanonicalID(u.ID)] = u
	}
	return r
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[domain.CanonicalID(id)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	clone := *user
	if clone.ID == "" {
		clone.ID = idNewUser
	}
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[domain.CanonicalID(user.ID)]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	r.users[domain.CanonicalID(user.ID)] = &clone
	return nil
}

func (r *stubUserRepo) UpdateActiveContext(_ context.Context, userID, companyID, clientID string, lastActive map[string]string) error {
	u, ok := r.users[domain.CanonicalID(userID)]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.CurrentCompanyID = companyID
	u.ActiveClientID = clientID
	u.LastActiveClientByCompany = lastActive
	r.contextWrites++
	return nil
}

type stubRoleRepo struct {
	roles map[string]*domain.Role
}

func newStubRoleRepo(roles ...*domain.Role) *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[string]*domain.Role)}
	for _, role := range roles {
		r.roles[domain.CanonicalID(role.ID)] = role
	}
	return r
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := r.roles[domain.CanonicalID(id)]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	clone := *role
	return &clone, nil
}

type stubHierarchyRepo struct {
	byCompany map[string]*domain.RoleHierarchy
	finds     int
	saves     int
}

func newStubHierarchyRepo(hierarchies ...*domain.RoleHierarchy) *stubHierarchyRepo {
	r := &stubHierarchyRepo{byCompany: make(map[string]*domain.RoleHierarchy)}
	for _, h := range hierarchies {
		r.byCompany[domain.CanonicalID(h.CompanyID)] = h
	}
	return r
}

// FindByCompany mirrors the Mongo repo: a company without a stored hierarchy
// gets an empty one, never an error.
func (r *stubHierarchyRepo) FindByCompany(_ context.Context, companyID string) (*domain.RoleHierarchy, error) {
	r.finds++
	companyID = domain.CanonicalID(companyID)
	if h, ok := r.byCompany[companyID]; ok {
		clone := *h
		return &clone, nil
	}
	return &domain.RoleHierarchy{CompanyID: companyID}, nil
}

func (r *stubHierarchyRepo) Save(_ context.Context, hierarchy *domain.RoleHierarchy) error {
	clone := *hierarchy
	r.byCompany[domain.CanonicalID(hierarchy.CompanyID)] = &clone
	r.saves++
	return nil
}

type stubRankCache struct {
	data          map[string]map[string]int
	getErr        error
	setErr        error
	sets          int
	invalidations int
}

func newStubRankCache() *stubRankCache {
	return &stubRankCache{data: make(map[string]map[string]int)}
}

func (c *stubRankCache) Get(_ context.Context, companyID string) (map[string]int, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	ranks, ok := c.data[companyID]
	return ranks, ok, nil
}

func (c *stubRankCache) Set(_ context.Context, companyID string, ranks map[string]int) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.data[companyID] = ranks
	c.sets++
	return nil
}

func (c *stubRankCache) Invalidate(_ context.Context, companyID string) error {
	delete(c.data, companyID)
	c.invalidations++
	return nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func companyA() *domain.Company {
	return &domain.Company{
		ID:              idCompanyA,
		Name:            "Acme Recruiting",
		MasterClientIDs: []string{idClient1},
		DomainAliases:   []string{"acme"},
		Status:          domain.CompanyActive,
	}
}

func companyB() *domain.Company {
	return &domain.Company{
		ID:              idCompanyB,
		Name:            "Borealis Talent",
		MasterClientIDs: []string{idClient2, idClient3},
		DomainAliases:   []string{"borealis"},
		Status:          domain.CompanyActive,
	}
}

func standardUser() *domain.User {
	return &domain.User{
		ID:                idUser1,
		Email:             "user@acme.test",
		Name:              "Standard User",
		HomeCompanyID:     idCompanyA,
		AssignedClientIDs: []string{idClient1, idClient2},
		Role:              "Recruiter",
		RoleRef:           idRoleMid,
		Enabled:           true,
	}
}

func adminUser() *domain.User {
	return &domain.User{
		ID:            idUser2,
		Email:         "admin@acme.test",
		Name:          "Platform Admin",
		HomeCompanyID: idCompanyA,
		Role:          domain.RoleProductAdmin,
		RoleRef:       idRoleTop,
		Enabled:       true,
	}
}

func sessionFor(u *domain.User) domain.SessionContext {
	return domain.SessionContext{
		UserID:        u.ID,
		Email:         u.Email,
		HomeCompanyID: u.HomeCompanyID,
		Role:          u.Role,
		RoleRef:       u.RoleRef,
		IsAdminTier:   u.IsAdminTier(),
	}
}
