package service

import (
	"context"
	"net"
	"strings"

	"github.com/rs/zerolog"

	"github.com/recruithub/recruiting-system/internal/core/domain"
	"github.com/recruithub/recruiting-system/internal/core/ports"
)

// devHostSuffixes are ephemeral preview domains used during development.
var devHostSuffixes = []string{
	".localhost",
	".ngrok-free.app",
	".ngrok.io",
	".trycloudflare.com",
}

// TenantService maps an inbound host header to a company identifier.
type TenantService struct {
	companies ports.CompanyRepository
	logger    zerolog.Logger
}

func NewTenantService(companies ports.CompanyRepository, logger zerolog.Logger) *TenantService {
	return &TenantService{companies: companies, logger: logger}
}

// Resolve returns the company a request belongs to.
//
// On a development host (localhost, loopback or private-network address,
// preview tunnel domain) a non-empty override is trusted directly; this path
// exists to unblock local development and is never honored on a production
// host. Otherwise the host's subdomain label is matched against company
// domain aliases: an exact alias wins, else the longest alias that is a
// prefix of the label, ties broken by the lexicographically smallest alias.
// Substring matching is deliberately not used; it makes a label like "trc"
// ambiguous between aliases "trcqa" and "trc2".
func (s *TenantService) Resolve(ctx context.Context, host, override string) (string, error) {
	hostname := normalizeHost(host)

	if override != "" && isDevelopmentHost(hostname) {
		return domain.CanonicalID(override), nil
	}

	label := subdomainLabel(hostname)
	if label == "" {
		return "", domain.ErrTenantNotFound
	}

	// Every prefix of the label is a candidate alias; one indexed $in query
	// fetches all companies holding any of them.
	candidates := labelPrefixes(label)
	companies, err := s.companies.FindByAnyAlias(ctx, candidates)
	if err != nil {
		return "", err
	}

	companyID, ok := bestAliasMatch(label, companies)
	if !ok {
		s.logger.Debug().Str("host", hostname).Str("label", label).Msg("no tenant alias matched")
		return "", domain.ErrTenantNotFound
	}
	return companyID, nil
}

// bestAliasMatch picks the winning company for a subdomain label. An exact
// alias is the longest possible prefix, so maximizing prefix length covers
// both precedence levels; remaining ties break on the smaller alias, then
// the smaller company ID, keeping resolution deterministic even when two
// tenants hold the same alias.
func bestAliasMatch(label string, companies []*domain.Company) (string, bool) {
	bestAlias := ""
	bestID := ""
	for _, company := range companies {
		companyID := domain.CanonicalID(company.ID)
		for _, raw := range company.DomainAliases {
			alias := strings.ToLower(strings.TrimSpace(raw))
			if alias == "" || !strings.HasPrefix(label, alias) {
				continue
			}
			switch {
			case len(alias) > len(bestAlias):
			case len(alias) == len(bestAlias) && alias < bestAlias:
			case alias == bestAlias && companyID < bestID:
			default:
				continue
			}
			bestAlias = alias
			bestID = companyID
		}
	}
	if bestID == "" {
		return "", false
	}
	return bestID, true
}

// normalizeHost lower-cases the host and strips any port.
func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return strings.Trim(host, "[]")
}

// isDevelopmentHost reports whether the host is a local or preview host on
// which the tenant override may be trusted.
func isDevelopmentHost(hostname string) bool {
	if hostname == "localhost" {
		return true
	}
	if ip := net.ParseIP(hostname); ip != nil {
		return ip.IsLoopback() || ip.IsPrivate()
	}
	for _, suffix := range devHostSuffixes {
		if strings.HasSuffix(hostname, suffix) {
			return true
		}
	}
	return false
}

// subdomainLabel extracts the tenant label: the left-most DNS label of a
// host with at least three labels. An apex host has no tenant subdomain.
func subdomainLabel(hostname string) string {
	parts := strings.Split(hostname, ".")
	if len(parts) < 3 {
		return ""
	}
	label := parts[0]
	if label == "www" {
		return ""
	}
	return label
}

// labelPrefixes returns every non-empty prefix of label, longest first.
func labelPrefixes(label string) []string {
	prefixes := make([]string, 0, len(label))
	for i := len(label); i > 0; i-- {
		prefixes = append(prefixes, label[:i])
	}
	return prefixes
}
