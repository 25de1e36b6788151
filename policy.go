package authcore

import "github.com/studyapp/authcore/account"

// Policy is the static route-to-required-authority table. Authorization is
// fully stateless: every request re-verifies the presented token and is then
// checked against this table, with no session state anywhere.
//
// Two authority forms exist. A basic-credential principal carries granted
// roles ("ROLE_ADMIN"); a verified bearer token carries token scopes
// ("SCOPE_ROLE_ADMIN", see [AuthResult.Authorities]). Each rule names the
// form appropriate to how its route authenticates.
type Policy struct {
	rules    []policyRule
	fallback []string
}

type policyRule struct {
	route string
	anyOf []string
}

// DefaultPolicy returns the table for the token endpoints:
//
//	/oauth2/token    basic-credential auth, account role SYSTEM/ADMIN/USER
//	/oauth2/refresh  bearer token with the REFRESH scope only
//	/oauth2/revoke   any authenticated bearer token
//	all other routes bearer token with a privileged (non-REFRESH) scope
func DefaultPolicy() *Policy {
	privilegedRoles := []string{
		account.TypeSystem.Role(),
		account.TypeAdmin.Role(),
		account.TypeUser.Role(),
	}
	privilegedScopes := []string{
		account.TypeSystem.TokenScope(),
		account.TypeAdmin.TokenScope(),
		account.TypeUser.TokenScope(),
	}
	anyScope := append(append([]string{}, privilegedScopes...), account.TypeRefresh.TokenScope())

	return &Policy{
		rules: []policyRule{
			{route: "/oauth2/token", anyOf: privilegedRoles},
			{route: "/oauth2/refresh", anyOf: []string{account.TypeRefresh.TokenScope()}},
			{route: "/oauth2/revoke", anyOf: anyScope},
		},
		fallback: privilegedScopes,
	}
}

// RequiredAuthorities returns the authority set a request to route must hold
// at least one of.
func (p *Policy) RequiredAuthorities(route string) []string {
	for _, rule := range p.rules {
		if rule.route == route {
			return rule.anyOf
		}
	}
	return p.fallback
}

// Allows reports whether any held authority satisfies the rule for route.
func (p *Policy) Allows(route string, authorities []string) bool {
	required := p.RequiredAuthorities(route)
	for _, have := range authorities {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}
