package permission

import "sort"

const (
	CodeAll        = "all"
	CodeSuperAdmin = "super_admin"
)

// Set is a user's effective permission codes: role grants plus additional grants.
// Grants are purely additive; there are no deny entries.
type Set map[string]struct{}

func NewSet(groups ...[]string) Set {
	s := make(Set)
	for _, codes := range groups {
		for _, c := range codes {
			if c != "" {
				s[c] = struct{}{}
			}
		}
	}
	return s
}

// Has reports whether required is granted directly or through a wildcard.
// A nil set or an empty required code denies.
func (s Set) Has(required string) bool {
	if len(s) == 0 || required == "" {
		return false
	}
	if _, ok := s[required]; ok {
		return true
	}
	if _, ok := s[CodeAll]; ok {
		return true
	}
	_, ok := s[CodeSuperAdmin]
	return ok
}

// HasAny is true when at least one of codes passes Has.
func (s Set) HasAny(codes ...string) bool {
	for _, c := range codes {
		if s.Has(c) {
			return true
		}
	}
	return false
}

// accessCodes manage who can do what. Holding any of them is holding everything.
var accessCodes = []string{
	"roles.create", "roles.update", "roles.delete",
	"permissions.create", "permissions.update", "permissions.delete",
	"users.create", "users.update", "users.delete",
}

// GrantsAccessControl reports whether s can change roles, permissions or
// users, directly or through a wildcard.
func (s Set) GrantsAccessControl() bool {
	return s.HasAny(accessCodes...)
}

func (s Set) Codes() []string {
	codes := make([]string, 0, len(s))
	for c := range s {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
