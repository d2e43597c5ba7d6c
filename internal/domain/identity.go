package domain

import "sort"

// PermissionSet is an unordered set of capability names such as "inventory.write".
type PermissionSet map[string]struct{}

// NewPermissionSet builds a set, dropping blanks and duplicates.
func NewPermissionSet(names ...string) PermissionSet {
	set := make(PermissionSet, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// Has reports whether the set contains name.
func (s PermissionSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Slice returns the sorted members of the set.
func (s PermissionSet) Slice() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Identity is the resolved subject used for authorization decisions.
// It is derived per request and never mutated while the request is in flight.
type Identity struct {
	SubjectID   string
	Email       string
	Name        string
	RoleID      string
	RoleName    string
	OfficeID    string
	Permissions PermissionSet
	Status      UserStatus
}

// Active reports whether the identity may authenticate.
func (i *Identity) Active() bool {
	return i != nil && i.Status == UserStatusActive
}

// IdentityRecord is what the storage collaborator returns for a credential lookup:
// the identity plus the stored password hash.
type IdentityRecord struct {
	Identity
	PasswordHash string
}
