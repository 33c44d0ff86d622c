package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles carried in the bearer token.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleMerchant Role = "MERCHANT"
	RoleBuyer    Role = "BUYER"
	RoleGuest    Role = "GUEST"
)

// DefaultRole is assigned when registration does not ask for one.
const DefaultRole = RoleBuyer

// Roles lists every valid role in the order they are reported to callers.
func Roles() []Role {
	return []Role{RoleAdmin, RoleMerchant, RoleBuyer, RoleGuest}
}

// InvalidRoleError is returned by ParseRole for values outside the enum.
type InvalidRoleError struct {
	Value string
}

func (e *InvalidRoleError) Error() string {
	names := make([]string, 0, 4)
	for _, r := range Roles() {
		names = append(names, string(r))
	}
	return fmt.Sprintf("Invalid role: %s. Valid values are: %s", e.Value, strings.Join(names, ", "))
}

// ParseRole maps a case-insensitive role name onto the enum. An empty string
// yields DefaultRole.
func ParseRole(s string) (Role, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultRole, nil
	}
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", &InvalidRoleError{Value: s}
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMerchant, RoleBuyer, RoleGuest:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
