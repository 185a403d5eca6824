package auth

import (
	"fmt"
	"strings"

	"loan-origination/internal/domain/apperr"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleOfficer  Role = "OFFICER"
)

var (
	ErrInvalidRole   = fmt.Errorf("%w: role must be CUSTOMER or OFFICER", apperr.ErrValidation)
	ErrOfficerOnly   = fmt.Errorf("%w: officer role required", apperr.ErrForbidden)
	ErrCustomerOnly  = fmt.Errorf("%w: customer role required", apperr.ErrForbidden)
	ErrMissingCaller = fmt.Errorf("%w: missing caller identity", apperr.ErrUnauthenticated)
)

// ParseRole accepts any casing and returns the canonical uppercase role.
func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(raw))); r {
	case RoleCustomer, RoleOfficer:
		return r, nil
	}
	return "", fmt.Errorf("%w (got %q)", ErrInvalidRole, raw)
}

// Caller is the authenticated identity behind a request. It is supplied by the
// transport layer after token verification and trusted as-is by the usecases.
type Caller struct {
	UserID string
	Role   Role
}

func (c Caller) IsOfficer() bool  { return c.Role == RoleOfficer }
func (c Caller) IsCustomer() bool { return c.Role == RoleCustomer }

func (c Caller) RequireOfficer() error {
	if c.UserID == "" {
		return ErrMissingCaller
	}
	if !c.IsOfficer() {
		return ErrOfficerOnly
	}
	return nil
}

func (c Caller) RequireCustomer() error {
	if c.UserID == "" {
		return ErrMissingCaller
	}
	if !c.IsCustomer() {
		return ErrCustomerOnly
	}
	return nil
}
