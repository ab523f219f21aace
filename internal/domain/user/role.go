package user

import (
	"errors"
	"strings"
)

// RoleCode is the role attached to an account. Admins may manage the
// catalog, other users, and every order; customers only touch their own
// cart and orders.
type RoleCode string

const (
	RoleCodeAdmin    RoleCode = "ADMIN"
	RoleCodeCustomer RoleCode = "CUSTOMER"
)

func (c RoleCode) IsValid() bool {
	switch c {
	case RoleCodeAdmin, RoleCodeCustomer:
		return true
	default:
		return false
	}
}

func (c RoleCode) IsAdmin() bool {
	return c == RoleCodeAdmin
}

var ErrInvalidRoleCode = errors.New("invalid role code")

// ParseRoleCode converts a string from a request or the DB into a RoleCode.
func ParseRoleCode(s string) (RoleCode, error) {
	c := RoleCode(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ErrInvalidRoleCode
	}
	return c, nil
}
