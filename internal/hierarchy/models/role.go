package models

import (
	"strings"

	dErrors "ledgerguard/pkg/domain-errors"
)

// RoleName is the closed set of account roles in a tenant tree.
type RoleName string

const (
	RoleSuperAdmin RoleName = "SUPER ADMIN"
	RoleAdmin      RoleName = "ADMIN"
	RoleUser       RoleName = "USER"
	RoleEmployee   RoleName = "EMPLOYEE"
)

func (r RoleName) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser, RoleEmployee:
		return true
	}
	return false
}

// IsAdministrative reports whether the role qualifies as a parent admin for
// employees acting on its behalf.
func (r RoleName) IsAdministrative() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

func (r RoleName) String() string { return string(r) }

// ParseRoleName accepts the canonical names case-insensitively, with "_" or
// " " between words.
func ParseRoleName(s string) (RoleName, error) {
	norm := RoleName(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "_", " ")))
	if !norm.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "unknown role name")
	}
	return norm, nil
}

// RoleType distinguishes account holders from staff.
type RoleType string

const (
	RoleTypeBusiness RoleType = "business"
	RoleTypeEmployee RoleType = "employee"
)

func (t RoleType) IsValid() bool {
	return t == RoleTypeBusiness || t == RoleTypeEmployee
}

// ExpectedRoleType returns the only role type a role may carry.
func (r RoleName) ExpectedRoleType() RoleType {
	if r == RoleEmployee {
		return RoleTypeEmployee
	}
	return RoleTypeBusiness
}
