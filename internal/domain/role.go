package domain

import "fmt"

// Role represents an actor role. Every policy decision in the service is
// driven by the single policy table below instead of scattered role checks.
type Role string

const (
	RoleStudent            Role = "STUDENT"
	RoleCenterManager      Role = "CENTER_MANAGER"
	RolePedagogicalManager Role = "PEDAGOGICAL_MANAGER"
	RoleAssetManager       Role = "ASSET_MANAGER"
	RoleExecutiveDirector  Role = "EXECUTIVE_DIRECTOR"
	RoleAdmin              Role = "ADMIN"
)

// RolePolicy describes how booking policies apply to a role
type RolePolicy struct {
	// MaxDurationHours maximum reservation length for the role
	MaxDurationHours int
	// CooldownExempt skips both cooldown sub-rules (single-active and post-completion)
	CooldownExempt bool
	// SingleActiveLimited caps the role at one pending/confirmed reservation
	SingleActiveLimited bool
	// CancellationLocked applies the pre-start lock window to own reservations
	CancellationLocked bool
	// CanModerate allows pending -> confirmed / rejected transitions
	CanModerate bool
	// CanCancelAnyWithReason allows cancelling any reservation with a recorded reason
	CanCancelAnyWithReason bool
}

// rolePolicies единственная таблица ролевых правил сервиса
var rolePolicies = map[Role]RolePolicy{
	RoleStudent: {
		MaxDurationHours:    DefaultStudentMaxDurationHours,
		SingleActiveLimited: true,
		CancellationLocked:  true,
	},
	RoleCenterManager: {
		MaxDurationHours: DefaultMaxDurationHours,
		CooldownExempt:   true,
		CanModerate:      true,
	},
	RolePedagogicalManager: {
		MaxDurationHours:       DefaultMaxDurationHours,
		CooldownExempt:         true,
		CanModerate:            true,
		CanCancelAnyWithReason: true,
	},
	RoleAssetManager: {
		MaxDurationHours:       DefaultMaxDurationHours,
		CooldownExempt:         true,
		CanModerate:            true,
		CanCancelAnyWithReason: true,
	},
	RoleExecutiveDirector: {
		MaxDurationHours:       DefaultMaxDurationHours,
		CooldownExempt:         true,
		CanModerate:            true,
		CanCancelAnyWithReason: true,
	},
	RoleAdmin: {
		MaxDurationHours:       DefaultMaxDurationHours,
		CooldownExempt:         true,
		CanModerate:            true,
		CanCancelAnyWithReason: true,
	},
}

// ParseRole validates and converts a string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if _, ok := rolePolicies[role]; !ok {
		return "", fmt.Errorf("domain: unknown role %q", s)
	}
	return role, nil
}

// Policy returns the policy table entry for the role.
// Unknown roles fall back to the student policy, the most restrictive one.
func (r Role) Policy() RolePolicy {
	if p, ok := rolePolicies[r]; ok {
		return p
	}
	return rolePolicies[RoleStudent]
}

// IsValid returns true for known roles
func (r Role) IsValid() bool {
	_, ok := rolePolicies[r]
	return ok
}
