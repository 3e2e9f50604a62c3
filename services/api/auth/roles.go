// Package auth authenticates dashboard users and issues role-bearing tokens.
package auth

import "fmt"

// Role decides which dashboard a user lands on.
type Role string

const (
	RoleAnalyst      Role = "analyst"
	RolePolicymaker  Role = "policymaker"
	RoleFieldOfficer Role = "fieldofficer"
)

var roleLabels = map[Role]string{
	RoleAnalyst:      "Environmental Analyst",
	RolePolicymaker:  "Policy Maker",
	RoleFieldOfficer: "Field Officer",
}

var roleDefaults = map[Role]string{
	RoleAnalyst:      "/dashboard",
	RolePolicymaker:  "/policy-insights",
	RoleFieldOfficer: "/map-view",
}

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleLabels[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Label is the human-readable role name.
func (r Role) Label() string {
	return roleLabels[r]
}

// DefaultRoute is the page a role lands on after login.
func (r Role) DefaultRoute() string {
	return roleDefaults[r]
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
