package models

import "fmt"

// Role is the privilege level attached to a user profile.
type Role string

const (
	RoleUser    Role = "user"
	RoleAnalyst Role = "analyst"
	RoleAdmin   Role = "admin"
)

// roleRank defines the total privilege order: user < analyst < admin.
var roleRank = map[Role]int{
	RoleUser:    1,
	RoleAnalyst: 2,
	RoleAdmin:   3,
}

// ParseRole converts a raw string into a Role, rejecting anything outside the
// closed enumeration.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether the role belongs to the enumeration.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Meets reports whether the role satisfies the required privilege level.
// A higher role always satisfies a lower requirement, so admin meets analyst.
func (r Role) Meets(required Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	want, ok := roleRank[required]
	if !ok {
		return false
	}
	return have >= want
}
