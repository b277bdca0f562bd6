package onboarding

import (
	"fmt"
	"strings"
)

// Role is the onboarding path picked on the landing screen.
type Role int

const (
	RoleNone Role = iota
	Shopper
	Merchant
)

func (r Role) String() string {
	switch r {
	case Shopper:
		return "shopper"
	case Merchant:
		return "merchant"
	default:
		return "none"
	}
}

// Valid reports whether r is a selectable role.
func (r Role) Valid() bool {
	return r == Shopper || r == Merchant
}

func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shopper":
		return Shopper, nil
	case "merchant":
		return Merchant, nil
	default:
		return RoleNone, fmt.Errorf("unknown role %q", s)
	}
}
