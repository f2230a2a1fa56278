package enums

import "fmt"

// ActorRole is the marketplace role a request acts under. Role selection is
// client-side; the platform carries no credential model.
type ActorRole string

const (
	ActorRoleTendero    ActorRole = "tendero"
	ActorRoleBodega     ActorRole = "bodega"
	ActorRoleRepartidor ActorRole = "repartidor"
	ActorRoleAdmin      ActorRole = "admin"
)

var validActorRoles = []ActorRole{
	ActorRoleTendero,
	ActorRoleBodega,
	ActorRoleRepartidor,
	ActorRoleAdmin,
}

// String implements fmt.Stringer.
func (a ActorRole) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ActorRole.
func (a ActorRole) IsValid() bool {
	for _, candidate := range validActorRoles {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseActorRole converts raw input into an ActorRole.
func ParseActorRole(value string) (ActorRole, error) {
	for _, candidate := range validActorRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid actor role %q", value)
}
