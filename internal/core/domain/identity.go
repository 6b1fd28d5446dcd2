package domain

import "github.com/google/uuid"

const (
	RolePartnerAdmin   = "PARTNER_ADMIN"
	RoleTheatreManager = "THEATRE_MANAGER"
	RoleCustomer       = "CUSTOMER"
)

// Identity is the verified caller of a request. It is built once at the edge
// and passed down explicitly; nothing stores it between requests.
type Identity struct {
	UserID   uuid.UUID
	TenantID *uuid.UUID
	Roles    []string
	// Authorization is the raw header, forwarded to sibling services.
	Authorization string
}

func (i Identity) IsAnonymous() bool {
	return i.UserID == uuid.Nil
}

func (i Identity) HasAnyRole(roles ...string) bool {
	for _, have := range i.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
