package context

import (
	"slices"

	"github.com/labstack/echo/v4"
)

// KeyIdentity is the key for storing the authenticated caller in echo.Context.
const KeyIdentity ContextKey = "identity"

// Identity is the caller established from a valid access token.
type Identity struct {
	UserID   string
	UserName string
	Roles    []string
}

// HasRole reports whether the caller holds role.
func (i *Identity) HasRole(role string) bool {
	return slices.Contains(i.Roles, role)
}

// SetIdentity stores the authenticated caller in echo.Context.
func SetIdentity(c echo.Context, identity *Identity) {
	c.Set(string(KeyIdentity), identity)
}

// GetIdentity returns the authenticated caller, or nil for anonymous requests.
func GetIdentity(c echo.Context) *Identity {
	if identity, ok := c.Get(string(KeyIdentity)).(*Identity); ok {
		return identity
	}

	return nil
}
