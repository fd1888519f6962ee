package auth

// Identity is the authenticated caller as extracted from the bearer token.
type Identity struct {
	ID    uint
	Name  string
	Roles []string
}

// Capabilities derives the caller's coarse permissions.
func (i Identity) Capabilities() Capabilities {
	return Authorize(i.Roles)
}
