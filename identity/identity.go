package identity

// Identity is the caller's resolved identity. Immutable for the duration of
// a request.
type Identity struct {
	UID           string
	Admin         bool
	Authenticated bool
}

// Anonymous returns the identity of a caller presenting no credential.
func Anonymous() Identity {
	return Identity{}
}

// User returns an authenticated non-admin identity. Mostly used in tests
// and by the token service.
func User(uid string) Identity {
	return Identity{UID: uid, Authenticated: true}
}

// AdminUser returns an authenticated admin identity.
func AdminUser(uid string) Identity {
	return Identity{UID: uid, Admin: true, Authenticated: true}
}
