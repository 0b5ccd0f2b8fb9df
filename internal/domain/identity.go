package domain

// Identity is the claim set carried by an access token. It is the only
// source of caller identity for the rest of the request lifecycle.
type Identity struct {
	UserID   string
	Username string
	RoleID   RoleID
}
