package domain

const (
	RoleAdmin    = "admin"
	RoleMerchant = "merchant"
	RoleCustomer = "customer"
)

// Identity is the authenticated user's profile as known to the console.
// Role is compared as an opaque string; the backend owns the enumeration.
type Identity struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Session pairs an Identity with its bearer credential. Both are present or
// both are absent; a Session never carries a token without a user.
type Session struct {
	User  *Identity `json:"user"`
	Token string    `json:"token"`
}

// Authenticated reports whether the session holds an identity.
func (s Session) Authenticated() bool {
	return s.User != nil
}

// Complete reports whether identity and credential are either both set or both empty.
func (s Session) Complete() bool {
	return (s.User != nil) == (s.Token != "")
}

// Role returns the identity role, or "" for an anonymous session.
func (s Session) Role() string {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// Registration carries the fields submitted when creating an account.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
