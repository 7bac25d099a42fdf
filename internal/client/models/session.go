// Package models defines the client-side data models of the session layer.
package models

// User is the authenticated identity as cached on the client.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	// IsDemo marks the resettable sandbox account.
	IsDemo bool `json:"isDemo"`
}

// Valid reports whether u carries the fields a session cannot live without.
func (u *User) Valid() bool {
	return u != nil && u.ID != "" && u.Email != ""
}

// UserPatch is a partial update of User. Nil fields are left untouched.
type UserPatch struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// Apply merges p onto u and returns the result; u itself is not modified.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	return u
}

// Session is a user record plus the token that proves the login.
type Session struct {
	User  User
	Token string
}

// ProfileFields are the editable identity/contact fields sent to the
// account service on an explicit profile save.
type ProfileFields struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Timezone  string `json:"timezone"`
	Language  string `json:"language"`
	Currency  string `json:"currency"`
}
