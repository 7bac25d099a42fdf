package accounts

import (
	"strings"
	"time"
)

// Account is a stored user account. Salt and Verifier come from cryptox.
type Account struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Timezone  string
	Language  string
	Currency  string
	Avatar    string
	Salt      []byte
	Verifier  []byte
	IsDemo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Name is the display name: first and last name, or the email when both are empty.
func (a *Account) Name() string {
	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	if name == "" {
		return a.Email
	}
	return name
}

// Profile is the editable part of an account. UpdateProfile replaces all of it.
type Profile struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Timezone  string
	Language  string
	Currency  string
}

func (a *Account) apply(p Profile) {
	a.FirstName = p.FirstName
	a.LastName = p.LastName
	a.Email = p.Email
	a.Phone = p.Phone
	a.Timezone = p.Timezone
	a.Language = p.Language
	a.Currency = p.Currency
}

func (a *Account) clone() *Account {
	c := *a
	c.Salt = append([]byte(nil), a.Salt...)
	c.Verifier = append([]byte(nil), a.Verifier...)
	return &c
}

// NormalizeEmail lowercases and trims an address before lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
