package accounts

import "errors"

// Errors whose text is safe to return to callers of the account service.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailRequired      = errors.New("email is required")
	ErrEmailTaken         = errors.New("email is already in use")
	ErrAccountNotFound    = errors.New("account not found")
	ErrNotDemo            = errors.New("only the demo account can be reset")
	ErrDemoProtected      = errors.New("the demo account cannot be deleted")
	ErrEmptyUpload        = errors.New("uploaded file is empty")
)

var public = []error{
	ErrInvalidCredentials,
	ErrWrongPassword,
	ErrWeakPassword,
	ErrEmailRequired,
	ErrEmailTaken,
	ErrAccountNotFound,
	ErrNotDemo,
	ErrDemoProtected,
	ErrEmptyUpload,
}

// PublicMessage returns the caller-facing text of err and whether err is one
// of the errors above. Other errors should be logged and reported generically.
func PublicMessage(err error) (string, bool) {
	for _, e := range public {
		if errors.Is(err, e) {
			return e.Error(), true
		}
	}
	return "", false
}
