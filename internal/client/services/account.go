package services

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"slices"
	"unicode"

	"github.com/dmitrijs2005/gophsession/internal/client/client"
	"github.com/dmitrijs2005/gophsession/internal/client/models"
	"github.com/dmitrijs2005/gophsession/internal/client/preferences"
	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/dmitrijs2005/gophsession/internal/logging"
)

const (
	MaxAvatarBytes    = 2 << 20
	MinPasswordLength = 8
)

// AvatarContentTypes are the accepted avatar formats, as sniffed from the data.
var AvatarContentTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// ProfileStager stages edited profile fields in the preference store.
type ProfileStager interface {
	SetProfile(ctx context.Context, userID string, p preferences.ProfilePatch) error
}

type AccountService struct {
	gate     *Gate
	client   client.Client
	profiles ProfileCache
	prefs    ProfileStager
	logger   logging.Logger
}

func NewAccountService(gate *Gate, c client.Client, profiles ProfileCache, prefs ProfileStager, logger logging.Logger) *AccountService {
	return &AccountService{
		gate:     gate,
		client:   c,
		profiles: profiles,
		prefs:    prefs,
		logger:   logger.With("module", "account_service"),
	}
}

func (a *AccountService) active() (*models.Session, error) {
	s := a.gate.Session()
	if s == nil {
		return nil, ErrNotAuthenticated
	}
	return s, nil
}

// UpdateProfile saves the profile on the account service, merges the
// returned user into the cache and stages the fields locally.
func (a *AccountService) UpdateProfile(ctx context.Context, f models.ProfileFields) (*models.User, error) {
	s, err := a.active()
	if err != nil {
		return nil, err
	}
	if _, err := mail.ParseAddress(f.Email); err != nil {
		return nil, common.NewValidationError("email", "malformed email address")
	}
	if _, ok := preferences.LookupCurrency(f.Currency); !ok {
		return nil, common.NewValidationError("currency", fmt.Sprintf("unknown currency %q", f.Currency))
	}

	remote, err := a.client.UpdateProfile(ctx, s.User.ID, f)
	if err != nil {
		return nil, err
	}

	user, err := a.profiles.MergeProfile(ctx, models.UserPatch{Name: &remote.Name, Email: &remote.Email})
	if err != nil {
		return nil, err
	}
	a.gate.setUser(*user)

	err = a.prefs.SetProfile(ctx, s.User.ID, preferences.ProfilePatch{
		FirstName: &f.FirstName,
		LastName:  &f.LastName,
		Email:     &f.Email,
		Phone:     &f.Phone,
		Timezone:  &f.Timezone,
		Language:  &f.Language,
		Currency:  &f.Currency,
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info(ctx, "profile updated", "user_id", user.ID)
	return user, nil
}

// ValidatePassword enforces the password policy: at least eight characters
// with an upper case letter, a lower case letter and a digit.
func ValidatePassword(p string) error {
	if len([]rune(p)) < MinPasswordLength {
		return common.NewValidationError("newPassword", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	var upper, lower, digit bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return common.NewValidationError("newPassword", "must contain upper and lower case letters and a digit")
	}
	return nil
}

func (a *AccountService) ChangePassword(ctx context.Context, current, next, confirm string) error {
	s, err := a.active()
	if err != nil {
		return err
	}
	if current == "" {
		return common.NewValidationError("currentPassword", "required")
	}
	if next != confirm {
		return common.NewValidationError("confirmPassword", "passwords do not match")
	}
	if err := ValidatePassword(next); err != nil {
		return err
	}

	if err := a.client.ChangePassword(ctx, s.User.ID, current, next); err != nil {
		return err
	}
	a.logger.Info(ctx, "password changed", "user_id", s.User.ID)
	return nil
}

// DeleteAccount deletes the account on the service and then logs out.
func (a *AccountService) DeleteAccount(ctx context.Context, password string) error {
	s, err := a.active()
	if err != nil {
		return err
	}
	if password == "" {
		return common.NewValidationError("password", "required")
	}

	if err := a.client.DeleteAccount(ctx, s.User.ID, password); err != nil {
		return err
	}
	a.logger.Info(ctx, "account deleted", "user_id", s.User.ID)
	return a.gate.Logout(ctx)
}

// UploadAvatar validates and uploads an image, then records its URL as the
// user's avatar and staged profile picture.
func (a *AccountService) UploadAvatar(ctx context.Context, fileName string, data []byte) (string, error) {
	s, err := a.active()
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", common.NewValidationError("file", "empty file")
	}
	if len(data) > MaxAvatarBytes {
		return "", common.NewValidationError("file", "file must be 2 MiB or smaller")
	}
	contentType := http.DetectContentType(data)
	if !slices.Contains(AvatarContentTypes, contentType) {
		return "", common.NewValidationError("file", fmt.Sprintf("unsupported image type %s", contentType))
	}

	url, err := a.client.Upload(ctx, s.User.ID, fileName, contentType, data)
	if err != nil {
		return "", err
	}

	user, err := a.profiles.MergeProfile(ctx, models.UserPatch{Avatar: &url})
	if err != nil {
		return "", err
	}
	a.gate.setUser(*user)

	if err := a.prefs.SetProfile(ctx, s.User.ID, preferences.ProfilePatch{ProfilePicture: &url}); err != nil {
		return "", err
	}
	return url, nil
}
