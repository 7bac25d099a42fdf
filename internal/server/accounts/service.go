// Package accounts implements the account service behind the gRPC API:
// credential checks, profile edits, password changes, account deletion,
// avatar uploads and the resettable demo account.
package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/dmitrijs2005/gophsession/internal/cryptox"
	"github.com/dmitrijs2005/gophsession/internal/logging"
	"github.com/dmitrijs2005/gophsession/internal/server/avatars"
)

// MinPasswordLength matches the client-side rule.
const MinPasswordLength = 8

// DemoSeed is the state the demo account is created with and reset to.
type DemoSeed struct {
	Password string
	Profile  Profile
}

// DefaultDemo returns the standard demo seed for email and password.
func DefaultDemo(email, password string) DemoSeed {
	return DemoSeed{
		Password: password,
		Profile: Profile{
			FirstName: "Demo",
			LastName:  "User",
			Email:     NormalizeEmail(email),
			Timezone:  "UTC",
			Language:  "en",
			Currency:  "USD",
		},
	}
}

type Service struct {
	repo    Repository
	avatars avatars.Storage
	logger  logging.Logger
	demo    DemoSeed

	// compared against on unknown emails so both paths derive a key
	dummySalt     []byte
	dummyVerifier []byte
}

func NewService(repo Repository, store avatars.Storage, logger logging.Logger, demo DemoSeed) *Service {
	return &Service{
		repo:          repo,
		avatars:       store,
		logger:        logger,
		demo:          demo,
		dummySalt:     common.GenerateRandByteArray(cryptox.SaltSize),
		dummyVerifier: common.GenerateRandByteArray(32),
	}
}

// Register creates an account with the given password and profile.
func (s *Service) Register(ctx context.Context, password string, p Profile, demo bool) (*Account, error) {
	p.Email = NormalizeEmail(p.Email)
	if p.Email == "" {
		return nil, ErrEmailRequired
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	a := &Account{IsDemo: demo}
	a.apply(p)
	a.Salt, a.Verifier = cryptox.HashPassword(password)

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("error creating account: %w", err)
	}
	s.logger.Info(ctx, "account created", "id", created.ID, "demo", demo)
	return created, nil
}

// SeedDemo creates the demo account unless it already exists.
func (s *Service) SeedDemo(ctx context.Context) error {
	_, err := s.repo.GetByEmail(ctx, s.demo.Profile.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("lookup demo account: %w", err)
	}
	_, err = s.Register(ctx, s.demo.Password, s.demo.Profile, true)
	return err
}

func (s *Service) Login(ctx context.Context, email, password string) (*Account, error) {
	a, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			cryptox.VerifyPassword(password, s.dummySalt, s.dummyVerifier)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !cryptox.VerifyPassword(password, a.Salt, a.Verifier) {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

func (s *Service) get(ctx context.Context, id string) (*Account, error) {
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, ErrAccountNotFound
	}
	return a, err
}

// UpdateProfile replaces the profile fields of account id.
func (s *Service) UpdateProfile(ctx context.Context, id string, p Profile) (*Account, error) {
	p.Email = NormalizeEmail(p.Email)
	if p.Email == "" {
		return nil, ErrEmailRequired
	}

	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	a.apply(p)
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) ChangePassword(ctx context.Context, id, current, next string) error {
	if len(next) < MinPasswordLength {
		return ErrWeakPassword
	}

	a, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !cryptox.VerifyPassword(current, a.Salt, a.Verifier) {
		return ErrWrongPassword
	}

	a.Salt, a.Verifier = cryptox.HashPassword(next)
	return s.repo.Update(ctx, a)
}

// DeleteAccount removes account id after re-checking its password.
// The demo account is never deleted.
func (s *Service) DeleteAccount(ctx context.Context, id, password string) error {
	a, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if a.IsDemo {
		return ErrDemoProtected
	}
	if !cryptox.VerifyPassword(password, a.Salt, a.Verifier) {
		return ErrWrongPassword
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "account deleted", "id", id)
	return nil
}

// ResetDemo restores the demo account to its seed profile and password.
func (s *Service) ResetDemo(ctx context.Context, email string) error {
	if NormalizeEmail(email) != s.demo.Profile.Email {
		return ErrNotDemo
	}

	a, err := s.repo.GetByEmail(ctx, s.demo.Profile.Email)
	if errors.Is(err, common.ErrorNotFound) {
		return s.SeedDemo(ctx)
	}
	if err != nil {
		return err
	}

	a.apply(s.demo.Profile)
	a.Avatar = ""
	a.IsDemo = true
	a.Salt, a.Verifier = cryptox.HashPassword(s.demo.Password)

	if err := s.repo.Update(ctx, a); err != nil {
		return err
	}
	s.logger.Info(ctx, "demo account reset", "id", a.ID)
	return nil
}

// UploadAvatar stores data as the avatar of account id and returns its URL.
func (s *Service) UploadAvatar(ctx context.Context, id, fileName, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}

	a, err := s.get(ctx, id)
	if err != nil {
		return "", err
	}

	url, err := s.avatars.Put(ctx, avatars.ObjectKey(id, fileName), contentType, data)
	if err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}

	a.Avatar = url
	if err := s.repo.Update(ctx, a); err != nil {
		return "", err
	}
	return url, nil
}
