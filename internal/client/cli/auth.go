package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophsession/internal/client/services"
	"github.com/dmitrijs2005/gophsession/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const retryLater = "Could not save your changes, please try again later."

// report prints a user-facing line for err. Persistence failures get the
// generic retry message, service refusals their own message.
func (a *App) report(ctx context.Context, err error) {
	var (
		se *common.ServiceError
		ve *common.ValidationError
	)
	switch {
	case errors.As(err, &ve):
		a.println("Invalid input:", ve.Error())
	case errors.As(err, &se):
		a.println(se.Message)
	case errors.Is(err, common.ErrPersistence):
		a.logger.Error(ctx, "storage failure", "error", err)
		a.println(retryLater)
	case errors.Is(err, services.ErrAlreadyAuthenticated):
		a.println("Already logged in, log out first.")
	default:
		a.println("Error:", err.Error())
	}
}

// Login prompts for credentials and logs in through the gate.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ok, err := a.gate.Login(ctx, email, string(password))
	if err != nil {
		a.report(ctx, err)
		return err
	}
	if !ok {
		return nil
	}

	s := a.gate.Session()
	switch a.gate.Welcome() {
	case services.WelcomeDemo:
		a.println(fmt.Sprintf("Welcome to the demo, %s! Your changes can be reset with 'demo-reset'.", s.User.Name))
	default:
		a.println(fmt.Sprintf("Welcome back, %s!", s.User.Name))
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.gate.Logout(ctx)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	return a.gate.Guard(func(ctx context.Context) error {
		u := a.gate.Session().User
		a.println(fmt.Sprintf("%s <%s> id=%s", u.Name, u.Email, u.ID))
		if u.Avatar != "" {
			a.println("avatar:", u.Avatar)
		}
		if u.IsDemo {
			a.println("demo account")
		}
		return nil
	})(ctx)
}

func (a *App) DemoReset(ctx context.Context) error {
	return a.gate.Guard(func(ctx context.Context) error {
		if err := a.gate.ResetDemoAccount(ctx); err != nil {
			if errors.Is(err, common.ErrPolicy) {
				a.println("Only the demo account can be reset.")
			} else {
				a.report(ctx, err)
			}
			return err
		}
		a.println("Demo account restored.")
		return nil
	})(ctx)
}
