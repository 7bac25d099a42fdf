package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gophsession/internal/client/models"
	"github.com/dmitrijs2005/gophsession/internal/client/preferences"
	"github.com/dmitrijs2005/gophsession/internal/common"
)

// showOrSet prints the category when args is empty, otherwise applies the
// key=value assignments as one merge.
func (a *App) showOrSet(ctx context.Context, c preferences.Category, args []string) error {
	userID := a.gate.ActiveUserID()

	if len(args) > 0 {
		patch, err := parseAssignments(c, args)
		if err != nil {
			a.println(err.Error())
			return err
		}
		if err := a.prefs.Set(ctx, userID, c, patch); err != nil {
			a.report(ctx, err)
			return err
		}
	}

	raw, err := a.prefs.Get(ctx, userID, c)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	return a.printJSON(raw)
}

func (a *App) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	a.println(string(data))
	return nil
}

// Appearance works without a session; values then live in memory only.
func (a *App) Appearance(ctx context.Context, args []string) error {
	return a.showOrSet(ctx, preferences.CategoryAppearance, args)
}

func (a *App) Notifications(ctx context.Context, args []string) error {
	return a.showOrSet(ctx, preferences.CategoryNotifications, args)
}

// Profile stages edits locally; "profile save" sends the staged fields to
// the account service.
func (a *App) Profile(ctx context.Context, args []string) error {
	return a.gate.Guard(func(ctx context.Context) error {
		if len(args) == 1 && args[0] == "save" {
			return a.saveProfile(ctx)
		}
		if len(args) == 1 && args[0] == "currencies" {
			for _, l := range preferences.CurrencyLabels() {
				a.println(l)
			}
			return nil
		}
		return a.showOrSet(ctx, preferences.CategoryProfile, args)
	})(ctx)
}

func (a *App) saveProfile(ctx context.Context) error {
	p, err := a.prefs.Profile(ctx, a.gate.ActiveUserID())
	if err != nil {
		a.report(ctx, err)
		return err
	}
	if p.Email == "" {
		p.Email = a.gate.Session().User.Email
	}

	u, err := a.account.UpdateProfile(ctx, models.ProfileFields{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		Timezone:  p.Timezone,
		Language:  p.Language,
		Currency:  p.Currency,
	})
	if err != nil {
		a.report(ctx, err)
		return err
	}
	a.println(fmt.Sprintf("Profile saved for %s <%s>.", u.Name, u.Email))
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	return a.gate.Guard(func(ctx context.Context) error {
		var pw [3][]byte
		defer func() {
			for _, p := range pw {
				common.WipeByteArray(p)
			}
		}()

		for i, prompt := range []string{"Current password", "New password", "Confirm new password"} {
			p, err := getPassword(prompt, a.out)
			if err != nil {
				return err
			}
			pw[i] = p
		}

		if err := a.account.ChangePassword(ctx, string(pw[0]), string(pw[1]), string(pw[2])); err != nil {
			a.report(ctx, err)
			return err
		}
		a.println("Password changed.")
		return nil
	})(ctx)
}

func (a *App) Avatar(ctx context.Context, args []string) error {
	return a.gate.Guard(func(ctx context.Context) error {
		if len(args) != 1 {
			a.println("Usage: avatar <path>")
			return nil
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			a.println("Error:", err.Error())
			return err
		}

		url, err := a.account.UploadAvatar(ctx, filepath.Base(args[0]), data)
		if err != nil {
			a.report(ctx, err)
			return err
		}
		a.println("Avatar uploaded:", url)
		return nil
	})(ctx)
}

// Export prints the user record and every preference category as JSON.
func (a *App) Export(ctx context.Context) error {
	return a.gate.Guard(func(ctx context.Context) error {
		s := a.gate.Session()
		prefs, err := a.prefs.Export(ctx, s.User.ID)
		if err != nil {
			a.report(ctx, err)
			return err
		}
		return a.printJSON(struct {
			User        models.User                              `json:"user"`
			Preferences map[preferences.Category]json.RawMessage `json:"preferences"`
		}{s.User, prefs})
	})(ctx)
}

func (a *App) DeleteAccount(ctx context.Context) error {
	return a.gate.Guard(func(ctx context.Context) error {
		confirm, err := getSimpleText(a.reader, "Type DELETE to remove your account permanently", a.out)
		if err != nil {
			return err
		}
		if confirm != "DELETE" {
			a.println("Cancelled.")
			return nil
		}

		pw, err := getPassword("Password", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(pw)

		if err := a.account.DeleteAccount(ctx, string(pw)); err != nil {
			a.report(ctx, err)
			return err
		}
		a.println("Account deleted.")
		return nil
	})(ctx)
}

// ClearAll removes the stored preferences of every user on this machine.
func (a *App) ClearAll(ctx context.Context) error {
	confirm, err := getSimpleText(a.reader, "Remove the preferences of all users? (yes/no)", a.out)
	if err != nil {
		return err
	}
	if confirm != "yes" {
		a.println("Cancelled.")
		return nil
	}
	if err := a.prefs.ClearAll(ctx); err != nil {
		a.report(ctx, err)
		return err
	}
	a.println("All preferences removed.")
	return nil
}
