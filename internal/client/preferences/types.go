package preferences

import (
	"fmt"
	"net/mail"
	"regexp"
	"slices"

	"github.com/dmitrijs2005/gophsession/internal/common"
)

// Category names a group of settings. It is also the prefix of the
// namespaced storage key "{category}_{userID}".
type Category string

const (
	CategoryAppearance    Category = "appearance"
	CategoryNotifications Category = "notifications"
	CategoryProfile       Category = "profile"
	// CategoryBudget is derived from the profile currency and cannot be
	// written directly.
	CategoryBudget Category = "budgetPreferences"
)

// Categories lists every known category.
var Categories = []Category{CategoryAppearance, CategoryNotifications, CategoryProfile, CategoryBudget}

// legacyKeys are flat, pre-namespacing keys. They are read as a fallback
// and removed on purge, never written.
var legacyKeys = []string{"notifications", "transactions", "settings"}

func (c Category) valid() bool {
	return slices.Contains(Categories, c)
}

var (
	Themes           = []string{"light", "dark", "auto"}
	ColorSchemes     = []string{"blue", "green", "purple", "orange", "red", "pink", "indigo", "teal", "yellow", "gray"}
	FontSizes        = []string{"small", "medium", "large", "extra-large"}
	Layouts          = []string{"default", "wide", "centered"}
	CardStyles       = []string{"default", "sharp", "rounded", "pill"}
	SidebarPositions = []string{"left", "right"}
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type settings interface {
	validate() error
}

type Appearance struct {
	Theme              string  `json:"theme"`
	ColorScheme        string  `json:"colorScheme"`
	CustomPrimaryColor *string `json:"customPrimaryColor,omitempty"`
	FontSize           string  `json:"fontSize"`
	Layout             string  `json:"layout"`
	CardStyle          string  `json:"cardStyle"`
	CompactMode        bool    `json:"compactMode"`
	Animations         bool    `json:"animations"`
	SidebarPosition    string  `json:"sidebarPosition"`
}

func oneOf(field, value string, allowed []string) error {
	if !slices.Contains(allowed, value) {
		return common.NewValidationError(field, fmt.Sprintf("%q is not one of %v", value, allowed))
	}
	return nil
}

func (a *Appearance) validate() error {
	checks := []error{
		oneOf("theme", a.Theme, Themes),
		oneOf("colorScheme", a.ColorScheme, ColorSchemes),
		oneOf("fontSize", a.FontSize, FontSizes),
		oneOf("layout", a.Layout, Layouts),
		oneOf("cardStyle", a.CardStyle, CardStyles),
		oneOf("sidebarPosition", a.SidebarPosition, SidebarPositions),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if a.CustomPrimaryColor != nil && !hexColor.MatchString(*a.CustomPrimaryColor) {
		return common.NewValidationError("customPrimaryColor", "must be #rgb or #rrggbb")
	}
	return nil
}

// AppearancePatch is a partial Appearance; nil fields are left as stored.
type AppearancePatch struct {
	Theme              *string `json:"theme,omitempty"`
	ColorScheme        *string `json:"colorScheme,omitempty"`
	CustomPrimaryColor *string `json:"customPrimaryColor,omitempty"`
	FontSize           *string `json:"fontSize,omitempty"`
	Layout             *string `json:"layout,omitempty"`
	CardStyle          *string `json:"cardStyle,omitempty"`
	CompactMode        *bool   `json:"compactMode,omitempty"`
	Animations         *bool   `json:"animations,omitempty"`
	SidebarPosition    *string `json:"sidebarPosition,omitempty"`
}

// Notifications maps the fixed notification kinds to enabled flags.
type Notifications struct {
	GeneralEmails   bool `json:"generalEmails"`
	BudgetAlerts    bool `json:"budgetAlerts"`
	ReportEmails    bool `json:"reportEmails"`
	MarketingEmails bool `json:"marketingEmails"`
}

func (n *Notifications) validate() error { return nil }

type NotificationsPatch struct {
	GeneralEmails   *bool `json:"generalEmails,omitempty"`
	BudgetAlerts    *bool `json:"budgetAlerts,omitempty"`
	ReportEmails    *bool `json:"reportEmails,omitempty"`
	MarketingEmails *bool `json:"marketingEmails,omitempty"`
}

// Profile is the staging copy of the editable identity/contact fields. It
// is reconciled with the account service only on an explicit save.
type Profile struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Timezone       string  `json:"timezone"`
	Language       string  `json:"language"`
	Currency       string  `json:"currency"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

func (p *Profile) validate() error {
	if p.Email != "" {
		if _, err := mail.ParseAddress(p.Email); err != nil {
			return common.NewValidationError("email", "malformed email address")
		}
	}
	if _, ok := LookupCurrency(p.Currency); !ok {
		return common.NewValidationError("currency", fmt.Sprintf("unknown currency %q", p.Currency))
	}
	return nil
}

type ProfilePatch struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Timezone       *string `json:"timezone,omitempty"`
	Language       *string `json:"language,omitempty"`
	Currency       *string `json:"currency,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// Budget is the display denormalization of Profile.Currency.
type Budget struct {
	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currencySymbol"`
}

func (b *Budget) validate() error { return nil }

// FieldKind tells command-line editors how to read a member value.
type FieldKind int

const (
	FieldString FieldKind = iota
	FieldBool
	// FieldOptional is a string member that a null clears.
	FieldOptional
)

var fieldKinds = map[Category]map[string]FieldKind{
	CategoryAppearance: {
		"compactMode":        FieldBool,
		"animations":         FieldBool,
		"customPrimaryColor": FieldOptional,
	},
	CategoryNotifications: {
		"generalEmails":   FieldBool,
		"budgetAlerts":    FieldBool,
		"reportEmails":    FieldBool,
		"marketingEmails": FieldBool,
	},
	CategoryProfile: {
		"profilePicture": FieldOptional,
	},
}

// KindOf reports the kind of a category member. Unknown members are
// FieldString.
func KindOf(c Category, field string) FieldKind {
	return fieldKinds[c][field]
}
