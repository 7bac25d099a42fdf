package preferences

func DefaultAppearance() Appearance {
	return Appearance{
		Theme:           "light",
		ColorScheme:     "blue",
		FontSize:        "medium",
		Layout:          "default",
		CardStyle:       "default",
		CompactMode:     false,
		Animations:      true,
		SidebarPosition: "left",
	}
}

func DefaultNotifications() Notifications {
	return Notifications{
		GeneralEmails:   true,
		BudgetAlerts:    true,
		ReportEmails:    true,
		MarketingEmails: false,
	}
}

func DefaultProfile() Profile {
	return Profile{
		Timezone: "UTC",
		Language: "en",
		Currency: DefaultCurrencyLabel,
	}
}

func DefaultBudget() Budget {
	c, _ := LookupCurrency(DefaultCurrencyLabel)
	return Budget{Currency: c.Code, CurrencySymbol: c.Symbol}
}

// defaults returns a pointer to the category defaults, ready to be
// overlaid by a stored JSON object.
func defaults(c Category) settings {
	switch c {
	case CategoryAppearance:
		v := DefaultAppearance()
		return &v
	case CategoryNotifications:
		v := DefaultNotifications()
		return &v
	case CategoryProfile:
		v := DefaultProfile()
		return &v
	default:
		v := DefaultBudget()
		return &v
	}
}

func zero(c Category) settings {
	switch c {
	case CategoryAppearance:
		return &Appearance{}
	case CategoryNotifications:
		return &Notifications{}
	case CategoryProfile:
		return &Profile{}
	default:
		return &Budget{}
	}
}
