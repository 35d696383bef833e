package siteconfig

// Defaults applied to genuinely optional fields. Everything else is either
// required or defaults to the zero value.
const (
	DefaultTheme                = "reco"
	DefaultSearchMaxSuggestions = 10

	DefaultCategoryLocation = 2
	DefaultCategoryLabel    = "Category"
	DefaultTagLocation      = 3
	DefaultTagLabel         = "Tag"
)

func defaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		navItems:             []NavItem{},
		sidebar:              map[string][]string{},
		siteType:             SiteTypeBlog,
		blog:                 defaultBlogConfig(),
		friendLinks:          []FriendLink{},
		searchMaxSuggestions: DefaultSearchMaxSuggestions,
		passthrough:          map[string]any{},
	}
}

func defaultBlogConfig() BlogConfig {
	return BlogConfig{
		category:    MenuSlot{navLocation: DefaultCategoryLocation, label: DefaultCategoryLabel},
		tag:         MenuSlot{navLocation: DefaultTagLocation, label: DefaultTagLabel},
		socialLinks: []SocialLink{},
	}
}
