package siteconfig

import "git.home.luguber.info/inful/siteconf/internal/util/sets"

// Document is the generic key-value tree the site engine reads. Values are
// map[string]any, []any, string, bool and numbers, as produced by the YAML
// and JSON decoders.
type Document map[string]any

// Top-level keys of the engine's configuration document.
const (
	keyTitle       = "title"
	keyDescription = "description"
	keyDest        = "dest"
	keyHead        = "head"
	keyTheme       = "theme"
	keyThemeConfig = "themeConfig"
	keyMarkdown    = "markdown"
)

// themeConfig keys.
const (
	keyNav                  = "nav"
	keyNavItems             = "navItems"
	keySidebar              = "sidebar"
	keyType                 = "type"
	keyBlogConfig           = "blogConfig"
	keyFriendLink           = "friendLink"
	keyLogo                 = "logo"
	keyAuthorAvatar         = "authorAvatar"
	keySearch               = "search"
	keySearchMaxSuggestions = "searchMaxSuggestions"
	keyLastUpdated          = "lastUpdated"
	keyAuthor               = "author"
	keyRecord               = "record"
	keyStartYear            = "startYear"
)

// Nested entity keys.
const (
	keyText        = "text"
	keyLink        = "link"
	keyIcon        = "icon"
	keyItems       = "items"
	keyCategory    = "category"
	keyTag         = "tag"
	keyLocation    = "location"
	keySocialLinks = "socialLinks"
	keyDesc        = "desc"
	keyAvatar      = "avatar"
	keyEmail       = "email"
	keyLineNumbers = "lineNumbers"
)

var knownTopLevel = sets.New(keyTitle, keyDescription, keyDest, keyHead, keyTheme, keyThemeConfig, keyMarkdown)

var knownThemeConfig = sets.New(
	keyNav, keyNavItems, keySidebar, keyType, keyBlogConfig, keyFriendLink, keyLogo, keyAuthorAvatar,
	keySearch, keySearchMaxSuggestions, keyLastUpdated, keyAuthor, keyRecord, keyStartYear,
)
