package siteconfig

import (
	"fmt"
	"maps"
	"slices"

	"git.home.luguber.info/inful/siteconf/internal/foundation"
)

// SiteConfig is the validated site description handed to the site engine.
// It has no mutators; accessors return copies of every collection.
type SiteConfig struct {
	title       string
	description string
	destination string
	headTags    []HeadTag
	theme       string
	themeConfig ThemeConfig
	markdown    foundation.Option[MarkdownConfig]
	passthrough map[string]any
}

// Title is the site name shown in the header and the browser tab.
func (c SiteConfig) Title() string { return c.title }

// Description is the site summary used for the meta description tag.
func (c SiteConfig) Description() string { return c.description }

// Destination is the output directory the engine writes to ("dest").
func (c SiteConfig) Destination() string { return c.destination }

// HeadTags returns the extra <head> tags in rendering order.
func (c SiteConfig) HeadTags() []HeadTag { return slices.Clone(c.headTags) }

// Theme names the external theme package that renders the site.
func (c SiteConfig) Theme() string { return c.theme }

// ThemeConfig returns the theme settings. Its accessors copy as well.
func (c SiteConfig) ThemeConfig() ThemeConfig { return c.themeConfig }

// Markdown returns the engine's markdown options, None when the source had none.
func (c SiteConfig) Markdown() foundation.Option[MarkdownConfig] { return c.markdown }

// Passthrough returns a copy of the top-level keys this package does not interpret.
func (c SiteConfig) Passthrough() map[string]any { return copyBag(c.passthrough) }

// HeadTag is one (tag, attributes) pair appended to every generated page head.
type HeadTag struct {
	name    string
	attrs   map[string]string
	content foundation.Option[string]
}

func (h HeadTag) Name() string                  { return h.name }
func (h HeadTag) Attributes() map[string]string { return maps.Clone(h.attrs) }

// Content is the optional inner text of the tag, e.g. an inline script.
func (h HeadTag) Content() foundation.Option[string] { return h.content }

// ThemeConfig holds the theme-level settings ("themeConfig").
type ThemeConfig struct {
	navItems             []NavItem
	sidebar              map[string][]string
	siteType             SiteType
	blog                 BlogConfig
	friendLinks          []FriendLink
	logoPath             string
	authorAvatarPath     string
	searchEnabled        bool
	searchMaxSuggestions int
	lastUpdatedLabel     string
	authorName           string
	recordText           string
	startYear            string
	passthrough          map[string]any
}

// NavItems returns the top navigation in left-to-right order.
func (t ThemeConfig) NavItems() []NavItem { return slices.Clone(t.navItems) }

// Sidebar returns a copy of the path-prefix to page-slug mapping.
func (t ThemeConfig) Sidebar() map[string][]string {
	out := make(map[string][]string, len(t.sidebar))
	for prefix, slugs := range t.sidebar {
		out[prefix] = slices.Clone(slugs)
	}
	return out
}

// SidebarFor returns the ordered slugs for one section prefix.
func (t ThemeConfig) SidebarFor(prefix string) ([]string, bool) {
	slugs, ok := t.sidebar[prefix]
	return slices.Clone(slugs), ok
}

// SidebarPrefixes returns the section prefixes in sorted order.
func (t ThemeConfig) SidebarPrefixes() []string {
	prefixes := make([]string, 0, len(t.sidebar))
	for k := range t.sidebar {
		prefixes = append(prefixes, k)
	}
	slices.Sort(prefixes)
	return prefixes
}

// SiteType is the layout family ("type"); blog when the source omits it.
func (t ThemeConfig) SiteType() SiteType { return t.siteType }

// BlogConfig returns the category and tag menu slots and the social links.
func (t ThemeConfig) BlogConfig() BlogConfig { return t.blog }

// FriendLinks returns the friends page entries in source order.
func (t ThemeConfig) FriendLinks() []FriendLink { return slices.Clone(t.friendLinks) }

// LogoPath is the site-relative path of the header logo ("logo").
func (t ThemeConfig) LogoPath() string { return t.logoPath }

// AuthorAvatarPath is the site-relative path of the author picture ("authorAvatar").
func (t ThemeConfig) AuthorAvatarPath() string { return t.authorAvatarPath }

// SearchEnabled reports whether the built-in search box is shown.
func (t ThemeConfig) SearchEnabled() bool { return t.searchEnabled }

// SearchMaxSuggestions caps the search dropdown. Always positive when search is on.
func (t ThemeConfig) SearchMaxSuggestions() int { return t.searchMaxSuggestions }

// LastUpdatedLabel is the caption before each page's modification time ("lastUpdated").
func (t ThemeConfig) LastUpdatedLabel() string { return t.lastUpdatedLabel }

// AuthorName is the default author shown on posts ("author").
func (t ThemeConfig) AuthorName() string { return t.authorName }

// RecordText is the registration notice printed in the footer ("record").
func (t ThemeConfig) RecordText() string { return t.recordText }

// StartYear is the first copyright year, kept as text ("startYear").
func (t ThemeConfig) StartYear() string { return t.startYear }

// Passthrough returns a copy of the theme keys this package does not interpret.
func (t ThemeConfig) Passthrough() map[string]any { return copyBag(t.passthrough) }

// NavItem is either a NavLink or a NavGroup. Groups hold only links, so
// the menu is never more than two levels deep.
type NavItem interface {
	Text() string
	Icon() foundation.Option[string]
	isNavItem()
}

// NavLink is a clickable menu entry.
type NavLink struct {
	text string
	link string
	icon foundation.Option[string]
}

func (n NavLink) Text() string                    { return n.text }
func (n NavLink) Link() string                    { return n.link }
func (n NavLink) Icon() foundation.Option[string] { return n.icon }
func (NavLink) isNavItem()                        {}

// NavGroup is a dropdown of links.
type NavGroup struct {
	text  string
	icon  foundation.Option[string]
	items []NavLink
}

func (g NavGroup) Text() string                    { return g.text }
func (g NavGroup) Icon() foundation.Option[string] { return g.icon }
func (g NavGroup) Items() []NavLink                { return slices.Clone(g.items) }
func (NavGroup) isNavItem()                        {}

// BlogConfig configures the blog-specific menu entries and social links.
type BlogConfig struct {
	category    MenuSlot
	tag         MenuSlot
	socialLinks []SocialLink
}

func (b BlogConfig) Category() MenuSlot        { return b.category }
func (b BlogConfig) Tag() MenuSlot             { return b.tag }
func (b BlogConfig) SocialLinks() []SocialLink { return slices.Clone(b.socialLinks) }

// MenuSlot places a generated menu entry at an ordinal among the top-level nav entries.
type MenuSlot struct {
	navLocation int
	label       string
}

func (m MenuSlot) NavLocation() int { return m.navLocation }
func (m MenuSlot) Label() string    { return m.label }

// SocialLink is an icon linking to the author's profile on another site.
type SocialLink struct {
	icon string
	link string
}

func (s SocialLink) Icon() string { return s.icon }
func (s SocialLink) Link() string { return s.link }

// FriendLink is an entry on the theme's friends page.
type FriendLink struct {
	title  string
	desc   string
	link   string
	avatar foundation.Option[string]
	email  foundation.Option[string]
}

func (f FriendLink) Title() string                     { return f.title }
func (f FriendLink) Desc() string                      { return f.desc }
func (f FriendLink) Link() string                      { return f.link }
func (f FriendLink) Avatar() foundation.Option[string] { return f.avatar }
func (f FriendLink) Email() foundation.Option[string]  { return f.email }

// MarkdownConfig holds the engine's markdown options.
type MarkdownConfig struct {
	lineNumbers bool
	passthrough map[string]any
}

func (m MarkdownConfig) LineNumbers() bool           { return m.lineNumbers }
func (m MarkdownConfig) Passthrough() map[string]any { return copyBag(m.passthrough) }

// copyBag deep-copies a passthrough mapping so callers never share nested values.
func copyBag(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyBag(t)
	case map[any]any:
		// YAML allows non-string keys; JSON and the module form do not, so
		// they are stringified here. A real string key wins over a stringified one.
		out := make(map[string]any, len(t))
		for k, e := range t {
			if ks, ok := k.(string); ok {
				out[ks] = deepCopy(e)
			}
		}
		for k, e := range t {
			if _, ok := k.(string); ok {
				continue
			}
			ks := fmt.Sprint(k)
			if _, taken := out[ks]; !taken {
				out[ks] = deepCopy(e)
			}
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	default:
		return v
	}
}
