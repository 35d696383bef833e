package siteconfig

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"git.home.luguber.info/inful/siteconf/internal/foundation"
	"git.home.luguber.info/inful/siteconf/internal/util/sets"
)

// fieldRef remembers where a decoded string came from, for the invariant pass.
type fieldRef struct {
	path  string
	value string
}

// intRef is the integer counterpart of fieldRef.
type intRef struct {
	path  string
	value int
	ok    bool
}

// loadState is the structural pass's output: the typed value plus references
// to every field the invariant pass inspects. Only fields that decoded cleanly
// are referenced, so a field with a shape problem is never rule-checked.
type loadState struct {
	cfg SiteConfig

	title       *fieldRef
	siteType    *fieldRef
	sidebarKeys []fieldRef
	links       []fieldRef
	topNavLinks []fieldRef
	emails      []fieldRef

	searchEnabled        bool
	searchMaxSuggestions intRef
	categoryLocation     intRef
	tagLocation          intRef
}

// decoder walks a Document, building typed values and recording shape problems.
type decoder struct {
	problems []foundation.FieldError
}

func (d *decoder) structural(path, code, format string, args ...any) {
	d.problems = append(d.problems, foundation.NewStructuralError(path, code, fmt.Sprintf(format, args...)))
}

func join(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

func index(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}

func keyed(base, key string) string {
	return fmt.Sprintf("%s[%q]", base, key)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any, map[any]any, Document:
		return "mapping"
	case []any:
		return "sequence"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// lookup treats an explicit null like an absent key.
func lookup(m map[string]any, key string) (any, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (d *decoder) mapping(path string, v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Document:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, e := range m {
			ks, ok := k.(string)
			if !ok {
				d.structural(path, "key_type", "keys must be strings, found %v", k)
				return nil, false
			}
			out[ks] = e
		}
		return out, true
	}
	d.structural(path, "type", "must be a mapping, found %s", kindOf(v))
	return nil, false
}

func (d *decoder) sequence(path string, v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	d.structural(path, "type", "must be a sequence, found %s", kindOf(v))
	return nil, false
}

func (d *decoder) str(path string, v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	d.structural(path, "type", "must be a string, found %s", kindOf(v))
	return "", false
}

func (d *decoder) boolean(path string, v any) (bool, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	d.structural(path, "type", "must be a boolean, found %s", kindOf(v))
	return false, false
}

// integer accepts any integral number that fits an int. YAML sources yield
// int, JSON sources float64, and hand-built documents any numeric kind.
func (d *decoder) integer(path string, v any) (int, bool) {
	if n, ok := toInt(v); ok {
		return n, true
	}
	d.structural(path, "type", "must be an integer in range, found %s", kindOf(v))
	return 0, false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		if n >= math.MinInt && n <= math.MaxInt {
			return int(n), true
		}
	case uint:
		if n <= math.MaxInt {
			return int(n), true
		}
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		if uint64(n) <= math.MaxInt {
			return int(n), true
		}
	case uint64:
		if n <= math.MaxInt {
			return int(n), true
		}
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	}
	return 0, false
}

// floatToInt rejects fractions, NaN and values outside [MinInt, MaxInt].
// The upper bound is exclusive because float64(MaxInt) rounds up to 2^63.
func floatToInt(f float64) (int, bool) {
	if f != math.Trunc(f) || f < math.MinInt || f >= -math.MinInt {
		return 0, false
	}
	return int(f), true
}

func (d *decoder) requiredString(m map[string]any, base, key string) (string, bool) {
	path := join(base, key)
	v, ok := lookup(m, key)
	if !ok {
		d.structural(path, "required", "is required")
		return "", false
	}
	return d.str(path, v)
}

func (d *decoder) optionalString(m map[string]any, base, key, fallback string) (string, bool) {
	v, ok := lookup(m, key)
	if !ok {
		return fallback, true
	}
	return d.str(join(base, key), v)
}

func (d *decoder) optionString(m map[string]any, base, key string) (foundation.Option[string], bool) {
	v, ok := lookup(m, key)
	if !ok {
		return foundation.None[string](), true
	}
	s, ok := d.str(join(base, key), v)
	if !ok {
		return foundation.None[string](), false
	}
	return foundation.Some(s), true
}

func (d *decoder) optionalBool(m map[string]any, base, key string, fallback bool) (bool, bool) {
	v, ok := lookup(m, key)
	if !ok {
		return fallback, true
	}
	return d.boolean(join(base, key), v)
}

func (d *decoder) optionalInt(m map[string]any, base, key string, fallback int) intRef {
	path := join(base, key)
	v, ok := lookup(m, key)
	if !ok {
		return intRef{path: path, value: fallback, ok: true}
	}
	n, ok := d.integer(path, v)
	return intRef{path: path, value: n, ok: ok}
}

// rejectUnknown reports keys outside allowed. Leaf entities are strict so that
// typos such as "lnik" surface instead of vanishing.
func (d *decoder) rejectUnknown(m map[string]any, base string, allowed ...string) bool {
	known := sets.New(allowed...)
	clean := true
	for _, k := range sortedKeys(m) {
		if !known.Has(k) {
			d.structural(join(base, k), "unknown_field", "unknown field (allowed: %v)", sets.Sorted(known))
			clean = false
		}
	}
	return clean
}

// site decodes the whole document. Defaults are filled in for absent optional fields.
func (d *decoder) site(doc Document) *loadState {
	st := &loadState{
		cfg: SiteConfig{
			headTags:    []HeadTag{},
			theme:       DefaultTheme,
			themeConfig: defaultThemeConfig(),
			markdown:    foundation.None[MarkdownConfig](),
			passthrough: map[string]any{},
		},
	}
	st.searchMaxSuggestions = intRef{path: join(keyThemeConfig, keySearchMaxSuggestions), value: DefaultSearchMaxSuggestions, ok: true}
	st.categoryLocation = intRef{path: join(keyThemeConfig, "blogConfig.category.location"), value: DefaultCategoryLocation, ok: true}
	st.tagLocation = intRef{path: join(keyThemeConfig, "blogConfig.tag.location"), value: DefaultTagLocation, ok: true}

	root := map[string]any(doc)

	if title, ok := d.requiredString(root, "", keyTitle); ok {
		st.cfg.title = title
		st.title = &fieldRef{path: keyTitle, value: title}
	}
	st.cfg.description, _ = d.optionalString(root, "", keyDescription, "")
	st.cfg.destination, _ = d.optionalString(root, "", keyDest, "")
	st.cfg.theme, _ = d.optionalString(root, "", keyTheme, DefaultTheme)

	if v, ok := lookup(root, keyHead); ok {
		st.cfg.headTags = d.headTags(keyHead, v)
	}
	if v, ok := lookup(root, keyThemeConfig); ok {
		if m, ok := d.mapping(keyThemeConfig, v); ok {
			d.themeConfig(m, st)
		}
	}
	if v, ok := lookup(root, keyMarkdown); ok {
		if m, ok := d.mapping(keyMarkdown, v); ok {
			st.cfg.markdown = foundation.Some(d.markdown(m))
		}
	}

	for k, v := range root {
		if !knownTopLevel.Has(k) {
			st.cfg.passthrough[k] = deepCopy(v)
		}
	}
	return st
}

func (d *decoder) headTags(path string, v any) []HeadTag {
	tags := []HeadTag{}
	entries, ok := d.sequence(path, v)
	if !ok {
		return tags
	}
	for i, raw := range entries {
		entryPath := index(path, i)
		parts, ok := d.sequence(entryPath, raw)
		if !ok {
			continue
		}
		if len(parts) != 2 && len(parts) != 3 {
			d.structural(entryPath, "head_shape", "must be [tag, attributes] or [tag, attributes, content], found %d elements", len(parts))
			continue
		}
		name, nameOK := d.str(index(entryPath, 0), parts[0])
		attrs, attrsOK := d.stringMap(index(entryPath, 1), parts[1])
		content := foundation.None[string]()
		contentOK := true
		if len(parts) == 3 {
			var s string
			if s, contentOK = d.str(index(entryPath, 2), parts[2]); contentOK {
				content = foundation.Some(s)
			}
		}
		if nameOK && attrsOK && contentOK {
			tags = append(tags, HeadTag{name: name, attrs: attrs, content: content})
		}
	}
	return tags
}

func (d *decoder) stringMap(path string, v any) (map[string]string, bool) {
	m, ok := d.mapping(path, v)
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(m))
	clean := true
	for _, k := range sortedKeys(m) {
		s, ok := d.str(keyed(path, k), m[k])
		if !ok {
			clean = false
			continue
		}
		out[k] = s
	}
	return out, clean
}

func (d *decoder) themeConfig(m map[string]any, st *loadState) {
	const base = keyThemeConfig
	tc := &st.cfg.themeConfig

	if v, navPath, ok := d.nav(m, base); ok {
		if items, ok := d.sequence(navPath, v); ok {
			for i, raw := range items {
				if item, ok := d.navItem(index(navPath, i), raw, false, st); ok {
					tc.navItems = append(tc.navItems, item)
				}
			}
		}
	}

	if v, ok := lookup(m, keySidebar); ok {
		d.sidebar(join(base, keySidebar), v, st)
	}

	if raw, ok := d.optionalString(m, base, keyType, SiteTypeBlog.String()); ok {
		tc.siteType = siteTypeNormalizer.Normalize(raw)
		st.siteType = &fieldRef{path: join(base, keyType), value: raw}
	}

	if v, ok := lookup(m, keyBlogConfig); ok {
		path := join(base, keyBlogConfig)
		if bm, ok := d.mapping(path, v); ok {
			tc.blog = d.blogConfig(path, bm, st)
		}
	}

	if v, ok := lookup(m, keyFriendLink); ok {
		path := join(base, keyFriendLink)
		if entries, ok := d.sequence(path, v); ok {
			for i, raw := range entries {
				if fl, ok := d.friendLink(index(path, i), raw, st); ok {
					tc.friendLinks = append(tc.friendLinks, fl)
				}
			}
		}
	}

	tc.logoPath, _ = d.optionalString(m, base, keyLogo, "")
	tc.authorAvatarPath, _ = d.optionalString(m, base, keyAuthorAvatar, "")
	tc.lastUpdatedLabel, _ = d.optionalString(m, base, keyLastUpdated, "")
	tc.authorName, _ = d.optionalString(m, base, keyAuthor, "")
	tc.recordText, _ = d.optionalString(m, base, keyRecord, "")
	tc.startYear = d.year(m, base)

	enabled, enabledOK := d.optionalBool(m, base, keySearch, false)
	tc.searchEnabled = enabled
	st.searchEnabled = enabled && enabledOK
	st.searchMaxSuggestions = d.optionalInt(m, base, keySearchMaxSuggestions, DefaultSearchMaxSuggestions)
	if st.searchMaxSuggestions.ok {
		tc.searchMaxSuggestions = st.searchMaxSuggestions.value
	}

	for k, v := range m {
		if !knownThemeConfig.Has(k) {
			tc.passthrough[k] = deepCopy(v)
		}
	}
}

// nav finds the navigation list. The engine's key is "nav"; "navItems" is
// accepted as an alias, but not alongside it.
func (d *decoder) nav(m map[string]any, base string) (any, string, bool) {
	v, hasNav := lookup(m, keyNav)
	alias, hasAlias := lookup(m, keyNavItems)
	switch {
	case hasNav && hasAlias:
		d.structural(join(base, keyNavItems), "duplicate_key", "conflicts with %s", join(base, keyNav))
		return nil, "", false
	case hasAlias:
		return alias, join(base, keyNavItems), true
	}
	return v, join(base, keyNav), hasNav
}

// year reads startYear, which YAML authors often leave unquoted.
func (d *decoder) year(m map[string]any, base string) string {
	v, ok := lookup(m, keyStartYear)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if n, ok := d.integer(join(base, keyStartYear), v); ok {
		return strconv.Itoa(n)
	}
	return ""
}

func (d *decoder) sidebar(path string, v any, st *loadState) {
	m, ok := d.mapping(path, v)
	if !ok {
		return
	}
	sidebar := st.cfg.themeConfig.sidebar
	for _, prefix := range sortedKeys(m) {
		sectionPath := keyed(path, prefix)
		slugs, ok := d.sequence(sectionPath, m[prefix])
		if !ok {
			continue
		}
		section := make([]string, 0, len(slugs))
		clean := true
		for i, raw := range slugs {
			slug, ok := d.str(index(sectionPath, i), raw)
			if !ok {
				clean = false
				continue
			}
			section = append(section, slug)
		}
		if clean {
			sidebar[prefix] = section
			st.sidebarKeys = append(st.sidebarKeys, fieldRef{path: sectionPath, value: prefix})
		}
	}
}

func (d *decoder) navItem(path string, v any, nested bool, st *loadState) (NavItem, bool) {
	m, ok := d.mapping(path, v)
	if !ok {
		return nil, false
	}
	if _, isGroup := lookup(m, keyItems); isGroup {
		if nested {
			d.structural(path, "nav_depth", "navigation groups cannot contain groups")
			return nil, false
		}
		return d.navGroup(path, m, st)
	}
	link, ok := d.navLink(path, m, st)
	if ok && !nested {
		st.topNavLinks = append(st.topNavLinks, fieldRef{path: join(path, keyLink), value: link.link})
	}
	return link, ok
}

func (d *decoder) navLink(path string, m map[string]any, st *loadState) (NavLink, bool) {
	clean := d.rejectUnknown(m, path, keyText, keyLink, keyIcon)
	text, textOK := d.requiredString(m, path, keyText)
	link, linkOK := d.requiredString(m, path, keyLink)
	icon, iconOK := d.optionString(m, path, keyIcon)
	if linkOK {
		st.links = append(st.links, fieldRef{path: join(path, keyLink), value: link})
	}
	return NavLink{text: text, link: link, icon: icon}, clean && textOK && linkOK && iconOK
}

func (d *decoder) navGroup(path string, m map[string]any, st *loadState) (NavItem, bool) {
	clean := true
	if _, hasLink := lookup(m, keyLink); hasLink {
		d.structural(join(path, keyLink), "nav_variant", "a navigation group cannot also have a link")
		clean = false
	}
	clean = d.rejectUnknown(m, path, keyText, keyIcon, keyItems, keyLink) && clean
	text, textOK := d.requiredString(m, path, keyText)
	icon, iconOK := d.optionString(m, path, keyIcon)

	itemsPath := join(path, keyItems)
	items := []NavLink{}
	raw, itemsOK := d.sequence(itemsPath, m[keyItems])
	for i, child := range raw {
		item, ok := d.navItem(index(itemsPath, i), child, true, st)
		if !ok {
			itemsOK = false
			continue
		}
		items = append(items, item.(NavLink))
	}
	return NavGroup{text: text, icon: icon, items: items}, clean && textOK && iconOK && itemsOK
}

func (d *decoder) blogConfig(path string, m map[string]any, st *loadState) BlogConfig {
	b := defaultBlogConfig()
	d.rejectUnknown(m, path, keyCategory, keyTag, keySocialLinks)

	if v, ok := lookup(m, keyCategory); ok {
		b.category, st.categoryLocation = d.menuSlot(join(path, keyCategory), v, b.category)
	}
	if v, ok := lookup(m, keyTag); ok {
		b.tag, st.tagLocation = d.menuSlot(join(path, keyTag), v, b.tag)
	}
	if v, ok := lookup(m, keySocialLinks); ok {
		linksPath := join(path, keySocialLinks)
		if entries, ok := d.sequence(linksPath, v); ok {
			for i, raw := range entries {
				if sl, ok := d.socialLink(index(linksPath, i), raw, st); ok {
					b.socialLinks = append(b.socialLinks, sl)
				}
			}
		}
	}
	return b
}

func (d *decoder) menuSlot(path string, v any, fallback MenuSlot) (MenuSlot, intRef) {
	loc := intRef{path: join(path, keyLocation), value: fallback.navLocation, ok: true}
	m, ok := d.mapping(path, v)
	if !ok {
		loc.ok = false
		return fallback, loc
	}
	d.rejectUnknown(m, path, keyLocation, keyText)
	loc = d.optionalInt(m, path, keyLocation, fallback.navLocation)
	label, _ := d.optionalString(m, path, keyText, fallback.label)
	slot := MenuSlot{navLocation: fallback.navLocation, label: label}
	if loc.ok {
		slot.navLocation = loc.value
	}
	return slot, loc
}

func (d *decoder) socialLink(path string, v any, st *loadState) (SocialLink, bool) {
	m, ok := d.mapping(path, v)
	if !ok {
		return SocialLink{}, false
	}
	clean := d.rejectUnknown(m, path, keyIcon, keyLink)
	icon, iconOK := d.requiredString(m, path, keyIcon)
	link, linkOK := d.requiredString(m, path, keyLink)
	if linkOK {
		st.links = append(st.links, fieldRef{path: join(path, keyLink), value: link})
	}
	return SocialLink{icon: icon, link: link}, clean && iconOK && linkOK
}

func (d *decoder) friendLink(path string, v any, st *loadState) (FriendLink, bool) {
	m, ok := d.mapping(path, v)
	if !ok {
		return FriendLink{}, false
	}
	clean := d.rejectUnknown(m, path, "title", keyDesc, keyLink, keyAvatar, keyEmail)
	title, titleOK := d.requiredString(m, path, "title")
	desc, descOK := d.requiredString(m, path, keyDesc)
	link, linkOK := d.requiredString(m, path, keyLink)
	avatar, avatarOK := d.optionString(m, path, keyAvatar)
	email, emailOK := d.optionString(m, path, keyEmail)

	if linkOK {
		st.links = append(st.links, fieldRef{path: join(path, keyLink), value: link})
	}
	if a, ok := avatar.Get(); ok {
		st.links = append(st.links, fieldRef{path: join(path, keyAvatar), value: a})
	}
	if e, ok := email.Get(); ok {
		st.emails = append(st.emails, fieldRef{path: join(path, keyEmail), value: e})
	}
	fl := FriendLink{title: title, desc: desc, link: link, avatar: avatar, email: email}
	return fl, clean && titleOK && descOK && linkOK && avatarOK && emailOK
}

func (d *decoder) markdown(m map[string]any) MarkdownConfig {
	mc := MarkdownConfig{passthrough: map[string]any{}}
	mc.lineNumbers, _ = d.optionalBool(m, keyMarkdown, keyLineNumbers, false)
	for k, v := range m {
		if k != keyLineNumbers {
			mc.passthrough[k] = deepCopy(v)
		}
	}
	return mc
}
