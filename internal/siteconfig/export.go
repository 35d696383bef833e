package siteconfig

// ToExternalFormat renders cfg back into the engine's document shape. It is
// the inverse of LoadDocument: loading the result yields a SiteConfig equal to
// cfg. Passthrough bags are re-attached at their original level, optional
// strings left empty are omitted, and defaulted fields are written out
// explicitly.
func ToExternalFormat(cfg SiteConfig) Document {
	doc := Document(copyBag(cfg.passthrough))

	doc[keyTitle] = cfg.title
	putString(doc, keyDescription, cfg.description)
	putString(doc, keyDest, cfg.destination)
	doc[keyTheme] = cfg.theme

	head := make([]any, 0, len(cfg.headTags))
	for _, tag := range cfg.headTags {
		attrs := make(map[string]any, len(tag.attrs))
		for k, v := range tag.attrs {
			attrs[k] = v
		}
		entry := []any{tag.name, attrs}
		if content, ok := tag.content.Get(); ok {
			entry = append(entry, content)
		}
		head = append(head, entry)
	}
	doc[keyHead] = head

	doc[keyThemeConfig] = exportThemeConfig(cfg.themeConfig)

	if md, ok := cfg.markdown.Get(); ok {
		m := copyBag(md.passthrough)
		m[keyLineNumbers] = md.lineNumbers
		doc[keyMarkdown] = m
	}
	return doc
}

func exportThemeConfig(tc ThemeConfig) map[string]any {
	m := copyBag(tc.passthrough)

	nav := make([]any, 0, len(tc.navItems))
	for _, item := range tc.navItems {
		nav = append(nav, exportNavItem(item))
	}
	m[keyNav] = nav

	sidebar := make(map[string]any, len(tc.sidebar))
	for prefix, slugs := range tc.sidebar {
		section := make([]any, len(slugs))
		for i, s := range slugs {
			section[i] = s
		}
		sidebar[prefix] = section
	}
	m[keySidebar] = sidebar

	m[keyType] = tc.siteType.String()
	m[keyBlogConfig] = exportBlogConfig(tc.blog)

	friends := make([]any, 0, len(tc.friendLinks))
	for _, f := range tc.friendLinks {
		entry := map[string]any{"title": f.title, keyDesc: f.desc, keyLink: f.link}
		putOption(entry, keyAvatar, f.avatar.Get)
		putOption(entry, keyEmail, f.email.Get)
		friends = append(friends, entry)
	}
	m[keyFriendLink] = friends

	putString(m, keyLogo, tc.logoPath)
	putString(m, keyAuthorAvatar, tc.authorAvatarPath)
	putString(m, keyLastUpdated, tc.lastUpdatedLabel)
	putString(m, keyAuthor, tc.authorName)
	putString(m, keyRecord, tc.recordText)
	putString(m, keyStartYear, tc.startYear)
	m[keySearch] = tc.searchEnabled
	m[keySearchMaxSuggestions] = tc.searchMaxSuggestions
	return m
}

func exportNavItem(item NavItem) map[string]any {
	switch n := item.(type) {
	case NavLink:
		return exportNavLink(n)
	case NavGroup:
		items := make([]any, 0, len(n.items))
		for _, child := range n.items {
			items = append(items, exportNavLink(child))
		}
		m := map[string]any{keyText: n.text, keyItems: items}
		putOption(m, keyIcon, n.icon.Get)
		return m
	}
	return nil
}

func exportNavLink(n NavLink) map[string]any {
	m := map[string]any{keyText: n.text, keyLink: n.link}
	putOption(m, keyIcon, n.icon.Get)
	return m
}

func exportBlogConfig(b BlogConfig) map[string]any {
	social := make([]any, 0, len(b.socialLinks))
	for _, s := range b.socialLinks {
		social = append(social, map[string]any{keyIcon: s.icon, keyLink: s.link})
	}
	return map[string]any{
		keyCategory:    exportMenuSlot(b.category),
		keyTag:         exportMenuSlot(b.tag),
		keySocialLinks: social,
	}
}

func exportMenuSlot(s MenuSlot) map[string]any {
	return map[string]any{keyLocation: s.navLocation, keyText: s.label}
}

func putString(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func putOption(m map[string]any, key string, get func() (string, bool)) {
	if v, ok := get(); ok {
		m[key] = v
	}
}
