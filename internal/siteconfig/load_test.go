package siteconfig

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/siteconf/internal/foundation"
	ferrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
)

// requireProblems loads doc, expects a ConfigError and returns its problems.
func requireProblems(t *testing.T, doc Document) []foundation.FieldError {
	t.Helper()
	_, err := LoadDocument(doc)
	require.Error(t, err)
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr), "expected *ConfigError, got %T", err)
	return cfgErr.Problems
}

func fields(problems []foundation.FieldError) []string {
	out := make([]string, len(problems))
	for i, p := range problems {
		out[i] = p.Field
	}
	return out
}

func TestLoadDocument_NotesExample(t *testing.T) {
	doc := Document{
		"title": "Notes",
		"themeConfig": map[string]any{
			"sidebar":  map[string]any{"/docs/": []any{"", "intro"}},
			"navItems": []any{map[string]any{"text": "Home", "link": "/"}},
		},
	}

	cfg, err := LoadDocument(doc)
	require.NoError(t, err)

	slugs, ok := cfg.ThemeConfig().SidebarFor("/docs/")
	require.True(t, ok)
	assert.Equal(t, []string{"", "intro"}, slugs)
	require.Len(t, cfg.ThemeConfig().NavItems(), 1)

	link, ok := cfg.ThemeConfig().NavItems()[0].(NavLink)
	require.True(t, ok)
	assert.Equal(t, "Home", link.Text())
	assert.Equal(t, "/", link.Link())
	assert.True(t, link.Icon().IsNone())
}

func TestLoadDocument_Defaults(t *testing.T) {
	cfg, err := LoadDocument(Document{"title": "T"})
	require.NoError(t, err)

	tc := cfg.ThemeConfig()
	assert.Equal(t, "T", cfg.Title())
	assert.Empty(t, cfg.Description())
	assert.Equal(t, DefaultTheme, cfg.Theme())
	assert.Equal(t, SiteTypeBlog, tc.SiteType())
	assert.False(t, tc.SearchEnabled())
	assert.Equal(t, 10, tc.SearchMaxSuggestions())
	assert.Equal(t, 2, tc.BlogConfig().Category().NavLocation())
	assert.Equal(t, "Category", tc.BlogConfig().Category().Label())
	assert.Equal(t, 3, tc.BlogConfig().Tag().NavLocation())
	assert.Equal(t, "Tag", tc.BlogConfig().Tag().Label())
	assert.NotNil(t, tc.FriendLinks())
	assert.Empty(t, tc.FriendLinks())
	assert.Empty(t, tc.NavItems())
	assert.Empty(t, cfg.HeadTags())
	assert.True(t, cfg.Markdown().IsNone())
}

func TestLoadDocument_RejectionCompleteness(t *testing.T) {
	doc := Document{
		"title": "Notes",
		"themeConfig": map[string]any{
			"sidebar":              map[string]any{"docs/": []any{"intro"}},
			"search":               true,
			"searchMaxSuggestions": 0,
		},
	}

	problems := requireProblems(t, doc)
	require.Len(t, problems, 2, "problems: %v", problems)
	assert.ElementsMatch(t,
		[]string{`themeConfig.sidebar["docs/"]`, "themeConfig.searchMaxSuggestions"},
		fields(problems))
	for _, p := range problems {
		assert.Equal(t, foundation.KindInvariant, p.Kind)
	}
}

func TestLoadDocument_NavDepth(t *testing.T) {
	doc := Document{
		"title": "Notes",
		"themeConfig": map[string]any{
			"nav": []any{
				map[string]any{
					"text": "Docs",
					"items": []any{
						map[string]any{
							"text":  "Inner",
							"items": []any{map[string]any{"text": "Deep", "link": "/deep/"}},
						},
					},
				},
			},
		},
	}

	problems := requireProblems(t, doc)
	require.Len(t, problems, 1)
	assert.Equal(t, "themeConfig.nav[0].items[0]", problems[0].Field)
	assert.Equal(t, foundation.KindStructural, problems[0].Kind)
	assert.Equal(t, "nav_depth", problems[0].Code)
}

func TestLoadDocument_Passthrough(t *testing.T) {
	plugin := map[string]any{"name": "comments", "options": []any{"a", "b"}}
	doc := Document{
		"title":       "Notes",
		"extraPlugin": plugin,
		"themeConfig": map[string]any{"noFoundPageByTencent": false},
		"markdown":    map[string]any{"lineNumbers": true, "anchor": map[string]any{"permalink": true}},
	}

	cfg, err := LoadDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"extraPlugin": plugin}, cfg.Passthrough())
	assert.Equal(t, map[string]any{"noFoundPageByTencent": false}, cfg.ThemeConfig().Passthrough())

	md, ok := cfg.Markdown().Get()
	require.True(t, ok)
	assert.True(t, md.LineNumbers())
	assert.Contains(t, md.Passthrough(), "anchor")

	out := ToExternalFormat(cfg)
	assert.Equal(t, plugin, out["extraPlugin"])
	assert.Equal(t, false, out["themeConfig"].(map[string]any)["noFoundPageByTencent"])

	// Returned bags are copies.
	cfg.Passthrough()["extraPlugin"].(map[string]any)["name"] = "changed"
	assert.Equal(t, "comments", cfg.Passthrough()["extraPlugin"].(map[string]any)["name"])
}

func TestLoadDocument_RoundTrip(t *testing.T) {
	cfg, err := Load("testdata/config.js")
	require.NoError(t, err)

	external := ToExternalFormat(cfg)
	again, err := LoadDocument(external)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)

	// Export is idempotent.
	assert.Equal(t, external, ToExternalFormat(again))
}

func TestLoadDocument_RoundTripOptionalFields(t *testing.T) {
	doc := Document{
		"title": "Notes",
		"head": []any{
			[]any{"script", map[string]any{}, "console.log(1)"},
			[]any{"link", map[string]any{"rel": "icon", "href": "/favicon.ico"}},
		},
		"themeConfig": map[string]any{
			"nav": []any{
				map[string]any{"text": "Empty icon", "link": "/a/", "icon": ""},
				map[string]any{"text": "Group", "items": []any{}},
			},
			"friendLink": []any{
				map[string]any{"title": "t", "desc": "d", "link": "https://example.com", "email": "a@example.com"},
			},
			"startYear": 2021,
		},
	}

	cfg, err := LoadDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "2021", cfg.ThemeConfig().StartYear())

	icon, ok := cfg.ThemeConfig().NavItems()[0].Icon().Get()
	assert.True(t, ok, "an empty icon is still present")
	assert.Empty(t, icon)

	content, ok := cfg.HeadTags()[0].Content().Get()
	require.True(t, ok)
	assert.Equal(t, "console.log(1)", content)
	assert.True(t, cfg.HeadTags()[1].Content().IsNone())

	again, err := LoadDocument(ToExternalFormat(cfg))
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadDocument_Problems(t *testing.T) {
	tests := []struct {
		name  string
		doc   Document
		field string
		kind  foundation.ProblemKind
		code  string
	}{
		{
			name:  "missing title",
			doc:   Document{},
			field: "title",
			kind:  foundation.KindStructural,
			code:  "required",
		},
		{
			name:  "null title counts as absent",
			doc:   Document{"title": nil},
			field: "title",
			kind:  foundation.KindStructural,
			code:  "required",
		},
		{
			name:  "blank title",
			doc:   Document{"title": "  "},
			field: "title",
			kind:  foundation.KindInvariant,
			code:  "required",
		},
		{
			name:  "title of wrong type",
			doc:   Document{"title": 5},
			field: "title",
			kind:  foundation.KindStructural,
			code:  "type",
		},
		{
			name:  "unknown site type",
			doc:   Document{"title": "T", "themeConfig": map[string]any{"type": "wiki"}},
			field: "themeConfig.type",
			kind:  foundation.KindInvariant,
			code:  "site_type",
		},
		{
			name: "relative link",
			doc: Document{"title": "T", "themeConfig": map[string]any{
				"nav": []any{map[string]any{"text": "x", "link": "docs/"}},
			}},
			field: "themeConfig.nav[0].link",
			kind:  foundation.KindInvariant,
			code:  "url",
		},
		{
			name: "bad host in group link",
			doc: Document{"title": "T", "themeConfig": map[string]any{
				"nav": []any{map[string]any{"text": "g", "items": []any{
					map[string]any{"text": "x", "link": "https://exa mple.com/"},
				}}},
			}},
			field: "themeConfig.nav[0].items[0].link",
			kind:  foundation.KindInvariant,
			code:  "url",
		},
		{
			name: "link with whitespace in opaque part",
			doc: Document{"title": "T", "themeConfig": map[string]any{
				"nav": []any{map[string]any{"text": "x", "link": "http:foo bar"}},
			}},
			field: "themeConfig.nav[0].link",
			kind:  foundation.KindInvariant,
			code:  "url",
		},
		{
			name: "https link without host",
			doc: Document{"title": "T", "themeConfig": map[string]any{
				"nav": []any{map[string]any{"text": "x", "link": "https:example.com"}},
			}},
			field: "themeConfig.nav[0].link",
			kind:  foundation.KindInvariant,
			code:  "url",
		},
		{
			name: "script link",
			doc: Document{"title": "T", "themeConfig": map[string]any{
				"nav": []any{map[string]any{"text": "x", "link": "javascript:alert(1)"}},
			}},
			field: "themeConfig.nav[0].link",
			kind:  foundation.KindInvariant,
			code:  "url",
		},
		{
			name: "bad friend email",
			doc: Document{"title": "T", "themeConfig": map[string]any{
				"friendLink": []any{map[string]any{"title": "t", "desc": "d", "link": "/f/", "email": "nobody"}},
			}},
			field: "themeConfig.friendLink[0].email",
			kind:  foundation.KindInvariant,
			code:  "email",
		},
		{
			name: "duplicate top-level nav links",
			doc: Document{"title": "T", "themeConfig": map[string]any{
				"nav": []any{
					map[string]any{"text": "a", "link": "/café/"},
					map[string]any{"text": "b", "link": "/cafe\u0301/"},
				},
			}},
			field: "themeConfig.nav[1].link",
			kind:  foundation.KindInvariant,
			code:  "duplicate_link",
		},
		{
			name: "menu slot collision",
			doc: Document{"title": "T", "themeConfig": map[string]any{
				"blogConfig": map[string]any{"tag": map[string]any{"location": 2}},
			}},
			field: "themeConfig.blogConfig.tag.location",
			kind:  foundation.KindInvariant,
			code:  "nav_location_collision",
		},
		{
			name: "negative menu slot",
			doc: Document{"title": "T", "themeConfig": map[string]any{
				"blogConfig": map[string]any{"category": map[string]any{"location": -1}},
			}},
			field: "themeConfig.blogConfig.category.location",
			kind:  foundation.KindInvariant,
			code:  "nav_location",
		},
		{
			name: "group with link",
			doc: Document{"title": "T", "themeConfig": map[string]any{
				"nav": []any{map[string]any{"text": "g", "link": "/g/", "items": []any{}}},
			}},
			field: "themeConfig.nav[0].link",
			kind:  foundation.KindStructural,
			code:  "nav_variant",
		},
		{
			name: "nav and navItems together",
			doc: Document{"title": "T", "themeConfig": map[string]any{
				"nav":      []any{},
				"navItems": []any{},
			}},
			field: "themeConfig.navItems",
			kind:  foundation.KindStructural,
			code:  "duplicate_key",
		},
		{
			name: "head entry with one element",
			doc: Document{"title": "T", "head": []any{
				[]any{"link"},
			}},
			field: "head[0]",
			kind:  foundation.KindStructural,
			code:  "head_shape",
		},
		{
			name: "fractional suggestion count",
			doc: Document{"title": "T", "themeConfig": map[string]any{
				"searchMaxSuggestions": 2.5,
			}},
			field: "themeConfig.searchMaxSuggestions",
			kind:  foundation.KindStructural,
			code:  "type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := requireProblems(t, tt.doc)
			require.Len(t, problems, 1, "problems: %v", problems)
			assert.Equal(t, tt.field, problems[0].Field)
			assert.Equal(t, tt.kind, problems[0].Kind)
			assert.Equal(t, tt.code, problems[0].Code)
		})
	}
}

func TestLoadDocument_IntegerKinds(t *testing.T) {
	accepted := []struct {
		name  string
		value any
	}{
		{"int", 5},
		{"int8", int8(5)},
		{"int16", int16(5)},
		{"int32", int32(5)},
		{"int64", int64(5)},
		{"uint", uint(5)},
		{"uint8", uint8(5)},
		{"uint16", uint16(5)},
		{"uint32", uint32(5)},
		{"uint64", uint64(5)},
		{"float32", float32(5)},
		{"float64", float64(5)},
	}
	for _, tt := range accepted {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadDocument(Document{"title": "T", "themeConfig": map[string]any{
				"searchMaxSuggestions": tt.value,
			}})
			require.NoError(t, err)
			assert.Equal(t, 5, cfg.ThemeConfig().SearchMaxSuggestions())
		})
	}

	t.Run("JSON exponent beyond int32", func(t *testing.T) {
		doc, err := ParseDocument([]byte(`{"title": "T", "themeConfig": {"searchMaxSuggestions": 3e9}}`), FormatJSON)
		require.NoError(t, err)
		cfg, err := LoadDocument(doc)
		require.NoError(t, err)
		assert.Equal(t, 3000000000, cfg.ThemeConfig().SearchMaxSuggestions())
	})

	rejected := []struct {
		name  string
		value any
	}{
		{"fraction", 2.5},
		{"float32 fraction", float32(0.5)},
		{"uint64 above int range", uint64(math.MaxUint64)},
		{"float above int range", 1e19},
		{"not a number", math.NaN()},
		{"numeric string", "5"},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			problems := requireProblems(t, Document{"title": "T", "themeConfig": map[string]any{
				"searchMaxSuggestions": tt.value,
			}})
			require.Len(t, problems, 1, "problems: %v", problems)
			assert.Equal(t, "themeConfig.searchMaxSuggestions", problems[0].Field)
			assert.Equal(t, foundation.KindStructural, problems[0].Kind)
			assert.Equal(t, "type", problems[0].Code)
			assert.Contains(t, problems[0].Message, "must be an integer in range")
		})
	}
}

func TestValidLink(t *testing.T) {
	tests := []struct {
		link string
		want bool
	}{
		{"/docs/", true},
		{"https://example.com/", true},
		{"http://127.0.0.1:8080/x", true},
		{"https://bücher.example/", true},
		{"mailto:someone@example.com", true},
		{"tel:+4512345678", true},
		{"", false},
		{"docs/", false},
		{"/docs/my page/", false},
		{"http:foo bar", false},
		{"https:example.com", false},
		{"https://", false},
		{"javascript:alert(1)", false},
		{"mailto:", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validLink(tt.link), "validLink(%q)", tt.link)
	}
}

func TestLoadDocument_UnknownLeafField(t *testing.T) {
	doc := Document{"title": "T", "themeConfig": map[string]any{
		"nav": []any{map[string]any{"text": "x", "lnik": "/x/"}},
	}}

	problems := requireProblems(t, doc)
	assert.ElementsMatch(t,
		[]string{"themeConfig.nav[0].lnik", "themeConfig.nav[0].link"},
		fields(problems))
	for _, p := range problems {
		assert.Equal(t, foundation.KindStructural, p.Kind)
	}
}

func TestLoadDocument_StructuralProblemSkipsRule(t *testing.T) {
	doc := Document{"title": "T", "themeConfig": map[string]any{
		"sidebar": map[string]any{"docs": "intro"},
		"search":  "yes",
	}}

	problems := requireProblems(t, doc)
	require.Len(t, problems, 2)
	for _, p := range problems {
		assert.Equal(t, foundation.KindStructural, p.Kind, p.Field)
	}
}

func TestConfigError_Classification(t *testing.T) {
	_, err := LoadDocument(Document{})
	require.Error(t, err)

	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	assert.Contains(t, err.Error(), "field 'title': is required")

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Len(t, cfgErr.Structural(), 1)
	assert.Empty(t, cfgErr.Invariant())
}

func TestSiteConfig_AccessorsReturnCopies(t *testing.T) {
	cfg, err := Load("testdata/config.js")
	require.NoError(t, err)

	nav := cfg.ThemeConfig().NavItems()
	nav[0] = NavLink{text: "changed"}
	assert.Equal(t, "主页", cfg.ThemeConfig().NavItems()[0].Text())

	sidebar := cfg.ThemeConfig().Sidebar()
	sidebar["/docs/NET/"][0] = "changed"
	slugs, _ := cfg.ThemeConfig().SidebarFor("/docs/NET/")
	assert.Equal(t, "", slugs[0])

	attrs := cfg.HeadTags()[0].Attributes()
	attrs["rel"] = "changed"
	assert.Equal(t, "icon", cfg.HeadTags()[0].Attributes()["rel"])
}
