package engine

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/siteconfig"
)

func loadNotes(t *testing.T) siteconfig.SiteConfig {
	t.Helper()
	cfg, err := siteconfig.LoadDocument(siteconfig.Document{
		"title":       "Notes",
		"extraPlugin": "comments",
		"themeConfig": map[string]any{
			"sidebar": map[string]any{"/docs/": []any{"", "intro"}},
		},
	})
	require.NoError(t, err)
	return cfg
}

func TestHandoff_PassesExternalDocument(t *testing.T) {
	cfg := loadNotes(t)

	var got siteconfig.Document
	eng := EngineFunc(func(_ context.Context, doc siteconfig.Document) error {
		got = doc
		return nil
	})

	require.NoError(t, Handoff(context.Background(), eng, cfg))
	assert.Equal(t, "Notes", got["title"])
	assert.Equal(t, "comments", got["extraPlugin"])
	assert.Contains(t, got["themeConfig"], "sidebar")
}

func TestHandoff_WrapsEngineFailure(t *testing.T) {
	boom := stderrors.New("theme not installed")
	eng := EngineFunc(func(context.Context, siteconfig.Document) error { return boom })

	err := Handoff(context.Background(), eng, loadNotes(t))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryEngine))
	assert.ErrorIs(t, err, boom)
}

func TestHandoff_KeepsClassifiedFailure(t *testing.T) {
	fsErr := errors.NewError(errors.CategoryFileSystem, "disk full").Build()
	eng := EngineFunc(func(context.Context, siteconfig.Document) error { return fsErr })

	err := Handoff(context.Background(), eng, loadNotes(t))
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}
