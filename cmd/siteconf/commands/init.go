package commands

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/siteconf/internal/foundation/errors"
	"git.home.luguber.info/inful/siteconf/internal/siteconfig"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" help:"Where to write the example configuration" default:"siteconf.yaml" type:"path"`
}

const exampleConfig = `# Site configuration. Run "siteconf validate -c <file>" after editing.
title: My Notes
description: Personal study notes
dest: public
head:
  - [link, {rel: icon, href: /favicon.ico}]
  - [meta, {name: viewport, content: "width=device-width,initial-scale=1,user-scalable=no"}]
theme: reco
themeConfig:
  type: blog
  nav:
    - {text: Home, link: /, icon: reco-home}
    - {text: TimeLine, link: /timeline/, icon: reco-date}
    - text: Docs
      icon: reco-message
      items:
        - {text: Guide, link: /docs/guide/}
  sidebar:
    /docs/guide/: ["", getting-started]
  blogConfig:
    category: {location: 2, text: Category}
    tag: {location: 3, text: Tag}
    socialLinks:
      - {icon: reco-github, link: "https://github.com/"}
  friendLink: []
  logo: /logo.png
  authorAvatar: /avatar.png
  search: true
  searchMaxSuggestions: 10
  lastUpdated: Last Updated
  author: Your Name
  startYear: "2024"
markdown:
  lineNumbers: true
`

func (i *InitCmd) Run(g *Global, _ *CLI) error {
	return RunInit(g, i.Output, i.Force)
}

// RunInit writes the example configuration to path. An existing file is
// only replaced when force is set.
func RunInit(g *Global, path string, force bool) error {
	if _, err := g.Loader().Parse([]byte(exampleConfig), siteconfig.FormatYAML); err != nil {
		return errors.InternalError("example configuration is invalid").WithCause(err).Build()
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.ConfigError("configuration file already exists (use --force to overwrite)").
				WithContext("path", path).
				Build()
		} else if !stderrors.Is(err, fs.ErrNotExist) {
			return errors.WrapError(err, errors.CategoryFileSystem, "cannot inspect configuration path").
				WithContext("path", path).
				Build()
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "cannot create configuration directory").
				WithContext("path", dir).
				Build()
		}
	}
	if err := os.WriteFile(path, []byte(exampleConfig), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "cannot write configuration file").
			WithContext("path", path).
			Build()
	}
	fmt.Fprintf(g.Stdout, "Wrote example configuration to %s\n", path)
	return nil
}
