// Package i18n loads the embedded message catalogs and renders localized
// text, dates and numbers for one language tag at a time.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

// Bundle holds every loaded catalog plus the base language used when a
// message is missing from the requested one.
type Bundle struct {
	bundle *goi18n.Bundle
	base   language.Tag
}

// NewBundle loads the embedded active.*.toml catalogs.
func NewBundle(base language.Tag) (*Bundle, error) {
	return LoadFS(localeFS, base)
}

// LoadFS loads active.*.toml catalogs from fsys.
func LoadFS(fsys fs.FS, base language.Tag) (*Bundle, error) {
	files, err := fs.Glob(fsys, "active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(files)

	bundle := goi18n.NewBundle(base)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(fsys, file); err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", file, err)
		}
	}
	return &Bundle{bundle: bundle, base: base}, nil
}

// Base returns the fallback language.
func (b *Bundle) Base() language.Tag {
	return b.base
}

// Languages returns the tags that have a catalog.
func (b *Bundle) Languages() []language.Tag {
	return b.bundle.LanguageTags()
}

// Localizer returns a Localizer for tag, falling back to the base language.
func (b *Bundle) Localizer(tag language.Tag) *Localizer {
	return &Localizer{
		tag:       tag,
		localizer: goi18n.NewLocalizer(b.bundle, tag.String(), b.base.String()),
		printer:   newPrinter(tag),
	}
}
