package locale

import (
	"sync"

	"debuglocale/internal/i18n"
	"golang.org/x/text/language"
)

// Platform is the process-wide locale state an override is applied to.
type Platform interface {
	Default() language.Tag
	Apply(tag language.Tag)
}

// Binding owns the process default locale and the UI localizer derived from
// it. Both are replaced together so no reader observes one without the other.
type Binding struct {
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	tag       language.Tag
	localizer *i18n.Localizer
}

var _ Platform = (*Binding)(nil)

func NewBinding(bundle *i18n.Bundle, initial language.Tag) *Binding {
	return &Binding{
		bundle:    bundle,
		tag:       initial,
		localizer: bundle.Localizer(initial),
	}
}

func (b *Binding) Default() language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tag
}

func (b *Binding) Localizer() *i18n.Localizer {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.localizer
}

// Snapshot returns the default locale and its localizer as one pair.
func (b *Binding) Snapshot() (language.Tag, *i18n.Localizer) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tag, b.localizer
}

// Apply makes tag the process default and rebuilds the UI localizer for it.
func (b *Binding) Apply(tag language.Tag) {
	loc := b.bundle.Localizer(tag)

	b.mu.Lock()
	b.tag = tag
	b.localizer = loc
	b.mu.Unlock()
}
