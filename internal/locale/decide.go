// Package locale decides whether a stored debug locale override must be
// applied and applies it to the process-wide locale binding.
package locale

import "golang.org/x/text/language"

// Decision is the outcome of comparing the stored override with the active
// locale.
type Decision struct {
	// Effective is the locale the process should be running in.
	Effective language.Tag
	// Original is the captured device default, carried between calls.
	Original language.Tag
	// Changed reports that Effective differs from the active locale.
	Changed bool
}

// Decide resolves stored against active. original is the locale captured on
// a previous call; when nil, active is captured. Decide never applies
// anything itself.
func Decide(stored string, active language.Tag, original *language.Tag) Decision {
	captured := active
	if original != nil {
		captured = *original
	}

	effective := captured
	if stored != "" {
		effective = ParseCode(stored)
	}
	return Decision{
		Effective: effective,
		Original:  captured,
		Changed:   !Equal(effective, active),
	}
}

// Equal compares tags by value. Tags carrying extensions are not reliably
// comparable with ==.
func Equal(a, b language.Tag) bool {
	return a == b || a.String() == b.String()
}
