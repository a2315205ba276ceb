package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// NormalizeCode turns POSIX style values such as "en_US.UTF-8" or
// "de_DE@euro" into BCP 47 form ("en-US").
func NormalizeCode(code string) string {
	c := strings.TrimSpace(code)
	if i := strings.IndexAny(c, ".@"); i >= 0 {
		c = c[:i]
	}
	return strings.ReplaceAll(c, "_", "-")
}

// ParseCode builds a tag from code. It never fails: codes that do not parse
// cleanly fall back to language.Make, which keeps whatever it recognises.
func ParseCode(code string) language.Tag {
	n := NormalizeCode(code)
	if n == "" {
		return language.Und
	}
	if tag, err := language.Parse(n); err == nil {
		return tag
	}
	return language.Make(n)
}

// ValidateCode checks code against the allowed option codes. The empty code
// (device default) is always valid.
func ValidateCode(code string, allowed []string) error {
	c := strings.TrimSpace(code)
	if c == "" {
		return nil
	}
	if _, err := language.Parse(NormalizeCode(c)); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidLocaleCode, c, err)
	}
	for _, a := range allowed {
		if strings.EqualFold(NormalizeCode(a), NormalizeCode(c)) {
			return nil
		}
	}
	return fmt.Errorf("%w %q: not one of the configured options", ErrInvalidLocaleCode, c)
}
