package locale

import (
	"os"
	"strings"

	golocale "github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
)

// EnvLang forces the detected device locale.
const EnvLang = "DEBUGLOCALE_LANG"

type systemDetector struct {
	getenv  func(string) string
	locales func() ([]string, error)
}

// DetectSystem returns the device default locale, or fallback when nothing
// usable is reported.
func DetectSystem(fallback language.Tag) language.Tag {
	return systemDetector{getenv: os.Getenv, locales: golocale.GetLocales}.detect(fallback)
}

func (d systemDetector) detect(fallback language.Tag) language.Tag {
	if tag, ok := parseSystemValue(d.getenv(EnvLang)); ok {
		return tag
	}
	if d.locales != nil {
		if values, err := d.locales(); err == nil {
			for _, v := range values {
				if tag, ok := parseSystemValue(v); ok {
					return tag
				}
			}
		}
	}
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if tag, ok := parseSystemValue(d.getenv(name)); ok {
			return tag
		}
	}
	return fallback
}

func parseSystemValue(v string) (language.Tag, bool) {
	n := NormalizeCode(v)
	if n == "" || strings.EqualFold(n, "C") || strings.EqualFold(n, "POSIX") {
		return language.Und, false
	}
	tag, err := language.Parse(n)
	if err != nil || tag == language.Und {
		return language.Und, false
	}
	return tag, true
}
