package app

import (
	"strings"
	"time"

	"debuglocale/internal/i18n"
	"golang.org/x/text/language"
)

const sampleNumber = 1234567.891

func renderMainScreen(b *strings.Builder, tag language.Tag, loc *i18n.Localizer, now time.Time) {
	b.WriteString(loc.T("hello_world", nil) + "\n")
	b.WriteString(loc.LongDateTime(now) + "\n")
	b.WriteString(loc.T("sample_number_label", nil) + ": " + loc.Number(sampleNumber) + "\n")
	b.WriteString(loc.T("active_locale_label", nil) + ": " + tag.String() + "\n")
}
