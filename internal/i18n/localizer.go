package i18n

import (
	"strconv"
	"time"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Localizer renders messages for a single language tag.
type Localizer struct {
	tag       language.Tag
	localizer *goi18n.Localizer
	printer   *message.Printer
}

func newPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

func (l *Localizer) Tag() language.Tag {
	if l == nil {
		return language.Und
	}
	return l.tag
}

// T renders the message identified by key. Unknown keys render as the key.
func (l *Localizer) T(key string, data map[string]any) string {
	if key == "" {
		return ""
	}
	if l == nil || l.localizer == nil {
		return key
	}
	msg, err := l.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil && msg == "" {
		return key
	}
	return msg
}

// LongDateTime formats t as a long date followed by a long time.
func (l *Localizer) LongDateTime(t time.Time) string {
	return l.T("datetime_long", map[string]any{
		"Day":   t.Day(),
		"Month": l.T("month_"+strconv.Itoa(int(t.Month())), nil),
		"Year":  t.Year(),
		"Time":  t.Format(l.T("datetime_time_layout", nil)),
	})
}

// Number formats v with two decimals using the tag's separators.
func (l *Localizer) Number(v float64) string {
	if l == nil || l.printer == nil {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return l.printer.Sprintf("%.2f", v)
}
