package locale

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Option is one entry of the locale selector. The empty Code stands for the
// device default.
type Option struct {
	Code string
	Tag  language.Tag
	Name string
}

// BuildOptions turns configured codes into selector options. The device
// default entry is always first and duplicates are dropped.
func BuildOptions(codes []string) []Option {
	out := []Option{{Code: ""}}
	seen := map[string]bool{"": true}
	for _, c := range codes {
		code := strings.TrimSpace(c)
		key := strings.ToLower(NormalizeCode(code))
		if seen[key] {
			continue
		}
		seen[key] = true
		tag := ParseCode(code)
		out = append(out, Option{Code: code, Tag: tag, Name: display.Self.Name(tag)})
	}
	return out
}

// Codes returns the option codes in order.
func Codes(opts []Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Code)
	}
	return out
}

// IndexOf returns the position of code in opts, or -1.
func IndexOf(opts []Option, code string) int {
	needle := strings.ToLower(NormalizeCode(code))
	for i, o := range opts {
		if strings.ToLower(NormalizeCode(o.Code)) == needle {
			return i
		}
	}
	return -1
}

// Label renders the option for display; deviceDefault is the localized name
// of the empty entry.
func (o Option) Label(deviceDefault string) string {
	if o.Code == "" {
		return deviceDefault
	}
	if o.Name == "" {
		return o.Code
	}
	return o.Name + " (" + o.Code + ")"
}
