package locale

import (
	"testing"

	"golang.org/x/text/language"
)

func TestDecideScenarios(t *testing.T) {
	enUS := ParseCode("en_US")

	// A: nothing stored, first call captures the active locale.
	a := Decide("", enUS, nil)
	if a.Changed {
		t.Fatalf("A: changed = true, want false")
	}
	if a.Original != enUS {
		t.Fatalf("A: original = %v, want %v", a.Original, enUS)
	}

	// B: "fr" stored.
	orig := a.Original
	b := Decide("fr", enUS, &orig)
	if !b.Changed || b.Effective != language.French {
		t.Fatalf("B: decision = %+v, want changed to fr", b)
	}

	// C: override cleared while running in fr, revert to the original.
	c := Decide("", b.Effective, &orig)
	if !c.Changed || c.Effective != enUS {
		t.Fatalf("C: decision = %+v, want changed back to en-US", c)
	}

	// D: still cleared, already in en-US.
	d := Decide("", c.Effective, &orig)
	if d.Changed {
		t.Fatalf("D: changed = true, want false")
	}
}

func TestDecideKeepsGivenOriginal(t *testing.T) {
	orig := language.German
	d := Decide("", language.French, &orig)
	if d.Original != language.German {
		t.Fatalf("original = %v, want de", d.Original)
	}
	if d.Effective != language.German || !d.Changed {
		t.Fatalf("decision = %+v, want revert to de", d)
	}
}

func TestDecideSameCodeIsUnchanged(t *testing.T) {
	d := Decide("fr", language.French, nil)
	if d.Changed {
		t.Fatalf("changed = true for identical locale")
	}
}

func TestEqualByValue(t *testing.T) {
	a := language.MustParse("en-US-u-ca-gregory")
	b := language.MustParse("en-US-u-ca-gregory")
	if !Equal(a, b) {
		t.Fatalf("Equal(%v, %v) = false", a, b)
	}
	if Equal(language.English, language.French) {
		t.Fatalf("Equal(en, fr) = true")
	}
}

func TestParseCode(t *testing.T) {
	cases := map[string]string{
		"fr":          "fr",
		"en_US":       "en-US",
		"en_US.UTF-8": "en-US",
		"de_DE@euro":  "de-DE",
		" pt-BR ":     "pt-BR",
		"":            "und",
	}
	for in, want := range cases {
		if got := ParseCode(in).String(); got != want {
			t.Fatalf("ParseCode(%q) = %q, want %q", in, got, want)
		}
	}
	// Permissive: never panics, always returns a tag.
	_ = ParseCode("this is not a locale")
}

func TestValidateCode(t *testing.T) {
	allowed := []string{"", "en", "fr"}
	if err := ValidateCode("", allowed); err != nil {
		t.Fatalf("empty code error: %v", err)
	}
	if err := ValidateCode("fr", allowed); err != nil {
		t.Fatalf("fr error: %v", err)
	}
	if err := ValidateCode("ja", allowed); err == nil {
		t.Fatalf("expected error for code outside options")
	}
	if err := ValidateCode("!!", allowed); err == nil {
		t.Fatalf("expected error for malformed code")
	}
}
