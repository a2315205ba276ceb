package version

import (
	"strings"
	"testing"
)

func TestVersionNotEmpty(t *testing.T) {
	if strings.TrimSpace(Version) == "" {
		t.Fatalf("Version is empty")
	}
}

func TestVariantIsKnown(t *testing.T) {
	if Variant != "debug" && Variant != "release" {
		t.Fatalf("Variant = %q, want debug or release", Variant)
	}
}
