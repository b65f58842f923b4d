package upload

import (
	"strings"
	"testing"
)

func TestSlugFromCleanSKU(t *testing.T) {
	if got := slugFor("ABC-123", "ignored"); got != "abc-123" {
		t.Fatalf("expected abc-123, got %q", got)
	}
}

func TestSlugFromMessySKU(t *testing.T) {
	if got := slugFor("AB/C_12.3", "ignored"); got != "ab-c-12-3" {
		t.Fatalf("expected ab-c-12-3, got %q", got)
	}
}

func TestSlugFromCyrillicNameWhenNoSKU(t *testing.T) {
	got := slugFor("", "Чайник электрический")
	if got != "chaynik-elektricheskiy" {
		t.Fatalf("expected chaynik-elektricheskiy, got %q", got)
	}
}

func TestSlugFallbackWhenNothingUsable(t *testing.T) {
	got := slugFor("", "###")
	if !strings.HasPrefix(got, "product-") {
		t.Fatalf("expected timestamped fallback, got %q", got)
	}
}

func TestSanitizeCollapsesDashes(t *testing.T) {
	if got := sanitizeSlug("--a///b--"); got != "a-b" {
		t.Fatalf("expected a-b, got %q", got)
	}
}

func TestCleanSKUForImage(t *testing.T) {
	cases := map[string]string{
		"AB-12":     "AB-12",
		" AB 12/3 ": "AB123",
		"а-б":       "-",
	}
	for in, want := range cases {
		if got := cleanSKUForImage(in); got != want {
			t.Fatalf("cleanSKUForImage(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCapitalizeFirst(t *testing.T) {
	if got := capitalizeFirst("aCME"); got != "Acme" {
		t.Fatalf("expected Acme, got %q", got)
	}
	if got := capitalizeFirst(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
