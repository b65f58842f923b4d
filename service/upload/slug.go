package upload

import (
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
	"unicode"
)

var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

var (
	slugInvalid  = regexp.MustCompile(`[^a-z0-9-]`)
	slugCollapse = regexp.MustCompile(`-+`)
)

// transliterate converts text to a URL-safe latin form: cyrillic letters are
// mapped to latin digraphs, other alphanumerics lowered, everything else
// becomes a dash.
func transliterate(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range text {
		if lat, ok := cyrillicToLatin[unicode.ToLower(r)]; ok {
			b.WriteString(lat)
			continue
		}
		if r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune('-')
	}
	return sanitizeSlug(b.String())
}

// sanitizeSlug reduces s to [a-z0-9-]+, collapsing dash runs and trimming
// leading/trailing dashes.
func sanitizeSlug(s string) string {
	s = slugInvalid.ReplaceAllString(strings.ToLower(s), "-")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

var slugSeq atomic.Int64

// slugFor derives the product slug: the SKU when present, otherwise the
// transliterated full name. An empty result after sanitizing falls back to a
// timestamped placeholder (with a process-local counter so two fallback rows
// in the same second do not collide).
func slugFor(sku, fullName string) string {
	var slug string
	if sku != "" {
		slug = sanitizeSlug(sku)
	} else {
		slug = transliterate(fullName)
	}
	if slug == "" {
		slug = fmt.Sprintf("product-%d-%d", time.Now().Unix(), slugSeq.Add(1))
	}
	return slug
}

// cleanSKUForImage strips a SKU down to the characters image files are named
// with (letters, digits, dashes).
var skuImageInvalid = regexp.MustCompile(`[^a-zA-Z0-9-]`)

func cleanSKUForImage(sku string) string {
	return skuImageInvalid.ReplaceAllString(strings.TrimSpace(sku), "")
}

// capitalizeFirst uppercases the first rune and lowercases the rest, matching
// how brand display names are normalized before term creation.
func capitalizeFirst(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
