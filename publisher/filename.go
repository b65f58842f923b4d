package publisher

import (
	"regexp"
	"strings"
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
	fileInvalid  = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)
	fileCollapse = regexp.MustCompile(`_+`)
)

// CleanFilename makes a name safe for the remote host and for URLs: cyrillic
// is transliterated, spaces and commas become underscores, anything outside
// [a-zA-Z0-9-_.] is dropped and underscore runs are collapsed. An empty result
// falls back to "image".
func CleanFilename(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		if lat, ok := cyrillicToLatin[unicode.ToLower(r)]; ok {
			if unicode.IsUpper(r) && lat != "" {
				b.WriteString(strings.ToUpper(lat[:1]) + lat[1:])
			} else {
				b.WriteString(lat)
			}
			continue
		}
		if r == ' ' || r == ',' {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}

	s := fileInvalid.ReplaceAllString(b.String(), "")
	s = fileCollapse.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" || s == "." {
		return "image"
	}
	return s
}
