package describe

import (
	"fmt"
	"strings"
)

const systemPrompt = `Ты копирайтер интернет-магазина. Пиши краткие продающие описания товаров на русском языке, по 2-3 предложения, без выдуманных технических характеристик.`

// buildPrompt asks for one JSON object covering the whole name batch, so a
// single completion serves many products.
func buildPrompt(names []string) string {
	var b strings.Builder
	b.WriteString("Напиши описание для каждого из следующих товаров.\n")
	b.WriteString("Ответ верни строго как JSON-объект вида {\"название товара\": \"описание\"} без пояснений и markdown.\n\nТовары:\n")
	for i, name := range names {
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}
	return b.String()
}

// extractJSON cuts the outermost JSON object out of a completion that may be
// wrapped in markdown fences or prose.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// similarity scores two product names by word overlap (Dice coefficient over
// lowercase tokens). Used to match completion keys the model reworded.
func similarity(a, b string) float64 {
	ta := tokens(a)
	tb := tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	set := make(map[string]bool, len(ta))
	for _, t := range ta {
		set[t] = true
	}
	common := 0
	for _, t := range tb {
		if set[t] {
			common++
		}
	}
	return 2 * float64(common) / float64(len(ta)+len(tb))
}

func tokens(s string) []string {
	return strings.Fields(strings.ToLower(s))
}
