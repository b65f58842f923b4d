package html

import (
	"fmt"
	"html/template"
	"strings"
)

// DescriptionInput carries the row fields the description is assembled from.
type DescriptionInput struct {
	FullName        string
	Brand           string
	SKU             string
	Description     string
	Characteristics string
	MarketingText   string
}

// Description assembles the product description HTML: title, free-text
// description, optional marketing block, characteristics table and the
// brand/SKU info block.
func Description(in DescriptionInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<h3>%s</h3>\n", esc(in.FullName))

	if d := strings.TrimSpace(in.Description); d != "" {
		fmt.Fprintf(&b, "<div class='product-description'><p>%s</p></div>\n", esc(d))
	}

	if in.MarketingText != "" {
		fmt.Fprintf(&b, "<div class='marketing-text'><p>-</p><p>%s</p></div>\n", esc(in.MarketingText))
	}

	if specs := strings.TrimSpace(in.Characteristics); specs != "" {
		b.WriteString("<h4>Технические характеристики:</h4>\n")
		b.WriteString(SpecsTable(specs))
	}

	b.WriteString("\n<div class='product-info'>\n")
	if in.Brand != "" {
		fmt.Fprintf(&b, "<p><strong>Brand:</strong> %s</p>\n", esc(in.Brand))
	}
	if in.SKU != "" {
		fmt.Fprintf(&b, "<p><strong>SKU:</strong> %s</p>\n", esc(in.SKU))
	}
	b.WriteString("</div>\n")

	return b.String()
}

// ShortDescription derives the listing blurb: the free-text description when
// present, otherwise brand+name, truncated to 150 characters on a rune
// boundary.
func ShortDescription(description, brand, name string) string {
	s := strings.TrimSpace(description)
	if s == "" {
		s = strings.TrimSpace(brand + " " + name)
	}
	runes := []rune(s)
	if len(runes) > 150 {
		s = string(runes[:150])
	}
	return strings.TrimSpace(s)
}

// SpecsTable renders the pipe-delimited characteristics format into an HTML
// table. Segments shaped ---Title--- open a section header row; key: value
// segments become rows; anything else is skipped.
func SpecsTable(specs string) string {
	lines := strings.Split(specs, "|")
	if len(lines) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<table class="product-specs" style="width:100%; border-collapse:collapse; margin-bottom:20px;">` + "\n")
	b.WriteString("<tbody>\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "---") && strings.HasSuffix(line, "---") {
			title := strings.TrimSpace(strings.ReplaceAll(line, "---", ""))
			fmt.Fprintf(&b, `<tr><th colspan="2" style="background-color:#f5f5f5; padding:10px; text-align:left;">%s</th></tr>`+"\n", esc(title))
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		b.WriteString("<tr>\n")
		fmt.Fprintf(&b, `  <td style="border:1px solid #ddd; padding:8px; font-weight:bold; width:40%%;">%s</td>`+"\n", esc(key))
		fmt.Fprintf(&b, `  <td style="border:1px solid #ddd; padding:8px;">%s</td>`+"\n", esc(value))
		b.WriteString("</tr>\n")
	}

	b.WriteString("</tbody>\n")
	b.WriteString("</table>\n")
	return b.String()
}

func esc(s string) string {
	return template.HTMLEscapeString(s)
}
