package csvadapter

import (
	"strings"
	"testing"

	"woocommerce.GO/config"
)

func TestLoadEnglishHeaders(t *testing.T) {
	csv := "brand,name,sku,category,price\nAcme,Widget,W-1,Tools,199.90\n"
	rows, err := Load(strings.NewReader(csv), config.CSVMapping{})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.Brand != "Acme" || r.Name != "Widget" || r.SKU != "W-1" || r.Category != "Tools" {
		t.Fatalf("unexpected row %+v", r)
	}
	if r.Price != 199.90 {
		t.Fatalf("expected price 199.90, got %v", r.Price)
	}
}

func TestLoadRussianHeaders(t *testing.T) {
	csv := "Бренд;Наименование;Артикул;Категория;Цена;Характеристики\n"
	csv = strings.ReplaceAll(csv, ";", ",")
	csv += "Acme,Чайник,Ч-1,Кухня,\"2500,50\",---Общие---|Мощность: 2000 Вт\n"

	rows, err := Load(strings.NewReader(csv), config.CSVMapping{})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.SKU != "Ч-1" || r.Category != "Кухня" {
		t.Fatalf("unexpected row %+v", r)
	}
	if r.Price != 2500.50 {
		t.Fatalf("expected price 2500.50, got %v", r.Price)
	}
	if !strings.Contains(r.Specs, "Мощность") {
		t.Fatalf("characteristics lost: %q", r.Specs)
	}
}

func TestLoadSkipsRowsWithoutSKUOrName(t *testing.T) {
	csv := "name,sku\nWidget,W-1\n,W-2\nWidget Three,\n"
	rows, err := Load(strings.NewReader(csv), config.CSVMapping{})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].SKU != "W-1" {
		t.Fatalf("expected only W-1, got %+v", rows)
	}
}

func TestLoadMissingRequiredColumns(t *testing.T) {
	csv := "brand,price\nAcme,10\n"
	if _, err := Load(strings.NewReader(csv), config.CSVMapping{}); err == nil {
		t.Fatal("expected error for missing name/sku columns")
	}
}

func TestLoadMappingOverride(t *testing.T) {
	csv := "col_a,col_b\nWidget,W-9\n"
	mapping := config.CSVMapping{Name: "col_a", SKU: "col_b"}
	rows, err := Load(strings.NewReader(csv), mapping)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Name != "Widget" || rows[0].SKU != "W-9" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestLoadStripsBOM(t *testing.T) {
	csv := "\uFEFFname,sku\nWidget,W-1\n"
	rows, err := Load(strings.NewReader(csv), config.CSVMapping{})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
}

func TestParsePrice(t *testing.T) {
	cases := map[string]float64{
		"199.90":   199.90,
		"2500,50":  2500.50,
		"1 234,00": 1234,
		"":         0,
		"n/a":      0,
		"-5":       0,
	}
	for in, want := range cases {
		if got := parsePrice(in); got != want {
			t.Fatalf("parsePrice(%q) = %v, want %v", in, got, want)
		}
	}
}
