package billscan

import "testing"

func TestExtractReceiptWithTotal(t *testing.T) {
	text := `SPICE GARDEN
Receipt #1042
Date: 12/03/2026
Paneer Tikka 240.00
Butter Naan 60.00
Lassi 80.00
Total 380.00
Thank you, visit again`

	result := Extract(text)

	if result.Total != 380 {
		t.Errorf("Total = %v, want 380", result.Total)
	}
	want := []Item{
		{Description: "Paneer Tikka", Amount: 240},
		{Description: "Butter Naan", Amount: 60},
		{Description: "Lassi", Amount: 80},
	}
	if len(result.Items) != len(want) {
		t.Fatalf("got %d items, want %d: %v", len(result.Items), len(want), result.Items)
	}
	for i, item := range result.Items {
		if item != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, item, want[i])
		}
	}
}

func TestExtractTotalFallsBackToItemSum(t *testing.T) {
	text := "Coffee 4.50\nMuffin 3.25"

	result := Extract(text)
	if result.Total != 7.75 {
		t.Errorf("Total = %v, want summed 7.75", result.Total)
	}
}

func TestExtractCurrencySymbolsAndCommas(t *testing.T) {
	text := "Pasta $12,50\nWine ₹450.00\nTotal: $462,50"

	result := Extract(text)
	if result.Total != 462.5 {
		t.Errorf("Total = %v, want 462.5", result.Total)
	}
	if len(result.Items) != 2 {
		t.Fatalf("got %d items, want 2: %v", len(result.Items), result.Items)
	}
	if result.Items[0].Amount != 12.5 {
		t.Errorf("first item amount = %v, want 12.5", result.Items[0].Amount)
	}
}

func TestExtractPriceOnlyLine(t *testing.T) {
	result := Extract("15.00")

	if len(result.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(result.Items))
	}
	if result.Items[0].Description != "Item" {
		t.Errorf("description = %q, want placeholder %q", result.Items[0].Description, "Item")
	}
	if result.Items[0].Amount != 15 {
		t.Errorf("amount = %v, want 15", result.Items[0].Amount)
	}
}

func TestExtractSkipsHeaderLines(t *testing.T) {
	text := "Invoice 2026\nOrder 55\nTime 18:30\nSoup 5.00"

	result := Extract(text)
	if len(result.Items) != 1 {
		t.Fatalf("got %d items, want 1: %v", len(result.Items), result.Items)
	}
	if result.Items[0].Description != "Soup" {
		t.Errorf("description = %q, want Soup", result.Items[0].Description)
	}
}

func TestExtractSubtotalKeyword(t *testing.T) {
	result := Extract("Burger 9.00\nSubtotal 9.00\nTip 1.00")

	if result.Total != 9 {
		t.Errorf("Total = %v, want 9", result.Total)
	}
}

func TestExtractEmptyAndUselessText(t *testing.T) {
	for _, text := range []string{"", "\n\n", "no numbers here"} {
		result := Extract(text)
		if len(result.Items) != 0 {
			t.Errorf("Extract(%q) items = %v, want none", text, result.Items)
		}
		if result.Total != 0 {
			t.Errorf("Extract(%q) total = %v, want 0", text, result.Total)
		}
		if result.Items == nil {
			t.Errorf("Extract(%q) items is nil, want empty slice", text)
		}
	}
}
