// Package billscan extracts candidate expense line items from OCR output.
// The OCR engine itself is an external collaborator; this package only
// parses the text it produced. Results are suggestions for manual
// confirmation, never direct expense input.
package billscan

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	amountRe = regexp.MustCompile(`[$₹]?\s*(\d+[.,]\d{2}|\d+)`)
	totalRe  = regexp.MustCompile(`(?i)(?:total|sum|amount|subtotal).*?[$₹]?\s*(\d+[.,]\d{2}|\d+)`)
	// lines that are likely headers or footers, not purchasable items
	skipRe = regexp.MustCompile(`(?i)receipt|invoice|order|date|time|thank you`)
)

// Item is one candidate line item scraped from the bill text.
type Item struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Result holds the scraped items and the detected (or summed) bill total.
type Result struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total_amount"`
}

// Extract scans OCR text line by line: it first looks for an explicit total
// (a keyword line like "Total 33.00"), then collects item lines of the form
// "<description> <price>". When no total line is found, the total falls
// back to the sum of the extracted items.
func Extract(text string) Result {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	result := Result{Items: []Item{}}

	for _, line := range lines {
		if m := totalRe.FindStringSubmatch(line); m != nil {
			if amount, ok := parseAmount(m[1]); ok {
				result.Total = amount
				break
			}
		}
	}

	for _, line := range lines {
		if skipRe.MatchString(line) || totalRe.MatchString(line) {
			continue
		}
		loc := amountRe.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		amount, ok := parseAmount(line[loc[2]:loc[3]])
		if !ok {
			continue
		}
		description := strings.TrimSpace(line[:loc[0]])
		if description == "" {
			description = "Item"
		}
		result.Items = append(result.Items, Item{Description: description, Amount: amount})
	}

	if result.Total == 0 {
		for _, item := range result.Items {
			result.Total += item.Amount
		}
	}

	return result
}

func parseAmount(raw string) (float64, bool) {
	amount, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	return amount, true
}
