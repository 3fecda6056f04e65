// Package money handles monetary amounts as integer cents. Amounts cross
// the API as decimal strings ("1500.00") and are stored as bigint cents so
// balance arithmetic never touches floating point.
package money

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// ParseCents converts a decimal amount string into cents. At most two
// fractional digits are accepted; negative and malformed inputs fail.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" || len(frac) > 2 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	// pad "1500.5" to 50 cents
	for len(frac) < 2 {
		frac += "0"
	}

	var cents int64
	for _, r := range whole + frac {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		d := int64(r - '0')
		if cents > (1<<63-1-d)/10 {
			return 0, fmt.Errorf("amount %q out of range", s)
		}
		cents = cents*10 + d
	}
	return cents, nil
}

// FormatCents renders cents as a plain decimal string, e.g. "1500.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// FormatKES renders cents for human-facing messages with thousands
// separators, e.g. "KES 1,500.00".
func FormatKES(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return printer.Sprintf("KES %s%d.%02d", sign, cents/100, cents%100)
}
