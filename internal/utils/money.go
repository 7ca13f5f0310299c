package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinorUnits converts a major-unit amount (e.g. 1500.50 PHP) into the
// processor's minor-unit integer (150050 centavos). Rounding is
// half-away-from-zero on the scaled value via math.Round. Note that decimal
// literals on the exact half-centavo boundary (1500.005) are not representable
// in float64 and land just below the boundary, so they round down; the tests
// pin this.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatPeso renders an amount as "₱5,000.00" with thousand separators.
func FormatPeso(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := int64(amount)
	cents := int64(math.Round((amount - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}
	return fmt.Sprintf("%s₱%s.%02d", sign, formatThousand(whole), cents)
}

// ParseAmount parses "₱5,000.00", "5000" or "5,000.5" into a float amount.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₱")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid amount")
	}
	return strconv.ParseFloat(s, 64)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
