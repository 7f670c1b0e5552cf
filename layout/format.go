package layout

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// formatMoney 输出带货币前缀、千位分组、固定两位小数的金额，如 "KSH 3,600.00"。
func formatMoney(v float64, currency string) string {
	s := formatAmount(v)
	if currency == "" {
		return s
	}
	return currency + " " + s
}

// formatAmount 输出千位分组、固定两位小数的数值。
func formatAmount(v float64) string {
	neg := math.Signbit(v) && v != 0
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteString(frac)
	return b.String()
}

// formatQuantity 对数量做整数或小数的原样输出（2 → "2"，2.5 → "2.5"）。
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// formatPercent 输出不带多余零的百分比（40 → "40%"，33.33 → "33.33%"）。
func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

// formatDate 按固定的区域化样式输出日期。
func formatDate(t time.Time) string { return t.Format("02 Jan 2006") }
