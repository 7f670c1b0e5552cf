package layout

import (
	"testing"
	"time"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		v        float64
		currency string
		want     string
	}{
		{3600, "KSH", "KSH 3,600.00"},
		{1234567.891, "KSH", "KSH 1,234,567.89"},
		{0, "KSH", "KSH 0.00"},
		{-500, "KSH", "KSH -500.00"},
		{99.5, "EUR", "EUR 99.50"},
		{42, "", "42.00"},
	}
	for _, c := range cases {
		if got := formatMoney(c.v, c.currency); got != c.want {
			t.Errorf("formatMoney(%v, %q) = %q, want %q", c.v, c.currency, got, c.want)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	if got := formatQuantity(2); got != "2" {
		t.Errorf("formatQuantity(2) = %q", got)
	}
	if got := formatQuantity(2.5); got != "2.5" {
		t.Errorf("formatQuantity(2.5) = %q", got)
	}
	if got := formatQuantity(12); got != "12" {
		t.Errorf("formatQuantity(12) = %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(40); got != "40%" {
		t.Errorf("formatPercent(40) = %q", got)
	}
	if got := formatPercent(33.33); got != "33.33%" {
		t.Errorf("formatPercent(33.33) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)
	if got := formatDate(d); got != "01 Mar 2024" {
		t.Errorf("formatDate = %q", got)
	}
}
