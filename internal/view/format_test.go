package view

import (
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
)

func TestFormatDate(t *testing.T) {
	f := NewFormatter("en", time.UTC)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		created time.Time
		want    string
	}{
		{name: "seconds ago", created: now.Add(-10 * time.Second), want: "Just now"},
		{name: "30 minutes ago", created: now.Add(-30 * time.Minute), want: "Just now"},
		{name: "in the future", created: now.Add(5 * time.Minute), want: "Just now"},
		{name: "exactly one hour", created: now.Add(-time.Hour), want: "1h ago"},
		{name: "5 hours ago", created: now.Add(-5 * time.Hour), want: "5h ago"},
		{name: "floors partial hours", created: now.Add(-(5*time.Hour + 59*time.Minute)), want: "5h ago"},
		{name: "23 hours ago", created: now.Add(-23*time.Hour - 30*time.Minute), want: "23h ago"},
		{name: "48 hours ago", created: now.Add(-48 * time.Hour), want: en.New().FmtDateShort(now.Add(-48 * time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FormatDate(tt.created, now); got != tt.want {
				t.Errorf("FormatDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatDate_OldDateIsNotRelative(t *testing.T) {
	f := NewFormatter("en", time.UTC)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	got := f.FormatDate(now.Add(-48*time.Hour), now)
	if got == "Just now" || got == "48h ago" || got == "" {
		t.Errorf("Expected a calendar date, got %q", got)
	}
}

func TestFormatDate_UsesLocationAndLocale(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	f := NewFormatter("fr", tokyo)
	now := time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC)
	created := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

	want := fr.New().FmtDateShort(created.In(tokyo))
	if got := f.FormatDate(created, now); got != want {
		t.Errorf("FormatDate() = %q, want %q", got, want)
	}
}

func TestNewFormatter_Fallbacks(t *testing.T) {
	f := NewFormatter("tlh", nil)

	if f.Locale() != "en" {
		t.Errorf("Expected fallback locale en, got %s", f.Locale())
	}
	if f.loc != time.UTC {
		t.Errorf("Expected UTC fallback, got %v", f.loc)
	}
	if NewFormatter("DE", time.UTC).Locale() != "de" {
		t.Error("Locale lookup should be case-insensitive")
	}
}
