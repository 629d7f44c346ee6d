package ui

import (
	"testing"
	"time"
)

func TestFormatDurationShort(t *testing.T) {
	cases := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{name: "seconds", duration: 45 * time.Second, want: "45s"},
		{name: "minutes", duration: 2*time.Minute + 10*time.Second, want: "2m"},
		{name: "hours", duration: 3*time.Hour + 5*time.Minute, want: "3h"},
		{name: "days", duration: 48 * time.Hour, want: "2d"},
		{name: "negative", duration: -time.Minute, want: "0s"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatDurationShort(tc.duration)
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	then := now.Add(-2 * time.Minute)

	if got := FormatTimeAgo(then, now); got != "2m ago" {
		t.Fatalf("expected 2m ago, got %s", got)
	}
	if got := FormatTimeAgo(time.Time{}, now); got != "-" {
		t.Fatalf("expected -, got %s", got)
	}
}

func TestFormatDue(t *testing.T) {
	midnight := time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local)
	evening := time.Date(2026, 2, 1, 17, 30, 0, 0, time.Local)

	cases := []struct {
		name string
		due  *time.Time
		want string
	}{
		{name: "none", due: nil, want: "-"},
		{name: "date only", due: &midnight, want: "2026-02-01"},
		{name: "with time", due: &evening, want: "2026-02-01 17:30"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatDue(tc.due); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.Local)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	if !IsOverdue(&past, now) || IsOverdue(&future, now) || IsOverdue(nil, now) {
		t.Fatalf("unexpected overdue results")
	}
}
