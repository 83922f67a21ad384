package extract

import (
	"testing"
	"time"
)

func TestParseMention(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantUser      string
		wantRemainder string
		wantOK        bool
	}{
		{
			name:          "user mention with trailing text",
			text:          "<@U123> check this out https://example.com/article",
			wantUser:      "U123",
			wantRemainder: "check this out https://example.com/article",
			wantOK:        true,
		},
		{
			name:          "mention in the middle",
			text:          "by <@W42>   great read ",
			wantUser:      "W42",
			wantRemainder: "great read",
			wantOK:        true,
		},
		{
			name:          "empty id",
			text:          "<@> hello",
			wantUser:      "",
			wantRemainder: "hello",
			wantOK:        true,
		},
		{
			name:     "mention only",
			text:     "<@U123>",
			wantUser: "U123",
			wantOK:   true,
		},
		{
			name:          "first mention wins",
			text:          "<@U1> and <@U2>",
			wantUser:      "U1",
			wantRemainder: "and <@U2>",
			wantOK:        true,
		},
		{
			name:          "remainder spans lines",
			text:          "<@U5> line one\nhttps://example.com",
			wantUser:      "U5",
			wantRemainder: "line one\nhttps://example.com",
			wantOK:        true,
		},
		{
			name:   "channel reference is not a user",
			text:   "<@C123> hello",
			wantOK: false,
		},
		{
			name:   "no mention",
			text:   "since yesterday",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, remainder, ok := ParseMention(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ParseMention(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if user != tt.wantUser {
				t.Errorf("ParseMention(%q) user = %q, want %q", tt.text, user, tt.wantUser)
			}
			if remainder != tt.wantRemainder {
				t.Errorf("ParseMention(%q) remainder = %q, want %q", tt.text, remainder, tt.wantRemainder)
			}
		})
	}
}

func TestFormatMention(t *testing.T) {
	if got := FormatMention("U123"); got != "<@U123>" {
		t.Errorf("FormatMention(U123) = %q, want %q", got, "<@U123>")
	}
}

func TestFirstURL(t *testing.T) {
	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{"check this out https://example.com/article", "https://example.com/article", true},
		{"two links http://a.example.com/x and https://b.example.com/y", "http://a.example.com/x", true},
		{"no link here", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := FirstURL(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("FirstURL(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("FirstURL(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseSince(t *testing.T) {
	// Tuesday afternoon
	base := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	day := func(month time.Month, d int) time.Time {
		return time.Date(2026, month, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		text string
		want time.Time
	}{
		{"since 2026-01-15", day(time.January, 15)},
		{"from 2026-03-01,", day(time.March, 1)},
		{"(2026-02-20)", day(time.February, 20)},
		{"yesterday", day(time.March, 9)},
		{"since yesterday", day(time.March, 9)},
		{"since monday", day(time.March, 9)},
		{"since tuesday", day(time.March, 10)},
		{"since march 1", day(time.March, 1)},
		{"since last week", day(time.March, 3)},
		{"past month", day(time.February, 10)},
		{"last day", day(time.March, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseSince(tt.text, base)
			if !ok {
				t.Fatalf("ParseSince(%q) ok = false, want true", tt.text)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseSince(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}

	for _, text := range []string{"", "   ", "gibberish words only"} {
		t.Run("unparseable "+text, func(t *testing.T) {
			if got, ok := ParseSince(text, base); ok {
				t.Errorf("ParseSince(%q) = %v, want no match", text, got)
			}
		})
	}
}

func TestParseSinceNeverInFuture(t *testing.T) {
	base := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	for _, text := range []string{"monday", "wednesday", "friday", "sunday", "tomorrow"} {
		t.Run(text, func(t *testing.T) {
			got, ok := ParseSince(text, base)
			if !ok {
				t.Fatalf("ParseSince(%q) ok = false, want true", text)
			}
			if got.After(base) {
				t.Errorf("ParseSince(%q) = %v, after %v", text, got, base)
			}
			if got.Hour() != 0 || got.Minute() != 0 {
				t.Errorf("ParseSince(%q) = %v, want midnight", text, got)
			}
		})
	}
}
