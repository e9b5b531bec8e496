package tui

import (
	"time"
	"unicode/utf8"
)

// serverTimeLayout is the timestamp format prediction history and admin
// logs arrive in.
const serverTimeLayout = "2006-01-02 15:04:05"

// formatServerTime renders a server timestamp compactly, passing the raw
// value through when it doesn't parse (RFC3339 entries from older
// backend versions exist in the wild).
func formatServerTime(ts string) string {
	t, err := time.Parse(serverTimeLayout, ts)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, ts); err != nil {
			return ts
		}
	}
	return t.Format("02 Jan 2006 15:04")
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// orPlaceholder substitutes "-" for an empty display value.
func orPlaceholder(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}
