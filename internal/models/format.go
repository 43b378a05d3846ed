package models

import (
	"fmt"
	"strconv"
)

const (
	ScoreColorGood = "#52c41a"
	ScoreColorFair = "#faad14"
	ScoreColorPoor = "#ff4d4f"
)

// FormatTokens renders a token count compactly: 999, 1.5k, 2.5M.
func FormatTokens(tokens int64) string {
	switch {
	case tokens >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(tokens)/1_000_000)
	case tokens >= 1_000:
		return fmt.Sprintf("%.1fk", float64(tokens)/1_000)
	default:
		return strconv.FormatInt(tokens, 10)
	}
}

// FormatDuration renders milliseconds: 500ms, 1.50s.
func FormatDuration(ms int64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.2fs", float64(ms)/1000)
	}
	return strconv.FormatInt(ms, 10) + "ms"
}

// ScoreColor maps a 0-100 review score to green (>=80), amber (>=60) or red.
func ScoreColor(score float64) string {
	switch {
	case score >= 80:
		return ScoreColorGood
	case score >= 60:
		return ScoreColorFair
	default:
		return ScoreColorPoor
	}
}
