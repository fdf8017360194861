package util

import (
	"fmt"
	"strconv"
	"strings"

	"c4sg/internal/models"
)

// ParseID parses a positive numeric identifier such as a project or organization id
func ParseID(str string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(str), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidProjectID, str)
	}
	return id, nil
}

// Plural formats a count with the singular or plural form of noun
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Truncate shortens s to at most limit runes, marking the cut with "..."
func Truncate(s string, limit int) string {
	r := []rune(s)
	if limit <= 0 || len(r) <= limit {
		return s
	}
	if limit <= 3 {
		return string(r[:limit])
	}
	return string(r[:limit-3]) + "..."
}
