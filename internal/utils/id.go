package utils

import (
	"strconv"
	"strings"
)

// ParseID parses a positive integer identifier from a path segment.
func ParseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
