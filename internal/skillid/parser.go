// internal/skillid/parser.go
package skillid

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse converts the decimal or anchor form of an identifier into an ID.
func Parse(raw string) (ID, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("identifier cannot be empty")
	}
	s = strings.TrimPrefix(s, AnchorPrefix)
	if s == "" {
		return 0, fmt.Errorf("identifier %q has no number after the anchor prefix", raw)
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid identifier %q: %w", raw, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("identifier cannot be negative: %q", raw)
	}
	return ID(n), nil
}
